package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidImpactDepth indicates a non-positive impact traversal depth.
	ErrInvalidImpactDepth = errors.New("invalid impact depth")

	// ErrEmptyDirName indicates a missing storage directory name.
	ErrEmptyDirName = errors.New("empty storage dir_name")

	// ErrInvalidCacheSettings indicates invalid cache configuration.
	ErrInvalidCacheSettings = errors.New("invalid cache settings")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}
	if err := validateChunking(&cfg.Chunking); err != nil {
		errs = append(errs, err)
	}
	if err := validateStorage(&cfg.Storage); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateScan(cfg *ScanConfig) error {
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("scan.max_file_size cannot be negative, got %d", cfg.MaxFileSize)
	}
	return nil
}

func validateChunking(cfg *ChunkingConfig) error {
	if cfg.ImpactDepth <= 0 {
		return fmt.Errorf("%w: impact_depth must be positive, got %d", ErrInvalidImpactDepth, cfg.ImpactDepth)
	}
	return nil
}

func validateStorage(cfg *StorageConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.DirName) == "" {
		errs = append(errs, ErrEmptyDirName)
	}
	if cfg.CacheMaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_max_age_days cannot be negative, got %d", ErrInvalidCacheSettings, cfg.CacheMaxAgeDays))
	}
	if cfg.CacheMaxSizeMB < 0 {
		errs = append(errs, fmt.Errorf("%w: cache_max_size_mb cannot be negative, got %.2f", ErrInvalidCacheSettings, cfg.CacheMaxSizeMB))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
