package config

// Config is the complete rlm configuration. It is loaded from
// .rlm/config.yml with RLM_-prefixed environment variable overrides.
type Config struct {
	Scan     ScanConfig     `yaml:"scan" mapstructure:"scan"`
	Chunking ChunkingConfig `yaml:"chunking" mapstructure:"chunking"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
}

// ScanConfig defines which files the scanner walks and how it treats them.
type ScanConfig struct {
	Ignore      []string `yaml:"ignore" mapstructure:"ignore"`               // extra glob patterns, on top of gitignore rules
	MaxFileSize int64    `yaml:"max_file_size" mapstructure:"max_file_size"` // bytes; 0 = unlimited
}

// ChunkingConfig defines how far the impact traversal reaches.
type ChunkingConfig struct {
	ImpactDepth int `yaml:"impact_depth" mapstructure:"impact_depth"` // BFS hop bound for the impact operation
}

// StorageConfig controls where and how the SQLite index is kept.
type StorageConfig struct {
	DirName        string `yaml:"dir_name" mapstructure:"dir_name"`               // e.g. ".rlm", relative to the project root
	CacheMaxAgeDays int    `yaml:"cache_max_age_days" mapstructure:"cache_max_age_days"`
	CacheMaxSizeMB  float64 `yaml:"cache_max_size_mb" mapstructure:"cache_max_size_mb"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.test",
				"*.pyc",
			},
			MaxFileSize: 2 << 20, // 2 MiB
		},
		Chunking: ChunkingConfig{
			ImpactDepth: 3,
		},
		Storage: StorageConfig{
			DirName:         ".rlm",
			CacheMaxAgeDays: 0,
			CacheMaxSizeMB:  0,
		},
	}
}
