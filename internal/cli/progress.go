package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/rlm-dev/rlm/internal/indexer"
)

// CLIProgressReporter renders indexer progress as a single progress bar,
// falling back to silence when quiet (or non-TTY output) is requested.
type CLIProgressReporter struct {
	quiet   bool
	bar     *progressbar.ProgressBar
	started time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		quiet = true
	}
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnScanStart() {
	c.started = time.Now()
	if c.quiet {
		return
	}
	log.Println("scanning...")
}

func (c *CLIProgressReporter) OnScanComplete(total int) {
	if c.quiet {
		return
	}
	c.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() { fmt.Println() }),
	)
}

func (c *CLIProgressReporter) OnFileStart(path string) {}

func (c *CLIProgressReporter) OnFileSkipped(path string, reason string) {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnFileIndexed(path string, chunks int) {
	if c.quiet || c.bar == nil {
		return
	}
	c.bar.Add(1)
}

func (c *CLIProgressReporter) OnFileFailed(path string, err error) {
	if c.bar != nil {
		c.bar.Add(1)
	}
	log.Printf("failed to index %s: %v\n", path, err)
}

func (c *CLIProgressReporter) OnComplete(stats indexer.Stats) {
	if c.quiet {
		return
	}
	if c.bar != nil {
		c.bar.Finish()
	}
	fmt.Printf("done: %s\n", stats.Summary())
}
