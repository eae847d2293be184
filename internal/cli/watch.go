package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the project root and reindex files as they change",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, cfg, err := openIndexer(rootDir)
		if err != nil {
			return err
		}
		defer ix.Store.Close()

		if _, err := ix.Run(context.Background()); err != nil {
			return err
		}

		w := watch.New(ix.Root, ix)
		w.StoreDirName = cfg.Storage.DirName
		w.OnReindex(func(path string, err error) {
			if err != nil {
				cmd.PrintErrf("reindex failed for %s: %v\n", path, err)
				return
			}
			if !quiet {
				cmd.Printf("reindexed %s\n", path)
			}
		})

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		cmd.Println("watching for changes (ctrl-c to stop)...")
		return w.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
