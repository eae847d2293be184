package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or refresh the symbol index for the project root",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, _, err := openIndexer(rootDir)
		if err != nil {
			return err
		}
		defer ix.Store.Close()

		stats, err := ix.Run(context.Background())
		if err != nil {
			return err
		}
		printResult(stats, func() { cmd.Println(stats.Summary()) })
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
