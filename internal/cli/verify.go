package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var verifyFix bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Cross-check the index against the filesystem",
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, _, err := openIndexer(rootDir)
		if err != nil {
			return err
		}
		defer ix.Store.Close()

		report, err := query.Verify(context.Background(), ix, verifyFix)
		if err != nil {
			return err
		}
		printResult(report, func() {
			cmd.Printf("missing on disk: %v\n", report.MissingOnDisk)
			cmd.Printf("new on disk:     %v\n", report.NewOnDisk)
			cmd.Printf("hash mismatched: %v\n", report.HashMismatched)
			if verifyFix {
				cmd.Printf("fixed: %v\n", report.Fixed)
			}
		})
		return nil
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyFix, "fix", false, "delete missing entries and reindex new/changed files")
	rootCmd.AddCommand(verifyCmd)
}
