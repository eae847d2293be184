package cli

import (
	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var diffSymbol string

var diffCmd = &cobra.Command{
	Use:   "diff <file>",
	Short: "Compare a file (or one of its symbols) against the index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absRoot, err := absRootDir()
		if err != nil {
			return err
		}
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		result, err := query.Diff(s, absRoot, args[0], diffSymbol)
		if err != nil {
			return err
		}
		printResult(result, func() {
			if !result.Changed {
				cmd.Printf("%s: unchanged\n", result.Path)
				return
			}
			cmd.Printf("%s: changed (indexed %s, disk %s)\n", result.Path, result.StoredHash[:8], result.DiskHash[:8])
			if result.Symbol != "" {
				cmd.Printf("--- indexed %s\n%s\n+++ current %s\n%s\n", result.Symbol, result.Stored, result.Symbol, result.Current)
			}
		})
		return nil
	},
}

func init() {
	diffCmd.Flags().StringVar(&diffSymbol, "symbol", "", "scope the diff to a single symbol within the file")
	rootCmd.AddCommand(diffCmd)
}
