package cli

import (
	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var fuzzyLimit int

var fuzzyCmd = &cobra.Command{
	Use:   "fuzzy <query>",
	Short: "Approximate (typo-tolerant) search over indexed symbol names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := query.FuzzySymbol(s, args[0], fuzzyLimit)
		if err != nil {
			return err
		}
		printResult(results, func() {
			for _, m := range results {
				cmd.Printf("%s:%s %s (score %.3f)\n", m.File, m.Kind, m.Ident, m.Score)
			}
		})
		return nil
	},
}

func init() {
	fuzzyCmd.Flags().IntVar(&fuzzyLimit, "limit", 20, "maximum number of results")
	rootCmd.AddCommand(fuzzyCmd)
}
