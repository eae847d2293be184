package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var similarLimit int

var similarCmd = &cobra.Command{
	Use:   "similar <chunk-id>",
	Short: "Find chunks whose content resembles a given chunk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chunkID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return err
		}

		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := query.Similar(cmd.Context(), s, chunkID, similarLimit)
		if err != nil {
			return err
		}
		printResult(results, func() {
			for _, m := range results {
				cmd.Printf("%s %s (score %.3f)\n", m.File, m.Ident, m.Score)
			}
		})
		return nil
	},
}

func init() {
	similarCmd.Flags().IntVar(&similarLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(similarCmd)
}
