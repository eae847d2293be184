package cli

import (
	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over indexed chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := query.Search(s, args[0], searchLimit)
		if err != nil {
			return err
		}
		printResult(results, func() {
			for _, c := range results {
				f, err := s.GetFileByID(c.FileID)
				path := "?"
				if err == nil && f != nil {
					path = f.Path
				}
				cmd.Printf("%s:%d %s %s\n", path, c.StartLine, c.Kind, c.Ident)
			}
		})
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
