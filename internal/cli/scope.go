package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var scopeCmd = &cobra.Command{
	Use:   "scope <file> <line>",
	Short: "List the chunks bracketing a line, innermost first",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		line, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		chunks, err := query.Scope(s, args[0], line)
		if err != nil {
			return err
		}
		printResult(chunks, func() {
			for _, c := range chunks {
				cmd.Printf("%s %s (%d-%d)\n", c.Kind, c.Ident, c.StartLine, c.EndLine)
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scopeCmd)
}
