package cli

import (
	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "List indexed files under a directory, summarized by chunk kind",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		summaries, err := query.Tree(s, prefix)
		if err != nil {
			return err
		}
		printResult(summaries, func() {
			for _, f := range summaries {
				cmd.Printf("%s  %s  %d chunks\n", f.Path, f.Lang, f.ChunkCount)
			}
		})
		return nil
	},
}

var mapCmd = &cobra.Command{
	Use:   "map <file>",
	Short: "List every chunk in a single file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		chunks, err := query.Map(s, args[0])
		if err != nil {
			return err
		}
		printResult(chunks, func() {
			for _, c := range chunks {
				cmd.Printf("%d-%d  %s  %s\n", c.StartLine, c.EndLine, c.Kind, c.Ident)
			}
		})
		return nil
	},
}

var peekCmd = &cobra.Command{
	Use:   "peek <file> <symbol>",
	Short: "Print a single chunk's content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		chunk, err := query.Peek(s, args[0], args[1])
		if err != nil {
			return err
		}
		printResult(chunk, func() { cmd.Println(chunk.Content) })
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd, mapCmd, peekCmd)
}
