package cli

import (
	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var refsCmd = &cobra.Command{
	Use:   "refs <symbol>",
	Short: "List every reference to a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		refs, err := query.Refs(s, args[0])
		if err != nil {
			return err
		}
		printResult(refs, func() {
			for _, r := range refs {
				f, err := s.GetFileByID(r.Chunk.FileID)
				path := "?"
				if err == nil && f != nil {
					path = f.Path
				}
				cmd.Printf("%s:%d  in %s (%s)  kind=%s\n", path, r.Reference.Line, r.Chunk.Ident, r.Chunk.Kind, r.Reference.RefKind)
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
