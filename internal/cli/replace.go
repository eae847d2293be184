package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/edit"
)

var replacePreview bool

var replaceCmd = &cobra.Command{
	Use:   "replace <file> <symbol> <code-file>",
	Short: "Replace a symbol's body, guarded by a reparse check",
	Long: `replace rewrites the chunk named <symbol> in <file> with the content
of <code-file> (use "-" to read from stdin). The result is reparsed before
anything touches disk; a syntax error leaves the file untouched.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, symbol, codeFile := args[0], args[1], args[2]

		var code []byte
		var err error
		if codeFile == "-" {
			code, err = readAll(os.Stdin)
		} else {
			code, err = os.ReadFile(codeFile)
		}
		if err != nil {
			return err
		}

		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		if replacePreview {
			diff, err := edit.PreviewReplace(s, filePath, symbol, string(code))
			if err != nil {
				return err
			}
			printResult(diff, func() {
				cmd.Printf("--- %s (lines %d-%d)\n%s\n+++ replacement\n%s\n",
					diff.Symbol, diff.StartLine, diff.EndLine, diff.OldCode, diff.NewCode)
			})
			return nil
		}

		guard := edit.NewGuard(newRegistry())
		modified, err := edit.ReplaceSymbol(s, guard, filePath, symbol, string(code))
		if err != nil {
			return err
		}
		printResult(map[string]string{"file": filePath, "symbol": symbol}, func() {
			cmd.Printf("replaced %s in %s (%d bytes written)\n", symbol, filePath, len(modified))
		})
		return nil
	},
}

func init() {
	replaceCmd.Flags().BoolVar(&replacePreview, "preview", false, "show the diff without writing")
	rootCmd.AddCommand(replaceCmd)
}
