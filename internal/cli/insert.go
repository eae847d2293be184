package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/edit"
	"github.com/rlm-dev/rlm/internal/rlmerr"
)

var (
	insertTop    bool
	insertBottom bool
	insertBefore int
	insertAfter  int
)

var insertCmd = &cobra.Command{
	Use:   "insert <file> <code-file>",
	Short: "Insert code into a file at a fixed position, guarded by a reparse check",
	Long: `insert adds the content of <code-file> (use "-" to read from stdin) to
<file> at exactly one of --top, --bottom, --before-line, or --after-line. The
result is reparsed before anything touches disk.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath, codeFile := args[0], args[1]

		pos, err := insertPosition()
		if err != nil {
			return err
		}

		var code []byte
		if codeFile == "-" {
			code, err = readAll(os.Stdin)
		} else {
			code, err = os.ReadFile(codeFile)
		}
		if err != nil {
			return err
		}

		guard := edit.NewGuard(newRegistry())
		modified, err := edit.InsertCode(guard, filePath, pos, string(code))
		if err != nil {
			return err
		}
		printResult(map[string]string{"file": filePath}, func() {
			cmd.Printf("inserted into %s (%d bytes written)\n", filePath, len(modified))
		})
		return nil
	},
}

func insertPosition() (edit.InsertPosition, error) {
	set := 0
	if insertTop {
		set++
	}
	if insertBottom {
		set++
	}
	if insertBefore > 0 {
		set++
	}
	if insertAfter > 0 {
		set++
	}
	switch {
	case set != 1:
		return edit.InsertPosition{}, rlmerr.Other("exactly one of --top, --bottom, --before-line, --after-line is required")
	case insertTop:
		return edit.AtTop(), nil
	case insertBottom:
		return edit.AtBottom(), nil
	case insertBefore > 0:
		return edit.Before(insertBefore), nil
	default:
		return edit.After(insertAfter), nil
	}
}

func init() {
	insertCmd.Flags().BoolVar(&insertTop, "top", false, "insert at the top of the file")
	insertCmd.Flags().BoolVar(&insertBottom, "bottom", false, "insert at the bottom of the file")
	insertCmd.Flags().IntVar(&insertBefore, "before-line", 0, "insert before this 1-based line")
	insertCmd.Flags().IntVar(&insertAfter, "after-line", 0, "insert after this 1-based line")
	rootCmd.AddCommand(insertCmd)
}
