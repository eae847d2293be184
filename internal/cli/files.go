package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/scan"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List every file under the project root with its skip reason, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		absRoot, err := absRootDir()
		if err != nil {
			return err
		}
		cfg, err := loadProjectConfig(absRoot)
		if err != nil {
			return err
		}

		scanner := scan.New(absRoot)
		scanner.MaxFileSize = cfg.Scan.MaxFileSize
		scanner.StoreDirName = cfg.Storage.DirName
		scanner.ExtraIgnore = cfg.Scan.Ignore

		discovered, err := scanner.ScanAll(context.Background())
		if err != nil {
			return err
		}
		printResult(discovered, func() {
			for _, d := range discovered {
				if d.SkipReason != "" {
					cmd.Printf("%s  skip=%s\n", d.Path, d.SkipReason)
				} else {
					cmd.Printf("%s  ext=%s  %d bytes\n", d.Path, d.Ext, d.Size)
				}
			}
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
}
