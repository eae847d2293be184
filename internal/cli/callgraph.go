package cli

import (
	"github.com/spf13/cobra"

	"github.com/rlm-dev/rlm/internal/query"
)

var callgraphCmd = &cobra.Command{
	Use:   "callgraph <symbol>",
	Short: "Show a symbol's direct callers and callees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		cg, err := query.Callgraph(s, args[0])
		if err != nil {
			return err
		}
		printResult(cg, func() {
			cmd.Printf("callers of %s: %v\n", cg.Symbol, cg.Callers)
			cmd.Printf("callees of %s: %v\n", cg.Symbol, cg.Callees)
		})
		return nil
	},
}

var impactDepth int

var impactCmd = &cobra.Command{
	Use:   "impact <symbol>",
	Short: "Show the transitive closure of a symbol's callers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openExistingStore(rootDir)
		if err != nil {
			return err
		}
		defer s.Close()

		depth := impactDepth
		if depth <= 0 {
			depth = cfg.Chunking.ImpactDepth
		}
		result, err := query.Impact(s, args[0], depth)
		if err != nil {
			return err
		}
		printResult(result, func() {
			cmd.Printf("everything that can reach %s within %d hops: %v\n", result.Symbol, depth, result.Callers)
		})
		return nil
	},
}

func init() {
	impactCmd.Flags().IntVar(&impactDepth, "depth", 0, "BFS hop bound (0 = use config default)")
	rootCmd.AddCommand(callgraphCmd, impactCmd)
}
