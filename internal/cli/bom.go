package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
)

// newBOMCmd creates the bom command printing the bill of materials.
func newBOMCmd(configPath *string) *cobra.Command {
	flags := &unwrapFlags{}

	cmd := &cobra.Command{
		Use:   "bom <model-file>",
		Short: "Print the bill of materials",
		Long: `Print the bill of materials for a model: every part keyed by
name and colour with its total quantity across all sub-models.

Examples:
  brickstep bom car.ldr
  brickstep bom --root wing.ldr spaceship.mpd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			source, err := loadSource(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			runner := newRunner(ctx, cfg, flags.noCache)
			defer runner.Close()

			result, err := runner.Run(ctx, source, flags.pipelineOptions(cfg))
			if err != nil {
				return err
			}

			bom := result.Build.BOM()
			keys := make([]string, 0, len(bom))
			for k := range bom {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			for _, k := range keys {
				fmt.Printf("%4d  %s\n", bom[k], k)
			}
			printNewline()
			printStats(result.Build.PieceCount(), result.Build.ElementCount(), false)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
