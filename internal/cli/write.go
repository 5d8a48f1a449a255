package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
	"github.com/brickforge/brickstep/pkg/pipeline"
)

// newWriteCmd creates the write command exporting the flattened model.
func newWriteCmd(configPath *string) *cobra.Command {
	flags := &unwrapFlags{}
	var output string

	cmd := &cobra.Command{
		Use:   "write <model-file>",
		Short: "Export the flattened single-model file",
		Long: `Export a model as a flat single-model LDraw file: sub-model
references are replaced by their transformed content, step structure is
preserved.

Examples:
  brickstep write car.mpd -o car_flat.ldr
  brickstep write car.mpd            # writes to stdout`,
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

			if output == "" {
				return pipeline.WriteModel(os.Stdout, result.Build)
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := pipeline.WriteModel(f, result.Build); err != nil {
				return err
			}
			printSuccess("Wrote flattened model")
			printFile(output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
