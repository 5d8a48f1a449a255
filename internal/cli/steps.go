package cli

import (
	"encoding/json"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
)

// newStepsCmd creates the steps command, the main unwrap entry point.
func newStepsCmd(configPath *string) *cobra.Command {
	flags := &unwrapFlags{}
	var interactive bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "steps <model-file>",
		Short: "Unwrap a model into its build step sequence",
		Long: `Unwrap a model into the linear sequence of build steps an
instruction booklet would show. Nested sub-models are expanded in place,
before the step that places them.

Examples:
  brickstep steps car.ldr
  brickstep steps --root wing.ldr spaceship.mpd
  brickstep steps --aspect 30,45,0 --lib ~/ldraw car.ldr
  brickstep steps --tui car.ldr
  brickstep steps --json car.ldr > steps.json`,
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

			opts := flags.pipelineOptions(cfg)

			if asJSON {
				summary, err := runner.Summary(ctx, source, opts)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			prog := newProgress(runner.Logger)
			result, err := runner.Run(ctx, source, opts)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Unwrapped %d steps", len(result.Build.Steps)))

			if interactive {
				model := newStepListModel(result.Build.Steps)
				_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			for _, step := range result.Build.Steps {
				fmt.Println(step)
			}
			printNewline()
			printStats(result.Build.PieceCount(), result.Build.ElementCount(), false)
			printNextStep("Bill of materials", "brickstep bom "+args[0])
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&interactive, "tui", false, "browse steps interactively")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the step summary as JSON")
	return cmd
}
