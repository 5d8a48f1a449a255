package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
	"github.com/brickforge/brickstep/pkg/ldraw"
)

// newInfoCmd creates the info command showing a model file's structure.
func newInfoCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info <model-file>",
		Short: "Show the structure of a model file",
		Long: `Show the structure of an LDraw model file: its sub-models, step
counts and part quantities, without unwrapping it.

Examples:
  brickstep info car.ldr
  brickstep info spaceship.mpd
  cat car.ldr | brickstep info -`,
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

			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			table, err := ldraw.ParseModelTable(source)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Parsed %d models", len(table)))

			names := make([]string, 0, len(table))
			for name := range table {
				names = append(names, name)
			}
			sort.Strings(names)

			printSuccess("Parsed %s", args[0])
			printNewline()
			for _, name := range names {
				m := table[name]
				printKeyValue("model", name)
				printDetail("steps: %d  parts: %d (%d distinct)  sub-models: %d",
					m.StepCount(), m.PartQty(), m.PartCount(), m.SubModelQty())
			}
			return nil
		},
	}
}
