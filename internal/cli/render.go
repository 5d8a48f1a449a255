package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
	"github.com/brickforge/brickstep/pkg/ldraw"
	"github.com/brickforge/brickstep/pkg/render/hierarchy"
)

// newRenderCmd creates the render command drawing the sub-model hierarchy.
func newRenderCmd(configPath *string) *cobra.Command {
	var (
		root     string
		format   string
		output   string
		detailed bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "render <model-file>",
		Short: "Draw the sub-model hierarchy with Graphviz",
		Long: `Draw the sub-model reference structure of a model as a directed
graph. Each model is a box; edges carry the placement quantity.

Formats: dot, svg, pdf, png (pdf and png require librsvg).

Examples:
  brickstep render car.mpd                      # DOT to stdout
  brickstep render -f svg -o car.svg car.mpd
  brickstep render -f png -o car.png --png-scale 2 car.mpd`,
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
			table, err := ldraw.ParseModelTable(source)
			if err != nil {
				return err
			}
			if root == "" {
				root = ldraw.RootName
			}

			dot := hierarchy.ToDOT(table, root, hierarchy.Options{Detailed: detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg", "pdf", "png":
				spinner := newSpinnerWithContext(cmd.Context(), "Rendering hierarchy diagram ("+format+")")
				spinner.Start()
				switch format {
				case "svg":
					data, err = hierarchy.RenderSVG(dot)
				case "pdf":
					data, err = hierarchy.RenderPDF(dot)
				case "png":
					data, err = hierarchy.RenderPNG(dot, scale)
				}
				spinner.Stop()
			default:
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg, pdf, png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return err
			}
			printSuccess("Rendered model hierarchy")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "model to start from (default: document root)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format (dot, svg, pdf, png)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include step and part counts in labels")
	cmd.Flags().Float64Var(&scale, "png-scale", 2.0, "PNG scale factor")
	return cmd
}
