package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
	"github.com/matzehuels/stitchkit/pkg/pipeline"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	output    string
	formats   string
	from      string
	metadata  bool
	noMarkers bool
	noCache   bool
	refresh   bool
	lineWidth float64
	diameter  float64
	scale     float64
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a pattern to SVG and/or PNG",
		Long: `Render a pattern to SVG and/or PNG.

Color groups without a thread get evenly spaced generated colors. Results are
cached, keyed by the pattern content and the render settings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.defaultOptions()
			opts.Formats = pipeline.ParseFormats(flags.formats)
			if cmd.Flags().Changed("metadata") {
				opts.Metadata = flags.metadata
			}
			if flags.noMarkers {
				opts.NoMarkers = true
			}
			if flags.lineWidth > 0 {
				opts.LineWidth = flags.lineWidth
			}
			if flags.diameter > 0 {
				opts.StitchDiameter = flags.diameter
			}
			if flags.scale > 0 {
				opts.Scale = flags.scale
			}
			opts.Refresh = flags.refresh
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png (comma-separated)")
	cmd.Flags().StringVar(&flags.from, "from", "", "input format (default: by file extension)")
	cmd.Flags().BoolVar(&flags.metadata, "metadata", false, "embed pattern attributes as <title> and <metadata>")
	cmd.Flags().BoolVar(&flags.noMarkers, "no-markers", false, "omit stitch position markers")
	cmd.Flags().Float64Var(&flags.lineWidth, "line-width", 0, "trace stroke width in mm")
	cmd.Flags().Float64Var(&flags.diameter, "stitch-diameter", 0, "stitch marker diameter in mm")
	cmd.Flags().Float64Var(&flags.scale, "scale", 0, "PNG pixels per millimetre")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "ignore cached renders")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p, _, err := runner.LoadFile(ctx, input, flags.from)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Rendering...")
	spinner.Start()
	res, err := runner.RenderWithCacheInfo(ctx, p, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, input, flags.output)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", describe(p))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p, res.CacheHit)
	return nil
}

// writeArtifacts writes each format to its own file and returns the paths.
// A single format goes to output verbatim when given; several formats share
// the stem of output (or of input) with one extension each.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	var paths []string
	for _, f := range formats {
		path := basePath(output, input) + "." + f
		if len(formats) == 1 && output != "" {
			path = output
		}
		if err := writeFile(path, input, artifacts[f]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeFile writes data to path, refusing to overwrite input.
func writeFile(path, input string, data []byte) error {
	if err := stitcherrors.ValidateOutputPath(path, input); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}

// describe returns a short label for p: its title, or its stitch count.
func describe(p *pattern.Pattern) string {
	if t := p.Title(); t != "" {
		return fmt.Sprintf("%q", t)
	}
	return fmt.Sprintf("%d stitches", p.StitchCount())
}
