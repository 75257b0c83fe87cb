package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pipeline"
	"github.com/matzehuels/stitchkit/pkg/verify"
)

type verifyFlags struct {
	output     string
	svg        string
	from       string
	codec      string
	iterations int
	noSVG      bool
}

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	var flags verifyFlags

	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that a pattern survives repeated codec round trips",
		Long: `Check that a pattern survives repeated codec round trips.

The pattern is rendered to SVG, then written and read back through the codec
the given number of times. After every round trip the stitches and attributes
are compared with the original; any difference is reported and the command
fails. On success the re-encoded pattern is written out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.defaultOptions()
			if flags.codec != "" {
				opts.Codec = flags.codec
			}
			if cmd.Flags().Changed("iterations") {
				opts.Iterations = &flags.iterations
			}
			if err := opts.ValidateForVerify(); err != nil {
				return err
			}
			return c.runVerify(cmd.Context(), args[0], opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "re-encoded output file (default <input>.verified.<codec>)")
	cmd.Flags().StringVar(&flags.svg, "svg", "", "SVG output file (default <input>.svg)")
	cmd.Flags().BoolVar(&flags.noSVG, "no-svg", false, "skip the SVG render")
	cmd.Flags().StringVar(&flags.from, "from", "", "input format (default: by file extension)")
	cmd.Flags().StringVar(&flags.codec, "codec", "", "codec to round-trip through (default "+pipeline.DefaultCodec+")")
	cmd.Flags().IntVarP(&flags.iterations, "iterations", "n", pipeline.DefaultIterations, "number of round trips")

	return cmd
}

func (c *CLI) runVerify(ctx context.Context, input string, opts pipeline.Options, flags verifyFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	p, _, err := runner.LoadFile(ctx, input, flags.from)
	if err != nil {
		return err
	}

	if !flags.noSVG {
		svgPath := flags.svg
		if svgPath == "" {
			svgPath = basePath("", input) + "." + pipeline.FormatSVG
		}
		ropts := opts
		ropts.Formats = []string{pipeline.FormatSVG}
		artifacts, err := runner.Render(ctx, p, ropts)
		if err != nil {
			return err
		}
		if err := writeFile(svgPath, input, artifacts[pipeline.FormatSVG]); err != nil {
			return err
		}
		printFile(svgPath)
	}

	codec, err := runner.Formats.Lookup(opts.Codec)
	if err != nil {
		return err
	}

	var divs []verify.Divergence
	reporter := verify.ReporterFunc(func(d verify.Divergence) {
		divs = append(divs, d)
		verify.LogReporter{Logger: logger}.Report(d)
	})

	spinner := newSpinner(ctx, fmt.Sprintf("Round-tripping through %s...", codec.Name))
	spinner.Start()
	res, err := runner.Verify(ctx, p, opts, reporter)
	if err != nil {
		if stitcherrors.Has(err, stitcherrors.ErrCodeFidelity) {
			spinner.StopWithError(fmt.Sprintf("%s does not survive %s round trips", describe(p), codec.Name))
			fmt.Println(divergenceTable(divs))
		} else {
			spinner.Stop()
		}
		return err
	}
	spinner.Stop()

	out := flags.output
	if out == "" {
		ext := "." + codec.Name
		if len(codec.Extensions) > 0 {
			ext = codec.Extensions[0]
		}
		out = basePath("", input) + ".verified" + ext
	}
	if err := writeFile(out, input, res.Encoded); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Verified %d round trips", res.Report.Iterations))
	printSuccess("%s survives %d %s round trips", describe(p), res.Report.Iterations, codec.Name)
	printFile(out)
	printNextStep("Inspect", appName+" info "+out)
	return nil
}
