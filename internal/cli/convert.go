package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchkit/pkg/pipeline"
)

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var from, to string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "convert [in] [out]",
		Short: "Re-encode a pattern in another format",
		Long: `Re-encode a pattern in another format.

Formats are chosen by file extension (.dst, .json, .svg, .png) unless --from
or --to name them.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd.Context(), args[0], args[1], from, to, noCache)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "input format (default: by extension)")
	cmd.Flags().StringVar(&to, "to", "", "output format (default: by extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input, output, from, to string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	if to == "" {
		codec, err := runner.Formats.ForPath(output)
		if err != nil {
			return err
		}
		to = codec.Name
	}

	p, name, err := runner.LoadFile(ctx, input, from)
	if err != nil {
		return err
	}
	data, err := runner.Convert(ctx, p, to, c.defaultOptions())
	if err != nil {
		return err
	}
	if err := writeFile(output, input, data); err != nil {
		return err
	}

	printSuccess("Converted %s from %s to %s", describe(p), name, to)
	printFile(output)
	if to == pipeline.FormatDST || to == pipeline.FormatJSON {
		printNextStep("Check the round trip", appName+" verify --codec "+to+" "+output)
	}
	return nil
}
