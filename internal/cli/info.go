package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Summarize a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], from)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "input format (default: by file extension)")
	return cmd
}

func (c *CLI) runInfo(ctx context.Context, input, from string) error {
	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	p, name, err := runner.LoadFile(ctx, input, from)
	if err != nil {
		return err
	}

	fmt.Println(StyleTitle.Render(input))
	printKeyValue("Format", name)
	printKeyValue("Stitches", StyleNumber.Render(fmt.Sprintf("%d", p.StitchCount())))
	b := p.Bounds()
	printKeyValue("Size", fmt.Sprintf("%.1f × %.1f mm", b.Width(), b.Height()))
	printKeyValue("Bounds", fmt.Sprintf("(%g, %g) – (%g, %g)", b.MinX, b.MinY, b.MaxX, b.MaxY))
	for _, a := range p.AttributeSet().Sorted() {
		printKeyValue(a.Key, a.Value)
	}

	if len(p.ColorGroups) == 0 {
		printWarning("pattern has no color groups")
		return nil
	}
	fmt.Println(colorGroupTable(p))
	if n := p.UnthreadedCount(); n > 0 {
		printInfo("%d color groups use generated colors", n)
	}
	return nil
}
