package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// treeCommand creates the tree command for node-link pedigree exports.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		flags    chartFlags
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [file.ged]",
		Short: "Export the pedigree as a node-link diagram",
		Long: `Export the pedigree as a node-link diagram.

Useful to check the shape of a pedigree before laying it out as a fan:
each ancestor is a box labelled with its Sosa number, placeholders are
dashed. SVG is rendered with Graphviz; PDF and PNG additionally need
rsvg-convert on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateTreeFormat(format); err != nil {
				return err
			}
			opts := c.cfg().Chart
			flags.apply(cmd, &opts)
			return c.runTree(cmd.Context(), args[0], opts, format, output, detailed)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatSVG, "output format: svg, dot, pdf, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default: <input>.tree.<format>)`)
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add dates and places to each box")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, opts pipeline.Options, format, output string, detailed bool) error {
	logger := loggerFromContext(ctx)
	data, err := readInput(input)
	if err != nil {
		return err
	}
	opts.Logger = logger

	runner := c.newRunner(ctx, true)
	defer runner.Close()

	prog := newProgress(logger)
	t, err := runner.Tree(ctx, data, opts)
	if err != nil {
		return err
	}
	out, err := pipeline.RenderTree(ctx, t, format, detailed)
	if err != nil {
		return err
	}
	prog.done("Rendered pedigree")

	if output == "" {
		output = defaultOutput(input, ".tree."+format)
	}
	if err := writeOutput(output, out); err != nil {
		return err
	}
	if output != "-" {
		printSuccess("Pedigree of %s", StyleHighlight.Render(opts.Root))
		printStats(t.Len(), t.Depth()+1, false)
		printFile(output)
	}
	return nil
}
