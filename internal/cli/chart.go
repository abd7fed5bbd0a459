package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// chartCommand creates the chart command.
func (c *CLI) chartCommand() *cobra.Command {
	var (
		flags   chartFlags
		output  string
		noCache bool
		refresh bool
		pick    bool
	)

	cmd := &cobra.Command{
		Use:   "chart [file.ged]",
		Short: "Compute a fan chart layout as JSON",
		Long: `Compute a fan chart layout as JSON.

The chart lists one sector per individual in the pedigree of --root, with its
Sosa number, displayed dates and places, and its polar geometry (angles in
radians, radii in weight units). When the aperture and generation count match
a predefined print frame, the chart also carries the frame size and the pixel
scale that fits it.

Use "-" to read the GEDCOM file from stdin. Results are cached.`,
		Example: `  fanchart chart family.ged --root @I1@
  fanchart chart family.ged --pick --time --marriages -g 7 -a 360`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg().Chart
			flags.apply(cmd, &opts)
			opts.Refresh = refresh
			return c.runChart(cmd.Context(), args[0], opts, output, noCache, pick)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file, "-" for stdout (default: <input>.chart.json)`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVarP(&pick, "pick", "p", false, "choose the root individual interactively")

	return cmd
}

// runChart runs the pipeline and writes the chart.
func (c *CLI) runChart(ctx context.Context, input string, opts pipeline.Options, output string, noCache, pick bool) error {
	logger := loggerFromContext(ctx)
	data, err := readInput(input)
	if err != nil {
		return err
	}

	runner := c.newRunner(ctx, noCache)
	defer runner.Close()

	if pick {
		root, err := c.pickRoot(ctx, runner, data)
		if err != nil || root == "" {
			return err
		}
		opts.Root = root
	}
	if opts.Root == "" {
		return fmt.Errorf("--root is required (or use --pick)")
	}
	opts.Logger = logger

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %d generations...", opts.Generations))
	spinner.Start()
	res, err := runner.Execute(ctx, data, opts)
	if err != nil {
		spinner.StopWithError("Chart failed")
		return err
	}
	spinner.Stop()
	prog.done("Chart ready")

	if output == "" {
		output = defaultOutput(input, ".chart.json")
	}
	if err := writeOutput(output, res.Data); err != nil {
		return err
	}
	if output == "-" {
		return nil
	}

	printSuccess("Fan chart for %s", StyleHighlight.Render(opts.Root))
	printStats(res.Stats.Nodes, res.Stats.Depth+1, res.CacheInfo.ChartHit)
	if f := res.Chart.Frame; f != nil {
		printKeyValue("Frame", f.Frame()+" mm")
	}
	printFile(output)
	return nil
}

// pickRoot lets the user choose the root from the individuals of the file.
func (c *CLI) pickRoot(ctx context.Context, runner *pipeline.Runner, data []byte) (string, error) {
	list, err := runner.Individuals(ctx, data)
	if err != nil {
		return "", err
	}
	selected, err := pickIndividual(list)
	if err != nil {
		return "", err
	}
	if selected == nil {
		printDetail("No selection made")
		return "", nil
	}
	return selected.ID, nil
}
