package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// chartFlags are the chart options settable on the command line.
// Only flags the user changed override the config file.
type chartFlags struct {
	root          string
	generations   int
	angle         int
	referenceYear int
	weights       []float64
	showMissing   bool
	marriages     bool
	timeWeights   bool
	childrenCount bool
	substitute    bool
	yearsOnly     bool
	invalidDates  bool
	showPlaces    bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.root, "root", "r", "", "id of the central individual, e.g. @I1@")
	fs.IntVarP(&f.generations, "generations", "g", pipeline.DefaultGenerations, "number of generations, root included")
	fs.IntVarP(&f.angle, "angle", "a", pipeline.DefaultAngle, "fan aperture in degrees")
	fs.IntVar(&f.referenceYear, "reference-year", 0, "year assumed for a root without birth date (time weights)")
	fs.Float64SliceVar(&f.weights, "weights", nil, "four generation-band weights, e.g. 0.95,0.86,0.74,0.5")
	fs.BoolVar(&f.showMissing, "missing", true, "draw placeholders for unknown ancestors")
	fs.BoolVarP(&f.marriages, "marriages", "m", false, "reserve a band for marriages")
	fs.BoolVarP(&f.timeWeights, "time", "t", false, "size generations by birth intervals")
	fs.BoolVar(&f.childrenCount, "children-count", false, "count children of each ancestor")
	fs.BoolVar(&f.substitute, "substitute", false, "use baptism and burial when birth and death are missing")
	fs.BoolVar(&f.yearsOnly, "years-only", false, "show years instead of full dates")
	fs.BoolVar(&f.invalidDates, "invalid-dates", false, "keep unparseable dates as written")
	fs.BoolVar(&f.showPlaces, "places", false, "show places")
}

// apply overlays changed flags on opts.
func (f *chartFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("root", func() { opts.Root = f.root })
	set("generations", func() { opts.Generations = f.generations })
	set("angle", func() { opts.AngleDeg = f.angle })
	set("reference-year", func() { opts.ReferenceYear = f.referenceYear })
	set("weights", func() { opts.Weights = f.weights })
	set("missing", func() { opts.ShowMissing = f.showMissing })
	set("marriages", func() { opts.ShowMarriages = f.marriages })
	set("time", func() { opts.TimeWeights = f.timeWeights })
	set("children-count", func() { opts.ComputeChildrenCount = f.childrenCount })
	set("substitute", func() { opts.SubstituteEvents = f.substitute })
	set("years-only", func() { opts.Dates.ShowYearsOnly = f.yearsOnly })
	set("invalid-dates", func() { opts.Dates.ShowInvalidDates = f.invalidDates })
	set("places", func() { opts.Places.ShowPlaces = f.showPlaces })
}
