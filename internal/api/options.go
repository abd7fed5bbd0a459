package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// parseChartOptions overlays query parameters on the server defaults.
//
//	root=@I1@ generations=8 angle=270 weights=0.95,0.86,0.74,0.5
//	reference_year=2024 show_missing show_marriages time_weights
//	children_count substitute_events years_only invalid_dates show_places
//	refresh
//
// A boolean given without a value is true.
func parseChartOptions(q url.Values, defaults pipeline.Options) (pipeline.Options, error) {
	opts := defaults
	opts.Weights = append([]float64(nil), defaults.Weights...)
	opts.Logger = nil

	if q.Has("root") {
		opts.Root = q.Get("root")
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"generations", &opts.Generations},
		{"angle", &opts.AngleDeg},
		{"reference_year", &opts.ReferenceYear},
	}
	for _, p := range ints {
		if !q.Has(p.name) {
			continue
		}
		n, err := strconv.Atoi(q.Get(p.name))
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "%s must be an integer, got %q", p.name, q.Get(p.name))
		}
		*p.dst = n
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"show_missing", &opts.ShowMissing},
		{"show_marriages", &opts.ShowMarriages},
		{"time_weights", &opts.TimeWeights},
		{"children_count", &opts.ComputeChildrenCount},
		{"substitute_events", &opts.SubstituteEvents},
		{"years_only", &opts.Dates.ShowYearsOnly},
		{"invalid_dates", &opts.Dates.ShowInvalidDates},
		{"show_places", &opts.Places.ShowPlaces},
		{"refresh", &opts.Refresh},
	}
	for _, p := range bools {
		if !q.Has(p.name) {
			continue
		}
		v := q.Get(p.name)
		if v == "" {
			*p.dst = true
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidConfig, "%s must be a boolean, got %q", p.name, v)
		}
		*p.dst = b
	}

	if q.Has("weights") {
		parts := strings.Split(q.Get("weights"), ",")
		opts.Weights = make([]float64, 0, len(parts))
		for _, s := range parts {
			w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidConfig, "weights must be comma separated numbers, got %q", q.Get("weights"))
			}
			opts.Weights = append(opts.Weights, w)
		}
	}
	return opts, nil
}
