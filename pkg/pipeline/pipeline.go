// Package pipeline runs the fan chart pipeline shared by the CLI and the API.
//
// # Stages
//
//  1. Decode: detect the character set and parse GEDCOM lines into records
//  2. Build: assemble the Sosa-numbered pedigree of the root individual
//  3. Layout: apply the weight policy and compute the polar sectors
//  4. Export: flatten the tree into a [chart.Chart]
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, gedcomBytes, pipeline.Options{
//	    Root:        "@I1@",
//	    Generations: 8,
//	    TimeWeights: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("chart.json", result.Data, 0644)
//
// Charts are cached under a key built from the file hash and every option
// that changes the output, so repeated runs skip all four stages.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fanchart/pkg/cache"
	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/date"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/pedigree"
	"github.com/matzehuels/fanchart/pkg/place"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultGenerations is the default number of generations drawn, root included.
	DefaultGenerations = 8

	// DefaultAngle is the default fan aperture in degrees.
	DefaultAngle = 270

	// MaxInputSize bounds the GEDCOM payload accepted by the pipeline.
	MaxInputSize = 32 << 20
)

// Format constants for pedigree exports.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidTreeFormats is the set of formats accepted by [RenderTree].
var ValidTreeFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPDF: true,
	FormatPNG: true,
}

// ValidateTreeFormat checks that a pedigree export format is supported.
func ValidateTreeFormat(format string) error {
	if !ValidTreeFormats[format] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid format: %q (must be one of: dot, svg, pdf, png)", format)
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a chart.
// It supports JSON for API requests and TOML for config files.
type Options struct {
	// Root is the cross-reference id of the central individual, e.g. "@I1@".
	Root string `json:"root" toml:"root"`

	// Build options
	Generations          int  `json:"generations,omitempty" toml:"generations"`
	ShowMissing          bool `json:"show_missing" toml:"show_missing"`
	SubstituteEvents     bool `json:"substitute_events" toml:"substitute_events"`
	ComputeChildrenCount bool `json:"children_count" toml:"children_count"`

	// Layout options
	AngleDeg      int       `json:"angle,omitempty" toml:"angle"`
	ShowMarriages bool      `json:"show_marriages" toml:"show_marriages"`
	TimeWeights   bool      `json:"time_weights" toml:"time_weights"`
	Weights       []float64 `json:"weights,omitempty" toml:"weights"`
	// ReferenceYear anchors the time policy when the root has no birth year.
	// Zero means the current year.
	ReferenceYear int `json:"reference_year,omitempty" toml:"reference_year"`

	// Display options
	Dates       date.Options  `json:"dates" toml:"dates"`
	Places      place.Options `json:"places" toml:"places"`
	PlaceSchema *place.Schema `json:"place_schema,omitempty" toml:"place_schema"`

	// Runtime options (not serialized)
	Refresh bool        `json:"-" toml:"-"`
	Logger  *log.Logger `json:"-" toml:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Chart is the laid out fan chart.
	Chart chart.Chart

	// Data is the JSON encoding of Chart.
	Data []byte

	// Tree is the weighted pedigree. It is nil when the chart came from cache.
	Tree *pedigree.Tree

	// GedcomHash is the SHA-256 of the input bytes.
	GedcomHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the chart came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records     int
	Individuals int
	Nodes       int
	Depth       int
	DecodeTime  time.Duration
	BuildTime   time.Duration
	LayoutTime  time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ChartHit bool
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills zero values with their defaults.
func (o *Options) SetDefaults() {
	if o.Generations == 0 {
		o.Generations = DefaultGenerations
	}
	if o.AngleDeg == 0 {
		o.AngleDeg = DefaultAngle
	}
	if len(o.Weights) == 0 {
		o.Weights = fan.DefaultWeights[:]
	}
	if o.ReferenceYear == 0 {
		o.ReferenceYear = time.Now().Year()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks every option against its allowed range.
func (o *Options) Validate() error {
	if err := errors.ValidateXref(o.Root); err != nil {
		return err
	}
	if err := errors.ValidateGenerations(o.Generations); err != nil {
		return err
	}
	if err := errors.ValidateFanAngle(o.AngleDeg); err != nil {
		return err
	}
	if len(o.Weights) != fan.Bands {
		return errors.New(errors.ErrCodeInvalidConfig,
			"expected %d generation weights, got %d", fan.Bands, len(o.Weights))
	}
	if err := errors.ValidateWeights(o.Weights); err != nil {
		return err
	}
	if o.PlaceSchema != nil && !o.PlaceSchema.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "place schema indices must not be negative")
	}
	return nil
}

// Policy returns the weight policy selected by TimeWeights.
func (o *Options) Policy() fan.Policy {
	if o.TimeWeights {
		return fan.PolicyTime
	}
	return fan.PolicyFixed
}

// UnionBand returns the radial gap reserved for marriages.
func (o *Options) UnionBand() float64 {
	if o.ShowMarriages {
		return fan.DefaultUnionBand
	}
	return 0
}

// Angle returns the aperture in radians.
func (o *Options) Angle() float64 {
	return float64(o.AngleDeg) * math.Pi / 180
}

// PedigreeConfig returns the build configuration.
func (o *Options) PedigreeConfig() pedigree.Config {
	return pedigree.Config{
		MaxGenerations:       o.Generations,
		ShowMissing:          o.ShowMissing,
		ComputeChildrenCount: o.ComputeChildrenCount,
		SubstituteEvents:     o.SubstituteEvents,
		Dates:                o.Dates,
		Places:               o.Places,
		PlaceSchema:          o.PlaceSchema,
	}
}

// WeightOptions returns the weight engine configuration.
func (o *Options) WeightOptions() fan.Options {
	var w fan.Weights
	copy(w[:], o.Weights)
	return fan.Options{
		Policy:        o.Policy(),
		Weights:       w,
		UnionBand:     o.UnionBand(),
		ReferenceYear: o.ReferenceYear,
	}
}

// ChartKeyOpts returns cache key options for the chart.
func (o *Options) ChartKeyOpts() cache.ChartKeyOpts {
	k := cache.ChartKeyOpts{
		Root:                 o.Root,
		Generations:          o.Generations,
		AngleDeg:             o.AngleDeg,
		ShowMissing:          o.ShowMissing,
		ShowMarriages:        o.ShowMarriages,
		SubstituteEvents:     o.SubstituteEvents,
		ComputeChildrenCount: o.ComputeChildrenCount,
		Policy:               string(o.Policy()),
		ShowInvalidDates:     o.Dates.ShowInvalidDates,
		ShowYearsOnly:        o.Dates.ShowYearsOnly,
		ShowPlaces:           o.Places.ShowPlaces,
	}
	copy(k.Weights[:], o.Weights)
	// The reference year only changes time-weighted charts.
	if o.TimeWeights {
		k.ReferenceYear = o.ReferenceYear
	}
	if s := o.PlaceSchema; s != nil {
		k.PlaceSchema = fmt.Sprintf("%t:%d:%d:%d:%d", s.Declared, s.Town, s.Department, s.Country, s.Subdivision)
	}
	return k
}
