package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"time"

	"github.com/matzehuels/fanchart/pkg/chart"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/gedcom"
	"github.com/matzehuels/fanchart/pkg/observability"
	"github.com/matzehuels/fanchart/pkg/pedigree"
	"github.com/matzehuels/fanchart/pkg/render/nodelink"
)

// =============================================================================
// Decode
// =============================================================================

// Decode converts raw GEDCOM bytes into a record reader.
func Decode(ctx context.Context, data []byte) (*gedcom.Reader, int, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, len(data))
	start := time.Now()

	records, err := decode(data)
	hooks.OnDecodeComplete(ctx, len(records), time.Since(start), err)
	if err != nil {
		return nil, 0, err
	}
	return gedcom.NewReader(records), len(records), nil
}

func decode(data []byte) ([]gedcom.Record, error) {
	if err := errors.ValidateSize(int64(len(data)), MaxInputSize); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty GEDCOM input")
	}
	records, err := gedcom.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGEDCOM, err, "decode gedcom")
	}
	return records, nil
}

// =============================================================================
// Build and Layout
// =============================================================================

// BuildTree assembles the pedigree of opts.Root.
// Options must have been validated.
func BuildTree(ctx context.Context, r *gedcom.Reader, opts Options) (*pedigree.Tree, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Root, opts.Generations)
	start := time.Now()

	t, err := pedigree.Build(r, opts.Root, opts.PedigreeConfig())
	err = buildError(err)
	nodes := 0
	if t != nil {
		nodes = t.Len()
	}
	hooks.OnBuildComplete(ctx, opts.Root, nodes, time.Since(start), err)
	return t, err
}

func buildError(err error) error {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, pedigree.ErrNoIndividuals):
		return errors.Wrap(errors.ErrCodeNoIndividuals, err, "no individuals in file")
	case stderrors.Is(err, pedigree.ErrRootNotFound):
		return errors.Wrap(errors.ErrCodeRootNotFound, err, "root individual not found")
	case stderrors.Is(err, pedigree.ErrInvalidGenerations):
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid generation limit")
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "build pedigree")
	}
}

// LayoutTree weighs the tree, computes its sectors and exports the chart.
func LayoutTree(ctx context.Context, t *pedigree.Tree, opts Options) (chart.Chart, error) {
	w := opts.WeightOptions()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(w.Policy), t.Len())
	start := time.Now()

	if err := fan.Weigh(t, w); err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidConfig, err, "weigh pedigree")
		hooks.OnLayoutComplete(ctx, string(w.Policy), time.Since(start), err)
		return chart.Chart{}, err
	}
	fan.Layout(t.Root, opts.Angle(), w.UnionBand)

	meta := chart.Meta{
		Root:        opts.Root,
		Angle:       opts.Angle(),
		Generations: opts.Generations,
		Weights:     w,
	}
	if dims, ok := fan.LookupDimensions(opts.AngleDeg, opts.Generations, opts.ShowMarriages); ok {
		meta.Frame = &dims
	} else {
		opts.Logger.Debug("no predefined frame", "angle", opts.AngleDeg, "generations", opts.Generations)
	}
	c := chart.Export(t, meta)
	hooks.OnLayoutComplete(ctx, string(w.Policy), time.Since(start), nil)
	return c, nil
}

// =============================================================================
// Pedigree Export
// =============================================================================

// RenderTree exports the pedigree as a node-link diagram.
func RenderTree(ctx context.Context, t *pedigree.Tree, format string, detailed bool) ([]byte, error) {
	if err := ValidateTreeFormat(format); err != nil {
		return nil, err
	}
	dot := nodelink.ToDOT(t, nodelink.Options{Detailed: detailed})
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	default:
		return nodelink.RenderPNG(ctx, dot, 2)
	}
}
