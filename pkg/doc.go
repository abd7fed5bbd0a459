// Package pkg provides the libraries behind fanchart, a genealogical fan
// chart generator.
//
// # Overview
//
// fanchart reads a GEDCOM file, builds the ancestor tree of one individual
// and lays it out as concentric ring sectors: the root sits in the center,
// its parents share the first ring, grandparents the second, and so on.
//
// # Architecture
//
//	GEDCOM bytes
//	     ↓
//	[gedcom] (decode lines into records, index by cross-reference)
//	     ↓
//	[pedigree] (Sosa-numbered ancestor tree, dates via [date], places via [place])
//	     ↓
//	[fan] (generation weights, polar layout, print frames)
//	     ↓
//	[chart] (JSON document), [render/nodelink] (DOT/SVG/PDF/PNG)
//
// [pipeline] chains these stages with caching ([cache]) and is shared by the
// CLI and the HTTP API.
//
// # Quick Start
//
//	records, _ := gedcom.Decode(f)
//	tree, _ := pedigree.Build(gedcom.NewReader(records), "@I1@", pedigree.Config{MaxGenerations: 8})
//	_ = fan.Weigh(tree, fan.Options{Weights: fan.DefaultWeights})
//	fan.Layout(tree.Root, 1.5*math.Pi, 0)
//
// Or, with caching and validation:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, data, pipeline.Options{Root: "@I1@"})
//
// [gedcom]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/gedcom
// [pedigree]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/pedigree
// [date]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/date
// [place]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/place
// [fan]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/fan
// [chart]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/chart
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/fanchart/pkg/cache
package pkg
