// Package render provides output helpers shared by the fan chart renderers.
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//
// The [nodelink] subpackage draws the pedigree as a Graphviz diagram, which
// is mostly useful to inspect the shape of a tree.
//
// [nodelink]: github.com/matzehuels/fanchart/pkg/render/nodelink
package render
