// Package nodelink draws a pedigree tree as a Graphviz diagram.
//
// Each individual is a box labelled with its name and life years, with an
// arrow to each of its parents. Placeholder ancestors are drawn dashed.
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz].
package nodelink
