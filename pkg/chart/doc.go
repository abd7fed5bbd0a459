// Package chart defines the serialized fan chart handed to renderers.
//
// A [Chart] is a flat list of [Sector] values, one per pedigree node, in
// depth-first order with the root first. Each sector carries the polar
// coordinates computed by the fan package plus the display strings and
// derived values renderers use for labels and coloring. Renderers read the
// chart; they never need the pedigree tree itself.
//
// The same type is used for JSON files, API responses and cache entries:
//
//	c := chart.Export(tree, chart.Meta{Angle: angle, Weights: opts})
//	data, err := chart.Marshal(c)
package chart
