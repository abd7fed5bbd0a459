// Package fan computes the radial weights and polar coordinates of a
// pedigree tree.
//
// # Weights
//
// Every node gets a radial thickness. Generations are grouped in four bands
// (root, generations 1-3, 4-7, 8 and beyond, see [Band]) and each band has a
// configured thickness. Two policies exist:
//
//   - [PolicyFixed]: weight is the band thickness.
//   - [PolicyTime]: weight is proportional to the age of the child's parent
//     at birth, scaled so that no band is ever thinner than its configured
//     thickness.
//
// Between two generations a union band of width Options.UnionBand is
// reserved for marriage details.
//
// # Layout
//
// [Layout] assigns each node an angular interval and a radius interval. The
// root covers the whole fan; each parent takes half of its child's wedge
// (father first), one union band further out.
//
// # Output
//
// [LookupDimensions] and [Fit] turn weight units into pixel dimensions for
// the known printable frames.
package fan
