// Package pedigree builds the binary ancestor tree of a fan chart.
//
// Starting from a root individual, [Build] follows the family a person was
// born into, then that family's husband and wife, generation after
// generation. Every [Node] carries its ahnentafel (sosa) number: the root is
// 1, the father of node n is 2n and the mother 2n+1. Because the tree grows
// outward from the root, a node's parents are stored as its Children.
//
// Unknown parents can be replaced by placeholder nodes (Config.ShowMissing)
// so the tree stays perfectly binary up to the generation limit. Without
// placeholders a missing parent simply has no node.
//
// The tree is immutable once built except for the weight and layout fields,
// which the fan package fills in place.
package pedigree
