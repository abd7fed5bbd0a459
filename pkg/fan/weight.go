package fan

import (
	"fmt"
	"math"

	"github.com/matzehuels/fanchart/pkg/pedigree"
)

// Policy selects how weights are assigned.
type Policy string

const (
	PolicyFixed Policy = "fixed"
	PolicyTime  Policy = "time"
)

// Weights holds one thickness per band.
type Weights [Bands]float64

// DefaultWeights are the band thicknesses used when none are configured.
var DefaultWeights = Weights{0.95, 0.86, 0.74, 0.5}

// DefaultUnionBand is the union band width when marriages are shown.
const DefaultUnionBand = 0.27

// Age bounds of the time policy, in years.
const (
	defaultParentAge = 22
	minParentAge     = 14
	maxParentAge     = 60
)

// Options configures the weight engine and the layout.
type Options struct {
	Policy  Policy
	Weights Weights
	// UnionBand is the radial gap between a node and its parents.
	UnionBand float64
	// ReferenceYear seeds the time policy for a root without birth year.
	// It only matters to the ancestors of such a root.
	ReferenceYear int
}

// Validate checks that the options can be applied.
func (o Options) Validate() error {
	switch o.Policy {
	case PolicyFixed, PolicyTime:
	default:
		return fmt.Errorf("unknown weight policy %q", o.Policy)
	}
	for i, w := range o.Weights {
		if !(w > 0) || math.IsInf(w, 0) {
			return fmt.Errorf("band %d weight must be positive, got %v", i, w)
		}
	}
	if o.UnionBand < 0 {
		return fmt.Errorf("union band must not be negative, got %v", o.UnionBand)
	}
	return nil
}

// Weigh applies the configured policy to the tree.
func Weigh(t *pedigree.Tree, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Policy == PolicyTime {
		ApplyTime(t.Root, opts.Weights, opts.UnionBand, opts.ReferenceYear)
		return nil
	}
	ApplyFixed(t.Root, opts.Weights)
	return nil
}

// ApplyFixed sets every node's weight to its band thickness.
func ApplyFixed(root *pedigree.Node, w Weights) {
	walk(root, func(n *pedigree.Node) {
		n.Weight = w[Band(n.Depth)]
	})
}

// ApplyTime weights every node by the age its parent-slot individual had
// when the node's child was born, and returns the scale factor used.
//
// Unknown or implausible ages fall back to 22 years. The scale is the
// smallest one that keeps the thinnest node of every band at least as thick
// as the band's configured weight. The union band is carved out of the
// scaled interval of every non-root node.
func ApplyTime(root *pedigree.Node, w Weights, unionBand float64, referenceYear int) float64 {
	var minimums [Bands]float64
	for i := range minimums {
		minimums[i] = math.Inf(1)
	}

	var measure func(n *pedigree.Node, childYear int)
	measure = func(n *pedigree.Node, childYear int) {
		age := defaultParentAge
		year, known := n.Birth.Date.AnchorYear()
		if known {
			age = childYear - year
		}
		if age < minParentAge || age > maxParentAge || n.Depth == 0 {
			age = defaultParentAge
		}
		n.Weight = float64(age)

		b := Band(n.Depth)
		minimums[b] = math.Min(minimums[b], n.Weight)

		if !known {
			year = childYear - age
		}
		for _, c := range n.Children {
			measure(c, year)
		}
	}
	measure(root, referenceYear)

	scale := 0.0
	for i, m := range minimums {
		if math.IsInf(m, 1) {
			continue
		}
		floor := w[i]
		if i > 0 {
			floor += unionBand
		}
		scale = math.Max(scale, floor/m)
	}

	walk(root, func(n *pedigree.Node) {
		n.Weight *= scale
		if n.Depth > 0 {
			n.Weight -= unionBand
		}
	})
	return scale
}

// TotalWeight returns the outer radius of the fan in weight units: the
// largest sum of weights and union bands along any root-to-leaf path.
func TotalWeight(root *pedigree.Node, unionBand float64) float64 {
	total := root.Weight
	if root.Depth > 0 {
		total += unionBand
	}
	outer := 0.0
	for _, c := range root.Children {
		outer = math.Max(outer, TotalWeight(c, unionBand))
	}
	return total + outer
}

func walk(n *pedigree.Node, fn func(*pedigree.Node)) {
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}
