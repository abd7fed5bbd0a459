package fan

import (
	"math"

	"github.com/matzehuels/fanchart/pkg/pedigree"
)

// Layout assigns polar coordinates to every weighted node.
//
// angle is the total angular budget in radians, in (0, 2π]. The root spans
// from π-gap/2 down to -π+gap/2 where gap = 2π-angle, leaving the gap
// centered at the bottom. Angles therefore decrease from AngleStart to
// AngleEnd. Each parent takes half of its child's span: the mother (odd
// sosa) the half at AngleStart, the father the half at AngleEnd.
//
// Radii grow outward: a parent starts one union band beyond its child's
// RadiusEnd.
func Layout(root *pedigree.Node, angle, unionBand float64) {
	gap := 2*math.Pi - angle
	root.AngleStart = math.Pi - gap/2
	root.AngleEnd = -math.Pi + gap/2
	root.RadiusStart = 0
	root.RadiusEnd = root.Weight

	var place func(p *pedigree.Node)
	place = func(p *pedigree.Node) {
		half := (p.AngleEnd - p.AngleStart) / 2
		for _, n := range p.Children {
			n.AngleStart = p.AngleStart
			if n.Sosa%2 == 0 {
				n.AngleStart += half
			}
			n.AngleEnd = n.AngleStart + half
			n.RadiusStart = p.RadiusEnd + unionBand
			n.RadiusEnd = n.RadiusStart + n.Weight
			place(n)
		}
	}
	place(root)
}
