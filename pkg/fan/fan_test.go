package fan

import (
	"math"
	"testing"

	"github.com/matzehuels/fanchart/pkg/date"
	"github.com/matzehuels/fanchart/pkg/pedigree"
)

const eps = 1e-9

// fullTree builds a complete binary pedigree with the given number of
// generations.
func fullTree(generations int) *pedigree.Node {
	var grow func(sosa, depth int) *pedigree.Node
	grow = func(sosa, depth int) *pedigree.Node {
		n := &pedigree.Node{Sosa: sosa, Depth: depth}
		if depth < generations-1 {
			n.Children = []*pedigree.Node{grow(2*sosa, depth+1), grow(2*sosa+1, depth+1)}
		}
		return n
	}
	return grow(1, 0)
}

func born(n *pedigree.Node, year int) {
	n.Birth.Date = date.Date{Year: year, HasYear: true, YearLegit: true}
}

func TestBand(t *testing.T) {
	tests := []struct {
		depth, want int
	}{
		{0, 0}, {1, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {20, 3},
	}
	for _, tt := range tests {
		if got := Band(tt.depth); got != tt.want {
			t.Errorf("Band(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestApplyFixed(t *testing.T) {
	root := fullTree(9)
	ApplyFixed(root, DefaultWeights)
	walk(root, func(n *pedigree.Node) {
		if want := DefaultWeights[Band(n.Depth)]; n.Weight != want {
			t.Errorf("node %d: Weight = %v, want %v", n.Sosa, n.Weight, want)
		}
	})
}

func TestTotalWeight(t *testing.T) {
	root := fullTree(3)
	ApplyFixed(root, DefaultWeights)
	want := 0.95 + 2*(0.86+DefaultUnionBand)
	if got := TotalWeight(root, DefaultUnionBand); math.Abs(got-want) > eps {
		t.Errorf("TotalWeight() = %v, want %v", got, want)
	}
	if got := TotalWeight(root, 0); math.Abs(got-(0.95+2*0.86)) > eps {
		t.Errorf("TotalWeight() without unions = %v", got)
	}
}

func TestApplyTime(t *testing.T) {
	root := fullTree(2)
	born(root, 1900)
	father, mother := root.Children[0], root.Children[1]
	born(father, 1870)
	born(mother, 1875)

	scale := ApplyTime(root, DefaultWeights, DefaultUnionBand, 2000)

	wantScale := (0.86 + DefaultUnionBand) / 25
	if math.Abs(scale-wantScale) > eps {
		t.Fatalf("ApplyTime() scale = %v, want %v", scale, wantScale)
	}
	if want := 22 * wantScale; math.Abs(root.Weight-want) > eps {
		t.Errorf("root.Weight = %v, want %v", root.Weight, want)
	}
	if want := 30*wantScale - DefaultUnionBand; math.Abs(father.Weight-want) > eps {
		t.Errorf("father.Weight = %v, want %v", father.Weight, want)
	}
	if math.Abs(mother.Weight-0.86) > eps {
		t.Errorf("mother.Weight = %v, want the band floor 0.86", mother.Weight)
	}
}

func TestApplyTimeImplausibleAges(t *testing.T) {
	root := fullTree(2)
	born(root, 1900)
	born(root.Children[0], 1895) // five years old
	born(root.Children[1], 1820) // eighty years old

	ApplyTime(root, DefaultWeights, 0, 2000)
	if root.Children[0].Weight != root.Children[1].Weight {
		t.Errorf("implausible ages should both fall back to the default: %v != %v",
			root.Children[0].Weight, root.Children[1].Weight)
	}
}

func TestApplyTimeUnknownYearsPropagate(t *testing.T) {
	// Root born 1900, unknown father: the grandfather's age is measured
	// against 1900-22.
	root := fullTree(3)
	born(root, 1900)
	grandfather := root.Children[0].Children[0]
	born(grandfather, 1848)

	ApplyTime(root, Weights{1, 1, 1, 1}, 0, 2000)
	ratio := grandfather.Weight / root.Weight
	if want := 30.0 / 22.0; math.Abs(ratio-want) > eps {
		t.Errorf("grandfather/root weight ratio = %v, want %v", ratio, want)
	}
}

func TestApplyTimeWeightFloor(t *testing.T) {
	root := fullTree(9)
	years := []int{1950, 1921, 1925, 1890, 1899, 1901, 1903}
	i := 0
	walk(root, func(n *pedigree.Node) {
		if n.Depth < 3 {
			born(n, years[i%len(years)]-15*n.Depth)
			i++
		}
	})

	for _, union := range []float64{0, DefaultUnionBand} {
		ApplyTime(root, DefaultWeights, union, 2000)

		var minimums [Bands]float64
		for b := range minimums {
			minimums[b] = math.Inf(1)
		}
		walk(root, func(n *pedigree.Node) {
			b := Band(n.Depth)
			minimums[b] = math.Min(minimums[b], n.Weight)
		})

		tight := false
		for b, m := range minimums {
			if m < DefaultWeights[b]-eps {
				t.Errorf("union %v band %d: thinnest weight %v below floor %v", union, b, m, DefaultWeights[b])
			}
			if math.Abs(m-DefaultWeights[b]) < eps {
				tight = true
			}
		}
		if !tight {
			t.Errorf("union %v: no band sits exactly on its floor", union)
		}
	}
}

func TestWeigh(t *testing.T) {
	tree := &pedigree.Tree{Root: fullTree(3)}
	if err := Weigh(tree, Options{Policy: PolicyFixed, Weights: DefaultWeights}); err != nil {
		t.Fatalf("Weigh() error = %v", err)
	}
	if tree.Root.Weight != DefaultWeights[0] {
		t.Errorf("root.Weight = %v", tree.Root.Weight)
	}

	bad := []Options{
		{Policy: "random", Weights: DefaultWeights},
		{Policy: PolicyFixed, Weights: Weights{1, 0, 1, 1}},
		{Policy: PolicyTime, Weights: DefaultWeights, UnionBand: -1},
	}
	for _, opts := range bad {
		if err := Weigh(tree, opts); err == nil {
			t.Errorf("Weigh(%+v) should fail", opts)
		}
	}
}

func TestLayout(t *testing.T) {
	for _, deg := range []float64{180, 270, 360} {
		angle := deg * math.Pi / 180
		root := fullTree(6)
		ApplyFixed(root, DefaultWeights)
		Layout(root, angle, DefaultUnionBand)

		gap := 2*math.Pi - angle
		if math.Abs(root.AngleStart-(math.Pi-gap/2)) > eps || math.Abs(root.AngleEnd-(-math.Pi+gap/2)) > eps {
			t.Errorf("%v°: root angles = [%v, %v]", deg, root.AngleStart, root.AngleEnd)
		}
		if root.RadiusStart != 0 || root.RadiusEnd != root.Weight {
			t.Errorf("%v°: root radii = [%v, %v]", deg, root.RadiusStart, root.RadiusEnd)
		}

		walk(root, func(n *pedigree.Node) {
			if n.RadiusEnd <= n.RadiusStart {
				t.Errorf("node %d: radius [%v, %v] not increasing", n.Sosa, n.RadiusStart, n.RadiusEnd)
			}
			if len(n.Children) != 2 {
				return
			}
			father, mother := n.Children[0], n.Children[1]
			for _, c := range n.Children {
				if c.RadiusStart < n.RadiusEnd {
					t.Errorf("node %d starts inside its child", c.Sosa)
				}
			}
			// The mother takes the half at AngleStart, the father the rest.
			if math.Abs(mother.AngleStart-n.AngleStart) > eps ||
				math.Abs(mother.AngleEnd-father.AngleStart) > eps ||
				math.Abs(father.AngleEnd-n.AngleEnd) > eps {
				t.Errorf("node %d: parents do not partition [%v, %v]", n.Sosa, n.AngleStart, n.AngleEnd)
			}
		})
	}
}

func TestLookupDimensions(t *testing.T) {
	tests := []struct {
		angle, gens int
		marriages   bool
		want        string
		ok          bool
	}{
		{270, 8, true, "331x287", true},
		{270, 7, false, "260x260", true},
		{360, 8, false, "331x331", true},
		{360, 7, false, "260x260", true},
		{180, 8, true, "", false},
		{360, 6, true, "", false},
	}
	for _, tt := range tests {
		d, ok := LookupDimensions(tt.angle, tt.gens, tt.marriages)
		if ok != tt.ok {
			t.Errorf("LookupDimensions(%d, %d, %v) ok = %v, want %v", tt.angle, tt.gens, tt.marriages, ok, tt.ok)
			continue
		}
		if ok && d.Frame() != tt.want {
			t.Errorf("LookupDimensions(%d, %d, %v) = %s, want %s", tt.angle, tt.gens, tt.marriages, d.Frame(), tt.want)
		}
	}
}

func TestFit(t *testing.T) {
	dims, _ := LookupDimensions(360, 8, true)
	f := Fit(dims, 10, 1, 2*math.Pi)

	wantRadius := 149 * pixelsPerMM
	if math.Abs(f.Radius-wantRadius) > eps {
		t.Errorf("Radius = %v, want %v", f.Radius, wantRadius)
	}
	if math.Abs(f.Width-2*wantRadius) > eps {
		t.Errorf("Width = %v, want %v", f.Width, 2*wantRadius)
	}
	if math.Abs(f.Scale-wantRadius/10) > eps {
		t.Errorf("Scale = %v, want %v", f.Scale, wantRadius/10)
	}
	// A full circle reaches the bottom: height is the diameter.
	if math.Abs(f.Height-2*wantRadius) > 1e-6 {
		t.Errorf("Height = %v, want %v", f.Height, 2*wantRadius)
	}

	// A half fan only needs the root disc below the center.
	f = Fit(dims, 10, 1, math.Pi)
	if want := wantRadius + wantRadius/10; math.Abs(f.Height-want) > 1e-6 {
		t.Errorf("half fan Height = %v, want %v", f.Height, want)
	}
}
