package pedigree

// Union is the family that produced a node's parents. Marriage is the empty
// event for placeholder unions.
type Union struct {
	ID       string `json:"id,omitempty"`
	Marriage Event  `json:"marriage"`
}

// Node is one ancestor slot of the tree.
type Node struct {
	Individual

	Sosa        int  `json:"sosa"`
	Depth       int  `json:"depth"`
	Placeholder bool `json:"placeholder,omitempty"`

	// Children are the node's own parents: father (2n) first, then mother
	// (2n+1). There are zero or two, except when placeholders are disabled
	// and only one parent is known.
	Children []*Node `json:"-"`
	// Union is the family of the node's parents, nil when none was attached.
	Union *Union `json:"union,omitempty"`
	// Frontier is set when the generation limit stopped expansion. A node
	// without children and without Frontier has no known parents.
	Frontier bool `json:"frontier,omitempty"`
	// ChildrenCount is set when requested and the sex is known.
	ChildrenCount *int `json:"children_count,omitempty"`

	// Filled by the weight engine.
	Weight float64 `json:"weight"`

	// Filled by the polar layout, in radians and weight units.
	AngleStart  float64 `json:"angle_start"`
	AngleEnd    float64 `json:"angle_end"`
	RadiusStart float64 `json:"radius_start"`
	RadiusEnd   float64 `json:"radius_end"`
}

// IsLeaf reports whether the node has no parents in the tree.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// IsPaternal reports whether the node occupies a father slot.
func (n *Node) IsPaternal() bool { return n.Sosa > 1 && n.Sosa%2 == 0 }

// AgeAtDeath returns death year minus birth year when both are reliable.
func (n *Node) AgeAtDeath() (int, bool) {
	birth, ok := n.Birth.Date.AnchorYear()
	if !ok {
		return 0, false
	}
	death, ok := n.Death.Date.AnchorYear()
	if !ok {
		return 0, false
	}
	return death - birth, true
}

// Tree is a built pedigree.
type Tree struct {
	Root *Node

	// descendants maps each non-root node to the node it is an ancestor of.
	descendants map[*Node]*Node
	depth       int
}

// Descendant returns the node for which n is a parent. The root has none.
func (t *Tree) Descendant(n *Node) (*Node, bool) {
	d, ok := t.descendants[n]
	return d, ok
}

// Len returns the number of nodes, placeholders included.
func (t *Tree) Len() int { return len(t.descendants) + 1 }

// Depth returns the deepest generation present, the root being 0.
func (t *Tree) Depth() int { return t.depth }

// Walk visits every node depth first, father branch before mother branch.
// Returning false from fn skips the node's ancestors.
func (t *Tree) Walk(fn func(*Node) bool) {
	var visit func(*Node)
	visit = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(t.Root)
}

// AgeAtMarriage returns the year of n's own marriage minus n's birth year.
// The marriage is stored on the union of n's descendant.
func (t *Tree) AgeAtMarriage(n *Node) (int, bool) {
	birth, ok := n.Birth.Date.AnchorYear()
	if !ok {
		return 0, false
	}
	d, ok := t.Descendant(n)
	if !ok || d.Union == nil {
		return 0, false
	}
	married, ok := d.Union.Marriage.Date.AnchorYear()
	if !ok {
		return 0, false
	}
	return married - birth, true
}
