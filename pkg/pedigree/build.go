package pedigree

import (
	"errors"
	"fmt"

	"github.com/matzehuels/fanchart/pkg/date"
	"github.com/matzehuels/fanchart/pkg/gedcom"
	"github.com/matzehuels/fanchart/pkg/place"
)

var (
	// ErrNoIndividuals is returned for a record set without any INDI record.
	ErrNoIndividuals = errors.New("pedigree: no individuals in record set")
	// ErrRootNotFound is returned when the root id matches no individual.
	ErrRootNotFound = errors.New("pedigree: root individual not found")
	// ErrInvalidGenerations is returned when MaxGenerations is below one.
	ErrInvalidGenerations = errors.New("pedigree: generation limit must be at least 1")
)

// Config controls tree construction. It is read-only during the build.
type Config struct {
	// MaxGenerations bounds the tree depth: the deepest node has depth
	// MaxGenerations-1. It also guarantees termination on cyclic files.
	MaxGenerations int
	// ShowMissing fills unknown parents with placeholder nodes.
	ShowMissing bool
	// ComputeChildrenCount fills Node.ChildrenCount.
	ComputeChildrenCount bool
	// SubstituteEvents accepts a baptism as birth and a burial as death
	// when the primary event is absent.
	SubstituteEvents bool

	Dates  date.Options
	Places place.Options
	// PlaceSchema overrides the schema discovered from the file header.
	PlaceSchema *place.Schema
}

type builder struct {
	reader *gedcom.Reader
	cfg    Config
	events eventOptions
	tree   *Tree
}

// Build assembles the ancestor tree of rootID.
func Build(r *gedcom.Reader, rootID string, cfg Config) (*Tree, error) {
	if cfg.MaxGenerations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGenerations, cfg.MaxGenerations)
	}
	if len(r.Individuals()) == 0 {
		return nil, ErrNoIndividuals
	}
	root, ok := r.PersonByID(rootID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRootNotFound, rootID)
	}

	places := cfg.Places
	if cfg.PlaceSchema != nil {
		places.Schema = *cfg.PlaceSchema
	} else {
		places.Schema = place.DiscoverSchema(r.PlaceFormat())
	}

	b := &builder{
		reader: r,
		cfg:    cfg,
		events: eventOptions{dates: cfg.Dates, places: places, substitute: cfg.SubstituteEvents},
		tree:   &Tree{descendants: make(map[*Node]*Node)},
	}
	b.tree.Root = b.build(&root, nil, 1, 0)
	return b.tree, nil
}

// build creates the node for rec, which is nil for a placeholder.
func (b *builder) build(rec *gedcom.Record, descendant *Node, sosa, depth int) *Node {
	n := &Node{Sosa: sosa, Depth: depth}
	if rec != nil {
		n.Individual = newIndividual(*rec, b.events)
	} else {
		n.Placeholder = true
		n.Sex = SexFemale
		if sosa%2 == 0 {
			n.Sex = SexMale
		}
	}

	if descendant != nil {
		b.tree.descendants[n] = descendant
	}
	b.tree.depth = max(b.tree.depth, depth)

	if b.cfg.ComputeChildrenCount && rec != nil {
		n.ChildrenCount = b.childrenCount(n)
	}

	if depth >= b.cfg.MaxGenerations-1 {
		n.Frontier = true
		return n
	}

	var fam gedcom.Record
	var found bool
	if rec != nil {
		if unions := b.reader.UnionsWhereChild(rec.Pointer); len(unions) > 0 {
			fam, found = unions[0], true
		}
	}

	switch {
	case found:
		father, fok := b.parent(fam, gedcom.TagHusband)
		mother, mok := b.parent(fam, gedcom.TagWife)
		if fok {
			n.Children = append(n.Children, b.build(father, n, 2*sosa, depth+1))
		}
		if mok {
			n.Children = append(n.Children, b.build(mother, n, 2*sosa+1, depth+1))
		}
		if len(n.Children) > 0 {
			n.Union = &Union{ID: fam.Pointer}
			if marr, ok := fam.First(gedcom.TagMarriage); ok {
				n.Union.Marriage = newEvent(marr, b.events)
			}
		}
	case b.cfg.ShowMissing:
		n.Children = []*Node{
			b.build(nil, n, 2*sosa, depth+1),
			b.build(nil, n, 2*sosa+1, depth+1),
		}
		n.Union = &Union{}
	}
	return n
}

// parent resolves the first parent of fam in role. A missing parent yields a
// placeholder (nil record) when ShowMissing is set, and ok=false otherwise.
func (b *builder) parent(fam gedcom.Record, role string) (rec *gedcom.Record, ok bool) {
	if ref, found := fam.First(role); found {
		if p, found := b.reader.PersonByID(ref.Data); found {
			return &p, true
		}
	}
	return nil, b.cfg.ShowMissing
}

// childrenCount counts the distinct children of every family where n is the
// parent matching its sex.
func (b *builder) childrenCount(n *Node) *int {
	var role string
	switch n.Sex {
	case SexMale:
		role = gedcom.TagHusband
	case SexFemale:
		role = gedcom.TagWife
	default:
		return nil
	}

	seen := make(map[string]struct{})
	for _, fam := range b.reader.UnionsWhereParent(role, n.ID) {
		for _, child := range fam.All(gedcom.TagChild) {
			seen[child.Data] = struct{}{}
		}
	}
	count := len(seen)
	return &count
}
