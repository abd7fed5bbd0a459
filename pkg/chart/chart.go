package chart

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/fanchart/pkg/fan"
	"github.com/matzehuels/fanchart/pkg/pedigree"
)

// =============================================================================
// Chart - Renderer Input
// =============================================================================

// Chart is a laid out fan chart.
type Chart struct {
	Root        string  `json:"root" bson:"root"`
	Angle       float64 `json:"angle" bson:"angle"`
	Generations int     `json:"generations" bson:"generations"`
	Policy      string  `json:"policy" bson:"policy"`
	UnionBand   float64 `json:"union_band" bson:"union_band"`
	TotalWeight float64 `json:"total_weight" bson:"total_weight"`

	// Frame and Fitting are absent when the angle, generation count and
	// marriage setting match no predefined print frame.
	Frame   *fan.Dimensions `json:"frame,omitempty" bson:"frame,omitempty"`
	Fitting *fan.Fitting    `json:"fitting,omitempty" bson:"fitting,omitempty"`

	Sectors []Sector `json:"sectors" bson:"sectors"`
}

// =============================================================================
// Sector - One Individual
// =============================================================================

// Sector is the wedge of one individual.
type Sector struct {
	Sosa        int    `json:"sosa" bson:"sosa"`
	Depth       int    `json:"depth" bson:"depth"`
	ID          string `json:"id,omitempty" bson:"id,omitempty"`
	GivenName   string `json:"given_name,omitempty" bson:"given_name,omitempty"`
	FamilyName  string `json:"family_name,omitempty" bson:"family_name,omitempty"`
	Sex         string `json:"sex" bson:"sex"`
	Placeholder bool   `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
	Occupation  string `json:"occupation,omitempty" bson:"occupation,omitempty"`
	CanSign     *bool  `json:"can_sign,omitempty" bson:"can_sign,omitempty"`

	Birth Event `json:"birth" bson:"birth"`
	Death Event `json:"death" bson:"death"`
	// Marriage is the marriage of the sector's parents, drawn in the union
	// band just outside the sector.
	Marriage *Event `json:"marriage,omitempty" bson:"marriage,omitempty"`

	ChildrenCount *int `json:"children_count,omitempty" bson:"children_count,omitempty"`
	AgeAtDeath    *int `json:"age_at_death,omitempty" bson:"age_at_death,omitempty"`
	AgeAtMarriage *int `json:"age_at_marriage,omitempty" bson:"age_at_marriage,omitempty"`

	Weight      float64 `json:"weight" bson:"weight"`
	AngleStart  float64 `json:"angle_start" bson:"angle_start"`
	AngleEnd    float64 `json:"angle_end" bson:"angle_end"`
	RadiusStart float64 `json:"radius_start" bson:"radius_start"`
	RadiusEnd   float64 `json:"radius_end" bson:"radius_end"`
}

// Event is the display form of a pedigree event.
type Event struct {
	Date       string `json:"date,omitempty" bson:"date,omitempty"`
	Year       int    `json:"year,omitempty" bson:"year,omitempty"`
	Place      string `json:"place,omitempty" bson:"place,omitempty"`
	Town       string `json:"town,omitempty" bson:"town,omitempty"`
	Department string `json:"departement,omitempty" bson:"departement,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
}

// =============================================================================
// Export
// =============================================================================

// Meta describes how a tree was weighted and laid out.
type Meta struct {
	Root        string
	Angle       float64
	Generations int
	Weights     fan.Options
	Frame       *fan.Dimensions
}

// Export flattens a weighted and laid out tree.
func Export(t *pedigree.Tree, meta Meta) Chart {
	c := Chart{
		Root:        meta.Root,
		Angle:       meta.Angle,
		Generations: meta.Generations,
		Policy:      string(meta.Weights.Policy),
		UnionBand:   meta.Weights.UnionBand,
		TotalWeight: fan.TotalWeight(t.Root, meta.Weights.UnionBand),
		Sectors:     make([]Sector, 0, t.Len()),
	}
	if meta.Frame != nil {
		frame := *meta.Frame
		fit := fan.Fit(frame, c.TotalWeight, meta.Weights.Weights[0], meta.Angle)
		c.Frame, c.Fitting = &frame, &fit
	}

	t.Walk(func(n *pedigree.Node) bool {
		c.Sectors = append(c.Sectors, exportNode(t, n))
		return true
	})
	return c
}

func exportNode(t *pedigree.Tree, n *pedigree.Node) Sector {
	s := Sector{
		Sosa:          n.Sosa,
		Depth:         n.Depth,
		ID:            n.ID,
		GivenName:     n.GivenName,
		FamilyName:    n.FamilyName,
		Sex:           n.Sex.String(),
		Placeholder:   n.Placeholder,
		Occupation:    n.Occupation,
		CanSign:       n.CanSign,
		Birth:         exportEvent(n.Birth),
		Death:         exportEvent(n.Death),
		ChildrenCount: n.ChildrenCount,
		Weight:        n.Weight,
		AngleStart:    n.AngleStart,
		AngleEnd:      n.AngleEnd,
		RadiusStart:   n.RadiusStart,
		RadiusEnd:     n.RadiusEnd,
	}
	if n.Union != nil {
		m := exportEvent(n.Union.Marriage)
		s.Marriage = &m
	}
	if age, ok := n.AgeAtDeath(); ok {
		s.AgeAtDeath = &age
	}
	if age, ok := t.AgeAtMarriage(n); ok {
		s.AgeAtMarriage = &age
	}
	return s
}

func exportEvent(ev pedigree.Event) Event {
	out := Event{
		Date:       ev.Date.Display,
		Place:      ev.Place.Display,
		Town:       ev.Place.Town,
		Department: ev.Place.Department,
		Country:    ev.Place.Country,
	}
	if year, ok := ev.Date.AnchorYear(); ok {
		out.Year = year
	}
	return out
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Chart to pretty-printed JSON bytes.
func Marshal(c Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Chart.
// The chart must contain the root sector first.
func Unmarshal(data []byte) (Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return Chart{}, fmt.Errorf("unmarshal chart: %w", err)
	}
	if len(c.Sectors) == 0 {
		return Chart{}, fmt.Errorf("chart must contain sectors")
	}
	if c.Sectors[0].Sosa != 1 {
		return Chart{}, fmt.Errorf("chart must start with the root sector, got sosa %d", c.Sectors[0].Sosa)
	}
	return c, nil
}

// WriteFile writes a Chart to a JSON file.
func WriteFile(c Chart, path string) error {
	data, err := Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Chart from a JSON file.
func ReadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}
