package place

import (
	"regexp"
	"slices"
)

// Field names recognised in a HEAD.PLAC.FORM declaration.
const (
	FieldSubdivision = "Subdivision"
	FieldTown        = "Town"
	FieldCounty      = "County"
	FieldCountry     = "Country"
)

// Schema gives the position of each component in a comma separated place.
type Schema struct {
	// Declared is true when the positions come from the file header.
	Declared bool `json:"declared" toml:"declared"`

	Town        int `json:"town_index" toml:"town_index"`
	Department  int `json:"departement_index" toml:"departement_index"`
	Country     int `json:"country_index" toml:"country_index"`
	Subdivision int `json:"subdivision_index" toml:"subdivision_index"`
}

// DefaultSchema is the "modern" layout used by French genealogy software:
// Town, Postal code, Department, Region, Country, Subdivision.
func DefaultSchema() Schema {
	return Schema{Town: 0, Department: 2, Country: 4, Subdivision: 5}
}

// Valid reports whether every index can address a field.
func (s Schema) Valid() bool {
	return min(s.Town, s.Department, s.Country, s.Subdivision) >= 0
}

var fieldSeparator = regexp.MustCompile(`\s*,\s*`)

// split cuts a comma separated list, trimming spaces around separators.
func split(s string) []string {
	return fieldSeparator.Split(s, -1)
}

// DiscoverSchema resolves the schema from a HEAD.PLAC.FORM declaration.
// All four of Subdivision, Town, County and Country must be named; otherwise
// the declaration is ignored and [DefaultSchema] is returned undeclared.
func DiscoverSchema(format string, declared bool) Schema {
	s := DefaultSchema()
	if !declared {
		return s
	}

	fields := split(trimSpace(format))
	positions := make(map[string]int, 4)
	for _, name := range []string{FieldSubdivision, FieldTown, FieldCounty, FieldCountry} {
		i := slices.Index(fields, name)
		if i < 0 {
			return s
		}
		positions[name] = i
	}

	return Schema{
		Declared:    true,
		Town:        positions[FieldTown],
		Department:  positions[FieldCounty],
		Country:     positions[FieldCountry],
		Subdivision: positions[FieldSubdivision],
	}
}
