package place

import (
	"strings"
	"unicode"
)

// Options controls place normalization.
type Options struct {
	// ShowPlaces enables the Display string. When false Display stays empty
	// so a disabled field never leaks to the renderer.
	ShowPlaces bool `json:"show_places" toml:"show_places"`

	// Schema locates the components. The zero value means [DefaultSchema].
	Schema Schema `json:"schema" toml:"-"`
}

// Place is a normalized place. The zero value is the "no place" sentinel.
type Place struct {
	Town        string `json:"town,omitempty"`
	Subdivision string `json:"subdivision,omitempty"`
	Department  string `json:"departement,omitempty"`
	Country     string `json:"country,omitempty"`
	Display     string `json:"display,omitempty"`
}

// IsZero reports whether p carries no information.
func (p Place) IsZero() bool { return p == Place{} }

// Normalize splits raw into its components. It never fails: a string that
// fits no layout keeps only its Display (when enabled).
func Normalize(raw string, opts Options) Place {
	fields := split(trimSpace(raw))
	schema := opts.Schema
	if schema == (Schema{}) {
		schema = DefaultSchema()
	}
	n := len(fields)

	modern := schema.Declared || ((n == 5 || n == 6) && (fields[1] == "" || isDigits(fields[1])))
	inBounds := schema.Valid() && max(schema.Town, schema.Department, schema.Country) < n

	var p Place
	switch {
	case n == 1:
		p.Town = FormatTown(fields[0])
	case modern && inBounds:
		if schema.Subdivision < n {
			p.Subdivision = fields[schema.Subdivision]
		}
		p.Town = FormatTown(fields[schema.Town])
		p.Department = fields[schema.Department]
		p.Country = fields[schema.Country]
	case n >= 3:
		if n > 3 {
			p.Subdivision = strings.Join(fields[:n-3], ", ")
		}
		p.Town = FormatTown(fields[n-3])
		p.Department = fields[n-2]
		p.Country = fields[n-1]
	}

	if opts.ShowPlaces {
		switch {
		case p.Subdivision != "":
			p.Display = p.Subdivision + ", " + p.Town
		case p.Town != "":
			p.Display = p.Town
		default:
			p.Display = raw
		}
	}
	return p
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, unicode.IsSpace)
}
