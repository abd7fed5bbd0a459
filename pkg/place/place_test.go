package place

import "testing"

func TestNormalize(t *testing.T) {
	undeclared := Options{ShowPlaces: true, Schema: DefaultSchema()}

	tests := []struct {
		name string
		raw  string
		opts Options
		want Place
	}{
		{
			name: "single field is the town",
			raw:  "paris",
			opts: undeclared,
			want: Place{Town: "Paris", Display: "Paris"},
		},
		{
			name: "three fields",
			raw:  "Paris, 75000, France",
			opts: undeclared,
			want: Place{Town: "Paris", Department: "75000", Country: "France", Display: "Paris"},
		},
		{
			name: "leading fields become the subdivision",
			raw:  "Le Bourg, Les Granges, Lyon, Rhône, France",
			opts: undeclared,
			want: Place{
				Subdivision: "Le Bourg, Les Granges",
				Town:        "Lyon",
				Department:  "Rhône",
				Country:     "France",
				Display:     "Le Bourg, Les Granges, Lyon",
			},
		},
		{
			name: "modern layout with postal code",
			raw:  "Saint-Malo, 35400, Ille-et-Vilaine, Bretagne, France, Intra-Muros",
			opts: undeclared,
			want: Place{
				Subdivision: "Intra-Muros",
				Town:        "St-Malo",
				Department:  "Ille-et-Vilaine",
				Country:     "France",
				Display:     "Intra-Muros, St-Malo",
			},
		},
		{
			name: "modern layout with blank postal code",
			raw:  "Brest, , Finistère, Bretagne, France",
			opts: undeclared,
			want: Place{Town: "Brest", Department: "Finistère", Country: "France", Display: "Brest"},
		},
		{
			name: "two fields fit no layout",
			raw:  "Somewhere, Else",
			opts: undeclared,
			want: Place{Display: "Somewhere, Else"},
		},
		{
			name: "declared schema",
			raw:  "France, Gironde, Bordeaux, Chartrons",
			opts: Options{ShowPlaces: true, Schema: Schema{Declared: true, Country: 0, Department: 1, Town: 2, Subdivision: 3}},
			want: Place{
				Subdivision: "Chartrons",
				Town:        "Bordeaux",
				Department:  "Gironde",
				Country:     "France",
				Display:     "Chartrons, Bordeaux",
			},
		},
		{
			name: "display disabled",
			raw:  "Paris, 75000, France",
			opts: Options{Schema: DefaultSchema()},
			want: Place{Town: "Paris", Department: "75000", Country: "France"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.opts)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDeclaredOutOfBounds(t *testing.T) {
	opts := Options{ShowPlaces: true, Schema: Schema{Declared: true, Town: 0, Department: 1, Country: 6, Subdivision: 7}}
	got := Normalize("Nantes, Loire-Atlantique, France", opts)
	if got.Town != "Nantes" || got.Country != "France" {
		t.Errorf("Normalize() = %+v, want fallback to trailing fields", got)
	}
}

func TestNormalizeNegativeIndex(t *testing.T) {
	schemas := []Schema{
		{Declared: true, Town: 0, Department: 1, Country: 2, Subdivision: -1},
		{Declared: true, Town: -1, Department: 1, Country: 2, Subdivision: 3},
		{Town: 0, Department: 2, Country: 4, Subdivision: -5},
	}
	for _, schema := range schemas {
		got := Normalize("Lyon, Rhône, France", Options{Schema: schema})
		want := Place{Town: "Lyon", Department: "Rhône", Country: "France"}
		if got != want {
			t.Errorf("Normalize() with %+v = %+v, want %+v", schema, got, want)
		}
	}
}

func TestNormalizeZeroSchema(t *testing.T) {
	raw := "Paris, 75001, Paris, Ile-de-France, France"
	got := Normalize(raw, Options{})
	if want := Normalize(raw, Options{Schema: DefaultSchema()}); got != want {
		t.Errorf("Normalize() with zero schema = %+v, want %+v", got, want)
	}
	if got.Town != "Paris" || got.Department != "Paris" || got.Country != "France" || got.Subdivision != "" {
		t.Errorf("Normalize() = %+v, want the modern layout", got)
	}
}

func TestSchemaValid(t *testing.T) {
	if !DefaultSchema().Valid() {
		t.Error("DefaultSchema().Valid() = false")
	}
	if (Schema{Declared: true, Country: -1}).Valid() {
		t.Error("Valid() = true for a negative index")
	}
}

func TestFormatTown(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"châlons-sur-marne", "Châlons-s/-Marne"},
		{"Boulogne Sur Mer", "Boulogne-s/-Mer"},
		{"Saint-Denis", "St-Denis"},
		{"Sainte-Foy", "Ste-Foy"},
		{"Bourg-Saint-Andéol", "Bourg-St-Andéol"},
		{"Villeneuve-lès-Avignon", "Villeneuve-lès-Avignon"},
		{"Mont-de-Marsan", "Mt-de-Marsan"},
		{"Chaumont", "Chaumont"},
		{"Issy-les-Moulineaux", "Issy-les-Mlx"},
		{"Paris 14e", "Paris"},
		{"Paris-75014", "Paris"},
		{"Lyon IIIème", "Lyon"},
		{"Marseille 1er", "Marseille"},
		{"Paris Nord", "Paris Nord"},
	}

	for _, tt := range tests {
		if got := FormatTown(tt.in); got != tt.want {
			t.Errorf("FormatTown(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDiscoverSchema(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		declared bool
		want     Schema
	}{
		{"absent", "", false, DefaultSchema()},
		{
			"complete",
			"Town, Area code, County, Region, Country, Subdivision",
			true,
			Schema{Declared: true, Town: 0, Department: 2, Country: 4, Subdivision: 5},
		},
		{
			"reordered",
			" Subdivision,Town , County,Country ",
			true,
			Schema{Declared: true, Subdivision: 0, Town: 1, Department: 2, Country: 3},
		},
		{"missing subdivision", "Town, County, Country", true, DefaultSchema()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiscoverSchema(tt.format, tt.declared); got != tt.want {
				t.Errorf("DiscoverSchema(%q) = %+v, want %+v", tt.format, got, tt.want)
			}
		})
	}
}
