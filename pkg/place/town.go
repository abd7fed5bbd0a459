package place

import (
	"regexp"
	"strings"
)

// townRule is one cosmetic rewrite applied to town names, in order.
type townRule struct {
	pattern *regexp.Regexp
	replace func(string) string
}

func literal(s string) func(string) string {
	return func(string) string { return s }
}

// saintForm abbreviates a matched Saint/Sainte keeping the surrounding
// separators of the match.
func saintForm(m string) string {
	abbr := "St"
	if strings.Contains(m, "Sainte") {
		abbr = "Ste"
	}
	lead := ""
	if strings.HasPrefix(m, "-") || strings.HasPrefix(m, " ") {
		lead = "-"
	}
	return lead + abbr + "-"
}

var (
	wordStart = regexp.MustCompile(`(?:^|\s|-)\S`)

	// Paris, Lyon and Marseille are split into arrondissements that are not
	// worth the space on a chart.
	arrondissementRoman  = regexp.MustCompile(`(?i)(Paris|Marseille|Lyon)[-\s]([IVX]+)(ème|er|e)?\b`)
	arrondissementPostal = regexp.MustCompile(`(?i)(Paris|Marseille|Lyon)(-|\s)\d{5}`)
	arrondissementNumber = regexp.MustCompile(`(?i)(Paris|Marseille|Lyon)(-|\s)?(\d{1,2}(er|e|ème)?)`)
)

var townRules = []townRule{
	{regexp.MustCompile(`-Sur-| Sur `), literal("-s/-")},
	{regexp.MustCompile(`-S/-| S/ `), literal("-s/-")},
	{regexp.MustCompile(`-Sous-| Sous `), literal("-/s-")},
	{regexp.MustCompile(`-/S-| /S `), literal("-/s-")},
	{regexp.MustCompile(`-La-| La `), literal("-la-")},
	{regexp.MustCompile(`-Le-| Le `), literal("-le-")},
	{regexp.MustCompile(`-Les-| Les `), literal("-les-")},
	{regexp.MustCompile(`-Lès-| Lès `), literal("-lès-")},
	{regexp.MustCompile(`-Du-| Du `), literal("-du-")},
	{regexp.MustCompile(`-De-| De `), literal("-de-")},
	{regexp.MustCompile(`-Des-| Des `), literal("-des-")},
	{regexp.MustCompile(`-Devant-| Devant `), literal("-devant-")},
	{regexp.MustCompile(`-En-| En `), literal("-en-")},
	{regexp.MustCompile(`-Et-| Et `), literal("-et-")},
	{regexp.MustCompile(`^(Sainte|Saint)[- ]`), saintForm},
	{regexp.MustCompile(`[- ](Sainte|Saint)[- ]`), saintForm},
	{regexp.MustCompile(`(^|[- ])Mont[- ]`), func(m string) string { return m[:len(m)-5] + "Mt-" }},
	{regexp.MustCompile(`-Mont$`), literal("-Mt")},
	{regexp.MustCompile(`-Madame$`), literal("-Mme")},
	{regexp.MustCompile(`-Vieux$`), literal("-Vx")},
	{regexp.MustCompile(`-Vieux-`), literal("-Vx-")},
	{regexp.MustCompile(`-Grand$`), literal("-Gd")},
	{regexp.MustCompile(`-Petit$`), literal("-Pt")},
	{regexp.MustCompile(`-Moulineaux$`), literal("-Mlx")},
}

// FormatTown capitalizes every word of a town name and applies the
// abbreviation rules: "Châlons-sur-Marne" becomes "Châlons-s/-Marne",
// "Saint-Denis" becomes "St-Denis", "Paris 14e" becomes "Paris".
func FormatTown(s string) string {
	s = wordStart.ReplaceAllStringFunc(s, strings.ToUpper)
	for _, r := range townRules {
		s = r.pattern.ReplaceAllStringFunc(s, r.replace)
	}
	s = arrondissementRoman.ReplaceAllString(s, "${1}")
	s = arrondissementPostal.ReplaceAllString(s, "${1}")
	s = arrondissementNumber.ReplaceAllString(s, "${1}")
	return s
}
