package gedcom

import (
	"regexp"
	"strings"
)

// valueOccupation is the EVEN TYPE used by older software for occupations.
const valueOccupation = "Occupation"

// Name holds the given and family name of a person.
type Name struct {
	Given  string
	Family string
}

// alternateName matches "X ou Y" alternatives written in the surname field.
var alternateName = regexp.MustCompile(`(?i)(\S+)\s+ou\s+\S+`)

// ExtractName derives given and family names from an INDI record.
//
// GIVN and SURN sub-fields of NAME take precedence. When either is missing the
// NAME value itself is split on "/" ("John /Smith/"), which is how older
// software stores names. The first underscore of each part becomes a space.
// Surname prefixes (SPFX, comma separated) are prepended to the family name
// and "X ou Y" alternatives are reduced to X.
func ExtractName(rec Record) Name {
	names := rec.All(TagName)

	var n Name
	var prefix string
	for _, name := range names {
		if n.Given == "" {
			n.Given = underscoreToSpace(name.Value(TagGivenName))
		}
		if n.Family == "" {
			n.Family = underscoreToSpace(name.Value(TagSurname))
		}
		if prefix == "" {
			prefix = name.Value(TagSurnamePrefix)
		}
	}

	if n.Given == "" || n.Family == "" {
		for _, name := range names {
			parts := strings.Split(name.Data, "/")
			for i := range parts {
				parts[i] = underscoreToSpace(strings.TrimSpace(parts[i]))
			}
			if n.Given == "" {
				n.Given = parts[0]
			}
			if len(parts) > 1 && n.Family == "" {
				n.Family = parts[1]
			}
		}
	}

	n.Family = alternateName.ReplaceAllString(n.Family, "${1}")

	if prefix != "" {
		pieces := strings.Split(prefix, ",")
		for i := range pieces {
			pieces[i] = strings.TrimSpace(pieces[i])
		}
		n.Family = strings.Join(pieces, " ") + " " + n.Family
	}
	return n
}

func underscoreToSpace(s string) string {
	return strings.Replace(s, "_", " ", 1)
}

// ExtractOccupation returns the first occupation of a person.
//
// A direct OCCU value wins; otherwise EVEN blocks whose TYPE is "Occupation"
// are scanned and the first attached NOTE is used.
func ExtractOccupation(rec Record) (string, bool) {
	if occ, ok := rec.First(TagOccupation); ok {
		return occ.Data, true
	}
	for _, ev := range rec.All(TagEvent) {
		if !ev.Has(TagType, valueOccupation) {
			continue
		}
		if note, ok := ev.First(TagNote); ok {
			return note.Data, true
		}
	}
	return "", false
}

// ExtractSex reads the first SEX value. known is false when the record has no
// SEX line or a value other than M or F.
func ExtractSex(rec Record) (male, known bool) {
	sex, ok := rec.First(TagSex)
	if !ok {
		return false, false
	}
	switch strings.ToUpper(sex.Data) {
	case "M":
		return true, true
	case "F":
		return false, true
	}
	return false, false
}

// ExtractSignature reads the first SIGN value ("YES" means the person could
// sign their name).
func ExtractSignature(rec Record) (canSign, known bool) {
	sign, ok := rec.First(TagSignature)
	if !ok {
		return false, false
	}
	return strings.EqualFold(sign.Data, "YES"), true
}
