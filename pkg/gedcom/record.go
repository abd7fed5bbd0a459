package gedcom

// Standard tags read by the fan chart.
const (
	TagHead          = "HEAD"
	TagEncoding      = "CHAR"
	TagFormat        = "FORM"
	TagIndividual    = "INDI"
	TagFamily        = "FAM"
	TagChild         = "CHIL"
	TagHusband       = "HUSB"
	TagWife          = "WIFE"
	TagName          = "NAME"
	TagGivenName     = "GIVN"
	TagSurname       = "SURN"
	TagSurnamePrefix = "SPFX"
	TagBirth         = "BIRT"
	TagBaptism       = "CHR"
	TagDeath         = "DEAT"
	TagBurial        = "BURI"
	TagSex           = "SEX"
	TagDate          = "DATE"
	TagPlace         = "PLAC"
	TagMarriage      = "MARR"
	TagSignature     = "SIGN"
	TagEvent         = "EVEN"
	TagType          = "TYPE"
	TagNote          = "NOTE"
	TagOccupation    = "OCCU"
	TagContinue      = "CONT"
	TagConcatenate   = "CONC"
)

// Record is a single GEDCOM line together with its nested sub-records.
//
// The JSON shape matches the one produced by common JavaScript GEDCOM parsers
// (tag, pointer, data, tree) so record sets decoded elsewhere can be fed in
// directly.
type Record struct {
	Tag     string   `json:"tag"`
	Pointer string   `json:"pointer,omitempty"`
	Data    string   `json:"data,omitempty"`
	Tree    []Record `json:"tree,omitempty"`
}

// All returns the direct sub-records with the given tag, in file order.
func (r Record) All(tag string) []Record {
	var out []Record
	for _, c := range r.Tree {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first direct sub-record with the given tag.
func (r Record) First(tag string) (Record, bool) {
	for _, c := range r.Tree {
		if c.Tag == tag {
			return c, true
		}
	}
	return Record{}, false
}

// Value returns the data of the first sub-record with the given tag, or "".
func (r Record) Value(tag string) string {
	c, _ := r.First(tag)
	return c.Data
}

// Has reports whether a direct sub-record has the given tag and data.
func (r Record) Has(tag, data string) bool {
	for _, c := range r.Tree {
		if c.Tag == tag && c.Data == data {
			return true
		}
	}
	return false
}

// FirstOf returns the first sub-record matching any of tags, trying the tags
// in order. It is used for event fallbacks such as birth then baptism.
func (r Record) FirstOf(tags ...string) (Record, bool) {
	for _, tag := range tags {
		if c, ok := r.First(tag); ok {
			return c, true
		}
	}
	return Record{}, false
}
