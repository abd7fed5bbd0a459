package gedcom

// Reader answers lookups over a decoded record set.
// It is read-only and safe for concurrent use once constructed.
type Reader struct {
	head        *Record
	individuals []Record
	families    []Record
}

// NewReader partitions records into header, individuals and families.
// Records with other top-level tags (sources, notes, repositories) are ignored.
func NewReader(records []Record) *Reader {
	r := &Reader{}
	for i := range records {
		switch records[i].Tag {
		case TagHead:
			if r.head == nil {
				r.head = &records[i]
			}
		case TagIndividual:
			r.individuals = append(r.individuals, records[i])
		case TagFamily:
			r.families = append(r.families, records[i])
		}
	}
	return r
}

// Individuals returns every INDI record in file order.
func (r *Reader) Individuals() []Record { return r.individuals }

// Families returns every FAM record in file order.
func (r *Reader) Families() []Record { return r.families }

// PersonByID returns the INDI record whose pointer equals id.
func (r *Reader) PersonByID(id string) (Record, bool) {
	if id == "" {
		return Record{}, false
	}
	for _, ind := range r.individuals {
		if ind.Pointer == id {
			return ind, true
		}
	}
	return Record{}, false
}

// UnionsWhereChild returns the FAM records listing id as a CHIL.
func (r *Reader) UnionsWhereChild(id string) []Record {
	return r.unionsWith(TagChild, id)
}

// UnionsWhereParent returns the FAM records listing id under role, which is
// either [TagHusband] or [TagWife].
func (r *Reader) UnionsWhereParent(role, id string) []Record {
	return r.unionsWith(role, id)
}

func (r *Reader) unionsWith(tag, id string) []Record {
	if id == "" {
		return nil
	}
	var out []Record
	for _, fam := range r.families {
		if fam.Has(tag, id) {
			out = append(out, fam)
		}
	}
	return out
}

// PlaceFormat returns the HEAD.PLAC.FORM declaration, if any.
func (r *Reader) PlaceFormat() (string, bool) {
	if r.head == nil {
		return "", false
	}
	for _, plac := range r.head.All(TagPlace) {
		if form, ok := plac.First(TagFormat); ok {
			return form.Data, true
		}
	}
	return "", false
}

// Encoding returns the HEAD.CHAR declaration, or "" when absent.
func (r *Reader) Encoding() string {
	if r.head == nil {
		return ""
	}
	return r.head.Value(TagEncoding)
}
