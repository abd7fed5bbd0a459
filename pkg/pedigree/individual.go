package pedigree

import (
	"github.com/matzehuels/fanchart/pkg/date"
	"github.com/matzehuels/fanchart/pkg/gedcom"
	"github.com/matzehuels/fanchart/pkg/place"
)

// Sex of an individual. Placeholders get a sex from their sosa parity.
type Sex uint8

const (
	SexUnknown Sex = iota
	SexMale
	SexFemale
)

func (s Sex) String() string {
	switch s {
	case SexMale:
		return "M"
	case SexFemale:
		return "F"
	default:
		return "U"
	}
}

// MarshalText encodes the sex as M, F or U.
func (s Sex) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText is the inverse of MarshalText. Anything else is unknown.
func (s *Sex) UnmarshalText(b []byte) error {
	switch string(b) {
	case "M":
		*s = SexMale
	case "F":
		*s = SexFemale
	default:
		*s = SexUnknown
	}
	return nil
}

// Event is a dated and placed fact. The zero value is the empty event.
type Event struct {
	Date  date.Date   `json:"date"`
	Place place.Place `json:"place"`
}

// IsEmpty reports whether the event has neither date nor place.
func (e Event) IsEmpty() bool { return e.Date.IsZero() && e.Place.IsZero() }

// Individual is the identity payload of a node. ID is empty for placeholders
// and for records that could not be resolved.
type Individual struct {
	ID         string `json:"id,omitempty"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Sex        Sex    `json:"sex"`
	CanSign    *bool  `json:"can_sign,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Birth      Event  `json:"birth"`
	Death      Event  `json:"death"`
}

// eventOptions is the part of Config needed to build events.
type eventOptions struct {
	dates      date.Options
	places     place.Options
	substitute bool
}

var (
	birthTags      = []string{gedcom.TagBirth}
	birthTagsSubst = []string{gedcom.TagBirth, gedcom.TagBaptism}
	deathTags      = []string{gedcom.TagDeath}
	deathTagsSubst = []string{gedcom.TagDeath, gedcom.TagBurial}
)

func newIndividual(rec gedcom.Record, opts eventOptions) Individual {
	name := gedcom.ExtractName(rec)
	ind := Individual{
		ID:         rec.Pointer,
		GivenName:  name.Given,
		FamilyName: name.Family,
	}

	if male, known := gedcom.ExtractSex(rec); known {
		ind.Sex = SexFemale
		if male {
			ind.Sex = SexMale
		}
	}
	if canSign, known := gedcom.ExtractSignature(rec); known {
		ind.CanSign = &canSign
	}
	ind.Occupation, _ = gedcom.ExtractOccupation(rec)

	births, deaths := birthTags, deathTags
	if opts.substitute {
		births, deaths = birthTagsSubst, deathTagsSubst
	}
	if ev, ok := rec.FirstOf(births...); ok {
		ind.Birth = newEvent(ev, opts)
	}
	if ev, ok := rec.FirstOf(deaths...); ok {
		ind.Death = newEvent(ev, opts)
	}
	return ind
}

func newEvent(rec gedcom.Record, opts eventOptions) Event {
	var ev Event
	if d, ok := rec.First(gedcom.TagDate); ok {
		ev.Date = date.Normalize(d.Data, opts.dates)
	}
	if p, ok := rec.First(gedcom.TagPlace); ok {
		ev.Place = place.Normalize(p.Data, opts.places)
	}
	return ev
}

// ListIndividuals returns every individual of the record set in file order,
// with years-only dates and places hidden. It is meant for root pickers.
func ListIndividuals(r *gedcom.Reader) []Individual {
	opts := eventOptions{
		dates:  date.Options{ShowYearsOnly: true},
		places: place.Options{Schema: place.DiscoverSchema(r.PlaceFormat())},
	}
	records := r.Individuals()
	out := make([]Individual, 0, len(records))
	for _, rec := range records {
		out = append(out, newIndividual(rec, opts))
	}
	return out
}
