// Package place splits free-form GEDCOM place strings into town, subdivision,
// department and country.
//
// GEDCOM stores a place hierarchy as a comma separated list without a fixed
// order. The order may be declared once per file in HEAD.PLAC.FORM; use
// [DiscoverSchema] on that declaration before normalizing any place, then pass
// the resulting [Schema] to [Normalize] through [Options]. Without a declared
// schema, Normalize guesses:
//
//   - one field: the town;
//   - five or six fields whose second field is blank or numeric (a postal
//     code): the "modern" layout described by [DefaultSchema];
//   - three or more fields: the last three are town, department and country,
//     and any leading fields form the subdivision.
//
// Town names are re-capitalized and shortened by [FormatTown] so they fit the
// narrow wedges of a fan chart.
package place
