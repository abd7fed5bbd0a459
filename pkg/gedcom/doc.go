// Package gedcom decodes GEDCOM genealogy files into a generic tagged record
// tree and provides the lookups the pedigree builder needs.
//
// # Records
//
// A GEDCOM file is a sequence of lines of the form
//
//	LEVEL [@XREF@] TAG [VALUE]
//
// Lines are nested by level. [Decode] turns them into a forest of [Record]
// values where each record carries its tag, optional cross-reference pointer,
// optional data and nested sub-records. CONT and CONC continuation lines are
// folded into the value of their parent and never appear in the tree.
//
// # Lookups
//
// [Reader] wraps a decoded record set and answers the questions the builder
// asks: "which INDI has this pointer", "which FAM lists this person as a child",
// "which FAM lists this person as a husband or wife". Lookups are linear scans.
//
// # Extraction
//
// [ExtractName], [ExtractOccupation], [ExtractSex] and [ExtractSignature] derive
// person facts from an INDI record, tolerating the many dialects produced by
// genealogy software (GIVN/SURN sub-fields vs. a single slash-delimited NAME,
// OCCU vs. generic EVEN blocks typed "Occupation").
package gedcom
