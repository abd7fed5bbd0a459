package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/fanchart/pkg/date"
	"github.com/matzehuels/fanchart/pkg/pedigree"
)

func sampleTree(t *testing.T) *pedigree.Tree {
	t.Helper()
	root := &pedigree.Node{Sosa: 1}
	root.GivenName, root.FamilyName = "Louis", "Martin"
	root.Sex = pedigree.SexMale
	root.Birth.Date = date.Date{Year: 1880, HasYear: true, YearLegit: true, Display: "1880"}

	father := &pedigree.Node{Sosa: 2, Depth: 1, Placeholder: true, Individual: pedigree.Individual{Sex: pedigree.SexMale}}
	mother := &pedigree.Node{Sosa: 3, Depth: 1, Individual: pedigree.Individual{GivenName: "Marie", FamilyName: "Durand", Sex: pedigree.SexFemale}}
	root.Children = []*pedigree.Node{father, mother}
	return &pedigree.Tree{Root: root}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleTree(t), Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR;",
		`s1 [label="Louis Martin\n1880 - "`,
		`s2 [label="?", style="rounded,filled,dashed"`,
		`s3 [label="Marie Durand", fillcolor="#ffe0eb"]`,
		"s1 -> s2;",
		"s1 -> s3;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q in:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleTree(t), Options{Detailed: true})
	if !strings.Contains(dot, `sosa: 3`) {
		t.Errorf("detailed label should contain sosa numbers:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	if !strings.HasPrefix(got, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", got)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("normalizeViewBox() changed an SVG without viewBox: %s", got)
	}
}
