package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/fanchart/pkg/pedigree"
	"github.com/matzehuels/fanchart/pkg/render"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the sosa number, event dates and places to labels.
	Detailed bool
}

// ToDOT converts a pedigree to Graphviz DOT source, the root on the left.
func ToDOT(t *pedigree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges []string
	t.Walk(func(n *pedigree.Node) bool {
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(n), strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		for _, c := range n.Children {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", nodeID(n), nodeID(c)))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(n *pedigree.Node) string {
	return "s" + strconv.Itoa(n.Sosa)
}

func fmtLabel(n *pedigree.Node, detailed bool) string {
	name := strings.TrimSpace(n.GivenName + " " + n.FamilyName)
	if n.Placeholder || name == "" {
		name = "?"
	}

	lines := []string{name}
	if years := lifeYears(n); years != "" {
		lines = append(lines, years)
	}
	if detailed {
		lines = append(lines, fmt.Sprintf("sosa: %d", n.Sosa))
		if p := n.Birth.Place.Town; p != "" {
			lines = append(lines, "born: "+p)
		}
		if n.Union != nil && n.Union.Marriage.Date.Display != "" {
			lines = append(lines, "parents married: "+n.Union.Marriage.Date.Display)
		}
	}
	return strings.Join(lines, "\n")
}

func lifeYears(n *pedigree.Node) string {
	birth, death := n.Birth.Date.Display, n.Death.Date.Display
	if birth == "" && death == "" {
		return ""
	}
	return birth + " - " + death
}

func fmtAttrs(n *pedigree.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Placeholder:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case n.Sex == pedigree.SexMale:
		attrs = append(attrs, "fillcolor=\"#e0f4ff\"")
	case n.Sex == pedigree.SexFemale:
		attrs = append(attrs, "fillcolor=\"#ffe0eb\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT source as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
