package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/uiforge/pkg/scene"
)

// Options configures hierarchy rendering.
type Options struct {
	// Detailed adds kind, bounds and alignment to each label.
	Detailed bool
}

// ToDOT converts the hierarchy under roots to Graphviz DOT. Nodes are keyed
// by element id and labelled with the element name.
func ToDOT(roots []*scene.Element, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	var edges [][2]string
	for _, r := range roots {
		r.Walk(func(e *scene.Element) bool {
			fmt.Fprintf(&buf, "  %q [%s];\n", e.ID, strings.Join(fmtAttrs(e, opts.Detailed), ", "))
			for _, c := range e.Children() {
				edges = append(edges, [2]string{e.ID, c.ID})
			}
			return true
		})
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e[0], e[1])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Label returns the display label of e.
func Label(e *scene.Element, detailed bool) string {
	if !detailed {
		return e.Name
	}
	parts := []string{
		e.Kind.String(),
		fmt.Sprintf("%g,%g %gx%g", e.X, e.Y, e.Width, e.Height),
		fmt.Sprintf("align %s/%s", e.HAlign, e.VAlign),
	}
	return e.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(e *scene.Element, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", Label(e, detailed))}
	switch {
	case e.Locked:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
	case e.Kind == scene.KindContainer || e.Kind == scene.KindCanvas:
		attrs = append(attrs, "fillcolor=\"#eef3fb\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
