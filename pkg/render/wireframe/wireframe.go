package wireframe

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// Option configures [RenderSVG].
type Option func(*renderer)

type renderer struct {
	labels    bool
	highlight map[*scene.Element]bool
	palette   map[scene.Kind]string
}

// WithoutLabels omits element labels.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithHighlight outlines the given elements.
func WithHighlight(elems ...*scene.Element) Option {
	return func(r *renderer) {
		for _, e := range elems {
			r.highlight[e] = true
		}
	}
}

// WithFill overrides the fill color of a kind.
func WithFill(k scene.Kind, color string) Option {
	return func(r *renderer) { r.palette[k] = color }
}

var defaultPalette = map[scene.Kind]string{
	scene.KindContainer:    "#f4f6fa",
	scene.KindCanvas:       "#f4f6fa",
	scene.KindScrollRegion: "#f4f6fa",
	scene.KindGrid:         "#f4f6fa",
	scene.KindModal:        "#fff8e6",
	scene.KindText:         "none",
	scene.KindButton:       "#dce8fb",
	scene.KindImage:        "#e7e7e7",
	scene.KindInputField:   "#ffffff",
	scene.KindSlider:       "#e9f5ea",
	scene.KindToggle:       "#e9f5ea",
	scene.KindDecorator:    "#f0e9f7",
}

// RenderSVG draws roots and their descendants on a width×height canvas.
func RenderSVG(roots []*scene.Element, width, height float64, opts ...Option) []byte {
	r := &renderer{labels: true, highlight: map[*scene.Element]bool{}, palette: map[scene.Kind]string{}}
	for k, c := range defaultPalette {
		r.palette[k] = c
	}
	for _, opt := range opts {
		opt(r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	buf.WriteString(`  <style>
    .el { stroke: #8a94a6; stroke-width: 1; }
    .locked { stroke-dasharray: 4 3; }
    .selected { stroke: #2f6fed; stroke-width: 2; }
    .label { font-family: sans-serif; fill: #1f2430; }
  </style>` + "\n")
	fmt.Fprintf(&buf, `  <rect class="canvas" x="0" y="0" width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	clip := 0
	var draw func(e *scene.Element)
	draw = func(e *scene.Element) {
		r.element(&buf, e)
		if e.ChildCount() == 0 {
			return
		}
		if e.AllowOverflow {
			for _, c := range e.Children() {
				draw(c)
			}
			return
		}
		clip++
		b := coords.WorldBounds(e)
		fmt.Fprintf(&buf, `  <clipPath id="clip-%d"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath>`+"\n",
			clip, b.X, b.Y, b.Width, b.Height)
		fmt.Fprintf(&buf, `  <g clip-path="url(#clip-%d)">`+"\n", clip)
		for _, c := range e.Children() {
			draw(c)
		}
		buf.WriteString("  </g>\n")
	}
	for _, root := range roots {
		if root.IsSystem {
			for _, c := range root.Children() {
				draw(c)
			}
			continue
		}
		draw(root)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) element(buf *bytes.Buffer, e *scene.Element) {
	b := coords.WorldBounds(e)
	classes := []string{"el", e.Kind.String()}
	if e.Locked {
		classes = append(classes, "locked")
	}
	if r.highlight[e] {
		classes = append(classes, "selected")
	}
	fill, ok := r.palette[e.Kind]
	if !ok {
		fill = "none"
	}
	rx := 0.0
	if e.Kind == scene.KindButton || e.Kind == scene.KindToggle {
		rx = min(6, b.Height/2)
	}
	fmt.Fprintf(buf, `  <rect id="el-%s" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
		escapeXML(e.ID), strings.Join(classes, " "), b.X, b.Y, b.Width, b.Height, rx, fill)

	if !r.labels {
		return
	}
	label := e.Name
	if e.Kind.IsText() && e.Text != "" {
		label = strings.ReplaceAll(e.Text, "\n", " ")
	}
	if label == "" {
		return
	}
	size := fontSize(b.Width, b.Height, len([]rune(label)))
	anchor, x := "middle", b.X+b.Width/2
	if e.ChildCount() > 0 {
		anchor, x = "start", b.X+4
	}
	y := b.Y + b.Height/2
	if e.ChildCount() > 0 {
		y = b.Y + size + 2
	}
	fmt.Fprintf(buf, `  <text class="label" x="%.1f" y="%.1f" font-size="%.1f" text-anchor="%s" dominant-baseline="middle">%s</text>`+"\n",
		x, y, size, anchor, escapeXML(truncate(label, b.Width, size)))
}
