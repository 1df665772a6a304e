package pipeline

import (
	"errors"
	"fmt"

	"github.com/matzehuels/uiforge/pkg/document"
	"github.com/matzehuels/uiforge/pkg/render"
	"github.com/matzehuels/uiforge/pkg/render/tree"
	"github.com/matzehuels/uiforge/pkg/render/wireframe"
)

// ErrUnsupported is returned for a view/format combination that does not
// exist, such as the DOT source of a wireframe.
var ErrUnsupported = errors.New("unsupported view/format combination")

// RenderWireframe draws the wireframe SVG of d.
func RenderWireframe(d *document.Document, opts Options) ([]byte, error) {
	var wopts []wireframe.Option
	if opts.NoLabels {
		wopts = append(wopts, wireframe.WithoutLabels())
	}
	for _, key := range opts.Highlight {
		e, err := d.Find(key)
		if err != nil {
			return nil, err
		}
		wopts = append(wopts, wireframe.WithHighlight(e))
	}
	w, h := d.CanvasSize()
	return wireframe.RenderSVG(d.Elements(), w, h, wopts...), nil
}

// TreeDOT returns the DOT source of the hierarchy of d.
func TreeDOT(d *document.Document, opts Options) string {
	return tree.ToDOT(d.Elements(), tree.Options{Detailed: opts.Detailed})
}

// convert turns an SVG into format.
func convert(svg []byte, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPDF:
		return render.ToPDF(svg)
	case FormatPNG:
		return render.ToPNG(svg, opts.Scale)
	default:
		return nil, fmt.Errorf("%w: svg to %s", ErrUnsupported, format)
	}
}
