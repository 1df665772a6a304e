package layout

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is used when an element does not specify a font size.
const DefaultFontSize = 14.0

// TextMeasurer returns the unpadded content size of text at fontSize.
type TextMeasurer interface {
	Measure(text string, fontSize float64) (width, height float64)
}

// MeasureFunc adapts a function to [TextMeasurer].
type MeasureFunc func(text string, fontSize float64) (width, height float64)

// Measure calls f.
func (f MeasureFunc) Measure(text string, fontSize float64) (float64, float64) {
	return f(text, fontSize)
}

// FontMeasurer measures text with an OpenType font. Faces are created
// lazily per font size and reused. FontMeasurer is not safe for concurrent
// use.
type FontMeasurer struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFontMeasurer creates a measurer for the Go Regular typeface.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure returns the advance width of the widest line and the line height
// times the number of lines, in pixels at 72 DPI.
func (m *FontMeasurer) Measure(text string, fontSize float64) (float64, float64) {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	face, err := m.face(fontSize)
	if err != nil {
		return 0, 0
	}
	lines := strings.Split(text, "\n")
	var widest fixed.Int26_6
	for _, line := range lines {
		if adv := font.MeasureString(face, line); adv > widest {
			widest = adv
		}
	}
	height := face.Metrics().Height * fixed.Int26_6(len(lines))
	return fixedToFloat(widest), fixedToFloat(height)
}

// Close releases every cached face.
func (m *FontMeasurer) Close() error {
	for size, f := range m.faces {
		_ = f.Close()
		delete(m.faces, size)
	}
	return nil
}

func (m *FontMeasurer) face(size float64) (font.Face, error) {
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
