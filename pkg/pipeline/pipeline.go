// Package pipeline renders documents into output artifacts.
//
// A run takes an open [document.Document] and produces one artifact per
// requested view and format:
//
//  1. View: the wireframe (element boxes at their world positions) or the
//     tree (the hierarchy laid out by Graphviz)
//  2. Format: SVG, or PDF and PNG converted from the SVG, or the DOT source
//     of the tree view
//
// The Graphviz layout of the tree view is the expensive step and is cached
// by the hash of its DOT source. Wireframes are cheap and always rendered.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Views:   []string{pipeline.ViewWireframe, pipeline.ViewTree},
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, a := range result.Artifacts {
//	    fmt.Println(a.View, a.Format, len(a.Data), a.Cached)
//	}
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// =============================================================================
// Default Values
// =============================================================================

// Views.
const (
	ViewWireframe = "wireframe"
	ViewTree      = "tree"
)

// Output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// TTLTreeLayout is how long a cached Graphviz layout stays valid.
	TTLTreeLayout = 7 * 24 * time.Hour
)

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewWireframe: true,
	ViewTree:      true,
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
	FormatDOT: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run.
type Options struct {
	Views   []string
	Formats []string

	// Detailed adds kind, bounds and alignment to tree labels.
	Detailed bool
	// NoLabels drops element names from the wireframe.
	NoLabels bool
	// Highlight lists element ids or names drawn as selected in the wireframe.
	Highlight []string
	// Scale is the PNG scale factor.
	Scale float64
	// Refresh ignores cached layouts (they are still written).
	Refresh bool

	Logger *log.Logger

	validated bool
}

// Artifact is one rendered output.
type Artifact struct {
	View   string
	Format string
	Data   []byte
	// Cached reports whether the expensive layout step came from the cache.
	Cached bool
}

// Result contains the outputs of a pipeline run in view-major order.
type Result struct {
	Artifacts []Artifact
	Stats     Stats
}

// Stats contains run statistics.
type Stats struct {
	Elements   int
	Skipped    int // view/format combinations that do not exist
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return fmt.Errorf("invalid view: %q (must be one of: wireframe, tree)", view)
	}
	return nil
}

// ValidateViews checks that all views are valid.
func ValidateViews(views []string) error {
	for _, v := range views {
		if err := ValidateView(v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, pdf, png, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks views and formats and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Views) == 0 {
		o.Views = []string{ViewWireframe}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateViews(o.Views); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Single reports whether the run produces at most one artifact.
func (o *Options) Single() bool {
	return len(o.Views) <= 1 && len(o.Formats) <= 1
}
