// Package layout translates between the engine's anchor+margin layout model
// and the editor's absolute geometry.
//
// # Models
//
// The engine positions an element inside its parent with one [scene.Anchor]
// per axis, a four-sided [scene.Margin] and an optional explicit size. The
// editor stores plain local x/y/width/height. A [Translator] converts in both
// directions, one axis at a time:
//
//	Anchor   Size                                Position
//	Start    explicit or default                 lead margin
//	End      explicit or default                 extent - trail - size
//	Center   explicit or default                 lead + (extent - size - lead - trail) / 2
//	Stretch  explicit or extent - lead - trail   lead margin
//
// The default size is 80% of the parent extent clamped to [20, 100]. A
// stretched size below 20 falls back to the default.
//
// # Canvas Parents
//
// Children of a [scene.KindCanvas] parent ignore alignment: margin left/top
// is the literal position and the size is explicit or the default.
//
// # Text
//
// Text kinds without an explicit size are measured with the configured
// [TextMeasurer] and padded, so centering uses the real content box.
// [FontMeasurer] measures with the Go Regular typeface.
//
// # Export
//
// [Translator.Export] is the per-axis inverse of [Translator.Import]. In the
// default [ExportPreserve] mode the saved alignment is kept and a complete
// margin is written, so importing an exported element reproduces its
// geometry exactly. [ExportAbsolute] always emits Left/Top with the absolute
// position in the margin. No rounding is applied in either direction.
//
// # Records
//
// [Record] is the flat per-element property record exchanged with the file
// loading and saving collaborators.
package layout
