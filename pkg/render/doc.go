// Package render provides visual output for layout documents.
//
// # Overview
//
// Rendering is split by view:
//
//   - [wireframe] draws every element as a box at its world position on
//     the canvas, in z-order.
//   - [tree] draws the element hierarchy as a Graphviz diagram or a
//     terminal outline.
//
// Both produce SVG. The [ToPDF] and [ToPNG] functions convert any SVG to
// other formats using the external rsvg-convert tool (from librsvg):
//
//	svg := wireframe.RenderSVG(doc.Elements(), 1920, 1080)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [wireframe]: github.com/matzehuels/uiforge/pkg/render/wireframe
// [tree]: github.com/matzehuels/uiforge/pkg/render/tree
package render
