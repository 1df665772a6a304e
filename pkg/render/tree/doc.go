// Package tree renders the element hierarchy of a document.
//
// # Overview
//
// Two views are provided:
//
//   - A Graphviz diagram: [ToDOT] produces DOT source with one box per
//     element and an edge from each parent to its children, in z-order.
//     [RenderSVG] lays it out in-process.
//   - A terminal tree: [Text] produces an indented outline styled with
//     lipgloss, suitable for the CLI.
//
// # Usage
//
//	dot := tree.ToDOT(doc.Elements(), tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(dot)
//
//	fmt.Println(tree.Text(doc.Elements(), tree.Options{}))
//
// # Options
//
// With Detailed set, labels include the kind, local bounds and alignment.
// Locked elements are drawn dashed in both views.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG layout and
// [github.com/charmbracelet/lipgloss/tree] for the terminal outline.
package tree
