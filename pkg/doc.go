// Package pkg provides the core libraries of uiforge, a scene-graph editor
// for hierarchical screen layouts.
//
// # Overview
//
// A layout is a tree of elements (containers, text, buttons, images and so
// on). On disk every element is a flat record that places it relative to its
// parent with an anchor per axis and a margin. In memory every element has a
// resolved local rectangle, so editing is plain geometry: move, resize,
// reparent, align. The pkg directory is organized into four areas:
//
//  1. Model - [scene], [coords], [layout]
//  2. Editing - [command], [selection], [planner], [arrange], [document]
//  3. Persistence - [io], [config]
//  4. Output - [render], [render/tree], [render/wireframe], [pipeline], [cache]
//
// # Architecture
//
// The data flow through uiforge:
//
//	JSON/TOML file
//	      ↓
//	 [io] package (decode records)
//	      ↓
//	 [layout] package (anchor+margin → local rectangles)
//	      ↓
//	 [document] package (scene graph + undo stack + selection)
//	      ↓  edits via [command], [planner], [arrange]
//	 [layout] package (local rectangles → anchor+margin)
//	      ↓
//	 [io] package (encode records)  or  [pipeline] (SVG/PDF/PNG/DOT)
//
// # Quick Start
//
// Open a document, move an element and save it:
//
//	import (
//	    "github.com/matzehuels/uiforge/pkg/document"
//	    uiio "github.com/matzehuels/uiforge/pkg/io"
//	)
//
//	d, err := uiio.Open("login.json", document.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	button, _ := d.Find("Submit")
//	d.Select(button)
//	_ = d.MoveBy(0, 20)
//	d.Undo() // back where it was
//	_ = d.Redo()
//	return uiio.Save(d, "login.json")
//
// # Main Packages
//
// ## Model
//
// [scene] - Elements and the scene graph. Each element has one parent and an
// ordered child list; the graph enforces the tree invariants and hands out
// default names per kind.
//
// [coords] - Local/world conversions and grid and pixel snapping.
//
// [layout] - Translation between anchor+margin records and local rectangles,
// including text measurement for text-sized elements.
//
// ## Editing
//
// [command] - Undoable commands (create, delete, move, resize, reparent,
// group, z-order, property edits) and the bounded undo stack.
//
// [selection] - The ordered set of selected elements and its root reduction.
//
// [planner] - Drop planning: whether a dragged element lands before, after
// or inside a target.
//
// [arrange] - Alignment, distribution and size matching in world space.
//
// [document] - One open layout: ties the graph, commands, selection and
// translator together behind a small API.
//
// ## Persistence
//
// [io] - The versioned document file in JSON and TOML.
//
// [config] - User settings (snapping, canvas, history, export mode) from a
// TOML file.
//
// ## Output
//
// [render] - SVG to PDF/PNG conversion.
//
// [render/wireframe] - Element boxes at their world positions as SVG.
//
// [render/tree] - The element hierarchy as DOT, Graphviz SVG or a terminal
// tree.
//
// [pipeline] - Views × formats rendering with a cached Graphviz layout.
//
// [cache] - File and null caches keyed by content hash.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/document/...   # Specific package
//	go test -run Example ./...   # Examples only
//
// [render/tree]: https://pkg.go.dev/github.com/matzehuels/uiforge/pkg/render/tree
// [render/wireframe]: https://pkg.go.dev/github.com/matzehuels/uiforge/pkg/render/wireframe
package pkg
