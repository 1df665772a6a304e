// Package io reads and writes layout documents as JSON or TOML.
//
// # Overview
//
// A document file holds a format version, the canvas size, and the flat
// list of element records in pre-order. Parent linkage is by id, so the
// records can be consumed by [document.Load] directly:
//
//	{
//	  "version": 1,
//	  "canvas": {"width": 1920, "height": 1080},
//	  "elements": [
//	    {"id": "panel", "name": "Panel", "kind": "container",
//	     "h_align": "start", "v_align": "start",
//	     "margin": {"left": 10, "top": 20, "right": 0, "bottom": 0},
//	     "width": 400, "height": 300},
//	    {"id": "ok", "name": "OK", "kind": "button", "parent": "panel",
//	     "h_align": "end", "v_align": "end",
//	     "margin": {"left": 0, "top": 0, "right": 10, "bottom": 10},
//	     "width": 80, "height": 30}
//	  ]
//	}
//
// The TOML form carries the same fields, with elements as an array of
// tables:
//
//	version = 1
//
//	[canvas]
//	width = 1920.0
//	height = 1080.0
//
//	[[elements]]
//	id = "panel"
//	kind = "container"
//	...
//
// Missing alignment strings and margins are not errors here; they become
// Stretch and a zero margin when the records are turned into elements.
//
// # Formats
//
// [FormatFor] selects the codec from a file extension (".json" or ".toml").
// [Read] and [Write] work on any reader or writer; [Import] and [Export]
// open the file at a path. [Open] and [Save] go one step further and
// convert to and from a [document.Document].
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct values. The CLI
// decodes several files at once this way; every file gets its own document.
//
// [document.Load]: github.com/matzehuels/uiforge/pkg/document.Load
// [document.Document]: github.com/matzehuels/uiforge/pkg/document.Document
package io
