package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uiforge/pkg/document"
)

// FileOf captures d's current state as a document file.
func FileOf(d *document.Document) *File {
	w, h := d.CanvasSize()
	return &File{
		Version:  Version,
		Canvas:   Canvas{Width: w, Height: h},
		Elements: d.Save(),
	}
}

// Write encodes f to w. JSON output is indented by two spaces.
func Write(f *File, w io.Writer, format Format) error {
	out := *f
	if out.Version == 0 {
		out.Version = Version
	}
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(out); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return nil
}

// Export writes f to path, choosing the codec from its extension.
func Export(f *File, path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, fh, format); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}

// Save exports d to path.
func Save(d *document.Document, path string) error {
	return Export(FileOf(d), path)
}
