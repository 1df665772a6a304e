package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uiforge/pkg/document"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/layout"
)

// Version is the file format version written by [Write].
const Version = 1

// Format selects a codec.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
)

// String returns the extension without the dot.
func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "json"
}

// ParseFormat converts "json" or "toml" (case-insensitive) into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	}
	return 0, uferrors.New(uferrors.ErrCodeUnsupported, "unsupported format %q", s)
}

// FormatFor selects the codec for path from its extension.
func FormatFor(path string) (Format, error) {
	if err := uferrors.ValidateDocumentPath(path); err != nil {
		return 0, err
	}
	return ParseFormat(filepath.Ext(path))
}

// File is the on-disk document.
type File struct {
	Version  int             `json:"version" toml:"version"`
	Canvas   Canvas          `json:"canvas" toml:"canvas"`
	Elements []layout.Record `json:"elements" toml:"elements"`
}

// Canvas is the saved canvas size. Zero fields fall back to the document
// defaults.
type Canvas struct {
	Width  float64 `json:"width,omitempty" toml:"width,omitempty"`
	Height float64 `json:"height,omitempty" toml:"height,omitempty"`
}

// Read decodes a document file from r.
//
// A missing version is read as version 1; newer versions are rejected with
// UNSUPPORTED. Malformed input yields INVALID_FORMAT. Structural problems
// in the records (duplicate ids, unknown parents) are left to
// [document.Load]. Read does not close r.
func Read(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, uferrors.Wrap(uferrors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, uferrors.New(uferrors.ErrCodeInvalidFormat, "unknown key %s", undecoded[0])
		}
	default:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, uferrors.Wrap(uferrors.ErrCodeInvalidFormat, err, "decode json")
		}
	}

	if f.Version == 0 {
		f.Version = Version
	}
	if f.Version > Version {
		return nil, uferrors.New(uferrors.ErrCodeUnsupported, "format version %d is newer than %d", f.Version, Version)
	}
	return &f, nil
}

// Import reads the document file at path, choosing the codec from its
// extension.
func Import(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, uferrors.Wrap(uferrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()

	f, err := Read(fh, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Open imports the file at path into a new document. A canvas size saved
// in the file overrides the one in opts.
func Open(path string, opts document.Options) (*document.Document, error) {
	f, err := Import(path)
	if err != nil {
		return nil, err
	}
	return f.Document(opts)
}

// Document builds a document from the file's records.
func (f *File) Document(opts document.Options) (*document.Document, error) {
	if f.Canvas.Width > 0 {
		opts.CanvasWidth = f.Canvas.Width
	}
	if f.Canvas.Height > 0 {
		opts.CanvasHeight = f.Canvas.Height
	}
	return document.Load(f.Elements, opts)
}
