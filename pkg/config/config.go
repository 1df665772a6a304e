// Package config loads editor settings from TOML.
//
// A settings file looks like:
//
//	[snap]
//	grid = true
//	grid_size = 8
//	pixel = true
//
//	[canvas]
//	width = 1280
//	height = 720
//
//	[history]
//	limit = 200
//
//	[text]
//	font_size = 16
//
//	[export]
//	mode = "absolute"
//
// Every key is optional; [Settings.SetDefaults] fills the rest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/uiforge/pkg/command"
	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/document"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/layout"
)

// AppName names the settings directory under the user config home.
const AppName = "uiforge"

// FileName is the settings file looked up by [Find].
const FileName = "config.toml"

// Export modes accepted in export.mode.
const (
	ExportPreserve = "preserve"
	ExportAbsolute = "absolute"
)

// DefaultGridSize is the grid step used when snapping is enabled without a
// size.
const DefaultGridSize = 10.0

// ErrInvalidSettings is returned by Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings is the decoded settings file.
type Settings struct {
	Snap    SnapSettings    `toml:"snap"`
	Canvas  CanvasSettings  `toml:"canvas"`
	History HistorySettings `toml:"history"`
	Text    TextSettings    `toml:"text"`
	Export  ExportSettings  `toml:"export"`
}

// SnapSettings controls snapping of interactive moves.
type SnapSettings struct {
	Grid     bool    `toml:"grid"`
	GridSize float64 `toml:"grid_size"`
	Pixel    bool    `toml:"pixel"`
}

// CanvasSettings is the size of the top-level layout parent.
type CanvasSettings struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// HistorySettings bounds the undo history. A negative limit disables
// pruning.
type HistorySettings struct {
	Limit int `toml:"limit"`
}

// TextSettings configures text measurement.
type TextSettings struct {
	FontSize float64 `toml:"font_size"`
}

// ExportSettings selects how positions are written back.
type ExportSettings struct {
	Mode string `toml:"mode"`
}

// Default returns settings with every default applied.
func Default() Settings {
	var s Settings
	s.SetDefaults()
	return s
}

// SetDefaults fills zero fields with defaults.
func (s *Settings) SetDefaults() {
	if s.Snap.GridSize <= 0 {
		s.Snap.GridSize = DefaultGridSize
	}
	if s.Canvas.Width <= 0 {
		s.Canvas.Width = document.DefaultCanvasWidth
	}
	if s.Canvas.Height <= 0 {
		s.Canvas.Height = document.DefaultCanvasHeight
	}
	if s.History.Limit == 0 {
		s.History.Limit = command.DefaultLimit
	}
	if s.Text.FontSize <= 0 {
		s.Text.FontSize = layout.DefaultFontSize
	}
	if s.Export.Mode == "" {
		s.Export.Mode = ExportPreserve
	}
}

// Validate checks values that defaults cannot repair.
func (s Settings) Validate() error {
	switch strings.ToLower(s.Export.Mode) {
	case "", ExportPreserve, ExportAbsolute:
	default:
		return fmt.Errorf("%w: export.mode %q (want %q or %q)", ErrInvalidSettings, s.Export.Mode, ExportPreserve, ExportAbsolute)
	}
	return nil
}

// ExportMode returns the layout export mode.
func (s Settings) ExportMode() layout.ExportMode {
	if strings.EqualFold(s.Export.Mode, ExportAbsolute) {
		return layout.ExportAbsolute
	}
	return layout.ExportPreserve
}

// Snapping returns the snap settings.
func (s Settings) Snapping() coords.Snap {
	return coords.Snap{Grid: s.Snap.Grid, GridSize: s.Snap.GridSize, Pixel: s.Snap.Pixel}
}

// Measurer wraps m so elements without a font size are measured at the
// configured size. A nil m yields nil.
func (s Settings) Measurer(m layout.TextMeasurer) layout.TextMeasurer {
	if m == nil {
		return nil
	}
	size := s.Text.FontSize
	return layout.MeasureFunc(func(text string, fontSize float64) (float64, float64) {
		if fontSize <= 0 {
			fontSize = size
		}
		return m.Measure(text, fontSize)
	})
}

// Options converts the settings into document options using m for text
// measurement.
func (s Settings) Options(m layout.TextMeasurer) document.Options {
	return document.Options{
		CanvasWidth:  s.Canvas.Width,
		CanvasHeight: s.Canvas.Height,
		Snap:         s.Snapping(),
		HistoryLimit: max(s.History.Limit, 0),
		Measurer:     s.Measurer(m),
		ExportMode:   s.ExportMode(),
	}
}

// Parse decodes settings from TOML data and applies defaults. Unknown keys
// are rejected.
func Parse(data []byte) (Settings, error) {
	var s Settings
	md, err := toml.Decode(string(data), &s)
	if err != nil {
		return Settings{}, uferrors.Wrap(uferrors.ErrCodeInvalidFormat, err, "decode settings")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, uferrors.New(uferrors.ErrCodeInvalidFormat, "unknown settings: %s", strings.Join(keys, ", "))
	}
	if err := s.Validate(); err != nil {
		return Settings{}, uferrors.Wrap(uferrors.ErrCodeInvalidInput, err, "validate settings")
	}
	s.SetDefaults()
	return s, nil
}

// Load reads settings from path. An empty path loads the file returned by
// [Find], or defaults when there is none.
func Load(path string) (Settings, error) {
	if path == "" {
		found, ok := Find()
		if !ok {
			return Default(), nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, uferrors.Wrap(uferrors.ErrCodeFileNotFound, err, "settings %s", path)
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Dir returns the settings directory: $XDG_CONFIG_HOME/uiforge, or
// ~/.config/uiforge.
func Dir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName), nil
}

// Find returns the settings file in [Dir] if it exists.
func Find() (string, bool) {
	dir, err := Dir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
