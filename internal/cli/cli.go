package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uiforge/pkg/buildinfo"
	"github.com/matzehuels/uiforge/pkg/cache"
	"github.com/matzehuels/uiforge/pkg/config"
	"github.com/matzehuels/uiforge/pkg/document"
	uiio "github.com/matzehuels/uiforge/pkg/io"
	"github.com/matzehuels/uiforge/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "uiforge"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the default location.
	configPath string
	// absolute forces absolute export for every command that writes files.
	absolute bool
	out      io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output (not logs) to w.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "uiforge edits anchor+margin screen layouts",
		Long:          `uiforge inspects, validates, converts, renders and interactively edits hierarchical screen layouts stored as flat anchor+margin element records.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default $XDG_CONFIG_HOME/uiforge/config.toml)")
	root.PersistentFlags().BoolVar(&c.absolute, "absolute", false, "export every element with left/top alignment")

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.setCommand())
	root.AddCommand(c.alignCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Documents
// =============================================================================

// settings loads the settings file selected by --config.
func (c *CLI) settings() (config.Settings, error) {
	s, err := config.Load(c.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	if c.absolute {
		s.Export.Mode = config.ExportAbsolute
	}
	return s, nil
}

// documentOptions builds document options from the settings with a font
// measurer for text elements. The returned closer releases the measurer.
func (c *CLI) documentOptions(ctx context.Context) (document.Options, func(), error) {
	s, err := c.settings()
	if err != nil {
		return document.Options{}, nil, err
	}
	logger := loggerFromContext(ctx)

	var m layout.TextMeasurer
	closer := func() {}
	if fm, err := layout.NewFontMeasurer(); err != nil {
		logger.Warn("text measurement disabled", "err", err)
	} else {
		m = fm
		closer = func() { _ = fm.Close() }
	}

	opts := s.Options(m)
	opts.Logger = logger.WithPrefix("document")
	return opts, closer, nil
}

// openDocument loads the document at path with the current settings.
func (c *CLI) openDocument(ctx context.Context, path string) (*document.Document, func(), error) {
	opts, closer, err := c.documentOptions(ctx)
	if err != nil {
		return nil, nil, err
	}
	d, err := uiio.Open(path, opts)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return d, closer, nil
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/uiforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout for an empty path and a new file otherwise.
func (c *CLI) openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{c.out}, nil
	}
	return os.Create(path)
}
