package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uiforge/pkg/cache"
	"github.com/matzehuels/uiforge/pkg/document"
	"github.com/matzehuels/uiforge/pkg/render/tree"
)

// Runner executes pipeline runs with a layout cache.
//
// The Runner holds no per-run state, so one Runner may serve several
// goroutines as long as each renders its own document.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute renders every requested view in every requested format.
// Combinations that do not exist are skipped and counted in the stats.
func (r *Runner) Execute(ctx context.Context, d *document.Document, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	result := &Result{Stats: Stats{Elements: d.Len()}}
	for _, view := range opts.Views {
		for _, format := range opts.Formats {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			data, cached, err := r.RenderView(ctx, d, view, format, opts)
			if errors.Is(err, ErrUnsupported) {
				opts.Logger.Debug("skipping", "view", view, "format", format)
				result.Stats.Skipped++
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", view, format, err)
			}
			result.Artifacts = append(result.Artifacts, Artifact{View: view, Format: format, Data: data, Cached: cached})
		}
	}
	result.Stats.RenderTime = time.Since(start)

	opts.Logger.Info("rendered outputs",
		"artifacts", len(result.Artifacts),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// RenderView renders one view in one format and reports whether the layout
// came from the cache.
func (r *Runner) RenderView(ctx context.Context, d *document.Document, view, format string, opts Options) ([]byte, bool, error) {
	switch view {
	case ViewWireframe:
		if format == FormatDOT {
			return nil, false, fmt.Errorf("%w: %s/%s", ErrUnsupported, view, format)
		}
		svg, err := RenderWireframe(d, opts)
		if err != nil {
			return nil, false, err
		}
		data, err := convert(svg, format, opts)
		return data, false, err

	case ViewTree:
		dot := TreeDOT(d, opts)
		if format == FormatDOT {
			return []byte(dot), false, nil
		}
		svg, cached, err := r.treeSVG(ctx, dot, opts)
		if err != nil {
			return nil, false, err
		}
		data, err := convert(svg, format, opts)
		return data, cached, err

	default:
		return nil, false, fmt.Errorf("unknown view: %s", view)
	}
}

// treeSVG lays out dot with Graphviz, going through the cache.
func (r *Runner) treeSVG(ctx context.Context, dot string, opts Options) ([]byte, bool, error) {
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}
	key := cache.Key("tree-svg", dot)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			logger.Debug("layout cache hit", "key", key)
			return data, true, nil
		}
	}

	logger.Debug("running graphviz")
	svg, err := tree.RenderSVG(dot)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, svg, TTLTreeLayout); err != nil {
		logger.Warn("layout cache write failed", "err", err)
	}
	return svg, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
