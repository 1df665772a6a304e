package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/uiforge/pkg/config"
	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/document"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	uiio "github.com/matzehuels/uiforge/pkg/io"
	"github.com/matzehuels/uiforge/pkg/layout"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// errCheckFailed is returned when at least one document fails validation.
var errCheckFailed = errors.New("check failed")

// checkResult is the outcome of checking one file.
type checkResult struct {
	path     string
	elements int
	warnings []string
	err      error
}

// checkCommand validates documents concurrently.
func (c *CLI) checkCommand() *cobra.Command {
	var strict bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate one or more documents",
		Long: `Load every file, verify the structural invariants of the element tree and
report elements that extend outside their parent without allowing overflow.

Files are checked concurrently; each gets its own document.`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return documentExtensions(), cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			results, err := c.checkFiles(ctx, args, jobs)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				switch {
				case r.err != nil:
					failed++
					printError("%s: %s", r.path, uferrors.UserMessage(r.err))
				case len(r.warnings) > 0 && strict:
					failed++
					printError("%s: %d warnings", r.path, len(r.warnings))
				case len(r.warnings) > 0:
					printWarning("%s: %d elements, %d warnings", r.path, r.elements, len(r.warnings))
				default:
					printSuccess("%s: %d elements", r.path, r.elements)
				}
				for _, w := range r.warnings {
					printDetail("%s", w)
				}
			}
			prog.done(fmt.Sprintf("Checked %d documents", len(results)))

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d documents", errCheckFailed, failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as failures")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files checked at once")

	return cmd
}

// checkFiles checks paths with at most jobs concurrent loads. Per-file
// failures are reported in the results; the returned error is only set
// when the settings cannot be loaded or ctx ends.
func (c *CLI) checkFiles(ctx context.Context, paths []string, jobs int) ([]checkResult, error) {
	settings, err := c.settings()
	if err != nil {
		return nil, err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d documents", len(paths)))
	spinner.Start()
	defer spinner.Stop()

	results := make([]checkResult, len(paths))
	var done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(jobs, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(gctx, path, settings)
			spinner.SetMessage(fmt.Sprintf("Checked %d/%d", done.Add(1), len(paths)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkFile loads and checks one file. Each call gets its own font measurer
// since measurers are not safe for concurrent use.
func checkFile(ctx context.Context, path string, settings config.Settings) checkResult {
	logger := loggerFromContext(ctx).With("file", path)
	r := checkResult{path: path}

	if err := uferrors.ValidateDocumentPath(path); err != nil {
		r.err = err
		return r
	}
	var m layout.TextMeasurer
	if fm, err := layout.NewFontMeasurer(); err == nil {
		defer fm.Close()
		m = fm
	}
	opts := settings.Options(m)
	opts.Logger = logger
	d, err := uiio.Open(path, opts)
	if err != nil {
		r.err = err
		return r
	}
	if err := d.Validate(); err != nil {
		r.err = err
		return r
	}
	r.elements = d.Len()
	r.warnings = overflowWarnings(d)
	logger.Debug("checked", "elements", r.elements, "warnings", len(r.warnings))
	return r
}

// overflowWarnings lists elements whose world bounds leave their parent.
func overflowWarnings(d *document.Document) []string {
	var out []string
	for _, top := range d.Elements() {
		top.Walk(func(e *scene.Element) bool {
			p := e.Parent()
			if p == nil || p.IsSystem || p.AllowOverflow {
				return true
			}
			if !contains(coords.WorldBounds(p), coords.WorldBounds(e)) {
				out = append(out, fmt.Sprintf("%s extends outside %s", e.Name, p.Name))
			}
			return true
		})
	}
	cw, ch := d.CanvasSize()
	canvas := scene.Rect{Width: cw, Height: ch}
	for _, top := range d.Elements() {
		if !contains(canvas, top.Bounds()) {
			out = append(out, fmt.Sprintf("%s extends outside the canvas", top.Name))
		}
	}
	return out
}

func contains(outer, inner scene.Rect) bool {
	const eps = 1e-6
	return inner.X >= outer.X-eps && inner.Y >= outer.Y-eps &&
		inner.X+inner.Width <= outer.X+outer.Width+eps &&
		inner.Y+inner.Height <= outer.Y+outer.Height+eps
}
