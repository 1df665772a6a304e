package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiforge/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file path (or base path for multiple outputs)
	labels  bool   // element labels in the wireframe view
	noCache bool   // bypass the layout cache
	pipe    pipeline.Options
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var viewsStr, formatsStr string
	opts := renderOpts{labels: true, pipe: pipeline.Options{Scale: pipeline.DefaultScale}}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document as a wireframe or hierarchy diagram",
		Long: `Render a document as a wireframe (element boxes at their world positions)
or as a tree (the element hierarchy laid out by Graphviz).

PDF and PNG are converted from the SVG and need rsvg-convert on PATH.
The tree layout is cached; use --no-cache to bypass it.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.pipe.Views = parseList(viewsStr, pipeline.ViewWireframe)
			opts.pipe.Formats = parseList(formatsStr, pipeline.FormatSVG)
			if err := pipeline.ValidateViews(opts.pipe.Views); err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.pipe.Formats); err != nil {
				return err
			}
			opts.pipe.NoLabels = !opts.labels
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single view/format) or base path (multiple)")
	cmd.Flags().StringVarP(&viewsStr, "view", "t", "", "view(s): wireframe (default), tree (comma-separated)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), pdf, png, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.pipe.Detailed, "detailed", false, "show kind, bounds and alignment (tree)")
	cmd.Flags().BoolVar(&opts.labels, "labels", opts.labels, "show element labels (wireframe)")
	cmd.Flags().StringSliceVar(&opts.pipe.Highlight, "select", nil, "elements to highlight (wireframe)")
	cmd.Flags().Float64Var(&opts.pipe.Scale, "scale", opts.pipe.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the layout cache")

	return cmd
}

// parseList splits a comma-separated flag, returning def when empty.
func parseList(s, def string) []string {
	if s == "" {
		return []string{def}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return parts
}

// basePath derives the base output path from the output and input paths.
// A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// artifactPath names the file of one artifact. A single artifact goes to
// output verbatim when given; several views get a view suffix.
func artifactPath(output, base string, opts *pipeline.Options, a pipeline.Artifact) string {
	switch {
	case opts.Single() && output != "":
		return output
	case len(opts.Views) <= 1:
		return base + "." + a.Format
	default:
		return fmt.Sprintf("%s_%s.%s", base, a.View, a.Format)
	}
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	d, closer, err := c.openDocument(ctx, input)
	if err != nil {
		return err
	}
	defer closer()
	logger.Debugf("Loaded document: %d elements", d.Len())

	opts.pipe.Logger = logger
	runner := pipeline.NewRunner(newCache(opts.noCache), logger)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering")
	spinner.Start()
	result, err := runner.Execute(ctx, d, opts.pipe)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	// Status lines would corrupt piped output.
	toStdout := opts.output == "-"
	if toStdout {
		spinner.Stop()
	} else {
		spinner.StopWithSuccess(fmt.Sprintf("Rendered %d artifacts in %s", len(result.Artifacts), result.Stats.RenderTime.Round(time.Millisecond)))
	}

	base := basePath(opts.output, input)
	for _, a := range result.Artifacts {
		path := artifactPath(opts.output, base, &opts.pipe, a)
		if err := c.writeArtifact(path, a.Data); err != nil {
			return err
		}
		if !toStdout {
			printArtifact(path, a.Cached)
		}
	}
	return nil
}

func (c *CLI) writeArtifact(path string, data []byte) error {
	out, err := c.openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
