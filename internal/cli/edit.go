package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/uiforge/pkg/arrange"
	"github.com/matzehuels/uiforge/pkg/command"
	"github.com/matzehuels/uiforge/pkg/document"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	uiio "github.com/matzehuels/uiforge/pkg/io"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// setCommand assigns properties on elements from the command line.
func (c *CLI) setCommand() *cobra.Command {
	var output string
	var elements []string

	cmd := &cobra.Command{
		Use:   "set [file] key=value...",
		Short: "Set properties on one or more elements",
		Long: fmt.Sprintf(`Assign properties to the elements named by --element and save the result.

Known properties: %s`, strings.Join(propertyNames(), ", ")),
		Args: cobra.MinimumNArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeDocument(cmd, args, toComplete)
			}
			keys := propertyNames()
			for i := range keys {
				keys[i] += "="
			}
			return keys, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editFile(cmd.Context(), args[0], output, elements, func(d *document.Document) error {
				for _, kv := range args[1:] {
					key, value, ok := strings.Cut(kv, "=")
					if !ok {
						return fmt.Errorf("invalid assignment %q (want key=value)", kv)
					}
					if err := d.SetPropertyString(command.Property(strings.TrimSpace(key)), value); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the input)")
	cmd.Flags().StringSliceVarP(&elements, "element", "e", nil, "element ids or names (repeatable)")
	_ = cmd.MarkFlagRequired("element")
	_ = cmd.RegisterFlagCompletionFunc("element", c.completeElements)

	return cmd
}

// alignCommand applies an arrangement operation.
func (c *CLI) alignCommand() *cobra.Command {
	var output string

	ops := make([]string, 0, len(arrange.Ops()))
	for _, op := range arrange.Ops() {
		ops = append(ops, op.String())
	}

	cmd := &cobra.Command{
		Use:   "align [file] [operation] [elements...]",
		Short: "Align, distribute or match the size of elements",
		Long:  fmt.Sprintf("Apply an arrangement to the named elements and save the result.\n\nOperations: %s", strings.Join(ops, ", ")),
		Args:  cobra.MinimumNArgs(3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return completeDocument(cmd, args, toComplete)
			case 1:
				return ops, cobra.ShellCompDirectiveNoFileComp
			default:
				return c.completeElements(cmd, args, toComplete)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := arrange.ParseOp(args[1])
			if !ok {
				return fmt.Errorf("unknown operation %q (want one of %s)", args[1], strings.Join(ops, ", "))
			}
			return c.editFile(cmd.Context(), args[0], output, args[2:], func(d *document.Document) error {
				return d.Align(op)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite the input)")

	return cmd
}

// editFile opens input, selects keys, applies fn and saves to output (or
// back to input).
func (c *CLI) editFile(ctx context.Context, input, output string, keys []string, fn func(*document.Document) error) error {
	logger := loggerFromContext(ctx)

	d, closer, err := c.openDocument(ctx, input)
	if err != nil {
		return err
	}
	defer closer()

	elems := make([]*scene.Element, 0, len(keys))
	for _, key := range keys {
		e, err := d.Find(key)
		if err != nil {
			return err
		}
		elems = append(elems, e)
	}
	d.Select(elems...)

	if err := fn(d); err != nil {
		return err
	}
	logger.Debugf("Applied %s", d.Stack().UndoName())

	if output == "" {
		output = input
	}
	if err := uiio.Save(d, output); err != nil {
		return err
	}
	printSuccess("%s on %d elements", d.Stack().UndoName(), len(elems))
	printFile(output)
	return nil
}

func propertyNames() []string {
	props := command.Properties()
	names := make([]string, len(props))
	for i, p := range props {
		names[i] = string(p)
	}
	return names
}

// editCommand opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	var step float64

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a document interactively",
		Long: `Open a document in a terminal editor. A missing file starts an empty
document that is created on the first save.

Selection, moves, grouping, z-order, undo and redo run through the same
document operations as every other command.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			path := args[0]

			if err := uferrors.ValidateDocumentPath(path); err != nil {
				return err
			}
			d, closer, err := c.openDocument(ctx, path)
			if uferrors.Is(err, uferrors.ErrCodeFileNotFound) {
				opts, optsCloser, oerr := c.documentOptions(ctx)
				if oerr != nil {
					return oerr
				}
				d, closer, err = document.New(opts), optsCloser, nil
				logger.Infof("Starting new document %s", path)
			}
			if err != nil {
				return err
			}
			defer closer()

			if step <= 0 {
				step = d.Snap().GridSize
			}
			m := NewEditorModel(d, path, step, uiio.Save)
			final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if em, ok := final.(EditorModel); ok && em.Dirty {
				printWarning("Quit with unsaved changes")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&step, "step", 0, "nudge distance (default: the grid size)")

	return cmd
}
