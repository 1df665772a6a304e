package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiforge/pkg/coords"
	"github.com/matzehuels/uiforge/pkg/document"
	"github.com/matzehuels/uiforge/pkg/render/tree"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// inspectCommand prints the hierarchy of a document.
func (c *CLI) inspectCommand() *cobra.Command {
	var detailed bool
	var element string

	cmd := &cobra.Command{
		Use:               "inspect [file]",
		Short:             "Print the element hierarchy of a document",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closer, err := c.openDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer closer()

			if element != "" {
				e, err := d.Find(element)
				if err != nil {
					return err
				}
				c.printElement(d, e)
				return nil
			}

			printInfo("%s", args[0])
			printStats(d.Len(), len(d.Elements()), depth(d.Elements()))
			fmt.Fprintln(c.out, tree.Text(d.Elements(), tree.Options{Detailed: detailed}))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detailed, "detailed", "d", false, "show kind, bounds and alignment")
	cmd.Flags().StringVarP(&element, "element", "e", "", "show the properties of one element (id or name)")
	_ = cmd.RegisterFlagCompletionFunc("element", c.completeElements)

	return cmd
}

func (c *CLI) printElement(d *document.Document, e *scene.Element) {
	w := coords.WorldBounds(e)
	parent := "(top level)"
	if p := e.Parent(); p != nil && !p.IsSystem {
		parent = p.Name
	}
	printKeyValue("name", e.Name)
	printKeyValue("id", e.ID)
	printKeyValue("kind", e.Kind.String())
	printKeyValue("parent", parent)
	printKeyValue("local", fmt.Sprintf("%g,%g %gx%g", e.X, e.Y, e.Width, e.Height))
	printKeyValue("world", fmt.Sprintf("%g,%g %gx%g", w.X, w.Y, w.Width, w.Height))
	printKeyValue("align", fmt.Sprintf("%s/%s", e.HAlign, e.VAlign))

	l := d.Translator().ExportElement(e, d.LayoutParent(e.Parent()))
	printKeyValue("margin", fmt.Sprintf("%g %g %g %g", l.Margin.Left, l.Margin.Top, l.Margin.Right, l.Margin.Bottom))
	if e.Kind.IsText() {
		printKeyValue("text", fmt.Sprintf("%q", e.Text))
	}
	if e.Locked {
		printKeyValue("locked", "true")
	}
	printKeyValue("children", fmt.Sprint(e.ChildCount()))
}

// depth returns the number of levels below roots.
func depth(roots []*scene.Element) int {
	deepest := 0
	for _, r := range roots {
		deepest = max(deepest, 1+depth(r.Children()))
	}
	return deepest
}
