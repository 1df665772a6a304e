package tree

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	lgtree "github.com/charmbracelet/lipgloss/tree"

	"github.com/matzehuels/uiforge/pkg/scene"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	detailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	lockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Text renders the hierarchy under roots as a terminal outline. Multiple
// roots are listed under a "document" heading.
func Text(roots []*scene.Element, opts Options) string {
	t := lgtree.Root("document").
		Enumerator(lgtree.RoundedEnumerator).
		EnumeratorStyle(branchStyle)
	for _, r := range roots {
		t.Child(node(r, opts))
	}
	return t.String()
}

func node(e *scene.Element, opts Options) any {
	label := textLabel(e, opts.Detailed)
	if e.ChildCount() == 0 {
		return label
	}
	t := lgtree.Root(label).
		Enumerator(lgtree.RoundedEnumerator).
		EnumeratorStyle(branchStyle)
	for _, c := range e.Children() {
		t.Child(node(c, opts))
	}
	return t
}

func textLabel(e *scene.Element, detailed bool) string {
	name := nameStyle.Render(e.Name)
	if e.Locked {
		name = lockedStyle.Render(e.Name)
	}
	label := name + " " + kindStyle.Render(e.Kind.String())
	if detailed {
		label += " " + detailStyle.Render(fmt.Sprintf("(%g,%g %gx%g %s/%s)",
			e.X, e.Y, e.Width, e.Height, e.HAlign, e.VAlign))
	}
	return label
}
