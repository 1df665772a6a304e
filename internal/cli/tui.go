package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/uiforge/pkg/document"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
)

const editorHelp = "j/k move  space select  HJKL nudge  m drag  n new  d delete  g/G group  f/b order  u/r undo  s save  q quit"

// =============================================================================
// EditorModel - Interactive document editing
// =============================================================================

// editorRow is one element in the flattened hierarchy.
type editorRow struct {
	elem  *scene.Element
	depth int
}

// EditorModel is the bubbletea model for the edit command. Every key maps to
// one document operation, so undo and redo behave as in any other front end.
type EditorModel struct {
	Doc    *document.Document
	Path   string
	Step   float64
	Cursor int
	Height int
	Offset int

	// Dirty is set by every applied change and cleared by a save.
	Dirty    bool
	Status   string
	Err      error
	quitting bool
	confirm  bool

	save func(*document.Document, string) error
	rows []editorRow
}

// NewEditorModel creates an editor for d. save writes the document to path;
// step is the nudge distance of HJKL and the drag keys.
func NewEditorModel(d *document.Document, path string, step float64, save func(*document.Document, string) error) EditorModel {
	if step <= 0 {
		step = 1
	}
	m := EditorModel{
		Doc:    d,
		Path:   path,
		Step:   step,
		Height: 15,
		save:   save,
	}
	m.refresh()
	return m
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Doc.Dragging() {
			return m.updateDrag(msg), nil
		}
		return m.updateKey(msg)
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m.scroll()
	}
	return m, nil
}

func (m EditorModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "q" && key != "esc" {
		m.confirm = false
	}
	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "q", "esc":
		if m.Dirty && !m.confirm {
			m.confirm = true
			m.Status, m.Err = "unsaved changes, press q again to quit", nil
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.scroll()
	case "down", "j":
		if m.Cursor < len(m.rows)-1 {
			m.Cursor++
		}
		m.scroll()
	case " ":
		if e := m.current(); e != nil {
			m.Doc.Selection().Toggle(e)
		}
	case "enter":
		if e := m.current(); e != nil {
			m.Doc.Select(e)
		}
	case "c":
		m.Doc.Selection().Clear()
	case "H":
		m.apply("move", m.Doc.MoveBy(-m.Step, 0))
	case "L":
		m.apply("move", m.Doc.MoveBy(m.Step, 0))
	case "K":
		m.apply("move", m.Doc.MoveBy(0, -m.Step))
	case "J":
		m.apply("move", m.Doc.MoveBy(0, m.Step))
	case "m":
		if err := m.Doc.BeginDrag(); err != nil {
			m.Status, m.Err = "", err
		} else {
			m.Status, m.Err = "dragging: arrows move, enter drop, esc cancel", nil
		}
	case "n":
		m.create()
	case "d", "delete":
		m.apply("delete", m.Doc.Delete())
	case "g":
		_, err := m.Doc.Group()
		m.apply("group", err)
	case "G":
		m.apply("ungroup", m.Doc.Ungroup())
	case "f":
		m.apply("bring to front", m.Doc.BringToFront())
	case "b":
		m.apply("send to back", m.Doc.SendToBack())
	case "u":
		m.history("undo", m.Doc.Stack().UndoName(), m.Doc.Undo())
	case "r", "ctrl+r":
		m.history("redo", m.Doc.Stack().RedoName(), m.Doc.Redo())
	case "s":
		if err := m.save(m.Doc, m.Path); err != nil {
			m.Status, m.Err = "", err
		} else {
			m.Dirty = false
			m.Status, m.Err = "saved "+m.Path, nil
		}
	}
	return m, nil
}

// updateDrag routes keys while a drag gesture is open.
func (m EditorModel) updateDrag(msg tea.KeyMsg) EditorModel {
	var err error
	switch msg.String() {
	case "left", "h":
		err = m.Doc.DragBy(-m.Step, 0)
	case "right", "l":
		err = m.Doc.DragBy(m.Step, 0)
	case "up", "k":
		err = m.Doc.DragBy(0, -m.Step)
	case "down", "j":
		err = m.Doc.DragBy(0, m.Step)
	case "enter", "m":
		m.apply("drag", m.Doc.EndDrag())
		return m
	case "esc", "ctrl+c":
		m.Doc.CancelDrag()
		m.Status, m.Err = "drag cancelled", nil
		return m
	}
	if err != nil {
		m.Status, m.Err = "", err
	}
	return m
}

// create adds a container inside the element under the cursor when it is a
// container kind, at the top level otherwise.
func (m *EditorModel) create() {
	var parent *scene.Element
	if e := m.current(); e != nil && isContainerKind(e.Kind) {
		parent = e
	}
	e, err := m.Doc.Create(scene.KindContainer, parent, scene.Point{})
	m.apply("create", err)
	if err == nil {
		m.moveTo(e)
	}
}

func isContainerKind(k scene.Kind) bool {
	switch k {
	case scene.KindContainer, scene.KindCanvas, scene.KindScrollRegion, scene.KindModal, scene.KindGrid:
		return true
	}
	return false
}

// apply records the outcome of an operation in the status line.
func (m *EditorModel) apply(name string, err error) {
	if err != nil {
		m.Status, m.Err = "", err
		return
	}
	m.Dirty = true
	m.Status, m.Err = name, nil
	m.refresh()
}

func (m *EditorModel) history(verb, name string, ok bool) {
	if !ok {
		m.Status, m.Err = "nothing to "+verb, nil
		return
	}
	m.Dirty = true
	m.Status, m.Err = verb+" "+name, nil
	m.refresh()
}

// refresh rebuilds the row list after a structural change, keeping the
// cursor on the same element when it still exists.
func (m *EditorModel) refresh() {
	cur := m.current()
	m.rows = nil
	for _, top := range m.Doc.Elements() {
		m.flatten(top, 0)
	}
	if cur != nil {
		m.moveTo(cur)
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = max(len(m.rows)-1, 0)
	}
	m.scroll()
}

func (m *EditorModel) flatten(e *scene.Element, depth int) {
	m.rows = append(m.rows, editorRow{elem: e, depth: depth})
	for _, c := range e.Children() {
		m.flatten(c, depth+1)
	}
}

func (m *EditorModel) moveTo(e *scene.Element) {
	for i, r := range m.rows {
		if r.elem == e {
			m.Cursor = i
			m.scroll()
			return
		}
	}
}

func (m *EditorModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m EditorModel) current() *scene.Element {
	if m.Cursor < 0 || m.Cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.Cursor].elem
}

func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	title := m.Path
	if m.Dirty {
		title += " *"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(editorHelp))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := ""
		if m.Doc.Selection().Contains(r.elem) {
			mark = "●"
		}
		if r.elem.Locked {
			mark += " locked"
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", r.depth) + r.elem.Name,
			r.elem.Kind.String(),
			fmt.Sprintf("%g,%g", r.elem.X, r.elem.Y),
			fmt.Sprintf("%gx%g", r.elem.Width, r.elem.Height),
			mark,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Element", "Kind", "Position", "Size", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.rows[idx].elem.Locked:
				return listDimStyle
			case m.Doc.Selection().Contains(m.rows[idx].elem):
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	if len(m.rows) == 0 {
		b.WriteString(listDimStyle.Render("  (empty document, press n to add a container)"))
	} else {
		b.WriteString(t.Render())
	}
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m EditorModel) statusLine() string {
	pos := listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", min(m.Cursor+1, len(m.rows)), len(m.rows), m.Doc.Selection().Len()))
	if m.Err != nil {
		return pos + "  " + listErrorStyle.Render(iconError.glyph+" "+uferrors.UserMessage(m.Err))
	}
	status := m.Status
	if status == "" && m.Doc.Stack().UndoName() != "" {
		status = "last: " + m.Doc.Stack().UndoName()
	}
	if status == "" {
		return pos
	}
	return pos + "  " + StyleHighlight.Render(status)
}
