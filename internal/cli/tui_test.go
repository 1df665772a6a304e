package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/uiforge/pkg/document"
	"github.com/matzehuels/uiforge/pkg/layout"
)

func fp(v float64) *float64 { return &v }

func editorDoc(t *testing.T) *document.Document {
	t.Helper()
	d, err := document.Load([]layout.Record{
		{ID: "panel", Name: "Panel", Kind: "container", HAlign: "Left", VAlign: "Top",
			Margin: &layout.MarginRecord{Left: 10, Top: 20}, Width: fp(400), Height: fp(300)},
		{ID: "ok", Name: "OK", Kind: "image", ParentID: "panel", HAlign: "Left", VAlign: "Top",
			Margin: &layout.MarginRecord{Left: 5, Top: 5}, Width: fp(80), Height: fp(30)},
	}, document.DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return d
}

func keys(t *testing.T, m EditorModel, ks ...tea.KeyMsg) (EditorModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range ks {
		var next tea.Model
		next, cmd = m.Update(k)
		var ok bool
		if m, ok = next.(EditorModel); !ok {
			t.Fatalf("Update() returned %T, want EditorModel", next)
		}
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
)

func nopSave(*document.Document, string) error { return nil }

func TestEditorNavigateAndSelect(t *testing.T) {
	d := editorDoc(t)
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	m, _ = keys(t, m, runes("j"), runes(" "))
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", m.Cursor)
	}
	ok, _ := d.Find("OK")
	if !d.Selection().Contains(ok) {
		t.Error("space should select the element under the cursor")
	}

	m, _ = keys(t, m, runes("j"), runes("k"), runes("k"))
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", m.Cursor)
	}
	m, _ = keys(t, m, keyEnter)
	panel, _ := d.Find("Panel")
	if d.Selection().Len() != 1 || !d.Selection().Contains(panel) {
		t.Error("enter should replace the selection")
	}
	_, _ = keys(t, m, runes("c"))
	if d.Selection().Len() != 0 {
		t.Error("c should clear the selection")
	}
}

func TestEditorMoveUndoRedo(t *testing.T) {
	d := editorDoc(t)
	panel, _ := d.Find("Panel")
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	m, _ = keys(t, m, keyEnter, runes("L"))
	if panel.X != 20 {
		t.Errorf("X after L = %v, want 20", panel.X)
	}
	if !m.Dirty {
		t.Error("move should mark the model dirty")
	}

	m, _ = keys(t, m, runes("u"))
	if panel.X != 10 {
		t.Errorf("X after undo = %v, want 10", panel.X)
	}
	if !strings.HasPrefix(m.Status, "undo") {
		t.Errorf("Status = %q, want undo prefix", m.Status)
	}

	m, _ = keys(t, m, runes("r"), runes("J"))
	if panel.X != 20 || panel.Y != 30 {
		t.Errorf("position = %v,%v, want 20,30", panel.X, panel.Y)
	}

	m, _ = keys(t, m, runes("u"), runes("u"), runes("u"))
	if m.Status != "nothing to undo" {
		t.Errorf("Status = %q, want %q", m.Status, "nothing to undo")
	}
}

func TestEditorDrag(t *testing.T) {
	d := editorDoc(t)
	panel, _ := d.Find("Panel")
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	m, _ = keys(t, m, keyEnter, runes("m"), keyRight, keyRight)
	if !d.Dragging() {
		t.Fatal("m should start a drag")
	}
	if panel.X != 30 {
		t.Errorf("X during drag = %v, want 30", panel.X)
	}
	if d.Stack().CanUndo() {
		t.Error("drag preview should not be recorded")
	}

	m, _ = keys(t, m, keyEnter)
	if d.Dragging() {
		t.Error("enter should end the drag")
	}
	if !d.Stack().CanUndo() {
		t.Error("finished drag should be undoable")
	}

	_, _ = keys(t, m, runes("u"))
	if panel.X != 10 {
		t.Errorf("X after undo = %v, want 10", panel.X)
	}
}

func TestEditorDragCancel(t *testing.T) {
	d := editorDoc(t)
	panel, _ := d.Find("Panel")
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	m, _ = keys(t, m, keyEnter, runes("m"), keyRight, keyEsc)
	if d.Dragging() {
		t.Error("esc should cancel the drag")
	}
	if panel.X != 10 {
		t.Errorf("X after cancel = %v, want 10", panel.X)
	}
	if m.Dirty {
		t.Error("cancelled drag should not mark the model dirty")
	}
}

func TestEditorDeleteAndCreate(t *testing.T) {
	d := editorDoc(t)
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	m, _ = keys(t, m, runes("n"))
	if d.Len() != 3 {
		t.Fatalf("Len() after n = %d, want 3", d.Len())
	}
	created := m.current()
	panel, _ := d.Find("Panel")
	if created == nil || created.Parent() != panel {
		t.Errorf("n on a container should create inside it")
	}

	m, _ = keys(t, m, runes("k"), runes("k"), keyEnter, runes("d"))
	if d.Len() != 0 {
		t.Errorf("Len() after delete = %d, want 0", d.Len())
	}
	if !strings.Contains(m.View(), "empty document") {
		t.Error("View() should mention the empty document")
	}

	m, _ = keys(t, m, runes("u"))
	if d.Len() != 3 || len(m.rows) != 3 {
		t.Errorf("after undo Len() = %d rows = %d, want 3", d.Len(), len(m.rows))
	}
}

func TestEditorErrorStatus(t *testing.T) {
	d := editorDoc(t)
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	m, _ = keys(t, m, runes("H"))
	if !errors.Is(m.Err, document.ErrEmptySelection) {
		t.Errorf("Err = %v, want ErrEmptySelection", m.Err)
	}
	if m.Dirty {
		t.Error("failed operation should not mark the model dirty")
	}

	m, _ = keys(t, m, runes("j"))
	if m.Err == nil {
		t.Error("navigation should keep the last error")
	}
}

func TestEditorSaveAndQuit(t *testing.T) {
	d := editorDoc(t)
	var saved string
	save := func(_ *document.Document, path string) error {
		saved = path
		return nil
	}
	m := NewEditorModel(d, "doc.json", 10, save)

	m, _ = keys(t, m, keyEnter, runes("L"))
	m, cmd := keys(t, m, runes("q"))
	if cmd != nil {
		t.Error("first q with unsaved changes should not quit")
	}
	if !strings.Contains(m.Status, "unsaved") {
		t.Errorf("Status = %q, want unsaved warning", m.Status)
	}

	m, _ = keys(t, m, runes("s"))
	if saved != "doc.json" {
		t.Errorf("saved = %q, want doc.json", saved)
	}
	if m.Dirty {
		t.Error("save should clear Dirty")
	}

	m, cmd = keys(t, m, runes("q"))
	if cmd == nil {
		t.Error("q after save should quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestEditorSaveError(t *testing.T) {
	d := editorDoc(t)
	failing := func(*document.Document, string) error { return errors.New("disk full") }
	m := NewEditorModel(d, "doc.json", 10, failing)

	m, _ = keys(t, m, keyEnter, runes("L"), runes("s"))
	if m.Err == nil || !m.Dirty {
		t.Errorf("failed save: Err = %v Dirty = %v, want error and dirty", m.Err, m.Dirty)
	}
}

func TestEditorView(t *testing.T) {
	d := editorDoc(t)
	m := NewEditorModel(d, "doc.json", 10, nopSave)
	m, _ = keys(t, m, keyEnter, runes("L"))

	view := m.View()
	for _, want := range []string{"doc.json *", "Panel", "OK", "container", "20,20", "move"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestEditorScroll(t *testing.T) {
	d := editorDoc(t)
	m := NewEditorModel(d, "doc.json", 10, nopSave)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	m = next.(EditorModel)
	if m.Height != 5 {
		t.Errorf("Height = %d, want minimum 5", m.Height)
	}
	m.Height = 1
	m, _ = keys(t, m, runes("j"))
	if m.Offset != 1 {
		t.Errorf("Offset = %d, want 1", m.Offset)
	}
}
