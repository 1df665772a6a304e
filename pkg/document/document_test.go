package document

import (
	"errors"
	"math"
	"testing"

	"github.com/matzehuels/uiforge/pkg/arrange"
	"github.com/matzehuels/uiforge/pkg/command"
	"github.com/matzehuels/uiforge/pkg/coords"
	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/layout"
	"github.com/matzehuels/uiforge/pkg/scene"
)

func f(v float64) *float64 { return &v }

func sampleRecords() []layout.Record {
	return []layout.Record{
		{ID: "ok", Name: "OK", Kind: "button", ParentID: "panel", HAlign: "Right", VAlign: "Bottom",
			Margin: &layout.MarginRecord{Right: 10, Bottom: 10}, Width: f(80), Height: f(30)},
		{ID: "panel", Name: "Panel", Kind: "container", HAlign: "Left", VAlign: "Top",
			Margin: &layout.MarginRecord{Left: 10, Top: 20}, Width: f(400), Height: f(300)},
		{ID: "title", Name: "Title", Kind: "text", ParentID: "panel", HAlign: "Stretch", VAlign: "Top",
			Margin: &layout.MarginRecord{Left: 5, Right: 5, Top: 5}, Height: f(24), Text: "Settings"},
		{ID: "board", Name: "Board", Kind: "canvas", HAlign: "Center", VAlign: "Center",
			Width: f(200), Height: f(200)},
		{ID: "piece", Name: "Piece", Kind: "image", ParentID: "board", HAlign: "Right",
			Margin: &layout.MarginRecord{Left: 50, Top: 75}, Width: f(10), Height: f(10)},
	}
}

func mustLoad(t *testing.T, records []layout.Record) *Document {
	t.Helper()
	d, err := Load(records, DefaultOptions())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return d
}

func find(t *testing.T, d *Document, key string) *scene.Element {
	t.Helper()
	e, err := d.Find(key)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestLoad(t *testing.T) {
	d := mustLoad(t, sampleRecords())

	if d.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", d.Len())
	}
	if got := d.Elements(); len(got) != 2 || got[0].Name != "Panel" || got[1].Name != "Board" {
		t.Errorf("top level = %v", got)
	}

	tests := []struct {
		key  string
		want scene.Rect
	}{
		{"panel", scene.Rect{X: 10, Y: 20, Width: 400, Height: 300}},
		{"ok", scene.Rect{X: 310, Y: 260, Width: 80, Height: 30}},
		{"title", scene.Rect{X: 5, Y: 5, Width: 390, Height: 24}},
		{"board", scene.Rect{X: 860, Y: 440, Width: 200, Height: 200}},
		{"piece", scene.Rect{X: 50, Y: 75, Width: 10, Height: 10}},
	}
	for _, tt := range tests {
		if got := find(t, d, tt.key).Bounds(); got != tt.want {
			t.Errorf("%s bounds = %+v, want %+v", tt.key, got, tt.want)
		}
	}

	panel := find(t, d, "Panel")
	if got := panel.Children(); len(got) != 2 || got[0].ID != "ok" || got[1].ID != "title" {
		t.Errorf("panel children out of record order")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	saved := d.Save()
	if len(saved) != 5 {
		t.Fatalf("Save() = %d records, want 5", len(saved))
	}
	again := mustLoad(t, saved)

	for _, e := range d.Graph().All() {
		if e.IsSystem {
			continue
		}
		other := find(t, again, e.ID)
		a, b := e.Bounds(), other.Bounds()
		if math.Abs(a.X-b.X) > 1e-6 || math.Abs(a.Y-b.Y) > 1e-6 ||
			math.Abs(a.Width-b.Width) > 1e-6 || math.Abs(a.Height-b.Height) > 1e-6 {
			t.Errorf("%s: %+v after round trip, want %+v", e.Name, b, a)
		}
		if e.HAlign != other.HAlign || e.VAlign != other.VAlign {
			t.Errorf("%s: alignment not sticky", e.Name)
		}
	}

	for _, r := range saved {
		if r.ID == "piece" && (r.Margin.Left != 50 || r.Margin.Top != 75) {
			t.Errorf("canvas child margin = %+v, want (50,75,...)", *r.Margin)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []layout.Record
	}{
		{"duplicate id", []layout.Record{{ID: "a", Kind: "button"}, {ID: "a", Kind: "text"}}},
		{"unknown parent", []layout.Record{{ID: "a", Kind: "button", ParentID: "ghost"}}},
		{"self parent", []layout.Record{{ID: "a", Kind: "container", ParentID: "a"}}},
		{"cycle", []layout.Record{
			{ID: "a", Kind: "container", ParentID: "b"},
			{ID: "b", Kind: "container", ParentID: "a"},
			{ID: "c", Kind: "button"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.records, DefaultOptions())
			if !uferrors.Is(err, uferrors.ErrCodeInvalidDocument) {
				t.Errorf("Load() error = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestLoadDefaultsAndNaming(t *testing.T) {
	d := mustLoad(t, []layout.Record{
		{ID: "a", Name: "Button3", Kind: "button"},
		{ID: "b", Kind: "button"},
		{ID: "c", Kind: "mystery"},
	})
	b := find(t, d, "b")
	if b.Name != "Button4" {
		t.Errorf("unnamed button = %q, want Button4", b.Name)
	}
	if b.HAlign != scene.AnchorStretch || b.VAlign != scene.AnchorStretch {
		t.Errorf("missing alignment = %v/%v, want stretch", b.HAlign, b.VAlign)
	}
	if c := find(t, d, "c"); c.Kind != scene.KindContainer {
		t.Errorf("unknown kind = %v, want container", c.Kind)
	}
	e, err := d.Create(scene.KindButton, nil, scene.Point{})
	if err != nil {
		t.Fatal(err)
	}
	if e.Name != "Button5" {
		t.Errorf("created name = %q, want Button5", e.Name)
	}
}

func TestCreateUndoRedo(t *testing.T) {
	d := New(Options{CanvasWidth: 800, CanvasHeight: 600, Snap: coords.Snap{Grid: true, GridSize: 10}})
	e, err := d.Create(scene.KindImage, nil, scene.Point{X: 42, Y: 17})
	if err != nil {
		t.Fatal(err)
	}
	if e.Parent() != d.Root() || e.Position() != (scene.Point{X: 40, Y: 20}) {
		t.Errorf("created at %v under %v", e.Position(), e.Parent())
	}
	if e.Width != 100 || e.Height != 100 {
		t.Errorf("default size = %vx%v, want 100x100", e.Width, e.Height)
	}
	if d.Selection().Primary() != e {
		t.Error("created element not selected")
	}
	if !d.Undo() || d.Len() != 0 || d.Selection().Len() != 0 {
		t.Errorf("after undo Len() = %d, selection %d", d.Len(), d.Selection().Len())
	}
	if !d.Redo() || d.Len() != 1 {
		t.Errorf("after redo Len() = %d", d.Len())
	}
}

func TestMoveByAndDelete(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	panel := find(t, d, "panel")
	ok := find(t, d, "ok")
	d.Select(panel, ok)

	if err := d.MoveBy(5, -5); err != nil {
		t.Fatal(err)
	}
	if panel.Position() != (scene.Point{X: 15, Y: 15}) {
		t.Errorf("panel at %v, want (15,15)", panel.Position())
	}
	if ok.Position() != (scene.Point{X: 310, Y: 260}) {
		t.Errorf("ok moved twice: %v", ok.Position())
	}

	if err := d.Delete(); err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 || d.Selection().Len() != 0 {
		t.Errorf("after delete Len() = %d, selection %d", d.Len(), d.Selection().Len())
	}
	d.Undo()
	if d.Len() != 5 || panel.Parent() != d.Root() || panel.ZIndex != 0 {
		t.Errorf("after undo Len() = %d, panel z %d", d.Len(), panel.ZIndex)
	}

	d.Select()
	if err := d.MoveBy(1, 1); !errors.Is(err, ErrEmptySelection) {
		t.Errorf("MoveBy(no selection) error = %v, want ErrEmptySelection", err)
	}
}

func TestDrop(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	board := find(t, d, "board")
	ok := find(t, d, "ok")
	world := coords.WorldPosition(ok)

	d.Select(ok)
	plan, err := d.Drop(board, 50, 100)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Parent != board || ok.Parent() != board {
		t.Fatalf("ok parent = %v, want board", ok.Parent().Name)
	}
	if got := coords.WorldPosition(ok); got != world {
		t.Errorf("world position %v, want %v", got, world)
	}

	d.Select(board)
	if _, err := d.Drop(ok, 50, 100); !errors.Is(err, ErrInvalidDrop) {
		t.Errorf("Drop(into own child) error = %v, want ErrInvalidDrop", err)
	}

	d.Undo()
	if ok.Parent() != find(t, d, "panel") || ok.Position() != (scene.Point{X: 310, Y: 260}) {
		t.Errorf("after undo ok under %v at %v", ok.Parent().Name, ok.Position())
	}
}

func TestDrag(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	d.SetSnap(coords.Snap{Pixel: true})
	panel := find(t, d, "panel")
	d.Select(panel)

	if err := d.BeginDrag(); err != nil {
		t.Fatal(err)
	}
	if err := d.BeginDrag(); !errors.Is(err, ErrDragActive) {
		t.Errorf("second BeginDrag() error = %v", err)
	}
	_ = d.DragBy(3.4, 0)
	_ = d.DragBy(3.4, 10)
	if panel.Position() != (scene.Point{X: 17, Y: 30}) {
		t.Errorf("preview at %v, want (17,30)", panel.Position())
	}
	if err := d.MoveBy(1, 1); !errors.Is(err, ErrDragActive) {
		t.Errorf("MoveBy during drag error = %v, want ErrDragActive", err)
	}
	if err := d.EndDrag(); err != nil {
		t.Fatal(err)
	}
	if d.Stack().UndoLen() != 1 {
		t.Fatalf("UndoLen() = %d, want 1", d.Stack().UndoLen())
	}
	d.Undo()
	if panel.Position() != (scene.Point{X: 10, Y: 20}) {
		t.Errorf("after undo at %v, want (10,20)", panel.Position())
	}

	if err := d.BeginDrag(); err != nil {
		t.Fatal(err)
	}
	_ = d.DragBy(100, 100)
	d.CancelDrag()
	if panel.Position() != (scene.Point{X: 10, Y: 20}) || d.Dragging() {
		t.Errorf("after cancel at %v", panel.Position())
	}
	if err := d.EndDrag(); !errors.Is(err, ErrNoDrag) {
		t.Errorf("EndDrag() without drag error = %v, want ErrNoDrag", err)
	}
}

func TestGroupUngroupAlign(t *testing.T) {
	d := New(DefaultOptions())
	a, _ := d.Create(scene.KindImage, nil, scene.Point{X: 0, Y: 0})
	b, _ := d.Create(scene.KindImage, nil, scene.Point{X: 300, Y: 200})

	d.Select(a, b)
	if err := d.Align(arrange.AlignTop); err != nil {
		t.Fatal(err)
	}
	if b.Y != 0 {
		t.Errorf("b.Y = %v, want 0", b.Y)
	}

	d.Select(a, b)
	g, err := d.Group()
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "Container1" || g.Bounds() != (scene.Rect{Width: 400, Height: 100}) {
		t.Errorf("group %s bounds %+v", g.Name, g.Bounds())
	}
	if err := d.Ungroup(); err != nil {
		t.Fatal(err)
	}
	if a.Parent() != d.Root() || b.Position() != (scene.Point{X: 300, Y: 0}) {
		t.Errorf("after ungroup b under %v at %v", b.Parent().Name, b.Position())
	}
	if err := d.Validate(); err != nil {
		t.Error(err)
	}
}

func TestZOrder(t *testing.T) {
	d := New(DefaultOptions())
	a, _ := d.Create(scene.KindImage, nil, scene.Point{})
	b, _ := d.Create(scene.KindImage, nil, scene.Point{})
	d.Select(a)
	if err := d.BringToFront(); err != nil {
		t.Fatal(err)
	}
	if a.ZIndex != 1 || b.ZIndex != 0 {
		t.Errorf("z = %d %d, want 1 0", a.ZIndex, b.ZIndex)
	}
	if err := d.SendToBack(); err != nil {
		t.Fatal(err)
	}
	if a.ZIndex != 0 {
		t.Errorf("a.ZIndex = %d, want 0", a.ZIndex)
	}
}

func TestSetProperty(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	title := find(t, d, "title")
	d.Select(title)

	if err := d.SetPropertyString(command.PropText, "Options"); err != nil {
		t.Fatal(err)
	}
	if title.Text != "Options" {
		t.Errorf("Text = %q", title.Text)
	}
	if err := d.SetProperty(command.PropName, command.String("")); !uferrors.Is(err, uferrors.ErrCodeInvalidInput) {
		t.Errorf("empty name error = %v, want INVALID_INPUT", err)
	}
	if err := d.SetPropertyString(command.PropLocked, "perhaps"); !uferrors.Is(err, uferrors.ErrCodeInvalidProperty) {
		t.Errorf("bad bool error = %v, want INVALID_PROPERTY", err)
	}
	d.Undo()
	if title.Text != "Settings" {
		t.Errorf("after undo Text = %q", title.Text)
	}
}

func savedMargin(t *testing.T, d *Document, id string) layout.MarginRecord {
	t.Helper()
	for _, r := range d.Save() {
		if r.ID == id {
			return *r.Margin
		}
	}
	t.Fatalf("Save() has no record %q", id)
	return layout.MarginRecord{}
}

func TestSetMarginRelayout(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	panel := find(t, d, "panel")
	d.Select(panel)

	if err := d.SetPropertyString(command.PropMarginLeft, "300"); err != nil {
		t.Fatal(err)
	}
	if panel.X != 300 {
		t.Errorf("X = %v, want 300", panel.X)
	}
	if got := savedMargin(t, d, "panel").Left; got != 300 {
		t.Errorf("saved margin.left = %v, want 300", got)
	}
	d.Undo()
	if panel.X != 10 || savedMargin(t, d, "panel").Left != 10 {
		t.Errorf("after undo X = %v, saved left = %v, want 10", panel.X, savedMargin(t, d, "panel").Left)
	}

	// Stretch reads both sides: the width follows the trailing margin.
	title := find(t, d, "title")
	d.Select(title)
	if err := d.SetPropertyString(command.PropMarginRight, "45"); err != nil {
		t.Fatal(err)
	}
	if title.X != 5 || title.Width != 350 {
		t.Errorf("title = %v,%v, want x 5 width 350", title.X, title.Width)
	}
	if got := savedMargin(t, d, "title").Right; got != 45 {
		t.Errorf("saved margin.right = %v, want 45", got)
	}
}

func TestSetMarginIgnoredByAnchor(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	tests := []struct {
		key  string
		prop command.Property
	}{
		{"ok", command.PropMarginLeft},     // right/bottom anchored
		{"piece", command.PropMarginRight}, // canvas child
	}
	for _, tt := range tests {
		e := find(t, d, tt.key)
		before := e.Bounds()
		d.Select(e)
		err := d.SetPropertyString(tt.prop, "7")
		if !uferrors.Is(err, uferrors.ErrCodeInvalidProperty) {
			t.Errorf("%s %s error = %v, want INVALID_PROPERTY", tt.key, tt.prop, err)
		}
		if e.Bounds() != before {
			t.Errorf("%s bounds changed to %+v", tt.key, e.Bounds())
		}
	}
	if d.Stack().CanUndo() {
		t.Error("rejected margin edits should not be recorded")
	}
}

func TestSetTextRemeasures(t *testing.T) {
	opts := DefaultOptions()
	opts.Measurer = layout.MeasureFunc(func(text string, size float64) (float64, float64) {
		return float64(len(text)) * size / 2, size
	})
	d, err := Load([]layout.Record{
		{ID: "label", Name: "Label", Kind: "text", HAlign: "Left", VAlign: "Top", Text: "Hi", FontSize: 20},
		{ID: "fixed", Name: "Fixed", Kind: "text", HAlign: "Left", VAlign: "Top", Text: "Hi", FontSize: 20,
			Width: f(120), Height: f(40)},
	}, opts)
	if err != nil {
		t.Fatal(err)
	}
	label, fixed := find(t, d, "label"), find(t, d, "fixed")
	pad := 2 * layout.TextPaddingX
	if label.Width != 20+pad {
		t.Fatalf("loaded width = %v, want %v", label.Width, 20+pad)
	}

	d.Select(label, fixed)
	if err := d.SetPropertyString(command.PropText, "Hello"); err != nil {
		t.Fatal(err)
	}
	if label.Width != 50+pad {
		t.Errorf("width after text = %v, want %v", label.Width, 50+pad)
	}
	if fixed.Width != 120 || fixed.Height != 40 {
		t.Errorf("explicit size changed to %vx%v", fixed.Width, fixed.Height)
	}

	d.Select(label)
	if err := d.SetPropertyString(command.PropFontSize, "30"); err != nil {
		t.Fatal(err)
	}
	if label.Width != 75+pad || label.Height != 30+2*layout.TextPaddingY {
		t.Errorf("size after font = %vx%v", label.Width, label.Height)
	}

	d.Undo()
	d.Undo()
	if label.Text != "Hi" || label.Width != 20+pad {
		t.Errorf("after undo text %q width %v, want Hi %v", label.Text, label.Width, 20+pad)
	}
}

func TestFind(t *testing.T) {
	d := mustLoad(t, sampleRecords())
	if _, err := d.Find("__root__"); !uferrors.Is(err, uferrors.ErrCodeElementNotFound) {
		t.Errorf("Find(system root) error = %v", err)
	}
	if e, err := d.Find("OK"); err != nil || e.ID != "ok" {
		t.Errorf("Find(OK) = %v, %v", e, err)
	}
}
