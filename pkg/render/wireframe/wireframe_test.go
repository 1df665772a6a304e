package wireframe

import (
	"strings"
	"testing"

	"github.com/matzehuels/uiforge/pkg/scene"
)

func build(t *testing.T) (*scene.Graph, *scene.Element, *scene.Element) {
	t.Helper()
	g := scene.New()
	root := scene.NewSystemRoot(800, 600)
	panel := scene.NewElement(scene.KindContainer, "Panel")
	panel.ID = "panel"
	panel.X, panel.Y, panel.Width, panel.Height = 10, 20, 400, 300
	ok := scene.NewElement(scene.KindButton, "OK")
	ok.ID = "ok"
	ok.Text = "Save & close"
	ok.X, ok.Y, ok.Width, ok.Height = 310, 260, 80, 30

	for _, step := range []func() error{
		func() error { return g.AddRoot(root) },
		func() error { return g.Insert(root, panel, -1) },
		func() error { return g.Insert(panel, ok, -1) },
	} {
		if err := step(); err != nil {
			t.Fatal(err)
		}
	}
	return g, panel, ok
}

func TestRenderSVG(t *testing.T) {
	g, _, ok := build(t)
	svg := string(RenderSVG(g.Roots(), 800, 600, WithHighlight(ok)))

	for _, want := range []string{
		`viewBox="0 0 800.0 600.0"`,
		`id="el-panel" class="el container" x="10.0" y="20.0" width="400.0" height="300.0"`,
		`id="el-ok" class="el button selected" x="320.0" y="280.0"`,
		`clip-path="url(#clip-1)"`,
		"Save &amp; close",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() missing %s\n%s", want, svg)
		}
	}
	if strings.Contains(svg, `id="el-`+g.Roots()[0].ID) {
		t.Error("RenderSVG() drew the system root")
	}
	if strings.Index(svg, `id="el-panel"`) > strings.Index(svg, `id="el-ok"`) {
		t.Error("child drawn before its parent")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	g, panel, _ := build(t)
	panel.AllowOverflow = true
	panel.Locked = true
	svg := string(RenderSVG(g.Roots(), 800, 600, WithoutLabels(), WithFill(scene.KindButton, "red")))

	if strings.Contains(svg, "<text") {
		t.Error("WithoutLabels() still emitted text")
	}
	if strings.Contains(svg, "clipPath") {
		t.Error("overflowing container should not clip")
	}
	if !strings.Contains(svg, `class="el container locked"`) {
		t.Error("locked element missing locked class")
	}
	if !strings.Contains(svg, `fill="red"`) {
		t.Error("WithFill() not applied")
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		n    int
		want float64
	}{
		{1000, 1000, 1, fontSizeMax},
		{1, 1, 1, fontSizeMin},
		{100, 20, 1, 12},
	}
	for _, tt := range tests {
		if got := fontSize(tt.w, tt.h, tt.n); got != tt.want {
			t.Errorf("fontSize(%v, %v, %d) = %v, want %v", tt.w, tt.h, tt.n, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 200, 10); got != "short" {
		t.Errorf("truncate() = %q, want %q", got, "short")
	}
	got := truncate("a very long label indeed", 40, 10)
	if !strings.HasSuffix(got, "..") || len([]rune(got)) > 6 {
		t.Errorf("truncate() = %q, want at most 6 runes ending in ..", got)
	}
}
