package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/uiforge/pkg/document"
	uiio "github.com/matzehuels/uiforge/pkg/io"
)

const testDoc = `{
  "version": 1,
  "canvas": {"width": 800, "height": 600},
  "elements": [
    {"id": "panel", "name": "Panel", "kind": "container", "h_align": "Left", "v_align": "Top",
     "margin": {"left": 10, "top": 20}, "width": 400, "height": 300},
    {"id": "ok", "name": "OK", "kind": "image", "parent": "panel", "h_align": "Right", "v_align": "Bottom",
     "margin": {"right": 10, "bottom": 10}, "width": 80, "height": 30},
    {"id": "logo", "name": "Logo", "kind": "image", "h_align": "Left", "v_align": "Top",
     "margin": {"left": 500, "top": 40}, "width": 64, "height": 64}
  ]
}`

// overflowDoc has a child that extends past the right edge of its parent.
const overflowDoc = `{
  "version": 1,
  "elements": [
    {"id": "panel", "name": "Panel", "kind": "container", "h_align": "Left", "v_align": "Top",
     "width": 100, "height": 100},
    {"id": "wide", "name": "Wide", "kind": "image", "parent": "panel", "h_align": "Left", "v_align": "Top",
     "margin": {"left": 60}, "width": 80, "height": 20}
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns what it wrote to the
// command output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.SetOutput(&out)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func openDoc(t *testing.T, path string) *document.Document {
	t.Helper()
	d, err := uiio.Open(path, document.DefaultOptions())
	if err != nil {
		t.Fatalf("Open(%s) error: %v", path, err)
	}
	return d
}

func TestInspectCommand(t *testing.T) {
	in := writeFile(t, t.TempDir(), "doc.json", testDoc)

	out, err := run(t, "inspect", in)
	if err != nil {
		t.Fatalf("inspect error: %v", err)
	}
	for _, want := range []string{"Panel", "OK", "Logo"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "inspect", in, "-e", "Missing"); err == nil {
		t.Error("inspect of an unknown element should fail")
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "doc.json", testDoc)
	out := filepath.Join(dir, "doc.toml")

	if _, err := run(t, "convert", in, "-o", out); err != nil {
		t.Fatalf("convert error: %v", err)
	}
	d := openDoc(t, out)
	if d.Len() != 3 {
		t.Errorf("converted Len() = %d, want 3", d.Len())
	}
	ok, err := d.Find("OK")
	if err != nil {
		t.Fatal(err)
	}
	if ok.X != 310 || ok.Y != 260 {
		t.Errorf("OK position = %v,%v, want 310,260", ok.X, ok.Y)
	}
}

func TestConvertStdout(t *testing.T) {
	in := writeFile(t, t.TempDir(), "doc.json", testDoc)

	out, err := run(t, "convert", in, "-f", "toml")
	if err != nil {
		t.Fatalf("convert error: %v", err)
	}
	if !strings.Contains(out, "[[elements]]") {
		t.Errorf("TOML output missing [[elements]]:\n%s", out)
	}

	if _, err := run(t, "convert", in, "-f", "yaml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", testDoc)
	wide := writeFile(t, dir, "wide.json", overflowDoc)

	if _, err := run(t, "check", good, wide); err != nil {
		t.Errorf("check without --strict error: %v", err)
	}
	if _, err := run(t, "check", "--strict", wide); !errors.Is(err, errCheckFailed) {
		t.Errorf("check --strict error = %v, want errCheckFailed", err)
	}
	if _, err := run(t, "check", filepath.Join(dir, "missing.json")); !errors.Is(err, errCheckFailed) {
		t.Errorf("check of a missing file error = %v, want errCheckFailed", err)
	}
}

func TestOverflowWarnings(t *testing.T) {
	wide := writeFile(t, t.TempDir(), "wide.json", overflowDoc)
	got := overflowWarnings(openDoc(t, wide))
	if len(got) != 1 || !strings.Contains(got[0], "Wide extends outside Panel") {
		t.Errorf("overflowWarnings() = %v, want one warning for Wide", got)
	}
}

func TestSetCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "doc.json", testDoc)
	out := filepath.Join(dir, "out.json")

	if _, err := run(t, "set", in, "-e", "OK", "width=120", "locked=true", "-o", out); err != nil {
		t.Fatalf("set error: %v", err)
	}
	ok, err := openDoc(t, out).Find("OK")
	if err != nil {
		t.Fatal(err)
	}
	if ok.Width != 120 || !ok.Locked {
		t.Errorf("OK width = %v locked = %v, want 120 true", ok.Width, ok.Locked)
	}

	// The input is untouched when -o is given.
	if orig, _ := openDoc(t, in).Find("OK"); orig.Width != 80 {
		t.Errorf("input width = %v, want 80", orig.Width)
	}

	if _, err := run(t, "set", in, "-e", "OK", "width"); err == nil {
		t.Error("assignment without = should fail")
	}
	if _, err := run(t, "set", in, "-e", "OK", "colour=red"); err == nil {
		t.Error("unknown property should fail")
	}
}

func TestAlignCommand(t *testing.T) {
	in := writeFile(t, t.TempDir(), "doc.json", testDoc)

	if _, err := run(t, "align", in, "align-top", "Panel", "Logo"); err != nil {
		t.Fatalf("align error: %v", err)
	}
	logo, err := openDoc(t, in).Find("Logo")
	if err != nil {
		t.Fatal(err)
	}
	if logo.Y != 20 {
		t.Errorf("Logo Y = %v, want 20", logo.Y)
	}

	if _, err := run(t, "align", in, "align-diagonal", "Panel", "Logo"); err == nil {
		t.Error("unknown operation should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "doc.json", testDoc)

	svg := filepath.Join(dir, "doc.svg")
	if _, err := run(t, "render", in, "-o", svg, "--select", "OK"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) || !bytes.Contains(data, []byte("el image selected")) {
		t.Errorf("wireframe SVG unexpected:\n%s", data)
	}

	dot, err := run(t, "render", in, "-t", "tree", "-f", "dot", "-o", "-")
	if err != nil {
		t.Fatalf("render tree error: %v", err)
	}
	if !strings.Contains(dot, "digraph") || !strings.Contains(dot, "Panel") {
		t.Errorf("DOT output unexpected:\n%s", dot)
	}

	if _, err := run(t, "render", in, "-t", "pie"); err == nil {
		t.Error("unknown view should fail")
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := run(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q, want suffix %q", out, appName)
	}
}

func TestCacheInfoCommand(t *testing.T) {
	out, err := run(t, "cache", "info")
	if err != nil {
		t.Fatalf("cache info error: %v", err)
	}
	if !strings.HasPrefix(out, "0 entries, 0 B, 0 expired") {
		t.Errorf("cache info = %q, want empty cache", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCompleteElements(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	in := writeFile(t, t.TempDir(), "doc.json", testDoc)

	c := New(io.Discard, LogInfo)
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	got, directive := c.completeElements(cmd, []string{in}, "")
	want := []string{"Panel\tcontainer", "OK\timage", "Logo\timage"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("completeElements() = %q, want %q", got, want)
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", directive)
	}

	if got, _ := c.completeElements(cmd, []string{in}, "L"); len(got) != 1 || got[0] != "Logo\timage" {
		t.Errorf("completeElements(L) = %q, want [Logo]", got)
	}
	if _, directive := c.completeElements(cmd, []string{"missing.json"}, ""); directive != cobra.ShellCompDirectiveError {
		t.Errorf("missing document directive = %v, want Error", directive)
	}
}

func TestCompleteDocument(t *testing.T) {
	exts, directive := completeDocument(nil, nil, "")
	if strings.Join(exts, ",") != "json,toml" || directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("completeDocument() = %v, %v, want [json toml] FilterFileExt", exts, directive)
	}
	if exts, _ := completeDocument(nil, []string{"doc.json"}, ""); exts != nil {
		t.Errorf("completeDocument() after the file = %v, want nil", exts)
	}
}
