package cli

import (
	"slices"
	"testing"

	"github.com/matzehuels/uiforge/pkg/pipeline"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		def  string
		want []string
	}{
		{"", "svg", []string{"svg"}},
		{"svg", "svg", []string{"svg"}},
		{"SVG, png ,dot", "svg", []string{"svg", "png", "dot"}},
	}
	for _, tt := range tests {
		if got := parseList(tt.in, tt.def); !slices.Equal(got, tt.want) {
			t.Errorf("parseList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	svg := pipeline.Artifact{View: "wireframe", Format: "svg"}
	tree := pipeline.Artifact{View: "tree", Format: "png"}
	tests := []struct {
		name   string
		output string
		opts   pipeline.Options
		a      pipeline.Artifact
		want   string
	}{
		{"single explicit", "out.svg", pipeline.Options{Views: []string{"wireframe"}, Formats: []string{"svg"}}, svg, "out.svg"},
		{"single derived", "", pipeline.Options{Views: []string{"wireframe"}, Formats: []string{"svg"}}, svg, "login.svg"},
		{"one view many formats", "", pipeline.Options{Views: []string{"tree"}, Formats: []string{"svg", "png"}}, tree, "login.png"},
		{"many views", "", pipeline.Options{Views: []string{"wireframe", "tree"}, Formats: []string{"png"}}, tree, "login_tree.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := artifactPath(tt.output, "login", &tt.opts, tt.a); got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "screens/login.json", "screens/login"},
		{"out.svg", "login.json", "out"},
		{"out/login", "login.json", "out/login"},
		{"login.v2", "login.json", "login.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		output, format string
		want           string
		wantErr        bool
	}{
		{"", "", "json", false},
		{"-", "toml", "toml", false},
		{"doc.toml", "", "toml", false},
		{"doc.json", "toml", "json", false},
		{"doc.yaml", "", "", true},
	}
	for _, tt := range tests {
		got, err := outputFormat(tt.output, tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("outputFormat(%q, %q) error = %v, wantErr %v", tt.output, tt.format, err, tt.wantErr)
			continue
		}
		if err == nil && got.String() != tt.want {
			t.Errorf("outputFormat(%q, %q) = %s, want %s", tt.output, tt.format, got, tt.want)
		}
	}
}

func TestDepth(t *testing.T) {
	d := editorDoc(t)
	if got := depth(d.Elements()); got != 2 {
		t.Errorf("depth() = %d, want 2", got)
	}
	if got := depth(nil); got != 0 {
		t.Errorf("depth(nil) = %d, want 0", got)
	}
}
