package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ronappleton/autotests-backend/internal/order"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"class.tpl": &fstest.MapFile{Data: []byte("class {{.Title}} {\n{{.Steps}}}\n")},
		"step.tpl":  &fstest.MapFile{Data: []byte("  step[{{.Step}}]\n")},
	}
}

func TestGenerator_Render(t *testing.T) {
	tests := []struct {
		name  string
		order order.Order
		want  string
	}{
		{
			name:  "two steps in order",
			order: order.Order{Title: "T", Steps: "step A\nstep B"},
			want:  "class T {\n  step[step A]\n  step[step B]\n}\n",
		},
		{
			name:  "CRLF steps",
			order: order.Order{Title: "T", Steps: "step A\r\nstep B"},
			want:  "class T {\n  step[step A]\n  step[step B]\n}\n",
		},
		{
			name:  "empty line renders an empty step",
			order: order.Order{Title: "T", Steps: "a\n\nb"},
			want:  "class T {\n  step[a]\n  step[]\n  step[b]\n}\n",
		},
		{
			name:  "template syntax in step text is substituted verbatim",
			order: order.Order{Title: "T", Steps: "{{.Title}}"},
			want:  "class T {\n  step[{{.Title}}]\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithFS(testFS(), "class.tpl", "step.tpl")
			got, err := g.Render(tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerator_Render_Deterministic(t *testing.T) {
	g := New("", "")
	o := order.Order{Title: "Login test", Steps: "Open page\nEnter credentials\nSubmit"}

	first, err := g.Render(o)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := g.Render(o)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestGenerator_Render_EmbeddedDefaults(t *testing.T) {
	g := New("", "")
	got, err := g.Render(order.Order{Title: "Login test", Steps: "Open page\nEnter credentials\nSubmit"})
	require.NoError(t, err)

	assert.Contains(t, got, `@DisplayName("Login test")`)
	assert.Equal(t, 1, strings.Count(got, "public class AppTests"))
	assert.Equal(t, 3, strings.Count(got, "step(\""))

	open := strings.Index(got, `step("Open page"`)
	enter := strings.Index(got, `step("Enter credentials"`)
	submit := strings.Index(got, `step("Submit"`)
	require.True(t, open >= 0 && enter >= 0 && submit >= 0)
	assert.True(t, open < enter && enter < submit, "steps must keep input order")
}

func TestGenerator_Render_FromDisk(t *testing.T) {
	dir := t.TempDir()
	classPath := filepath.Join(dir, "AppTests.java.tpl")
	stepPath := filepath.Join(dir, "step.tpl")
	require.NoError(t, os.WriteFile(classPath, []byte("<{{.Title}}|{{.Steps}}>"), 0o644))
	require.NoError(t, os.WriteFile(stepPath, []byte("({{.Step}})"), 0o644))

	g := New(classPath, stepPath)
	got, err := g.Render(order.Order{Title: "T", Steps: "a\nb"})
	require.NoError(t, err)
	assert.Equal(t, "<T|(a)(b)>", got)

	// templates are re-read on every render
	require.NoError(t, os.WriteFile(stepPath, []byte("[{{.Step}}]"), 0o644))
	got, err = g.Render(order.Order{Title: "T", Steps: "a"})
	require.NoError(t, err)
	assert.Equal(t, "<T|[a]>", got)
}

func TestGenerator_Render_Errors(t *testing.T) {
	tests := []struct {
		name        string
		fsys        fstest.MapFS
		errContains string
	}{
		{
			name:        "missing class template",
			fsys:        fstest.MapFS{"step.tpl": &fstest.MapFile{Data: []byte("{{.Step}}")}},
			errContains: "failed to read class template",
		},
		{
			name:        "missing step template",
			fsys:        fstest.MapFS{"class.tpl": &fstest.MapFile{Data: []byte("{{.Title}}")}},
			errContains: "failed to read step template",
		},
		{
			name: "invalid step template syntax",
			fsys: fstest.MapFS{
				"class.tpl": &fstest.MapFile{Data: []byte("{{.Title}}")},
				"step.tpl":  &fstest.MapFile{Data: []byte("{{.Step")},
			},
			errContains: "failed to parse step template",
		},
		{
			name: "unknown placeholder in class template",
			fsys: fstest.MapFS{
				"class.tpl": &fstest.MapFile{Data: []byte("{{.Name}}")},
				"step.tpl":  &fstest.MapFile{Data: []byte("{{.Step}}")},
			},
			errContains: "failed to render test class",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewWithFS(tt.fsys, "class.tpl", "step.tpl")
			_, err := g.Render(order.Order{Title: "T", Steps: "a"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
