package initialize

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/installer"
	"github.com/arthur-debert/speculate/pkg/template"
	"github.com/arthur-debert/speculate/pkg/testutil"
	"github.com/arthur-debert/speculate/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine writes a minimal docs tree the way copier would
type fakeEngine struct {
	copies []template.CopyRequest
	err    error
}

func (f *fakeEngine) Copy(_ context.Context, req template.CopyRequest) error {
	f.copies = append(f.copies, req)
	if f.err != nil {
		return f.err
	}
	files := map[string]string{
		"docs/docs-overview.md":                  "# Overview\n",
		"docs/project/development.sample.md":     "# Development (sample)\n",
		"docs/general/agent-rules/general.md":    "# general\n",
		"docs/general/agent-rules/python-use.md": "# python\n",
		".copier-answers.yml":                    "_commit: v1.0.0\n_src_path: " + req.Source + "\n",
	}
	for rel, content := range files {
		path := filepath.Join(req.Dest, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeEngine) Update(context.Context, string) error { return nil }

type harness struct {
	engine *fakeEngine
	out    bytes.Buffer
}

func (h *harness) options(dest, input string, overwrite bool) InitOptions {
	return InitOptions{
		Dest:      dest,
		Source:    "gh:jlevy/speculate",
		Ref:       "HEAD",
		Overwrite: overwrite,
		Version:   func() (string, error) { return "0.3.0", nil },
		Engine:    h.engine,
		Prompter:  ui.NewPrompter(strings.NewReader(input), &h.out),
		Printer:   ui.NewPrinter(&h.out, ui.FormatText),
	}
}

func newHarness() *harness {
	return &harness{engine: &fakeEngine{}}
}

func TestInit_FreshProject(t *testing.T) {
	p := testutil.NewProject(t)
	h := newHarness()

	result, err := Init(context.Background(), h.options(p.Root, "\n", false))
	require.NoError(t, err)

	require.Len(t, h.engine.copies, 1)
	assert.Equal(t, template.CopyRequest{Source: "gh:jlevy/speculate", Dest: p.Root, Ref: "HEAD"}, h.engine.copies[0])

	assert.False(t, result.Cancelled)
	assert.True(t, result.DevDocCreated)
	assert.Equal(t, "# Development (sample)\n", p.ReadFile("docs/development.md"))
	assert.Equal(t, 5, result.Docs.Files)

	require.NotNil(t, result.Install)
	assert.Equal(t, installer.Success, result.Install.State)
	assert.Equal(t, 2, result.Install.Linked())
	assert.True(t, p.Exists("CLAUDE.md"))

	out := h.out.String()
	assert.Contains(t, out, "Proceed? [Y/n]")
	assert.NotContains(t, out, "Reinitialize anyway?")
	assert.Contains(t, out, "✔ Created docs/development.md from template")
	assert.Contains(t, out, "✔ Docs installed (5 files, ")
	assert.Contains(t, out, "Tool configs installed!")
	assert.Contains(t, out, "Required next step:")
}

func TestInit_DeclineProceed(t *testing.T) {
	p := testutil.NewProject(t)
	h := newHarness()

	result, err := Init(context.Background(), h.options(p.Root, "n\n", false))
	require.NoError(t, err)

	assert.True(t, result.Cancelled)
	assert.Empty(t, h.engine.copies)
	assert.Empty(t, p.Names("."))
	assert.Contains(t, h.out.String(), "Cancelled.")
}

func TestInit_ExistingDocsAsksToReinitialize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cancelled bool
	}{
		{"default declines", "\n", true},
		{"explicit no", "n\n", true},
		{"yes then proceed", "y\n\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testutil.NewProject(t)
			p.WriteFile("docs/development.md", "# Mine\n")
			h := newHarness()

			result, err := Init(context.Background(), h.options(p.Root, tt.input, false))
			require.NoError(t, err)

			assert.Equal(t, tt.cancelled, result.Cancelled)
			assert.Contains(t, h.out.String(), "Reinitialize anyway? [y/N]")
			assert.Contains(t, h.out.String(), "speculate update")
			if tt.cancelled {
				assert.Empty(t, h.engine.copies)
				return
			}
			require.Len(t, h.engine.copies, 1)
			// an existing development guide is never replaced
			assert.False(t, result.DevDocCreated)
			assert.Equal(t, "# Mine\n", p.ReadFile("docs/development.md"))
		})
	}
}

func TestInit_OverwriteSkipsPrompts(t *testing.T) {
	p := testutil.NewProject(t)
	p.Mkdir("docs")
	h := newHarness()

	opts := h.options(p.Root, "", true)
	opts.Prompter = nil

	result, err := Init(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	require.Len(t, h.engine.copies, 1)
	assert.True(t, h.engine.copies[0].Overwrite)
	assert.NotContains(t, h.out.String(), "[Y/n]")
}

func TestInit_NoPrompterWithoutOverwrite(t *testing.T) {
	p := testutil.NewProject(t)
	h := newHarness()
	opts := h.options(p.Root, "", false)
	opts.Prompter = nil

	_, err := Init(context.Background(), opts)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, h.engine.copies)
}

func TestInit_EngineFailure(t *testing.T) {
	p := testutil.NewProject(t)
	h := newHarness()
	h.engine.err = errors.New(errors.ErrTemplateEngine, "copier copy failed")

	_, err := Init(context.Background(), h.options(p.Root, "y\n", false))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateEngine))
	assert.False(t, p.Exists("CLAUDE.md"))
	assert.Contains(t, h.out.String(), "✗ Template copy failed")
}

func TestInit_RelativeDestination(t *testing.T) {
	p := testutil.NewProject(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(p.Root))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	h := newHarness()

	_, err = Init(context.Background(), h.options(".", "\n", false))
	require.NoError(t, err)

	require.Len(t, h.engine.copies, 1)
	assert.True(t, filepath.IsAbs(h.engine.copies[0].Dest))
}
