package update

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/installer"
	"github.com/arthur-debert/speculate/pkg/template"
	"github.com/arthur-debert/speculate/pkg/testutil"
	"github.com/arthur-debert/speculate/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	updated  []string
	onUpdate func(dest string)
	err      error
}

func (f *fakeEngine) Copy(context.Context, template.CopyRequest) error { return nil }

func (f *fakeEngine) Update(_ context.Context, dest string) error {
	f.updated = append(f.updated, dest)
	if f.err != nil {
		return f.err
	}
	if f.onUpdate != nil {
		f.onUpdate(dest)
	}
	return nil
}

func options(p *testutil.Project, engine template.Engine, out *bytes.Buffer) Options {
	return Options{
		Root:    p.Root,
		Version: func() (string, error) { return "0.3.0", nil },
		Engine:  engine,
		Printer: ui.NewPrinter(out, ui.FormatText),
	}
}

func TestUpdate_RunsEngineThenInstall(t *testing.T) {
	p := testutil.NewDocsProject(t, "a.md")
	p.WriteFile(".copier-answers.yml", "_commit: v1.0.0\n")
	engine := &fakeEngine{onUpdate: func(string) {
		// upstream adds a rule
		p.WriteFile(testutil.RulesDir+"/b.md", "# b\n")
		p.WriteFile(".copier-answers.yml", "_commit: v1.1.0\n")
	}}
	var out bytes.Buffer

	result, err := Update(context.Background(), options(p, engine, &out))
	require.NoError(t, err)

	assert.Equal(t, []string{p.Root}, engine.updated)
	assert.Equal(t, installer.Success, result.State)
	assert.Equal(t, 2, result.Linked())
	assert.Contains(t, p.ReadFile(".speculate/settings.yml"), "last_docs_version: v1.1.0")

	assert.Contains(t, out.String(), "Updating docs from upstream template...")
	assert.Contains(t, out.String(), "✔ Docs updated successfully!")
	assert.Contains(t, out.String(), "Tool configs installed!")
}

func TestUpdate_RequiresAnswersFile(t *testing.T) {
	p := testutil.NewDocsProject(t, "a.md")
	engine := &fakeEngine{}
	var out bytes.Buffer

	_, err := Update(context.Background(), options(p, engine, &out))
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInitialized))
	assert.Empty(t, engine.updated)
	assert.False(t, p.Exists(".speculate"))
	assert.Contains(t, out.String(), "✗ No .copier-answers.yml found")
	assert.Contains(t, out.String(), "speculate init")
}

func TestUpdate_EngineFailureSkipsInstall(t *testing.T) {
	p := testutil.NewDocsProject(t, "a.md")
	p.WriteFile(".copier-answers.yml", "_commit: v1.0.0\n")
	engine := &fakeEngine{err: errors.New(errors.ErrTemplateEngine, "copier update failed")}
	var out bytes.Buffer

	_, err := Update(context.Background(), options(p, engine, &out))
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateEngine))
	assert.False(t, p.Exists("CLAUDE.md"))
	assert.NotContains(t, out.String(), "Docs updated successfully")
}
