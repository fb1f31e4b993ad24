package speculate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/template"
	"github.com/arthur-debert/speculate/pkg/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine stands in for copier
type fakeEngine struct {
	command string
	copies  []template.CopyRequest
	updates []string
}

func (f *fakeEngine) Copy(_ context.Context, req template.CopyRequest) error {
	f.copies = append(f.copies, req)
	files := map[string]string{
		"docs/development.md":                 "# Development\n",
		"docs/general/agent-rules/general.md": "# general\n",
		".copier-answers.yml":                 "_commit: v1.0.0\n",
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

func (f *fakeEngine) Update(_ context.Context, dest string) error {
	f.updates = append(f.updates, dest)
	return nil
}

// isolate points every user level path at temp dirs and swaps in a fake
// template engine and a fixed version.
func isolate(t *testing.T) *fakeEngine {
	t.Helper()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	engine := &fakeEngine{}
	origEngine, origVersion := newEngine, lookupVersion
	newEngine = func(command string, _ *cobra.Command) template.Engine {
		engine.command = command
		return engine
	}
	lookupVersion = func() (string, error) { return "0.3.0", nil }
	t.Cleanup(func() {
		newEngine, lookupVersion = origEngine, origVersion
	})
	return engine
}

// run executes the root command and returns its standard output
func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_NoCommand(t *testing.T) {
	isolate(t)

	out, err := run(t, "")
	require.Error(t, err)
	assert.Equal(t, MsgErrNoCommand, err.Error())
	assert.Contains(t, out, "install")
}

func TestRootCmd_InvalidFormat(t *testing.T) {
	isolate(t)
	p := testutil.NewDocsProject(t, "general.md")

	_, err := run(t, "", "install", "--root", p.Root, "--format", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --format")
	assert.False(t, p.Exists("CLAUDE.md"))
}

func TestInstallCmd(t *testing.T) {
	isolate(t)
	p := testutil.NewDocsProject(t, "general.md", "python-use.md")

	out, err := run(t, "", "install", "--root", p.Root)
	require.NoError(t, err)

	assert.True(t, p.Exists("CLAUDE.md"))
	assert.True(t, p.Exists("AGENTS.md"))
	assert.Len(t, p.Links(".cursor/rules"), 2)
	assert.Contains(t, p.ReadFile(".speculate/settings.yml"), "last_cli_version: 0.3.0")
	assert.Contains(t, out, "Tool configs installed!")
}

func TestInstallCmd_Filters(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   []string
	}{
		{
			name: "all rules by default",
			want: []string{"convex-rules.mdc", "general.mdc", "python-use.mdc"},
		},
		{
			name: "include flag",
			args: []string{"--include", "general*", "--include", "python*"},
			want: []string{"general.mdc", "python-use.mdc"},
		},
		{
			name: "exclude flag",
			args: []string{"--exclude", "convex*"},
			want: []string{"general.mdc", "python-use.mdc"},
		},
		{
			name:   "project config applies without flags",
			config: "[install]\nexclude = [\"python*\"]\n",
			want:   []string{"convex-rules.mdc", "general.mdc"},
		},
		{
			name:   "flag replaces project config",
			config: "[install]\nexclude = [\"python*\"]\n",
			args:   []string{"--exclude", "general*"},
			want:   []string{"convex-rules.mdc", "python-use.mdc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			p := testutil.NewDocsProject(t, "general.md", "python-use.md", "convex-rules.md")
			if tt.config != "" {
				p.WriteFile(".speculate/config.toml", tt.config)
			}

			args := append([]string{"install", "--root", p.Root}, tt.args...)
			_, err := run(t, "", args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Names(".cursor/rules"))
		})
	}
}

func TestInstallCmd_MissingDocs(t *testing.T) {
	isolate(t)
	p := testutil.NewProject(t)

	out, err := run(t, "", "install", "--root", p.Root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingDocs))
	assert.Contains(t, out, "No docs/ directory found")
	assert.False(t, p.Exists("CLAUDE.md"))
}

func TestInitCmd(t *testing.T) {
	engine := isolate(t)
	p := testutil.NewProject(t)

	out, err := run(t, "", "init", p.Root, "--overwrite", "--template", "gh:me/docs", "--ref", "v2.0.0")
	require.NoError(t, err)

	assert.Equal(t, "copier", engine.command)
	require.Len(t, engine.copies, 1)
	assert.Equal(t, template.CopyRequest{
		Source:    "gh:me/docs",
		Dest:      p.Root,
		Ref:       "v2.0.0",
		Overwrite: true,
	}, engine.copies[0])
	assert.True(t, p.Exists("CLAUDE.md"))
	assert.Equal(t, []string{"general.mdc"}, p.Names(".cursor/rules"))
	assert.Contains(t, out, "Required next step:")
}

func TestInitCmd_ConfigDefaultsAndPrompt(t *testing.T) {
	engine := isolate(t)
	p := testutil.NewProject(t)

	_, err := run(t, "\n", "init", p.Root)
	require.NoError(t, err)

	require.Len(t, engine.copies, 1)
	assert.Equal(t, "gh:jlevy/speculate", engine.copies[0].Source)
	assert.Equal(t, "HEAD", engine.copies[0].Ref)
	assert.False(t, engine.copies[0].Overwrite)
}

func TestInitCmd_Declined(t *testing.T) {
	engine := isolate(t)
	p := testutil.NewProject(t)

	out, err := run(t, "n\n", "init", p.Root)
	require.NoError(t, err)
	assert.Empty(t, engine.copies)
	assert.Contains(t, out, "Cancelled.")
}

func TestUpdateCmd(t *testing.T) {
	engine := isolate(t)
	p := testutil.NewDocsProject(t, "general.md")
	p.WriteFile(".copier-answers.yml", "_commit: v1.0.0\n")

	out, err := run(t, "", "update", "--root", p.Root)
	require.NoError(t, err)
	assert.Equal(t, []string{p.Root}, engine.updates)
	assert.True(t, p.Exists("CLAUDE.md"))
	assert.Contains(t, out, "Docs updated successfully!")
}

func TestUpdateCmd_NotInitialized(t *testing.T) {
	engine := isolate(t)
	p := testutil.NewDocsProject(t, "general.md")

	_, err := run(t, "", "update", "--root", p.Root)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotInitialized))
	assert.Empty(t, engine.updates)
}

func TestStatusCmd(t *testing.T) {
	tests := []struct {
		name    string
		answers bool
		devDoc  bool
		code    errors.ErrorCode
	}{
		{name: "initialized", answers: true, devDoc: true},
		{name: "no answers file is reported only", devDoc: true},
		{name: "no development guide", answers: true, code: errors.ErrDevDocMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			p := testutil.NewDocsProject(t, "general.md")
			if tt.answers {
				p.WriteFile(".copier-answers.yml", "_commit: v1.0.0\n_src_path: gh:jlevy/speculate\n")
			}
			if tt.devDoc {
				p.WriteFile("docs/development.md", "# Dev\n")
			}

			out, err := run(t, "", "status", "--root", p.Root)
			assert.Contains(t, out, "Speculate Status")
			if tt.code == "" {
				require.NoError(t, err)
				if tt.answers {
					assert.Contains(t, out, "Template version: v1.0.0")
				} else {
					assert.Contains(t, out, "No .copier-answers.yml (not initialized)")
				}
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code))
		})
	}
}

func TestVersionCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "speculate 0.3.0")
	assert.Contains(t, out, "commit:")
}

func TestCompletionCmd(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, "", "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "speculate")
		})
	}

	_, err := run(t, "", "completion", "tcsh")
	assert.Error(t, err)
}

func TestManCmd(t *testing.T) {
	isolate(t)

	out, err := run(t, "", "man")
	require.NoError(t, err)
	assert.Contains(t, out, "SPECULATE")
}
