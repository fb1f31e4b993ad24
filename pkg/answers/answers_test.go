package answers

import (
	"os"
	"testing"

	"github.com/arthur-debert/speculate/pkg/filesystem"
	"github.com/arthur-debert/speculate/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteFile(FileName, "# Changes here will be overwritten by Copier\n_commit: v0.2.1\n_src_path: gh:jlevy/speculate\n")

	a, err := Load(filesystem.NewOS(), p.Root)
	require.NoError(t, err)
	assert.Equal(t, "v0.2.1", a.Commit)
	assert.Equal(t, "gh:jlevy/speculate", a.SrcPath)
}

func TestLoad_Missing(t *testing.T) {
	p := testutil.NewProject(t)

	_, err := Load(filesystem.NewOS(), p.Root)
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErr    bool
		wantCommit string
		wantSrc    string
	}{
		{"missing fields", "other: 1\n", false, Unknown, Unknown},
		{"numeric commit", "_commit: 12345\n", false, "12345", Unknown},
		{"null commit", "_commit:\n", false, Unknown, Unknown},
		{"malformed yaml", "_commit: [unclosed\n", true, "", ""},
		{"scalar document", "just a string\n", true, "", ""},
		{"sequence document", "- a\n- b\n", true, "", ""},
		{"empty document", "", false, Unknown, Unknown},
		{"null document", "~\n", false, Unknown, Unknown},
		{"comment only", "# nothing answered yet\n", false, Unknown, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse([]byte(tt.content))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCommit, a.Commit)
			assert.Equal(t, tt.wantSrc, a.SrcPath)
		})
	}
}
