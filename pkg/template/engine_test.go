package template

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call, err error) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

func TestCopyArgs(t *testing.T) {
	tests := []struct {
		name string
		req  CopyRequest
		want string
	}{
		{
			name: "pinned ref",
			req:  CopyRequest{Source: "gh:jlevy/speculate", Dest: "/p", Ref: "v1.0.0"},
			want: "copy --vcs-ref v1.0.0 gh:jlevy/speculate /p",
		},
		{
			name: "overwrite accepts defaults",
			req:  CopyRequest{Source: "gh:jlevy/speculate", Dest: "/p", Ref: "HEAD", Overwrite: true},
			want: "copy --vcs-ref HEAD --overwrite --defaults gh:jlevy/speculate /p",
		},
		{
			name: "no ref",
			req:  CopyRequest{Source: "./tpl", Dest: "/p"},
			want: "copy ./tpl /p",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.Join(CopyArgs(tt.req), " "))
		})
	}
}

func TestCopier_Copy(t *testing.T) {
	var calls []call
	c := NewCopier("", nil, nil, nil).WithRunner(recorder(&calls, nil))

	err := c.Copy(context.Background(), CopyRequest{Source: "gh:jlevy/speculate", Dest: "/p", Ref: "HEAD"})
	require.NoError(t, err)

	require.Len(t, calls, 1)
	assert.Equal(t, "copier", calls[0].name)
	assert.Equal(t, []string{"copy", "--vcs-ref", "HEAD", "gh:jlevy/speculate", "/p"}, calls[0].args)
}

func TestCopier_CopyRequiresSourceAndDest(t *testing.T) {
	var calls []call
	c := NewCopier("", nil, nil, nil).WithRunner(recorder(&calls, nil))

	err := c.Copy(context.Background(), CopyRequest{Dest: "/p"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Empty(t, calls)
}

func TestCopier_Update(t *testing.T) {
	var calls []call
	c := NewCopier("/opt/bin/copier", nil, nil, nil).WithRunner(recorder(&calls, nil))

	require.NoError(t, c.Update(context.Background(), "/p"))

	require.Len(t, calls, 1)
	assert.Equal(t, "/opt/bin/copier", calls[0].name)
	assert.Equal(t, []string{"update", "--conflict", "inline", "/p"}, calls[0].args)
}

func TestCopier_RunFailure(t *testing.T) {
	boom := stderrors.New("boom")
	var calls []call
	c := NewCopier("", nil, nil, nil).WithRunner(recorder(&calls, boom))

	err := c.Update(context.Background(), "/p")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateEngine))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "copier", errors.GetErrorDetails(err)["command"])
}

func TestCopier_MissingExecutable(t *testing.T) {
	var stderr bytes.Buffer
	c := NewCopier("speculate-test-no-such-engine", nil, nil, &stderr)

	err := c.Copy(context.Background(), CopyRequest{Source: "a", Dest: t.TempDir()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateEngine))
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.Contains(t, errors.GetErrorDetails(err)["hint"], "copier")
}

func TestCopier_ExitCodeDetail(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	c := NewCopier("sh", nil, nil, nil).WithRunner(func(ctx context.Context, name string, _ ...string) error {
		return exec.CommandContext(ctx, name, "-c", "exit 3").Run()
	})

	err := c.Update(context.Background(), "/p")
	require.Error(t, err)
	assert.Equal(t, 3, errors.GetErrorDetails(err)["exit_code"])
}
