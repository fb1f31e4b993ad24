// Package template drives the external template engine that materializes the
// docs tree into a project. The default engine is the copier CLI.
package template

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/logging"
)

// DefaultCommand is the copier executable name
const DefaultCommand = "copier"

// Engine renders the project template into a destination
type Engine interface {
	// Copy materializes the template at req.Source into req.Dest
	Copy(ctx context.Context, req CopyRequest) error
	// Update merges upstream template changes into an initialized project
	Update(ctx context.Context, dest string) error
}

// CopyRequest describes a fresh template copy
type CopyRequest struct {
	Source string
	Dest   string
	// Ref is the template revision; empty means the engine default
	Ref string
	// Overwrite replaces existing files and accepts default answers
	Overwrite bool
}

// Runner executes name with args, with the process stdio attached
type Runner func(ctx context.Context, name string, args ...string) error

// Copier runs the copier CLI
type Copier struct {
	command string
	run     Runner
}

// NewCopier creates an engine invoking command, which defaults to copier.
// The child process shares the given stdio so copier can ask its questions.
func NewCopier(command string, stdin io.Reader, stdout, stderr io.Writer) *Copier {
	if command == "" {
		command = DefaultCommand
	}
	return &Copier{command: command, run: execRunner(stdin, stdout, stderr)}
}

// WithRunner replaces the process runner
func (c *Copier) WithRunner(run Runner) *Copier {
	c.run = run
	return c
}

// CopyArgs returns the copier arguments for req
func CopyArgs(req CopyRequest) []string {
	args := []string{"copy"}
	if req.Ref != "" {
		args = append(args, "--vcs-ref", req.Ref)
	}
	if req.Overwrite {
		args = append(args, "--overwrite", "--defaults")
	}
	return append(args, req.Source, req.Dest)
}

// UpdateArgs returns the copier arguments for updating dest. Conflicts are
// written inline so local edits survive the merge.
func UpdateArgs(dest string) []string {
	return []string{"update", "--conflict", "inline", dest}
}

// Copy implements Engine
func (c *Copier) Copy(ctx context.Context, req CopyRequest) error {
	if req.Source == "" || req.Dest == "" {
		return errors.New(errors.ErrInvalidInput, "template source and destination are required")
	}
	return c.invoke(ctx, CopyArgs(req))
}

// Update implements Engine
func (c *Copier) Update(ctx context.Context, dest string) error {
	return c.invoke(ctx, UpdateArgs(dest))
}

func (c *Copier) invoke(ctx context.Context, args []string) error {
	logger := logging.GetLogger("template")
	logging.LogCommand(c.command, args)

	err := c.run(ctx, c.command, args...)
	if err == nil {
		return nil
	}

	wrapped := errors.Wrapf(err, errors.ErrTemplateEngine, "%s %s failed", c.command, args[0]).
		WithDetail("command", c.command)
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		wrapped = wrapped.WithDetail("exit_code", exitErr.ExitCode())
	}
	if stderrors.Is(err, exec.ErrNotFound) {
		wrapped = wrapped.WithDetail("hint", "install copier, e.g. `pipx install copier`")
	}
	logger.Error().Err(err).Strs("args", args).Msg("Template engine failed")
	return wrapped
}

func execRunner(stdin io.Reader, stdout, stderr io.Writer) Runner {
	return func(ctx context.Context, name string, args ...string) error {
		path, err := exec.LookPath(name)
		if err != nil {
			return err
		}
		cmd := exec.CommandContext(ctx, path, args...)
		cmd.Env = os.Environ()
		cmd.Stdin = stdin
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		return cmd.Run()
	}
}
