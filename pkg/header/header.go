// Package header keeps a marker header at the top of agent instruction files
// such as CLAUDE.md and AGENTS.md.
package header

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/types"
)

// Marker is the text whose presence means a file is already configured
const Marker = "Speculate project structure"

// Template is the header prepended to instruction files. It contains Marker.
const Template = "IMPORTANT: You MUST read ./docs/development.md and ./docs/docs-overview.md for project documentation.\n" +
	"(This project uses " + Marker + ".)"

// Action is the outcome of Ensure
type Action string

const (
	Created   Action = "created"
	Updated   Action = "updated"
	Unchanged Action = "unchanged"
)

// Ensure makes sure the file at path contains marker, prepending template
// when it does not. A missing file is created holding only the template.
// Content that already contains marker is never rewritten. template must
// contain marker, otherwise every run would prepend it again.
func Ensure(fsys types.FS, path, marker, template string) (Action, error) {
	if err := Validate(marker, template); err != nil {
		return "", err
	}
	logger := logging.GetLogger("header").With().Str("file", filepath.Base(path)).Logger()

	var content string
	action := Created

	data, err := fsys.ReadFile(path)
	switch {
	case err == nil:
		if strings.Contains(string(data), marker) {
			logger.Debug().Msg("Marker present, leaving file untouched")
			return Unchanged, nil
		}
		content = template + "\n\n" + string(data)
		action = Updated
	case os.IsNotExist(err):
		content = template + "\n"
	default:
		return "", errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}

	if err := fsys.WriteFileAtomic(path, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	logger.Info().Str("action", string(action)).Msg("Header ensured")
	return action, nil
}

// Validate checks that template carries a non-empty marker
func Validate(marker, template string) error {
	if marker == "" {
		return errors.New(errors.ErrInvalidInput, "header marker is empty")
	}
	if !strings.Contains(template, marker) {
		return errors.Newf(errors.ErrInvalidInput, "header template does not contain marker %q", marker).
			WithDetail("marker", marker)
	}
	return nil
}
