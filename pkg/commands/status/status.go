// Package status provides the status command implementation.
//
// The status command answers two questions about a project:
//   - Which template revision and installer produced the current setup?
//   - Is the required project documentation in place?
//
// Collect builds a Report without printing anything; Status renders it and
// turns missing required files into an error.
package status

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/speculate/internal/version"
	"github.com/arthur-debert/speculate/pkg/answers"
	"github.com/arthur-debert/speculate/pkg/commands/internal"
	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/filesystem"
	"github.com/arthur-debert/speculate/pkg/installer"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/settings"
	"github.com/arthur-debert/speculate/pkg/types"
	"github.com/arthur-debert/speculate/pkg/ui"
)

// DevDoc is the project specific development guide every project must have
const DevDoc = "docs/development.md"

// DevDocSample is the template file DevDoc is seeded from
const DevDocSample = "docs/project/development.sample.md"

// Options contains options for the status command
type Options struct {
	// Root is the project root to inspect
	Root string
	// Version reports the running CLI version
	Version settings.VersionFunc
	// Printer receives the rendered report
	Printer *ui.Printer

	// FS defaults to the OS filesystem
	FS types.FS
}

// ToolConfig is one generated tool configuration path
type ToolConfig struct {
	Name    string
	Present bool
}

// Report is the collected project state
type Report struct {
	Root string

	// Answers is nil when the project was never initialized
	Answers *answers.Answers
	// AnswersUnreadable is set when the answers file exists but cannot be parsed
	AnswersUnreadable bool

	// Settings is nil when no install was recorded
	Settings settings.Record
	// SettingsUnreadable is set when the settings file exists but cannot be parsed
	SettingsUnreadable bool
	// RunningVersion is the CLI version doing the inspection, empty if unknown
	RunningVersion string

	// Docs is nil when docs/ does not exist
	Docs   *internal.DirStats
	DevDoc bool
	Tools  []ToolConfig
}

// Initialized reports whether the template answers file exists
func (r *Report) Initialized() bool {
	return r.Answers != nil || r.AnswersUnreadable
}

// NewerCLI reports whether the last install was done by a newer CLI release
// than the one running now.
func (r *Report) NewerCLI() bool {
	if r.Settings == nil || r.RunningVersion == "" {
		return false
	}
	return version.IsNewer(r.Settings.LastCLIVersion(), r.RunningVersion)
}

// Collect inspects the project without printing
func Collect(opts Options) (*Report, error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	logger := logging.GetLogger("commands.status")
	logger.Debug().Str("root", opts.Root).Msg("Collecting status")

	fsys := opts.FS
	report := &Report{Root: opts.Root}

	a, err := answers.Load(fsys, opts.Root)
	switch {
	case err == nil:
		report.Answers = a
	case stderrors.Is(err, fs.ErrNotExist):
	default:
		logger.Warn().Err(err).Msg("Answers file unreadable")
		report.AnswersUnreadable = true
	}

	rec, err := settings.Load(fsys, opts.Root)
	switch {
	case err == nil:
		report.Settings = rec
	case stderrors.Is(err, fs.ErrNotExist):
	default:
		logger.Warn().Err(err).Msg("Settings file unreadable")
		report.SettingsUnreadable = true
	}

	if opts.Version != nil {
		if v, err := opts.Version(); err == nil {
			report.RunningVersion = v
		}
	}

	docs := filepath.Join(opts.Root, installer.DocsDir)
	if info, err := fsys.Stat(docs); err == nil && info.IsDir() {
		stats, err := internal.CollectDirStats(fsys, docs)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to scan %s", docs)
		}
		report.Docs = &stats
	}

	report.DevDoc = exists(fsys, filepath.Join(opts.Root, DevDoc))

	names := append(append([]string{}, installer.HeaderFiles...), installer.LinkDir+"/")
	for _, name := range names {
		report.Tools = append(report.Tools, ToolConfig{
			Name:    name,
			Present: exists(fsys, filepath.Join(opts.Root, name)),
		})
	}
	return report, nil
}

// Status collects and prints the project status. The returned error is set
// only when the development guide is missing; an uninitialized project is
// reported but is not an error.
func Status(opts Options) (*Report, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Status").Str("root", opts.Root).Msg("Executing command")

	report, err := Collect(opts)
	if err != nil {
		return nil, err
	}
	Render(opts.Printer, report)

	if !report.DevDoc {
		return report, errors.Newf(errors.ErrDevDocMissing, "%s is missing", DevDoc).
			WithDetail("root", opts.Root)
	}
	return report, nil
}

// Render prints r
func Render(p *ui.Printer, r *Report) {
	p.Header("Speculate Status")
	p.Detail(r.Root)
	p.Blank()

	switch {
	case r.Answers != nil:
		p.Success("Template version: %s", r.Answers.Commit)
		p.Detail("Source: %s", r.Answers.SrcPath)
	case r.AnswersUnreadable:
		p.Warning("%s could not be parsed", answers.FileName)
	default:
		p.Missing("No %s (not initialized)", answers.FileName)
	}

	switch {
	case r.Settings != nil:
		p.Success("Last install: %s (CLI %s)", r.Settings.LastUpdate(), r.Settings.LastCLIVersion())
		if r.NewerCLI() {
			p.Warning("Installed by a newer speculate (%s); this is %s. Consider upgrading.",
				r.Settings.LastCLIVersion(), r.RunningVersion)
		}
	case r.SettingsUnreadable:
		p.Warning("%s/%s could not be parsed", settings.Dir, settings.FileName)
	default:
		p.Info("%s/%s not found", settings.Dir, settings.FileName)
	}

	if r.Docs != nil {
		p.Success("docs/ exists (%s)", r.Docs)
	} else {
		p.Missing("docs/ not found")
	}

	if r.DevDoc {
		p.Success("%s exists", DevDoc)
	} else {
		p.ErrorItem("%s missing (required!)", DevDoc)
		p.Detail("Create this file using %s as a template.", DevDocSample)
	}

	for _, tool := range r.Tools {
		if tool.Present {
			p.Success("%s exists", tool.Name)
		} else {
			p.Info("%s not configured", tool.Name)
		}
	}
	p.Blank()
}

func exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}
