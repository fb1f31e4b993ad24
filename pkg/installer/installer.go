package installer

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/filesystem"
	"github.com/arthur-debert/speculate/pkg/header"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/matchers"
	"github.com/arthur-debert/speculate/pkg/projector"
	"github.com/arthur-debert/speculate/pkg/settings"
	"github.com/arthur-debert/speculate/pkg/types"
)

// Project layout, relative to the install root
const (
	DocsDir  = "docs"
	RulesDir = "docs/general/agent-rules"
	LinkDir  = ".cursor/rules"
	RuleExt  = ".md"
	LinkExt  = ".mdc"
)

// HeaderFiles are the agent instruction files that receive the marker header
var HeaderFiles = []string{"CLAUDE.md", "AGENTS.md"}

// Step names, also used as failure reasons
const (
	StepOptions     = "options"
	StepMissingDocs = "missing-docs"
	StepSettings    = "settings"
	StepHeaders     = "headers"
	StepRules       = "rules"
)

// Options configures an install run
type Options struct {
	// Root is the project root. It must contain DocsDir.
	Root string
	// Filter selects which rule files are linked
	Filter matchers.Filter
	// Version reports the installer version recorded in settings
	Version settings.VersionFunc

	// FS defaults to the OS filesystem
	FS types.FS
	// Now defaults to time.Now
	Now func() time.Time
	// Marker and HeaderTemplate are overridden together; when both are empty
	// they default to header.Marker and header.Template.
	Marker         string
	HeaderTemplate string
}

func (o *Options) applyDefaults() error {
	if o.FS == nil {
		o.FS = filesystem.NewOS()
	}
	if o.Now == nil {
		o.Now = time.Now
	}

	switch {
	case o.Marker == "" && o.HeaderTemplate == "":
		o.Marker, o.HeaderTemplate = header.Marker, header.Template
	case o.Marker == "" || o.HeaderTemplate == "":
		return errors.New(errors.ErrInvalidInput, "header marker and template must be set together")
	}
	return header.Validate(o.Marker, o.HeaderTemplate)
}

// Install runs the install pipeline. The returned Result is never nil; on
// failure it names the failed step alongside the returned error.
func Install(opts Options) (*Result, error) {
	logger := logging.GetLogger("installer")
	if err := opts.applyDefaults(); err != nil {
		return failed(StepOptions), err
	}
	logger.Debug().Str("root", opts.Root).
		Strs("include", opts.Filter.Include).
		Strs("exclude", opts.Filter.Exclude).
		Msg("Starting install")

	docsPath := filepath.Join(opts.Root, DocsDir)
	if info, err := opts.FS.Stat(docsPath); err != nil || !info.IsDir() {
		if err != nil && !os.IsNotExist(err) {
			return failed(StepMissingDocs), errors.Wrapf(err, errors.ErrMissingDocs, "cannot access %s", docsPath)
		}
		return failed(StepMissingDocs), errors.New(errors.ErrMissingDocs, "no docs/ directory found").
			WithDetail("path", docsPath)
	}

	result := &Result{State: Success}
	var stepErrs []error

	record := func(step string, err error) {
		if err == nil {
			return
		}
		logger.Error().Err(err).Str("step", step).Msg("Install step failed")
		if result.State == Success {
			result.State = Failure
			result.FailedStep = step
		}
		result.StepErrors = append(result.StepErrors, StepError{Step: step, Err: err})
		stepErrs = append(stepErrs, fmt.Errorf("%s: %w", step, err))
	}

	record(StepSettings, runSettings(opts))
	record(StepHeaders, runHeaders(opts, result))
	record(StepRules, runRules(opts, result))

	if result.State == Failure {
		return result, errors.Wrapf(stderrors.Join(stepErrs...), errors.ErrInstallStep,
			"install failed at step %q", result.FailedStep).
			WithDetail("step", result.FailedStep)
	}

	logger.Info().
		Int("linked", result.Linked()).
		Int("skipped", result.Skipped()).
		Int("created", result.Created()).
		Int("updated", result.Updated()).
		Msg("Install complete")
	return result, nil
}

func failed(step string) *Result {
	return &Result{State: Failure, FailedStep: step}
}

func runSettings(opts Options) error {
	done := logging.LogOperationStart(logging.GetLogger("installer"), StepSettings)
	defer done()
	return settings.RecordInstall(opts.FS, opts.Root, opts.Version, opts.Now())
}

func runHeaders(opts Options, result *Result) error {
	done := logging.LogOperationStart(logging.GetLogger("installer"), StepHeaders)
	defer done()

	var errs []error
	for _, name := range HeaderFiles {
		action, err := header.Ensure(opts.FS, filepath.Join(opts.Root, name), opts.Marker, opts.HeaderTemplate)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		result.Headers = append(result.Headers, HeaderResult{File: name, Action: action})
	}
	return stderrors.Join(errs...)
}

func runRules(opts Options, result *Result) error {
	done := logging.LogOperationStart(logging.GetLogger("installer"), StepRules)
	defer done()

	projection, err := projector.Project(projector.Options{
		FS:        opts.FS,
		SourceDir: filepath.Join(opts.Root, RulesDir),
		LinkDir:   filepath.Join(opts.Root, LinkDir),
		ExtFrom:   RuleExt,
		ExtTo:     LinkExt,
		Filter:    opts.Filter,
	})
	if err != nil {
		return err
	}
	result.Rules = projection
	if projection.SourceMissing {
		result.Warnings = append(result.Warnings, RulesDir+"/ not found, skipping Cursor setup")
	}
	return nil
}
