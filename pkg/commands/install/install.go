// Package install provides the install command: it runs the installer
// pipeline and reports each step to the user.
package install

import (
	"fmt"

	"github.com/arthur-debert/speculate/pkg/commands/internal"
	"github.com/arthur-debert/speculate/pkg/header"
	"github.com/arthur-debert/speculate/pkg/installer"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/matchers"
	"github.com/arthur-debert/speculate/pkg/settings"
	"github.com/arthur-debert/speculate/pkg/types"
	"github.com/arthur-debert/speculate/pkg/ui"
)

// Options defines the options for the Install command
type Options struct {
	// Root is the project root containing docs/
	Root string
	// Filter selects the rule files linked into the Cursor rules directory
	Filter matchers.Filter
	// Version reports the running CLI version for the settings record
	Version settings.VersionFunc
	// Printer receives the progress report
	Printer *ui.Printer
	// FS defaults to the OS filesystem
	FS types.FS
}

// Install installs the tool configurations for the project at opts.Root
func Install(opts Options) (*installer.Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Install").Str("root", opts.Root).Msg("Executing command")

	p := opts.Printer
	result, err := installer.Install(installer.Options{
		Root:    opts.Root,
		Filter:  opts.Filter,
		Version: opts.Version,
		FS:      opts.FS,
	})
	if result.FailedStep == installer.StepMissingDocs {
		p.Error("No docs/ directory found")
		p.Detail("Run [code]`speculate init`[/code] first, or manually copy docs/ to this directory.")
		return result, err
	}

	Report(p, opts.Root, result)
	return result, err
}

// Report prints the outcome of an install run
func Report(p *ui.Printer, root string, r *installer.Result) {
	p.Header("Installing tool configurations...")
	p.Detail(root)
	p.Blank()

	failed := make(map[string]error, len(r.StepErrors))
	for _, se := range r.StepErrors {
		failed[se.Step] = se.Err
	}

	if _, ok := failed[installer.StepSettings]; !ok {
		p.Success("Updated [path].speculate/settings.yml[/path]")
	}

	for _, h := range r.Headers {
		switch h.Action {
		case header.Created:
			p.Success("Created [path]%s[/path]", h.File)
		case header.Updated:
			p.Success("Updated [path]%s[/path]", h.File)
		default:
			p.Info("%s already configured", h.File)
		}
	}

	for _, w := range r.Warnings {
		p.Warning("%s", w)
	}

	if r.Rules != nil && !r.Rules.SourceMissing {
		msg := fmt.Sprintf("Linked %s to [path]%s/[/path]", internal.CountItems(r.Linked(), "rule"), installer.LinkDir)
		if skipped := r.Skipped(); skipped > 0 {
			msg += fmt.Sprintf(" (%d skipped by pattern)", skipped)
		}
		p.Success("%s", msg)
	}

	for _, se := range r.StepErrors {
		p.ErrorItem("%s: %v", se.Step, se.Err)
	}

	p.Blank()
	if r.State == installer.Success {
		p.Success("Tool configs installed!")
	} else {
		p.Error("Install failed at step %q", r.FailedStep)
	}
	p.Blank()
}
