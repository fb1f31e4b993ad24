// Package update provides the update command: it merges upstream template
// changes into an initialized project and refreshes the tool configurations.
package update

import (
	"context"

	"github.com/arthur-debert/speculate/pkg/answers"
	"github.com/arthur-debert/speculate/pkg/commands/install"
	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/filesystem"
	"github.com/arthur-debert/speculate/pkg/installer"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/matchers"
	"github.com/arthur-debert/speculate/pkg/settings"
	"github.com/arthur-debert/speculate/pkg/template"
	"github.com/arthur-debert/speculate/pkg/types"
	"github.com/arthur-debert/speculate/pkg/ui"
)

// Options defines the options for the Update command
type Options struct {
	Root    string
	Filter  matchers.Filter
	Version settings.VersionFunc
	Engine  template.Engine
	Printer *ui.Printer
	// FS defaults to the OS filesystem
	FS types.FS
}

// Update pulls template changes into opts.Root and reinstalls
func Update(ctx context.Context, opts Options) (*installer.Result, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Update").Str("root", opts.Root).Msg("Executing command")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Engine == nil {
		return nil, errors.New(errors.ErrInternal, "no template engine configured")
	}
	p := opts.Printer

	if _, err := opts.FS.Stat(answers.Path(opts.Root)); err != nil {
		p.Error("No %s found", answers.FileName)
		p.Detail("Run [code]`speculate init`[/code] first to initialize docs.")
		return nil, errors.Newf(errors.ErrNotInitialized, "no %s found", answers.FileName).
			WithDetail("root", opts.Root)
	}

	p.Header("Updating docs from upstream template...")
	p.Detail(opts.Root)
	p.Blank()

	if err := opts.Engine.Update(ctx, opts.Root); err != nil {
		p.Error("Template update failed")
		return nil, err
	}

	p.Blank()
	p.Success("Docs updated successfully!")
	p.Blank()

	return install.Install(install.Options{
		Root:    opts.Root,
		Filter:  opts.Filter,
		Version: opts.Version,
		Printer: p,
		FS:      opts.FS,
	})
}
