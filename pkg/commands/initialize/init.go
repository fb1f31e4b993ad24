// Package initialize provides the init command: it materializes the docs
// template into a project and then installs the tool configurations.
package initialize

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/speculate/pkg/commands/install"
	"github.com/arthur-debert/speculate/pkg/commands/internal"
	"github.com/arthur-debert/speculate/pkg/commands/status"
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

// InitOptions defines the options for the Init command
type InitOptions struct {
	// Dest is the project directory to initialize
	Dest string
	// Source and Ref select the template and its revision
	Source string
	Ref    string
	// Overwrite skips the confirmation prompts and replaces existing files
	Overwrite bool
	// Filter is passed on to the install that follows the copy
	Filter matchers.Filter
	// Version reports the running CLI version
	Version settings.VersionFunc

	Engine   template.Engine
	Prompter *ui.Prompter
	Printer  *ui.Printer

	// FS defaults to the OS filesystem
	FS types.FS
}

// InitResult describes what Init did
type InitResult struct {
	// Cancelled is set when the user declined a prompt; nothing was changed
	Cancelled bool
	// DevDocCreated is set when docs/development.md was seeded from the sample
	DevDocCreated bool
	Docs          internal.DirStats
	Install       *installer.Result
}

// Init copies the template into opts.Dest and runs install there
func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	log := logging.GetLogger("core.commands")
	log.Debug().Str("command", "Init").Str("dest", opts.Dest).
		Str("source", opts.Source).Str("ref", opts.Ref).
		Bool("overwrite", opts.Overwrite).Msg("Executing command")

	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Engine == nil {
		return nil, errors.New(errors.ErrInternal, "no template engine configured")
	}

	dest, err := filepath.Abs(opts.Dest)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid destination %q", opts.Dest)
	}
	docs := filepath.Join(dest, installer.DocsDir)
	p := opts.Printer

	p.Header("Initializing Speculate docs in:")
	p.Detail(dest)
	p.Blank()

	if !opts.Overwrite {
		if _, err := opts.FS.Stat(docs); err == nil {
			p.Note("%s already exists", docs)
			p.Detail("Use [code]`speculate update`[/code] to preserve local changes.")
			ok, err := confirm(opts.Prompter, "Reinitialize anyway?", false)
			if err != nil {
				return nil, err
			}
			if !ok {
				p.Cancelled()
				return &InitResult{Cancelled: true}, nil
			}
		}
	}

	p.Header("Docs will be copied to:")
	p.Detail("%s/", docs)
	p.Blank()

	if !opts.Overwrite {
		ok, err := confirm(opts.Prompter, "Proceed?", true)
		if err != nil {
			return nil, err
		}
		if !ok {
			p.Cancelled()
			return &InitResult{Cancelled: true}, nil
		}
	}

	err = opts.Engine.Copy(ctx, template.CopyRequest{
		Source:    opts.Source,
		Dest:      dest,
		Ref:       opts.Ref,
		Overwrite: opts.Overwrite,
	})
	if err != nil {
		p.Error("Template copy failed")
		return nil, err
	}

	result := &InitResult{}
	created, err := seedDevDoc(opts.FS, dest)
	if err != nil {
		return nil, err
	}
	if created {
		result.DevDocCreated = true
		p.Success("Created [path]%s[/path] from template", status.DevDoc)
	}

	stats, err := internal.CollectDirStats(opts.FS, docs)
	if err != nil {
		log.Warn().Err(err).Str("path", docs).Msg("Could not scan docs")
	} else {
		result.Docs = stats
		p.Blank()
		p.Success("Docs installed (%s)", stats)
		p.Blank()
	}

	result.Install, err = install.Install(install.Options{
		Root:    dest,
		Filter:  opts.Filter,
		Version: opts.Version,
		Printer: p,
		FS:      opts.FS,
	})
	if err != nil {
		return result, err
	}

	p.Warning("[bold]Required next step:[/bold] customize %s with your project-specific setup.", status.DevDoc)
	p.Blank()
	p.Note("Other commands:")
	p.Detail("speculate status     # Check current status")
	p.Detail("speculate update     # Pull future updates")
	p.Blank()
	return result, nil
}

// seedDevDoc copies the development guide sample into place unless the
// project already has one.
func seedDevDoc(fsys types.FS, root string) (bool, error) {
	target := filepath.Join(root, status.DevDoc)
	if _, err := fsys.Stat(target); err == nil {
		return false, nil
	}

	sample := filepath.Join(root, status.DevDocSample)
	data, err := fsys.ReadFile(sample)
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", sample)
	}
	if err := fsys.WriteFileAtomic(target, data, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", target)
	}
	return true, nil
}

func confirm(p *ui.Prompter, question string, defaultYes bool) (bool, error) {
	if p == nil {
		return false, errors.Newf(errors.ErrInvalidInput, "confirmation required: %s (use --overwrite to skip prompts)", question)
	}
	ok, err := p.Confirm(question, defaultYes)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInvalidInput, "failed to read confirmation")
	}
	return ok, nil
}
