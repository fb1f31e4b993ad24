package projector

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/matchers"
	"github.com/arthur-debert/speculate/pkg/types"
)

// Options describes one projection run
type Options struct {
	FS        types.FS
	SourceDir string
	LinkDir   string
	// ExtFrom selects source documents, ExtTo replaces it in link names.
	// Both include the leading dot.
	ExtFrom string
	ExtTo   string
	Filter  matchers.Filter
}

// Link is one projected entry
type Link struct {
	Name   string
	Target string
}

// Result summarises a projection run
type Result struct {
	Links   []Link
	Skipped []string
	Removed []string
	// SourceMissing is set when SourceDir does not exist. Nothing is linked
	// and the caller should report a warning.
	SourceMissing bool
}

// Linked returns the number of links created
func (r *Result) Linked() int { return len(r.Links) }

// SkippedCount returns the number of source documents rejected by the filter
func (r *Result) SkippedCount() int { return len(r.Skipped) }

// Project rebuilds LinkDir so that it holds exactly one relative symlink per
// source document accepted by the filter. Links left over from earlier runs
// whose source is gone or filtered out are removed first.
func Project(opts Options) (*Result, error) {
	logger := logging.GetLogger("projector")
	result := &Result{}

	if err := opts.FS.MkdirAll(opts.LinkDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create link directory %s", opts.LinkDir)
	}

	if _, err := opts.FS.Stat(opts.SourceDir); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("source", opts.SourceDir).Msg("Source directory missing, nothing to project")
			result.SourceMissing = true
			return result, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to stat %s", opts.SourceDir)
	}

	sources, err := listSources(opts.FS, opts.SourceDir, opts.ExtFrom)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]string, len(sources))
	var order []string
	for _, name := range sources {
		if !opts.Filter.Matches(name) {
			result.Skipped = append(result.Skipped, name)
			continue
		}
		linkName := LinkName(name, opts.ExtTo)
		wanted[linkName] = name
		order = append(order, linkName)
	}

	removed, err := pruneStale(opts.FS, opts.LinkDir, opts.ExtTo, wanted)
	if err != nil {
		return nil, err
	}
	result.Removed = removed

	relDir, err := relativeSourceDir(opts.LinkDir, opts.SourceDir)
	if err != nil {
		return nil, err
	}

	for _, linkName := range order {
		linkPath := filepath.Join(opts.LinkDir, linkName)
		target := filepath.Join(relDir, wanted[linkName])

		if err := removeIfPresent(opts.FS, linkPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", linkPath)
		}
		if err := opts.FS.Symlink(target, linkPath); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", linkName)
		}

		logger.Debug().Str("link", linkPath).Str("target", target).Msg("Linked rule")
		result.Links = append(result.Links, Link{Name: linkName, Target: target})
	}

	logger.Info().
		Int("linked", result.Linked()).
		Int("skipped", result.SkippedCount()).
		Int("removed", len(result.Removed)).
		Msg("Projection complete")

	return result, nil
}

// LinkName swaps the extension of a source name for ext. A name that is
// only a dot-prefixed extension, such as ".md", has no stem to keep, so the
// whole name is kept and ext appended.
func LinkName(name, ext string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if stem == "" {
		stem = name
	}
	return stem + ext
}

// listSources returns the names of regular entries in dir ending in ext, sorted
func listSources(fsys types.FS, dir, ext string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ext {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// pruneStale removes symlinks in linkDir carrying ext that are not wanted.
// Regular files are never touched here.
func pruneStale(fsys types.FS, linkDir, ext string, wanted map[string]string) ([]string, error) {
	entries, err := fsys.ReadDir(linkDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", linkDir)
	}

	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ext) || entry.Type()&fs.ModeSymlink == 0 {
			continue
		}
		if _, ok := wanted[name]; ok {
			continue
		}
		if err := removeIfPresent(fsys, filepath.Join(linkDir, name)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove stale link %s", name)
		}
		removed = append(removed, name)
	}
	sort.Strings(removed)
	return removed, nil
}

// removeIfPresent removes path, treating an already-absent entry as success
func removeIfPresent(fsys types.FS, path string) error {
	if err := fsys.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// relativeSourceDir returns sourceDir expressed relative to linkDir
func relativeSourceDir(linkDir, sourceDir string) (string, error) {
	absLink, err := filepath.Abs(linkDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to resolve %s", linkDir)
	}
	absSource, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to resolve %s", sourceDir)
	}
	rel, err := filepath.Rel(absLink, absSource)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to relate %s to %s", sourceDir, linkDir)
	}
	return rel, nil
}
