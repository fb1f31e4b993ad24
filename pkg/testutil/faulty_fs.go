package testutil

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/arthur-debert/speculate/pkg/filesystem"
	"github.com/arthur-debert/speculate/pkg/types"
)

// ErrInjected is returned by FaultyFS for every injected failure
var ErrInjected = errors.New("injected failure")

// FaultyFS wraps the OS filesystem and fails operations whose name and path
// match a registered fault.
type FaultyFS struct {
	types.FS
	faults map[string][]string
}

// NewFaultyFS creates a FaultyFS over the real filesystem
func NewFaultyFS() *FaultyFS {
	return &FaultyFS{FS: filesystem.NewOS(), faults: make(map[string][]string)}
}

// FailOn makes op (e.g. "Symlink") fail for any path containing pathSubstr
func (f *FaultyFS) FailOn(op, pathSubstr string) *FaultyFS {
	f.faults[op] = append(f.faults[op], pathSubstr)
	return f
}

func (f *FaultyFS) check(op, path string) error {
	for _, sub := range f.faults[op] {
		if strings.Contains(path, sub) {
			return &fs.PathError{Op: op, Path: path, Err: ErrInjected}
		}
	}
	return nil
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.check("ReadFile", name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFileAtomic(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("WriteFileAtomic", name); err != nil {
		return err
	}
	return f.FS.WriteFileAtomic(name, data, perm)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check("MkdirAll", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if err := f.check("ReadDir", name); err != nil {
		return nil, err
	}
	return f.FS.ReadDir(name)
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.check("Symlink", newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.check("Remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}
