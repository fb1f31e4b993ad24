package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// RulesDir is the conventional rule source directory relative to the root
const RulesDir = "docs/general/agent-rules"

// Project is an isolated project root for a single test
type Project struct {
	Root string
	t    *testing.T
}

// NewProject creates an empty project root
func NewProject(t *testing.T) *Project {
	t.Helper()
	return &Project{Root: t.TempDir(), t: t}
}

// NewDocsProject creates a project with docs/ and the given rule files
func NewDocsProject(t *testing.T, rules ...string) *Project {
	t.Helper()
	p := NewProject(t)
	p.Mkdir("docs")
	for _, name := range rules {
		p.WriteFile(filepath.Join(RulesDir, name), "# "+strings.TrimSuffix(name, filepath.Ext(name))+"\n")
	}
	return p
}

// Path joins rel onto the project root
func (p *Project) Path(rel string) string {
	return filepath.Join(p.Root, rel)
}

// Mkdir creates a directory (and parents) under the root
func (p *Project) Mkdir(rel string) {
	p.t.Helper()
	if err := os.MkdirAll(p.Path(rel), 0755); err != nil {
		p.t.Fatalf("mkdir %s: %v", rel, err)
	}
}

// WriteFile writes content to rel, creating parent directories
func (p *Project) WriteFile(rel, content string) string {
	p.t.Helper()
	path := p.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		p.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		p.t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

// ReadFile returns the content of rel
func (p *Project) ReadFile(rel string) string {
	p.t.Helper()
	data, err := os.ReadFile(p.Path(rel))
	if err != nil {
		p.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether rel exists (symlinks are not followed)
func (p *Project) Exists(rel string) bool {
	_, err := os.Lstat(p.Path(rel))
	return err == nil
}

// Remove deletes rel
func (p *Project) Remove(rel string) {
	p.t.Helper()
	if err := os.Remove(p.Path(rel)); err != nil {
		p.t.Fatalf("remove %s: %v", rel, err)
	}
}

// Links returns the symlinks in dir keyed by name with their raw targets
func (p *Project) Links(rel string) map[string]string {
	p.t.Helper()
	entries, err := os.ReadDir(p.Path(rel))
	if err != nil {
		p.t.Fatalf("read dir %s: %v", rel, err)
	}
	links := make(map[string]string)
	for _, entry := range entries {
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		target, err := os.Readlink(filepath.Join(p.Path(rel), entry.Name()))
		if err != nil {
			p.t.Fatalf("readlink %s: %v", entry.Name(), err)
		}
		links[entry.Name()] = target
	}
	return links
}

// Names returns the sorted entry names of dir
func (p *Project) Names(rel string) []string {
	p.t.Helper()
	entries, err := os.ReadDir(p.Path(rel))
	if err != nil {
		p.t.Fatalf("read dir %s: %v", rel, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
