// Package internal holds helpers shared by the command implementations.
package internal

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/speculate/pkg/types"
	"github.com/docker/go-units"
)

// DirStats is the file count and total size of a directory tree
type DirStats struct {
	Files int
	Bytes int64
}

// String formats the stats as "12 files, 48.2kB"
func (s DirStats) String() string {
	return fmt.Sprintf("%s, %s", CountItems(s.Files, "file"), units.HumanSize(float64(s.Bytes)))
}

// CollectDirStats walks root and counts regular files. Symlinked entries
// are followed, matching what a reader of the tree sees; broken links are
// skipped.
func CollectDirStats(fsys types.FS, root string) (DirStats, error) {
	var stats DirStats
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return stats, err
	}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			sub, err := CollectDirStats(fsys, path)
			if err != nil {
				return stats, err
			}
			stats.Files += sub.Files
			stats.Bytes += sub.Bytes
			continue
		}
		info, err := fsys.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		stats.Files++
		stats.Bytes += info.Size()
	}
	return stats, nil
}

// CountItems renders n with a naively pluralized noun
func CountItems(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
