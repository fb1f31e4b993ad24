// Package answers reads the answers file the template engine leaves at the
// project root to record which upstream revision was applied.
package answers

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/speculate/pkg/types"
	"gopkg.in/yaml.v3"
)

// FileName is the answers file written by copier
const FileName = ".copier-answers.yml"

// Unknown is reported for fields the answers file does not carry
const Unknown = "unknown"

// Answers holds the fields speculate consumes from the answers file
type Answers struct {
	// Commit identifies the upstream template revision
	Commit string
	// SrcPath is the template source, informational only
	SrcPath string
}

// Path returns the answers file location for a project root
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads and parses the answers file under root. Missing fields are
// reported as Unknown. The error wraps fs.ErrNotExist when the file is absent.
func Load(fsys types.FS, root string) (*Answers, error) {
	data, err := fsys.ReadFile(Path(root))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes answers file content. An empty or null document reads as an
// empty mapping; any other document that is not a mapping is an error.
func Parse(data []byte) (*Answers, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return &Answers{
		Commit:  field(raw, "_commit"),
		SrcPath: field(raw, "_src_path"),
	}, nil
}

func field(raw map[string]interface{}, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return Unknown
	}
	return fmt.Sprint(v)
}
