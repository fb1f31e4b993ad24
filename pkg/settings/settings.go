package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/speculate/pkg/answers"
	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	// Dir is the speculate metadata directory relative to the project root
	Dir = ".speculate"
	// FileName is the settings file inside Dir
	FileName = "settings.yml"

	KeyLastUpdate      = "last_update"
	KeyLastCLIVersion  = "last_cli_version"
	KeyLastDocsVersion = "last_docs_version"

	// UnknownVersion is recorded when the installer version cannot be determined
	UnknownVersion = "unknown"
)

// VersionFunc reports the running installer version
type VersionFunc func() (string, error)

// Path returns the settings file location for a project root
func Path(root string) string {
	return filepath.Join(root, Dir, FileName)
}

// RecordInstall merges install metadata into the settings file under root.
// It sets last_update to now (UTC), last_cli_version from version, and
// last_docs_version from the answers file when one is present and parseable.
func RecordInstall(fsys types.FS, root string, version VersionFunc, now time.Time) error {
	logger := logging.GetLogger("settings")
	path := Path(root)

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", Dir)
	}

	doc, err := loadDocument(fsys, path)
	if err != nil {
		return err
	}
	mapping := doc.Content[0]

	setString(mapping, KeyLastUpdate, now.UTC().Format(time.RFC3339))
	setString(mapping, KeyLastCLIVersion, resolveVersion(version))

	a, err := answers.Load(fsys, root)
	switch {
	case err == nil:
		setString(mapping, KeyLastDocsVersion, a.Commit)
	case os.IsNotExist(err):
		logger.Debug().Msg("No answers file, leaving docs version as is")
	default:
		logger.Debug().Err(err).Msg("Answers file unreadable, leaving docs version as is")
	}

	data, err := encode(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode settings")
	}
	if err := fsys.WriteFileAtomic(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path)
	}

	logger.Info().Str("path", path).Msg("Updated install settings")
	return nil
}

func resolveVersion(version VersionFunc) string {
	if version == nil {
		return UnknownVersion
	}
	v, err := version()
	if err != nil || v == "" {
		return UnknownVersion
	}
	return v
}

// loadDocument returns the settings document with a mapping as its root.
// Missing, empty or unparseable files yield a fresh empty mapping.
func loadDocument(fsys types.FS, path string) (*yaml.Node, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDocument(), nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logger := logging.GetLogger("settings")
		logger.Debug().Err(err).Str("path", path).Msg("Discarding unparseable settings")
		return newDocument(), nil
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return newDocument(), nil
	}
	return &doc, nil
}

func newDocument() *yaml.Node {
	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
	}
}

// setString sets key to a string scalar, replacing an existing value in place
func setString(mapping *yaml.Node, key, value string) {
	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			valueNode.LineComment = mapping.Content[i+1].LineComment
			mapping.Content[i+1] = valueNode
			return
		}
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		valueNode,
	)
}

func encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}
