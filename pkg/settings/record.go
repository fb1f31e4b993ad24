package settings

import (
	"fmt"

	"github.com/arthur-debert/speculate/pkg/types"
	"gopkg.in/yaml.v3"
)

// Record is a decoded view of the settings file
type Record map[string]interface{}

// Load reads the settings file under root. The error wraps fs.ErrNotExist
// when there is no record yet.
func Load(fsys types.FS, root string) (Record, error) {
	data, err := fsys.ReadFile(Path(root))
	if err != nil {
		return nil, err
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if r == nil {
		r = Record{}
	}
	return r, nil
}

// Get returns key as a string, or fallback when absent
func (r Record) Get(key, fallback string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return fallback
	}
	return fmt.Sprint(v)
}

// LastUpdate returns the last install timestamp
func (r Record) LastUpdate() string { return r.Get(KeyLastUpdate, UnknownVersion) }

// LastCLIVersion returns the installer version of the last install
func (r Record) LastCLIVersion() string { return r.Get(KeyLastCLIVersion, UnknownVersion) }

// LastDocsVersion returns the upstream docs revision of the last install
func (r Record) LastDocsVersion() string { return r.Get(KeyLastDocsVersion, UnknownVersion) }
