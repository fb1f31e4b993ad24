// Package settings maintains .speculate/settings.yml, the record of the last
// install in a project.
//
// The record is edited as a YAML node tree rather than decoded into a struct:
// only the keys speculate owns are set, and everything else in the file
// (other keys, their order, comments) is written back as it was read.
// A record that cannot be parsed is replaced by a fresh one instead of
// failing the install.
package settings
