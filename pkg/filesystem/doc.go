// Package filesystem provides the OS-backed implementation of types.FS.
//
// Besides thin wrappers around the os package it owns the scoped atomic
// replace used for every single-file write the installer performs: data is
// written to a temporary sibling, synced, and renamed over the destination.
// The temporary file is removed on every failure path.
package filesystem
