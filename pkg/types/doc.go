// Package types defines the interfaces shared by the installer components.
// The filesystem is abstracted behind FS so that each component can be
// exercised against a temporary project tree or a failing double in tests.
package types
