// Package config loads speculate configuration.
//
// Values are layered, later sources overriding earlier ones:
//
//	1. embedded defaults (embedded/defaults.toml)
//	2. user config at $XDG_CONFIG_HOME/speculate/config.toml
//	3. project config at <root>/.speculate/config.toml
//	4. SPECULATE_* environment variables (SPECULATE_TEMPLATE_REF -> template.ref)
//	5. explicit overrides, normally command line flags
//
// Missing files are skipped. A file that exists but cannot be parsed is an
// error.
package config
