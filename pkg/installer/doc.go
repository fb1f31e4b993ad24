// Package installer generates agent tool configuration inside a project that
// already holds a docs/ tree.
//
// Install runs three independent steps against fixed paths under the
// project root:
//
//	settings  .speculate/settings.yml        install metadata record
//	headers   CLAUDE.md, AGENTS.md            marker header, added once
//	rules     docs/general/agent-rules/*.md   -> .cursor/rules/*.mdc symlinks
//
// A missing docs/ directory aborts before anything is written. After that
// every step runs even when an earlier one fails; the first failing step is
// reported as the failure reason. A missing rules directory is only a warning.
// The operation is idempotent and safe to run repeatedly, but not from
// several processes against the same root at once.
package installer
