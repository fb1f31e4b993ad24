// Package testutil provides utilities for testing speculate components.
//
// Key components:
//   - Project: a throwaway project root on the real filesystem with helpers
//     to lay out docs/, rule files and agent config files
//   - FaultyFS: a types.FS wrapper that fails selected operations, used to
//     exercise I/O error paths without relying on file permissions
//
// All test data is defined inline. Each Project lives under t.TempDir() so
// tests are isolated and cleaned up automatically.
package testutil
