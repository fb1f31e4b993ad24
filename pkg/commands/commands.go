// Package commands provides high-level command implementations for speculate.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the installer, template engine and status
// reporting.
//
// Each command is implemented in its own subdirectory:
//   - install/    - Install command
//   - initialize/ - Init command
//   - update/     - Update command
//   - status/     - Status command
//   - internal/   - Shared helpers (docs statistics)
//
// This file re-exports the command functions so callers need a single import.
package commands

import (
	"context"

	"github.com/arthur-debert/speculate/pkg/commands/initialize"
	"github.com/arthur-debert/speculate/pkg/commands/install"
	"github.com/arthur-debert/speculate/pkg/commands/status"
	"github.com/arthur-debert/speculate/pkg/commands/update"
	"github.com/arthur-debert/speculate/pkg/installer"
)

// Install generates the tool configurations for a project.
type InstallOptions = install.Options

func Install(opts InstallOptions) (*installer.Result, error) {
	return install.Install(opts)
}

// Init copies the docs template into a project and installs.
type InitOptions = initialize.InitOptions

type InitResult = initialize.InitResult

func Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	return initialize.Init(ctx, opts)
}

// Update merges upstream template changes and reinstalls.
type UpdateOptions = update.Options

func Update(ctx context.Context, opts UpdateOptions) (*installer.Result, error) {
	return update.Update(ctx, opts)
}

// Status reports the project's template, install and docs state.
type StatusOptions = status.Options

type StatusReport = status.Report

func Status(opts StatusOptions) (*StatusReport, error) {
	return status.Status(opts)
}
