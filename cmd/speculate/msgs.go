package speculate

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Install agent rules and tool configs for spec-driven docs"
	MsgInstallShort    = "Generate tool configurations (CLAUDE.md, AGENTS.md, .cursor/rules)"
	MsgInitShort       = "Initialize docs from the template and install tool configs"
	MsgUpdateShort     = "Pull upstream template changes and reinstall"
	MsgStatusShort     = "Show the docs and tool configuration status"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate the man page"

	// Version output
	MsgVersionFormat = "speculate %s\ncommit: %s\nbuilt:  %s\n"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrWorkingDir   = "failed to determine working directory: %w"
	MsgErrFormat       = "invalid --format: %w"
	MsgErrUnknownShell = "unsupported shell: %s"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat    = "Output format: auto, term or text"
	MsgFlagRoot      = "Project root (defaults to the current directory)"
	MsgFlagInclude   = "Only link rules matching this glob (repeatable)"
	MsgFlagExclude   = "Skip rules matching this glob (repeatable)"
	MsgFlagOverwrite = "Overwrite existing files without prompting"
	MsgFlagTemplate  = "Template source (overrides template.source)"
	MsgFlagRef       = "Template revision (overrides template.ref)"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/install-long.txt
	msgInstallLongRaw string
	MsgInstallLong    = strings.TrimSpace(msgInstallLongRaw)

	//go:embed msgs/install-example.txt
	msgInstallExampleRaw string
	MsgInstallExample    = strings.TrimRight(msgInstallExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/update-long.txt
	msgUpdateLongRaw string
	MsgUpdateLong    = strings.TrimSpace(msgUpdateLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
