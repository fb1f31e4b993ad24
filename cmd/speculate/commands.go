package speculate

import (
	"fmt"
	"os"

	"github.com/arthur-debert/speculate/internal/version"
	"github.com/arthur-debert/speculate/pkg/commands"
	"github.com/arthur-debert/speculate/pkg/config"
	"github.com/arthur-debert/speculate/pkg/logging"
	"github.com/arthur-debert/speculate/pkg/matchers"
	"github.com/arthur-debert/speculate/pkg/settings"
	"github.com/arthur-debert/speculate/pkg/template"
	"github.com/arthur-debert/speculate/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newEngine builds the template engine for a command run
var newEngine = func(command string, cmd *cobra.Command) template.Engine {
	return template.NewCopier(command, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// lookupVersion reports the running CLI version for the settings record
var lookupVersion settings.VersionFunc = version.Lookup

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	verbosity int
	format    string
	root      string
}

// projectRoot returns --root or the working directory
func (g *globalFlags) projectRoot() (string, error) {
	if g.root != "" {
		return g.root, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(MsgErrWorkingDir, err)
	}
	return wd, nil
}

func (g *globalFlags) printer(cmd *cobra.Command) (*ui.Printer, error) {
	format, err := ui.ParseFormat(g.format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}
	return ui.NewPrinter(cmd.OutOrStdout(), format), nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "speculate",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(g.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)
	rootCmd.PersistentFlags().StringVar(&g.root, "root", "", MsgFlagRoot)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInstallCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newUpdateCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// loadConfig resolves the configuration for root with flag overrides
func loadConfig(root string, overrides map[string]interface{}) (*config.Config, matchers.Filter, error) {
	cfg, err := config.Load(root, overrides)
	if err != nil {
		return nil, matchers.Filter{}, err
	}
	filter := matchers.Filter{Include: cfg.Install.Include, Exclude: cfg.Install.Exclude}
	return cfg, filter, nil
}

// filterOverrides maps changed --include/--exclude flags onto config keys
func filterOverrides(cmd *cobra.Command) map[string]interface{} {
	overrides := make(map[string]interface{})
	for flag, key := range map[string]string{"include": "install.include", "exclude": "install.exclude"} {
		if !cmd.Flags().Changed(flag) {
			continue
		}
		values, _ := cmd.Flags().GetStringSlice(flag)
		overrides[key] = values
	}
	return overrides
}

func newInstallCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		Long:    MsgInstallLong,
		Example: MsgInstallExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.projectRoot()
			if err != nil {
				return err
			}
			p, err := g.printer(cmd)
			if err != nil {
				return err
			}
			_, filter, err := loadConfig(root, filterOverrides(cmd))
			if err != nil {
				return err
			}

			log.Info().Str("root", root).
				Strs("include", filter.Include).
				Strs("exclude", filter.Exclude).
				Msg("Installing tool configurations")

			_, err = commands.Install(commands.InstallOptions{
				Root:    root,
				Filter:  filter,
				Version: lookupVersion,
				Printer: p,
			})
			return err
		},
	}
	cmd.Flags().StringSlice("include", nil, MsgFlagInclude)
	cmd.Flags().StringSlice("exclude", nil, MsgFlagExclude)
	return cmd
}

func newInitCmd(g *globalFlags) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:     "init [DEST]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := g.projectRoot()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				dest = args[0]
			}
			p, err := g.printer(cmd)
			if err != nil {
				return err
			}

			overrides := filterOverrides(cmd)
			if cmd.Flags().Changed("template") {
				overrides["template.source"], _ = cmd.Flags().GetString("template")
			}
			if cmd.Flags().Changed("ref") {
				overrides["template.ref"], _ = cmd.Flags().GetString("ref")
			}
			cfg, filter, err := loadConfig(dest, overrides)
			if err != nil {
				return err
			}

			_, err = commands.Init(cmd.Context(), commands.InitOptions{
				Dest:      dest,
				Source:    cfg.Template.Source,
				Ref:       cfg.Template.Ref,
				Overwrite: overwrite,
				Filter:    filter,
				Version:   lookupVersion,
				Engine:    newEngine(cfg.Template.Command, cmd),
				Prompter:  ui.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()),
				Printer:   p,
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	cmd.Flags().String("template", "", MsgFlagTemplate)
	cmd.Flags().String("ref", "", MsgFlagRef)
	cmd.Flags().StringSlice("include", nil, MsgFlagInclude)
	cmd.Flags().StringSlice("exclude", nil, MsgFlagExclude)
	return cmd
}

func newUpdateCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update",
		Short:   MsgUpdateShort,
		Long:    MsgUpdateLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.projectRoot()
			if err != nil {
				return err
			}
			p, err := g.printer(cmd)
			if err != nil {
				return err
			}
			cfg, filter, err := loadConfig(root, filterOverrides(cmd))
			if err != nil {
				return err
			}

			_, err = commands.Update(cmd.Context(), commands.UpdateOptions{
				Root:    root,
				Filter:  filter,
				Version: lookupVersion,
				Engine:  newEngine(cfg.Template.Command, cmd),
				Printer: p,
			})
			return err
		},
	}
	cmd.Flags().StringSlice("include", nil, MsgFlagInclude)
	cmd.Flags().StringSlice("exclude", nil, MsgFlagExclude)
	return cmd
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := g.projectRoot()
			if err != nil {
				return err
			}
			p, err := g.printer(cmd)
			if err != nil {
				return err
			}
			_, err = commands.Status(commands.StatusOptions{
				Root:    root,
				Version: lookupVersion,
				Printer: p,
			})
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := lookupVersion()
			if err != nil {
				v = version.Version
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, v, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf(MsgErrUnknownShell, args[0])
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "SPECULATE",
				Section: "1",
				Source:  "speculate " + version.Version,
				Manual:  "speculate manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
