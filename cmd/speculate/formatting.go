package speculate

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Help text styles. Section titles share the heading role of status output,
// subcommand names the command role.
var (
	helpSection = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	helpCommand = pterm.NewStyle(pterm.FgGreen)
	helpGroup   = pterm.NewStyle(pterm.Bold)
)

// helpInColor reports whether help text may carry escape codes. Help always
// goes to stdout, so the --format flag is not consulted.
func helpInColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func styled(st *pterm.Style) func(string) string {
	return func(s string) string {
		if !helpInColor() {
			return s
		}
		return st.Sprint(s)
	}
}

// helpFuncs are the functions available to usage-template.txt
func helpFuncs() template.FuncMap {
	section := styled(helpSection)
	return template.FuncMap{
		"section": func(title string) string { return section(strings.ToUpper(title)) },
		"command": styled(helpCommand),
		"group":   styled(helpGroup),
	}
}

func initTemplateFormatting() {
	cobra.AddTemplateFuncs(helpFuncs())
}
