package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/speculate/cmd/speculate"
	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/arthur-debert/speculate/pkg/style"
	"github.com/charmbracelet/lipgloss"
)

func main() {
	rootCmd := speculate.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		styles := style.NewStyles(lipgloss.NewRenderer(os.Stderr))
		fmt.Fprintln(os.Stderr, styles.Error.Render(fmt.Sprintf("Error: %v", err)))
		if hint, ok := errors.GetErrorDetails(err)["hint"]; ok {
			fmt.Fprintln(os.Stderr, styles.Muted.Render(fmt.Sprint(hint)))
		}
		os.Exit(1)
	}
}
