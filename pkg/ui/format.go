package ui

import (
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/speculate/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Format is a value of the --format flag
type Format string

const (
	// FormatAuto colors output only when it goes to a color capable terminal
	FormatAuto Format = "auto"
	// FormatTerminal always renders markup as colors
	FormatTerminal Format = "term"
	// FormatText strips markup to plain text
	FormatText Format = "text"
)

// FormatNames lists the canonical --format values
var FormatNames = []string{string(FormatAuto), string(FormatTerminal), string(FormatText)}

var formatAliases = map[string]Format{
	"":         FormatAuto,
	"auto":     FormatAuto,
	"term":     FormatTerminal,
	"terminal": FormatTerminal,
	"text":     FormatText,
	"plain":    FormatText,
}

// ParseFormat reads a --format value, case insensitively
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, errors.Newf(errors.ErrInvalidInput,
		"unknown format %q, want one of %s", s, strings.Join(FormatNames, ", ")).
		WithDetail("format", s)
}

// DetectFormat resolves FormatAuto for w. Only a terminal that advertises
// colors gets FormatTerminal; pipes, buffers and NO_COLOR get plain text.
func DetectFormat(w io.Writer) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	file, ok := w.(*os.File)
	if !ok || !isTerminal(file) {
		return FormatText
	}
	if termenv.NewOutput(file).EnvColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
