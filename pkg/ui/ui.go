// Package ui writes user facing command output.
//
// Printer lines are plain strings that may carry style markup such as
// [path]docs/[/path]; markup is rendered with colors on a terminal and
// stripped to plain text everywhere else.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/speculate/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Printer renders status lines to a writer
type Printer struct {
	out    io.Writer
	styles style.Styles
	markup *style.MarkupParser
}

// NewPrinter creates a printer for out. FormatAuto inspects out.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = DetectFormat(out)
	}
	r := lipgloss.NewRenderer(out)
	if format == FormatText {
		r.SetColorProfile(termenv.Ascii)
	}
	styles := style.NewStyles(r)
	return &Printer{out: out, styles: styles, markup: style.NewMarkupParser(styles)}
}

// Writer returns the underlying writer
func (p *Printer) Writer() io.Writer { return p.out }

func (p *Printer) line(format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	_, _ = fmt.Fprintln(p.out, p.markup.Render(msg))
}

// Blank writes an empty line
func (p *Printer) Blank() {
	_, _ = fmt.Fprintln(p.out)
}

// Header writes a section title
func (p *Printer) Header(format string, args ...interface{}) {
	p.line(p.styles.Title.Render(fmt.Sprintf(format, args...)))
}

// Success reports a completed action
func (p *Printer) Success(format string, args ...interface{}) {
	p.prefixed(p.styles.Success, style.SuccessIndicator, format, args...)
}

// Warning reports a non fatal problem
func (p *Printer) Warning(format string, args ...interface{}) {
	p.prefixed(p.styles.Warning, style.WarningIndicator, format, args...)
}

// Error reports a failure
func (p *Printer) Error(format string, args ...interface{}) {
	p.prefixed(p.styles.Error, style.ErrorIndicator, format, args...)
}

// ErrorItem reports one entry of a failure list, indented
func (p *Printer) ErrorItem(format string, args ...interface{}) {
	p.line("  " + p.styles.Error.Render(style.ErrorIndicator) + " " + fmt.Sprintf(format, args...))
}

// Info writes a neutral status line
func (p *Printer) Info(format string, args ...interface{}) {
	p.prefixed(p.styles.Info, style.InfoIndicator, format, args...)
}

// Detail writes an indented, muted continuation line
func (p *Printer) Detail(format string, args ...interface{}) {
	p.line("  " + p.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// Missing reports something expected but absent
func (p *Printer) Missing(format string, args ...interface{}) {
	p.prefixed(p.styles.Muted, style.MissingIndicator, format, args...)
}

// Note writes a muted hint
func (p *Printer) Note(format string, args ...interface{}) {
	p.line(p.styles.Muted.Render(fmt.Sprintf(format, args...)))
}

// Cancelled reports that the user declined to proceed
func (p *Printer) Cancelled() {
	p.line(p.styles.Warning.Render("Cancelled."))
}

// KeyValue writes an aligned "key: value" pair
func (p *Printer) KeyValue(key, value string, width int) {
	pad := width - len(key)
	if pad < 0 {
		pad = 0
	}
	p.line("  " + p.styles.Bold.Render(key+":") + strings.Repeat(" ", pad+1) + value)
}

func (p *Printer) prefixed(st lipgloss.Style, indicator, format string, args ...interface{}) {
	p.line(st.Render(indicator) + " " + fmt.Sprintf(format, args...))
}
