package ui

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// Prompter asks yes/no questions on a reader and writer pair
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints question with a [Y/n] or [y/N] suffix and reads one line.
// An empty answer, or end of input, selects the default.
func (p *Prompter) Confirm(question string, defaultYes bool) (bool, error) {
	marker := "[y/N]"
	if defaultYes {
		marker = "[Y/n]"
	}
	_, _ = fmt.Fprintf(p.out, "%s %s: ", question, marker)

	response, err := p.in.ReadString('\n')
	if err != nil && !stderrors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	if stderrors.Is(err, io.EOF) && response == "" {
		_, _ = fmt.Fprintln(p.out)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}
