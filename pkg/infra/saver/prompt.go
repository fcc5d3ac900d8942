package saver

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
)

// TerminalPrompter asks for a filename on a terminal. Pressing enter keeps
// the suggested name.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// PromptFilename prints the suggestion and reads one line
func (p *TerminalPrompter) PromptFilename(ctx context.Context, suggested string) (string, error) {
	label := color.New(color.FgCyan, color.Bold)
	if _, err := label.Fprint(p.out, "Save as "); err != nil {
		return "", goerr.Wrap(err, "failed to write prompt")
	}
	if _, err := color.New(color.Faint).Fprintf(p.out, "[%s]: ", suggested); err != nil {
		return "", goerr.Wrap(err, "failed to write prompt")
	}

	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", goerr.Wrap(err, "failed to read filename")
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return suggested, nil
	}
	return answer, nil
}
