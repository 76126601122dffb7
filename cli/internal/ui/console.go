package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console reads prompted answers from one buffered input. Prompts go to the
// printer's writer.
type Console struct {
	in  *bufio.Reader
	out *Printer
}

// NewConsole returns a Console reading from in and prompting through out.
func NewConsole(in io.Reader, out *Printer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Printer returns the printer prompts are written to.
func (c *Console) Printer() *Printer { return c.out }

// ReadLine prints prompt and returns the next input line, trimmed. io.EOF is
// returned only when the input ends before any text.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out.w, c.out.styles.Warn.Render(prompt)+" ")
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" (any case) count as yes.
func (c *Console) Confirm(question string) (bool, error) {
	answer, err := c.ReadLine(question + " (y/n)")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
