package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Printer writes styled lines to one writer. Colors are dropped
// automatically when the writer is not a terminal.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter returns a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

// Styles returns the printer's styles.
func (p *Printer) Styles() Styles { return p.styles }

func (p *Printer) line(s lipgloss.Style, format string, args ...any) {
	fmt.Fprintln(p.w, s.Render(fmt.Sprintf(format, args...)))
}

// Info prints a blue status line.
func (p *Printer) Info(format string, args ...any) { p.line(p.styles.Info, format, args...) }

// Success prints a green line.
func (p *Printer) Success(format string, args ...any) { p.line(p.styles.Success, format, args...) }

// Warn prints a yellow line.
func (p *Printer) Warn(format string, args ...any) { p.line(p.styles.Warn, format, args...) }

// Error prints a red line.
func (p *Printer) Error(format string, args ...any) { p.line(p.styles.Error, format, args...) }

// Heading prints a bold green line.
func (p *Printer) Heading(format string, args ...any) { p.line(p.styles.Heading, format, args...) }

// Plain prints text unstyled, followed by a newline.
func (p *Printer) Plain(text string) {
	fmt.Fprintln(p.w, text)
}

// Candidates prints each candidate under a numbered label. A single
// candidate is printed without a label.
func (p *Printer) Candidates(label string, cands []string) {
	if len(cands) == 1 {
		p.Plain(cands[0])
		return
	}
	for i, c := range cands {
		fmt.Fprintln(p.w, p.styles.Label.Render(fmt.Sprintf("%s %d:", label, i+1)))
		fmt.Fprintln(p.w, c)
		if i < len(cands)-1 {
			fmt.Fprintln(p.w, p.styles.Dim.Render(strings.Repeat("-", 40)))
		}
	}
}

// Size renders a byte count for display ("12 kB").
func Size(n int) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// IsTerminal reports whether v (an io.Reader or io.Writer) is a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Stdio reports whether both stdin and stdout are terminals.
func Stdio() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}
