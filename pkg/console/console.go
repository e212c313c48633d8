// Package console renders the ejection progress and collects user input.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Outcome is the final state of a task line.
type Outcome int

const (
	Success Outcome = iota
	Failure
	Warning
)

const (
	clearLine = "\x0D\x1B[2K"

	arrowGlyph   = "➡"
	successGlyph = "✔"
	failureGlyph = "x"
	warningGlyph = "!"
)

var (
	arrowStyle   = pterm.NewStyle(pterm.FgBlue, pterm.Bold)
	successStyle = pterm.NewStyle(pterm.FgGreen)
	failureStyle = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warningStyle = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	statusStyle  = pterm.NewStyle(pterm.FgYellow)
	infoStyle    = pterm.NewStyle(pterm.FgGreen)
)

// Console writes task progress to an output stream.
type Console struct {
	out       io.Writer
	decorated bool
}

// New creates a Console writing to out. Decorated consoles rewrite the
// current line in place; plain ones move to a new line instead.
func New(out io.Writer, decorated bool) *Console {
	return &Console{out: out, decorated: decorated}
}

// NewStdout creates a Console on stdout, decorated when stdout is a terminal.
// Styling is turned off for plain output.
func NewStdout() *Console {
	decorated := IsTerminal(os.Stdout)
	if !decorated {
		pterm.DisableStyling()
	}
	return New(os.Stdout, decorated)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) prefix(title string) string {
	return arrowStyle.Sprint(arrowGlyph) + " " + title
}

// Start prints the in-progress line of a task.
func (c *Console) Start(title, status string) {
	_, _ = fmt.Fprintf(c.out, "%s: %s", c.prefix(title), statusStyle.Sprint(status))
}

// Finish replaces the in-progress line of a task with its outcome.
func (c *Console) Finish(title string, outcome Outcome) {
	c.clear()
	_, _ = fmt.Fprintf(c.out, "%s: %s\n", c.prefix(title), glyph(outcome))
}

func (c *Console) clear() {
	if !c.decorated {
		_, _ = fmt.Fprintln(c.out)
		return
	}
	_, _ = io.WriteString(c.out, clearLine)
}

func glyph(o Outcome) string {
	switch o {
	case Success:
		return successStyle.Sprint(successGlyph)
	case Warning:
		return warningStyle.Sprint(warningGlyph)
	default:
		return failureStyle.Sprint(failureGlyph)
	}
}

// Line prints a line of text.
func (c *Console) Line(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format+"\n", args...)
}

// Error prints a fatal error.
func (c *Console) Error(err error) {
	_, _ = fmt.Fprintf(c.out, "\n%s %s\n", failureStyle.Sprint("Error:"), err)
}

// Warn prints a non-fatal problem.
func (c *Console) Warn(err error) {
	_, _ = fmt.Fprintf(c.out, "%s %s\n", warningStyle.Sprint("Warning:"), err)
}
