package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// Prompter asks the user for input.
type Prompter interface {
	Text(question, def string) (string, error)
	Confirm(question string) (bool, error)
}

// NewPrompter returns an interactive pterm prompter when stdin is a terminal
// and a line based prompter otherwise.
func NewPrompter() Prompter {
	if IsTerminal(os.Stdin) {
		return &InteractivePrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// InteractivePrompter uses pterm's interactive printers.
type InteractivePrompter struct{}

func (p *InteractivePrompter) Text(question, def string) (string, error) {
	answer, err := pterm.DefaultInteractiveTextInput.WithDefaultValue(def).Show(question)
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	if strings.TrimSpace(answer) == "" {
		return def, nil
	}
	return answer, nil
}

func (p *InteractivePrompter) Confirm(question string) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(question)
	if err != nil {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	return ok, nil
}

// LinePrompter reads answers line by line, for piped input.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and asking on out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Text(question, def string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (p *LinePrompter) Confirm(question string) (bool, error) {
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
