package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// errPromptAborted is returned when the user ends input (Ctrl-C or EOF).
var errPromptAborted = errors.New("prompt aborted")

// clearValue is the answer that empties a field.
const clearValue = "-"

// Prompter asks the user for input during interactive commands.
type Prompter interface {
	// Edit asks for a new value of a field and returns it.
	// Answering "-" clears the value.
	Edit(label, current string) (string, error)

	// Ask asks a free-form question and returns the trimmed answer.
	Ask(question string) (string, error)

	Close() error
}

// newPrompter returns a line-editing prompter when in is a terminal and a
// plain line reader otherwise.
func newPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return newLinerPrompter()
	}

	return newLinePrompter(in, out)
}

// linerPrompter pre-fills the current value so it can be edited in place.
type linerPrompter struct {
	state *liner.State
}

func newLinerPrompter() *linerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	return &linerPrompter{state: state}
}

func (p *linerPrompter) Edit(label, current string) (string, error) {
	line, err := p.state.PromptWithSuggestion(label+": ", current, -1)
	if err != nil {
		return "", linerErr(err)
	}

	if strings.TrimSpace(line) == clearValue {
		return "", nil
	}

	return line, nil
}

func (p *linerPrompter) Ask(question string) (string, error) {
	line, err := p.state.Prompt(question + " ")
	if err != nil {
		return "", linerErr(err)
	}

	return strings.TrimSpace(line), nil
}

func (p *linerPrompter) Close() error {
	return p.state.Close()
}

func linerErr(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return errPromptAborted
	}

	return err
}

// linePrompter reads one line per answer. The current value is shown in
// brackets; a blank answer keeps it.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	if in == nil {
		in = strings.NewReader("")
	}

	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) Edit(label, current string) (string, error) {
	if current != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	switch strings.TrimSpace(line) {
	case "":
		return current, nil
	case clearValue:
		return "", nil
	default:
		return line, nil
	}
}

func (p *linePrompter) Ask(question string) (string, error) {
	_, _ = fmt.Fprint(p.out, question+" ")

	line, err := p.readLine()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (p *linePrompter) Close() error {
	return nil
}

func (p *linePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	if errors.Is(err, io.EOF) && line == "" {
		_, _ = fmt.Fprintln(p.out)

		return "", errPromptAborted
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(p Prompter, question string) (bool, error) {
	answer, err := p.Ask(question + " [y/N]")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
