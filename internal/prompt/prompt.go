// Package prompt handles the interactive questions stamp asks before
// destructive or corrective actions.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// ErrCanceled is returned when the user provides no value for a
// required input.
var ErrCanceled = errors.New("canceled by user")

var questionColor = color.New(color.FgYellow)

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter on stdin/stdout.
func New() *Prompter {
	return &Prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// NewWith returns a Prompter over explicit streams, used in tests.
func NewWith(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Confirm asks a yes/no question. Enter and "y"/"yes" answer yes,
// "n"/"no" answers no; anything else re-asks. EOF answers no.
func (p *Prompter) Confirm(question string) bool {
	for {
		questionColor.Fprintf(p.out, "%s [Y/n] ", question)
		line, err := p.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "", "y", "yes":
			if err != nil && answer == "" {
				return false
			}
			return true
		case "n", "no":
			return false
		}
		if err != nil {
			return false
		}
		fmt.Fprintf(p.out, "%q is not a recognised answer\n", answer)
	}
}

// Required asks for a value that must not be empty.
func (p *Prompter) Required(label string) (string, error) {
	fmt.Fprintf(p.out, "Provide %s: ", label)
	line, err := p.in.ReadString('\n')
	value := strings.TrimSpace(line)
	if value == "" {
		return "", fmt.Errorf("no %s provided: %w", label, ErrCanceled)
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	return value, nil
}

// Value asks for an optional value; empty input means "leave unset".
func (p *Prompter) Value(label string) string {
	fmt.Fprintf(p.out, "Value for %s: ", label)
	line, _ := p.in.ReadString('\n')
	return strings.TrimSpace(line)
}
