// Package confirm implements the interactive yes/no gate between plan
// preview and apply.
package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// StdioPrompter reads answers line by line from In and writes prompts to Out.
// Anything other than yes/y/no/n (case-insensitive) re-prompts. End of input
// declines; an aborted prompt must never apply a plan.
type StdioPrompter struct {
	In  io.Reader
	Out io.Writer
}

// New returns a prompter over the given streams.
func New(in io.Reader, out io.Writer) *StdioPrompter {
	return &StdioPrompter{In: in, Out: out}
}

// Confirm asks question until it gets a recognizable answer.
func (p *StdioPrompter) Confirm(question string) (bool, error) {
	scanner := bufio.NewScanner(p.In)
	for {
		fmt.Fprintf(p.Out, "%s [y/n]: ", question)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return false, err
			}
			fmt.Fprintln(p.Out)
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.Out, `Please answer "y" or "n".`)
	}
}
