// Package input contains line readers used by hfc's interactive REPL to
// pull one hyperscript fragment at a time from either a TTY or a plain
// pipe.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader is implemented by both reader variants below; hfc's REPL loop
// is written against this interface so it does not care which one backs it.
type LineReader interface {
	ReadLine() (string, error)
	AllowBlank(allow bool)
	Close() error
}

// PipeLineReader reads REPL lines from any generic input stream directly.
// It can be used generically with any io.Reader but does not sanitize the
// input of control and escape sequences, so it is only appropriate when
// stdin is not a TTY (piped/scripted REPL input).
//
// PipeLineReader should not be used directly; instead, create one with
// [NewPipeReader].
type PipeLineReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveLineReader reads REPL lines from stdin using a Go
// implementation of the GNU Readline library. This keeps input clear of
// typing/editing escape sequences and enables command history; it should
// be used when hfc -repl is attached directly to a TTY.
//
// InteractiveLineReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveLineReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewPipeReader creates a new PipeLineReader and initializes a buffered
// reader on the provided reader.
func NewPipeReader(r io.Reader) *PipeLineReader {
	return &PipeLineReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveLineReader and initializes
// readline with the given prompt. The returned reader must have Close()
// called on it before disposal to properly tear down readline resources.
func NewInteractiveReader(prompt string) (*InteractiveLineReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveLineReader{
		rl:     rl,
		prompt: prompt,
	}, nil
}

// Close cleans up resources associated with the PipeLineReader.
func (plr *PipeLineReader) Close() error {
	// Nothing to tear down today; the interface requires it because
	// InteractiveLineReader does, and hfc's REPL loop treats both
	// uniformly via LineReader.
	return nil
}

// Close cleans up readline resources associated with the
// InteractiveLineReader.
func (ilr *InteractiveLineReader) Close() error {
	return ilr.rl.Close()
}

// ReadLine reads the next line of REPL input. The returned string will
// only be empty if there is an error reading input, otherwise this
// function blocks until a line containing non-space characters is read
// (unless AllowBlank(true) was called).
//
// At end of input, the returned string is empty and error is io.EOF.
func (plr *PipeLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = plr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && plr.blanksAllowed {
			return line, nil
		}
		if err == io.EOF && line == "" {
			return "", io.EOF
		}
	}

	return line, nil
}

// ReadLine reads the next line of REPL input from the readline instance.
// Behavior matches PipeLineReader.ReadLine.
func (ilr *InteractiveLineReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ilr.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ilr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default it is not allowed.
func (plr *PipeLineReader) AllowBlank(allow bool) {
	plr.blanksAllowed = allow
}

// AllowBlank sets whether a blank line is returned as-is rather than
// skipped. By default it is not allowed.
func (ilr *InteractiveLineReader) AllowBlank(allow bool) {
	ilr.blanksAllowed = allow
}

// SetPrompt updates the prompt text.
func (ilr *InteractiveLineReader) SetPrompt(p string) {
	ilr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt text.
func (ilr *InteractiveLineReader) GetPrompt() string {
	return ilr.prompt
}
