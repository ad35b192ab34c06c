// Package hferrors is hyperfixi's dual-audience error type: every error the
// compile pipeline surfaces carries both a technical Error() string for logs
// and a human-facing message for a diagnostic consumer (editor, CLI) to
// display. Grounded on internal/tqerrors's interpreterError, generalized
// from "message to the game player" to "message to the diagnostic
// consumer."
package hferrors

import "fmt"

// Code classifies a compileError for programmatic handling, per spec.md
// §7's error taxonomy.
type Code string

const (
	CodeLexParse       Code = "lex-parse"
	CodeUnknownCommand Code = "unknown-command"
	CodeUnknownBlock   Code = "unknown-block"
	CodeCompileError   Code = "compile-error"
)

type compileError struct {
	msg   string
	human string
	code  Code
	wrap  error
}

func (e *compileError) Error() string { return e.msg }

// HumanMessage returns the message meant for a diagnostic consumer, as
// opposed to Error()'s technical description.
func (e *compileError) HumanMessage() string { return e.human }

// Code returns the error's taxonomy code.
func (e *compileError) Code() Code { return e.code }

func (e *compileError) Unwrap() error { return e.wrap }

// New returns a compileError with both a diagnostic-facing message and a
// technical description.
func New(code Code, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got compileError(%s, %q)", code, human)
	}
	return &compileError{code: code, msg: technical, human: human}
}

// Newf is New with a formatted human message and an auto-generated Error().
func Newf(code Code, humanFormat string, a ...interface{}) error {
	return New(code, fmt.Sprintf(humanFormat, a...), "")
}

// Wrap returns a compileError that wraps err, carrying its own diagnostic
// message and technical description.
func Wrap(err error, code Code, human, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got compileError(%s, %q)", code, human)
	}
	return &compileError{code: code, msg: technical, human: human, wrap: err}
}

// HumanMessage gets the diagnostic-facing message for err. If err is not a
// compileError, err.Error() is returned.
func HumanMessage(err error) string {
	if ce, ok := err.(*compileError); ok {
		return ce.HumanMessage()
	}
	return err.Error()
}

// CodeOf returns err's taxonomy code, or "" if err is not a compileError.
func CodeOf(err error) Code {
	if ce, ok := err.(*compileError); ok {
		return ce.code
	}
	return ""
}
