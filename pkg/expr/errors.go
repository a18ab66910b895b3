package expr

import "fmt"

// LexError is returned when the input text cannot be tokenized: an
// unrecognized character or a malformed number literal.
type LexError struct {
	Msg  string
	Char string // offending text, if any
	Pos  int
}

// Error implements the error interface.
func (e *LexError) Error() string {
	if e.Char != "" {
		return fmt.Sprintf("lex error: %s %q at position %d", e.Msg, e.Char, e.Pos)
	}
	return fmt.Sprintf("lex error: %s at position %d", e.Msg, e.Pos)
}

// ParseError is returned when a token sequence is structurally invalid:
// mismatched parentheses or a comma outside a function call.
type ParseError struct {
	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse error: " + e.Msg
}

// EvalError is returned when a structurally valid expression has no defined
// value: stack underflow, an unknown function name, an invalid factorial
// argument, a non-finite result, or a malformed final stack.
type EvalError struct {
	Msg  string
	Name string // function name, for unknown-function errors
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("eval error: %s %q", e.Msg, e.Name)
	}
	return "eval error: " + e.Msg
}
