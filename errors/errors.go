// Package errors defines the three error shapes corelox can hand back to a
// caller: lex/parse failures discovered at compile time, type errors
// discovered at run time, and the internal-error sentinel used for
// conditions the implementation itself must never reach.
package errors

import (
	"errors"
	"fmt"
)

// CompilationError is a single diagnostic produced while compiling source
// text. Its Error() string is the wire format of spec section 4.2:
//
//	[line L] Error<Context>: <Message>
//
// Context is " at end" for an end-of-file token, empty for a scanner Error
// token (whose lexeme already is the message), or " at '<lexeme>'" otherwise.
type CompilationError struct {
	Line    int
	Context string
	Message string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Context, e.Message)
}

// RuntimeError is a type mismatch (or other dynamic failure) raised by the
// VM while executing a Chunk. Error() renders the two-line stderr format:
// the message, then the faulting line.
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script", e.Message, e.Line)
}

// ErrUnreachable marks a branch the Compiler or VM must never take: an
// internal compiler error (ICE). Reaching it means a switch over
// TokenType/OpCode has fallen out of sync with the parse-rule/dispatch
// tables, and the process aborts rather than limping onward.
var ErrUnreachable = errors.New("internal error: entered unreachable code")
