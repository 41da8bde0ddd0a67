package interpreter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUncaught matches a thrown value that left the program uncaught.
	ErrUncaught = errors.New("uncaught exception")
	// ErrStackOverflow matches a RuntimeError raised when the call depth limit is hit.
	ErrStackOverflow = errors.New("stack overflow")
)

// RuntimeError is a failure raised while evaluating a program. Msg carries
// the message without the line prefix; it is the value bound by catch.
type RuntimeError struct {
	Line  int
	Msg   string
	Trace []Frame // innermost call last

	kind error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
}

func (e *RuntimeError) Unwrap() error {
	return e.kind
}

// StackTrace renders the call frames active when the error was raised,
// innermost first.
func (e *RuntimeError) StackTrace() string {
	var sb strings.Builder
	for i := len(e.Trace) - 1; i >= 0; i-- {
		sb.WriteString("  ")
		sb.WriteString(e.Trace[i].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ThrowError carries a value raised by a throw statement across call
// boundaries until a try statement catches it.
type ThrowError struct {
	Value Value
	Line  int
}

func (e *ThrowError) Error() string {
	return fmt.Sprintf("Line %d: Uncaught exception: %s", e.Line, e.Value)
}

func (e *ThrowError) Is(target error) bool {
	return target == ErrUncaught
}
