package interpreter

import "fmt"

// Frame represents a function call frame.
type Frame struct {
	FuncName string // callee name as printed in traces
	Line     int    // line of the call site
}

func (f *Frame) String() string {
	return fmt.Sprintf("at %s (line %d)", f.FuncName, f.Line)
}
