/*
File    : lazylang/function/function.go
Package : function

Package function defines the Function value. It lives in its own
package rather than inside value purely to avoid an import cycle: a
Function's Body is a []parser.Stmt, and parser must not depend back on
value.

Function intentionally holds no reference to the scope it was defined
in. Lazy functions are not closures: only Params and Body survive
definition, so free names inside a function body resolve against
whatever the live scope stack holds at call time, never against the
definition site.
*/
package function

import (
	"fmt"

	"github.com/sleepingmovie/lazylang/parser"
	"github.com/sleepingmovie/lazylang/value"
)

// Function is a user-defined function value: a parameter list and a
// body, nothing else.
type Function struct {
	Name   string
	Params []string
	Body   []parser.Stmt
}

func (f *Function) Type() value.Type { return value.FunctionType }

func (f *Function) Display() string {
	return fmt.Sprintf("<function %s/%d>", f.Name, len(f.Params))
}

func (f *Function) Debug() string { return f.Display() }
