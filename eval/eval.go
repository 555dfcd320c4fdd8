/*
File    : lazylang/eval/eval.go
Package : eval

Package eval tree-walks the parser's AST: a scope stack plus a single
statement-dispatch switch and a single expression-dispatch switch over
the six-variant Value domain. There is no bytecode step and no type
checker: every node is executed directly, and an operation on values
of the wrong shape fails soft to Nothing rather than raising.
*/
package eval

import (
	"math"
	"strconv"
	"strings"

	"github.com/sleepingmovie/lazylang/builtin"
	"github.com/sleepingmovie/lazylang/function"
	"github.com/sleepingmovie/lazylang/parser"
	"github.com/sleepingmovie/lazylang/scope"
	"github.com/sleepingmovie/lazylang/value"
)

// LineWriter is the output sink Print writes through.
type LineWriter func(string)

// LineReader supplies one line of input per call. The provider is
// expected to show prompt to the user and return one trimmed line;
// ok is false at EOF.
type LineReader func(prompt string) (line string, ok bool)

// DefaultPrompt is shown by Input statements that carry no prompt of
// their own.
const DefaultPrompt = "+? "

// Evaluator holds everything a running program needs beyond its AST:
// the scope stack, the RNG behind "?=", and the line provider and
// output sink standing in for stdin/stdout.
type Evaluator struct {
	Scope *scope.Stack
	Out   LineWriter
	In    LineReader

	rng *RNG
}

// New builds an Evaluator with a freshly seeded RNG. out is required;
// in may be nil (every read then yields Nothing).
func New(out LineWriter, in LineReader) *Evaluator {
	return &Evaluator{
		Scope: scope.New(),
		Out:   out,
		In:    in,
		rng:   NewRNG(),
	}
}

// WithSeed overrides the RNG seed, for --seed and for tests.
func (e *Evaluator) WithSeed(seed uint64) *Evaluator {
	e.rng = NewSeededRNG(seed)
	return e
}

// Run executes a full statement list at top level (no enclosing call
// frame to return out of).
func (e *Evaluator) Run(stmts []parser.Stmt) {
	e.execBlock(stmts)
}

// execBlock runs stmts in order, stopping early and propagating a
// return value the moment one is produced: a return inside a nested
// if/while/for still exits the whole enclosing call.
func (e *Evaluator) execBlock(stmts []parser.Stmt) (value.Value, bool) {
	for _, s := range stmts {
		if v, returned := e.exec(s); returned {
			return v, true
		}
	}
	return nil, false
}

func (e *Evaluator) exec(s parser.Stmt) (value.Value, bool) {
	switch st := s.(type) {

	case parser.PrintStmt:
		v := e.eval(st.Value)
		if v.Type() != value.NothingType {
			e.Out(v.Display())
		}
		return nil, false

	case parser.AssignStmt:
		e.Scope.Set(st.Name, e.eval(st.Value))
		return nil, false

	case parser.AugAssignStmt:
		cur, ok := e.Scope.Get(st.Name)
		if !ok {
			return nil, false // augmenting an unbound name is a silent no-op
		}
		e.Scope.Set(st.Name, e.applyBinary(cur, st.Op, e.eval(st.Value)))
		return nil, false

	case parser.IncDecStmt:
		cur, ok := e.Scope.Get(st.Name)
		if !ok {
			return nil, false
		}
		op := "+"
		if st.Op == "--" {
			op = "-"
		}
		e.Scope.Set(st.Name, e.applyBinary(cur, op, value.Number(1)))
		return nil, false

	case parser.IfStmt:
		return e.execIf(st)

	case parser.WhileStmt:
		for value.Truthy(e.eval(st.Cond)) {
			if v, returned := e.execBlock(st.Body); returned {
				return v, true
			}
		}
		return nil, false

	case parser.ForStmt:
		return e.execFor(st)

	case parser.FunctionDefStmt:
		e.Scope.Set(st.Name, &function.Function{Name: st.Name, Params: st.Params, Body: st.Body})
		return nil, false

	case parser.FunctionCallStmt:
		e.callNamed(st.Name, st.Args, st.Mutates)
		return nil, false

	case parser.ReturnStmt:
		return e.eval(st.Value), true

	case parser.InputStmt:
		e.execInput(st)
		return nil, false
	}
	return nil, false
}

func (e *Evaluator) execIf(st parser.IfStmt) (value.Value, bool) {
	if value.Truthy(e.eval(st.Cond)) {
		return e.execBlock(st.Then)
	}
	for _, arm := range st.Elif {
		if value.Truthy(e.eval(arm.Cond)) {
			return e.execBlock(arm.Body)
		}
	}
	if st.Else != nil {
		return e.execBlock(st.Else)
	}
	return nil, false
}

// execFor iterates a List's items; any other Value yields zero
// iterations rather than an error.
func (e *Evaluator) execFor(st parser.ForStmt) (value.Value, bool) {
	list, ok := e.eval(st.Iter).(*value.List)
	if !ok {
		return nil, false
	}
	for _, item := range list.Items {
		e.Scope.Set(st.Var, item)
		if v, returned := e.execBlock(st.Body); returned {
			return v, true
		}
	}
	return nil, false
}

// execInput reads one line per variable. When the prompt carries the
// "{?}" placeholder, each read substitutes its own 1-based position in
// the variable list.
func (e *Evaluator) execInput(st parser.InputStmt) {
	for i, name := range st.Vars {
		prompt := DefaultPrompt
		if st.HasPrompt {
			prompt = st.Prompt
			if st.Iter {
				prompt = strings.ReplaceAll(prompt, "{?}", strconv.Itoa(i+1))
			}
		}
		e.Scope.Set(name, e.readLine(prompt))
	}
}

// readLine pulls one line from the line provider and applies the input
// parsing rule: a line that parses as a double becomes a Number,
// anything else stays Text. Input never fails.
func (e *Evaluator) readLine(prompt string) value.Value {
	if e.In == nil {
		return value.Nothing{}
	}
	line, ok := e.In(prompt)
	if !ok {
		return value.Nothing{}
	}
	if f, err := strconv.ParseFloat(line, 64); err == nil {
		return value.Number(f)
	}
	return value.Text(line)
}

func (e *Evaluator) eval(expr parser.Expr) value.Value {
	switch ex := expr.(type) {
	case parser.NumberExpr:
		return value.Number(ex.Value)
	case parser.TextExpr:
		return value.Text(ex.Value)
	case parser.BoolExpr:
		return value.Bool(ex.Value)
	case parser.VariableExpr:
		if v, ok := e.Scope.Get(ex.Name); ok {
			return v
		}
		return value.Nothing{}
	case parser.ListExpr:
		items := make([]value.Value, len(ex.Items))
		for i, it := range ex.Items {
			items[i] = e.eval(it)
		}
		return value.NewList(items)
	case parser.IndexExpr:
		return e.evalIndex(ex)
	case parser.BinaryExpr:
		return e.applyBinary(e.eval(ex.Left), ex.Op, e.eval(ex.Right))
	case parser.CallExpr:
		return e.callExpr(ex)
	case parser.InputExpr:
		prompt := DefaultPrompt
		if ex.HasPrompt {
			prompt = ex.Prompt
		}
		return e.readLine(prompt)
	}
	return value.Nothing{}
}

func (e *Evaluator) evalIndex(ex parser.IndexExpr) value.Value {
	list, ok := e.eval(ex.List).(*value.List)
	if !ok {
		return value.Nothing{}
	}
	n, ok := e.eval(ex.Index).(value.Number)
	if !ok {
		return value.Nothing{}
	}
	i := int(n)
	if i < 0 || i >= len(list.Items) {
		return value.Nothing{}
	}
	return list.Items[i]
}

// applyBinary implements the operator table for the relational and
// additive/multiplicative categories. Mismatched or unsupported
// operand shapes yield Nothing rather than an error.
//
// Ordering (>,<,>=,<=) is Numeric x Numeric only per the operator
// table; any other pairing falls to Nothing. The sort builtins order
// Texts among themselves too, but that ordering never leaks into a
// program-level "a" < "b".
func (e *Evaluator) applyBinary(l value.Value, op string, r value.Value) value.Value {
	switch op {
	case "==", "!=":
		if l.Type() != r.Type() || !(l.Type() == value.NumberType || l.Type() == value.TextType || l.Type() == value.BoolType) {
			return value.Nothing{}
		}
		return value.Bool(value.Equal(l, r) == (op == "=="))
	case ">", "<", ">=", "<=":
		ln, ok := l.(value.Number)
		if !ok {
			return value.Nothing{}
		}
		rn, ok := r.(value.Number)
		if !ok {
			return value.Nothing{}
		}
		switch op {
		case ">":
			return value.Bool(ln > rn)
		case "<":
			return value.Bool(ln < rn)
		case ">=":
			return value.Bool(ln >= rn)
		case "<=":
			return value.Bool(ln <= rn)
		}
	case "+":
		return applyPlus(l, r)
	case "-", "*", "/", "%":
		ln, ok := l.(value.Number)
		if !ok {
			return value.Nothing{}
		}
		rn, ok := r.(value.Number)
		if !ok {
			return value.Nothing{}
		}
		switch op {
		case "-":
			return ln - rn
		case "*":
			return ln * rn
		case "/":
			// Division by zero inherits IEEE-754 behavior (Inf or NaN),
			// which is still a Number, not an error.
			return ln / rn
		case "%":
			return value.Number(math.Mod(float64(ln), float64(rn)))
		}
	}
	return value.Nothing{}
}

// applyPlus covers every "+" pairing the operator table grants:
// Number arithmetic, Text concatenation, mixed Text/Number
// concatenation through the display form, and List append.
func applyPlus(l, r value.Value) value.Value {
	if ln, ok := l.(value.Number); ok {
		if rn, ok := r.(value.Number); ok {
			return ln + rn
		}
		if rt, ok := r.(value.Text); ok {
			return value.Text(ln.Display()) + rt
		}
		return value.Nothing{}
	}
	if lt, ok := l.(value.Text); ok {
		switch rv := r.(type) {
		case value.Text:
			return lt + rv
		case value.Number:
			return lt + value.Text(rv.Display())
		}
		return value.Nothing{}
	}
	if ll, ok := l.(*value.List); ok {
		if rl, ok := r.(*value.List); ok {
			out := ll.Clone()
			out.Items = append(out.Items, rl.Items...)
			return out
		}
	}
	return value.Nothing{}
}

func (e *Evaluator) callExpr(ex parser.CallExpr) value.Value {
	return e.callNamed(ex.Name, ex.Args, ex.Mutates)
}

// callNamed dispatches a call: builtins first (reserved names shadow
// user bindings), then the scope's Function binding. A name that
// resolves to neither falls silently to Nothing. The ")*" write-back
// step is owned here, by the caller, never by the called function,
// so builtins stay pure.
func (e *Evaluator) callNamed(name string, argExprs []parser.Expr, mutates bool) value.Value {
	result := e.dispatch(name, argExprs)
	if mutates && len(argExprs) > 0 {
		if v, ok := argExprs[0].(parser.VariableExpr); ok {
			e.Scope.Set(v.Name, result)
		}
	}
	return result
}

func (e *Evaluator) dispatch(name string, argExprs []parser.Expr) value.Value {
	if name == "?=" {
		return e.callRandom(argExprs)
	}
	if b, ok := builtin.Lookup(name); ok {
		return e.callBuiltin(b, argExprs)
	}
	if fnVal, ok := e.Scope.Get(name); ok {
		if fn, ok := fnVal.(*function.Function); ok {
			return e.callUser(fn, argExprs)
		}
	}
	return value.Nothing{}
}

func (e *Evaluator) callBuiltin(b *builtin.Builtin, argExprs []parser.Expr) value.Value {
	if len(argExprs) != b.Arity {
		return value.Nothing{}
	}
	args := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		args[i] = e.eval(a)
	}
	result, _ := b.Fn(args)
	return result
}

func (e *Evaluator) callRandom(argExprs []parser.Expr) value.Value {
	if len(argExprs) != 1 {
		return value.Nothing{}
	}
	bound, ok := e.eval(argExprs[0]).(value.Number)
	if !ok {
		return value.Nothing{}
	}
	return value.Number(e.rng.Intn(int64(bound)))
}

func (e *Evaluator) callUser(fn *function.Function, argExprs []parser.Expr) value.Value {
	args := make([]value.Value, len(argExprs))
	for i, a := range argExprs {
		args[i] = e.eval(a)
	}
	e.Scope.Push()
	for i, p := range fn.Params {
		if i < len(args) {
			e.Scope.Bind(p, args[i])
		} else {
			e.Scope.Bind(p, value.Nothing{})
		}
	}
	v, returned := e.execBlock(fn.Body)
	e.Scope.Pop()
	if returned {
		return v
	}
	return value.Nothing{}
}
