/*
File    : lazylang/value/value.go
Package : value

Package value defines the tagged Value domain that the Lazy evaluator
operates over. A Value is one of six variants: Number, Text, Bool,
Nothing, List, or Function. Every variant implements the Value
interface: a type tag plus a display and a debug representation.
*/
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type identifies which of the six Value variants a Value holds.
type Type string

const (
	NumberType   Type = "number"
	TextType     Type = "text"
	BoolType     Type = "bool"
	NothingType  Type = "nothing"
	ListType     Type = "list"
	FunctionType Type = "function"
)

// Value is implemented by every member of the tagged Value union.
// Display renders the value the way Print and $ (stringify) show it;
// Debug renders a more explicit form used only for diagnostics.
type Value interface {
	Type() Type
	Display() string
	Debug() string
}

// Epsilon is the tolerance used for Number equality.
const Epsilon = 2.220446049250313e-16 // machine epsilon for float64

// Number wraps an IEEE-754 double. It prints as an integer when its
// fractional part is zero, else with default float formatting.
type Number float64

func (n Number) Type() Type { return NumberType }

func (n Number) Display() string {
	f := float64(n)
	if math.Trunc(f) == f && math.Abs(f) < 1<<62 {
		return strconv.FormatInt(int64(f), 10)
	}
	if math.Trunc(f) == f && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (n Number) Debug() string { return fmt.Sprintf("Number(%s)", n.Display()) }

// Text wraps an immutable UTF-8 string.
type Text string

func (t Text) Type() Type       { return TextType }
func (t Text) Display() string  { return string(t) }
func (t Text) Debug() string    { return fmt.Sprintf("Text(%q)", string(t)) }

// Bool is a two-state value. It prints as "yes" / "no".
type Bool bool

func (b Bool) Type() Type { return BoolType }

func (b Bool) Display() string {
	if b {
		return "yes"
	}
	return "no"
}

func (b Bool) Debug() string { return fmt.Sprintf("Bool(%t)", bool(b)) }

// Nothing is the unit value: the sentinel for "no result". It is
// distinct from the absence of a binding, though a missing lookup
// also resolves to Nothing.
type Nothing struct{}

func (Nothing) Type() Type      { return NothingType }
func (Nothing) Display() string { return "" }
func (Nothing) Debug() string   { return "Nothing" }

// List is an ordered, heterogeneous, possibly-nested sequence of Values.
type List struct {
	Items []Value
}

func NewList(items []Value) *List {
	if items == nil {
		items = []Value{}
	}
	return &List{Items: items}
}

func (l *List) Type() Type { return ListType }

func (l *List) Display() string {
	parts := make([]string, len(l.Items))
	for i, v := range l.Items {
		parts[i] = v.Display()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (l *List) Debug() string {
	parts := make([]string, len(l.Items))
	for i, v := range l.Items {
		parts[i] = v.Debug()
	}
	return "List[" + strings.Join(parts, " ") + "]"
}

// Clone returns a copy of the list with a fresh backing array. Builtins
// like ^ (push) and v (pop) work on clones, so the caller always gets
// back a fresh List rather than a mutated alias of the input.
func (l *List) Clone() *List {
	items := make([]Value, len(l.Items))
	copy(items, l.Items)
	return &List{Items: items}
}

// Equal is structural equality: Numbers compare within Epsilon,
// everything else compares by tag and recursively by structure.
// Mismatched types are never equal.
func Equal(l, r Value) bool {
	if l.Type() != r.Type() {
		return false
	}
	switch lv := l.(type) {
	case Number:
		rv := r.(Number)
		return math.Abs(float64(lv)-float64(rv)) < Epsilon
	case Text:
		return lv == r.(Text)
	case Bool:
		return lv == r.(Bool)
	case Nothing:
		return true
	case *List:
		rv := r.(*List)
		if len(lv.Items) != len(rv.Items) {
			return false
		}
		for i := range lv.Items {
			if !Equal(lv.Items[i], rv.Items[i]) {
				return false
			}
		}
		return true
	default:
		// Functions compare by identity only; two distinct Function
		// values are never structurally equal.
		return l == r
	}
}

// Truthy reports whether a condition Value counts as "true" when used
// as an if/while condition. Anything that is not Bool(true) is false.
func Truthy(v Value) bool {
	b, ok := v.(Bool)
	return ok && bool(b)
}
