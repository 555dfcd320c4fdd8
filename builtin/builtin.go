/*
File    : lazylang/builtin/builtin.go
Package : builtin

Package builtin implements the fourteen reserved-symbol functions of
the language (`#(xs)`, `^(xs 1)`, `!(flag)`, ...). There is no way for
a program to add new ones: the registry is a fixed name-keyed table of
small structs holding an arity and a callback.

Lists are never mutated in place by these functions: each one that
logically changes a list (push, pop, sort, reverse, dedup) returns a
fresh *value.List. Mutating-call syntax (`)*`) is handled one layer up
in eval, which writes the returned value back into the call's first
argument once the builtin returns; the builtins themselves stay pure.

Thirteen of the fourteen reserved symbols live in this package's
Table. The fourteenth, "?=" (random), needs access to the evaluator's
own xorshift generator state and so is dispatched directly by eval
instead of through this stateless table; see eval.go.
*/
package builtin

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sleepingmovie/lazylang/value"
)

// Builtin is one operator-table entry: a fixed arity and the function
// that implements it.
type Builtin struct {
	Name  string
	Arity int
	Fn    func(args []value.Value) (value.Value, error)
}

// Table holds the thirteen stateless builtins, keyed by symbol.
var Table = map[string]*Builtin{}

func register(name string, arity int, fn func(args []value.Value) (value.Value, error)) {
	Table[name] = &Builtin{Name: name, Arity: arity, Fn: fn}
}

// Lookup returns the builtin registered under name, if any.
func Lookup(name string) (*Builtin, bool) {
	b, ok := Table[name]
	return b, ok
}

func init() {
	register("#", 1, biLength)
	register("$", 1, biStringify)
	register("~", 1, biNumify)
	register("^", 2, biPush)
	register("v", 1, biPop)
	register("&", 2, biJoin)
	register("|", 2, biSplit)
	register("!", 1, biNot)
	register("<>", 1, biReverse)
	register("++", 1, biSortAsc)
	register("--", 1, biSortDesc)
	register("><", 2, biMember)
	register("<<", 1, biDedup)
}

// biLength implements #: the number of items in a List, or of runes in Text.
// Anything else has length 0.
func biLength(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case *value.List:
		return value.Number(len(v.Items)), nil
	case value.Text:
		return value.Number(len([]rune(string(v)))), nil
	default:
		return value.Number(0), nil
	}
}

// biStringify implements $: render any Value the way Print would.
func biStringify(args []value.Value) (value.Value, error) {
	return value.Text(args[0].Display()), nil
}

// biNumify implements ~: parse Text as a Number, 0 when the text does not
// parse; Number passes through unchanged.
func biNumify(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Number:
		return v, nil
	case value.Text:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return value.Number(0), nil
		}
		return value.Number(f), nil
	default:
		return value.Nothing{}, nil
	}
}

// biPush implements ^: append a value to a list, returning a new list.
func biPush(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	out := list.Clone()
	out.Items = append(out.Items, args[1])
	return out, nil
}

// biPop implements v: drop the last element, returning a new list. Popping an
// empty list returns another empty list.
func biPop(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	if len(list.Items) == 0 {
		return value.NewList(nil), nil
	}
	out := list.Clone()
	out.Items = out.Items[:len(out.Items)-1]
	return out, nil
}

// biJoin implements &: join a list's items with a Text separator, rendering
// each item through its Display form (the same form Print/$ use).
func biJoin(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	sep, ok := args[1].(value.Text)
	if !ok {
		return value.Nothing{}, nil
	}
	parts := make([]string, len(list.Items))
	for i, item := range list.Items {
		parts[i] = item.Display()
	}
	return value.Text(strings.Join(parts, string(sep))), nil
}

// biSplit implements |: split Text on a Text separator. An empty separator
// yields an empty list rather than one item per rune.
func biSplit(args []value.Value) (value.Value, error) {
	text, ok := args[0].(value.Text)
	if !ok {
		return value.Nothing{}, nil
	}
	sep, ok := args[1].(value.Text)
	if !ok {
		return value.Nothing{}, nil
	}
	if sep == "" {
		return value.NewList(nil), nil
	}
	parts := strings.Split(string(text), string(sep))
	items := make([]value.Value, len(parts))
	for i, p := range parts {
		items[i] = value.Text(p)
	}
	return value.NewList(items), nil
}

// biNot implements !: logical negation, involutive on Bool; a non-Bool argument
// yields false.
func biNot(args []value.Value) (value.Value, error) {
	if b, ok := args[0].(value.Bool); ok {
		return !b, nil
	}
	return value.Bool(false), nil
}

// biReverse implements <>: reverse a list's item order.
func biReverse(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	out := list.Clone()
	for i, j := 0, len(out.Items)-1; i < j; i, j = i+1, j-1 {
		out.Items[i], out.Items[j] = out.Items[j], out.Items[i]
	}
	return out, nil
}

// biSortAsc implements ++: stable ascending sort of a list's items.
// Items are ordered within their own type (Number numerically, Text
// lexicographically, Bool false-before-true); a mixed-type pair keeps
// its original relative order.
func biSortAsc(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	out := list.Clone()
	sort.SliceStable(out.Items, func(i, j int) bool {
		return valueLess(out.Items[i], out.Items[j])
	})
	return out, nil
}

// biSortDesc implements --: the descending mirror of ++, a stable sort on the
// inverted comparator so that, like ++, a mixed-type pair keeps its
// original relative order. For a homogeneous list the result equals
// the reverse of the ascending sort.
func biSortDesc(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	out := list.Clone()
	sort.SliceStable(out.Items, func(i, j int) bool {
		return valueLess(out.Items[j], out.Items[i])
	})
	return out, nil
}

// biMember implements ><: true iff the list contains a value structurally equal
// to the second argument.
func biMember(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Bool(false), nil
	}
	for _, item := range list.Items {
		if value.Equal(item, args[1]) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

// biDedup implements <<: drop later duplicates, keeping each distinct value's
// first occurrence in its original position.
func biDedup(args []value.Value) (value.Value, error) {
	list, ok := args[0].(*value.List)
	if !ok {
		return value.Nothing{}, nil
	}
	var out []value.Value
	for _, item := range list.Items {
		dup := false
		for _, kept := range out {
			if value.Equal(item, kept) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, item)
		}
	}
	return value.NewList(out), nil
}

// valueLess is the ordering behind ++ and --: Numbers by value, Texts
// lexicographically, Bool false-before-true. Values of different types
// never compare less than each other, so under a stable sort a mixed
// pair retains its original relative order. This order exists only for
// the sort builtins; the language's own < and > stay Number-only.
func valueLess(a, b value.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case value.Number:
		return av < b.(value.Number)
	case value.Text:
		return av < b.(value.Text)
	case value.Bool:
		return !bool(av) && bool(b.(value.Bool))
	default:
		return false
	}
}
