package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepingmovie/lazylang/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	b, ok := Lookup(name)
	require.True(t, ok, "builtin %q must be registered", name)
	require.Len(t, args, b.Arity)
	v, err := b.Fn(args)
	require.NoError(t, err)
	return v
}

func TestThirteenPureBuiltinsAreRegistered(t *testing.T) {
	// "?=" (random) is the fourteenth reserved symbol; it is dispatched
	// by eval directly since it needs the evaluator's RNG state.
	names := []string{"#", "$", "~", "^", "v", "&", "|", "!", "<>", "++", "--", "><", "<<"}
	assert.Len(t, Table, len(names))
	for _, n := range names {
		_, ok := Lookup(n)
		assert.True(t, ok, "missing builtin %q", n)
	}
}

func TestLengthOfListAndText(t *testing.T) {
	list := value.NewList([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
	assert.Equal(t, value.Number(3), call(t, "#", list))
	assert.Equal(t, value.Number(5), call(t, "#", value.Text("hello")))
}

func TestStringifyNumifyRoundTrip(t *testing.T) {
	n := value.Number(42)
	text := call(t, "$", n)
	assert.Equal(t, value.Text("42"), text)
	back := call(t, "~", text)
	assert.Equal(t, n, back)
}

func TestNumifyUnparsableYieldsZero(t *testing.T) {
	assert.Equal(t, value.Number(0), call(t, "~", value.Text("not a number")))
}

func TestLengthOfOtherValuesIsZero(t *testing.T) {
	assert.Equal(t, value.Number(0), call(t, "#", value.Number(42)))
	assert.Equal(t, value.Number(0), call(t, "#", value.Bool(true)))
	assert.Equal(t, value.Number(0), call(t, "#", value.Nothing{}))
}

func TestNotOnNonBoolYieldsFalse(t *testing.T) {
	assert.Equal(t, value.Bool(false), call(t, "!", value.Number(1)))
	assert.Equal(t, value.Bool(false), call(t, "!", value.Text("yes")))
}

func TestPushPopAreInverseAndPure(t *testing.T) {
	original := value.NewList([]value.Value{value.Number(1), value.Number(2)})
	pushed := call(t, "^", original, value.Number(3)).(*value.List)
	assert.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, pushed.Items)
	assert.Equal(t, []value.Value{value.Number(1), value.Number(2)}, original.Items, "push must not mutate its input")

	popped := call(t, "v", pushed).(*value.List)
	assert.True(t, value.Equal(original, popped))
	assert.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, pushed.Items, "pop must not mutate its input")
}

func TestPopEmptyListStaysEmpty(t *testing.T) {
	empty := value.NewList(nil)
	popped := call(t, "v", empty).(*value.List)
	assert.Len(t, popped.Items, 0)
}

func TestJoinAndSplitRoundTrip(t *testing.T) {
	xs := value.NewList([]value.Value{value.Text("a"), value.Text("b"), value.Text("c")})
	joined := call(t, "&", xs, value.Text("-"))
	assert.Equal(t, value.Text("a-b-c"), joined)

	split := call(t, "|", value.Text("a,b,c"), value.Text(",")).(*value.List)
	assert.Equal(t, []value.Value{value.Text("a"), value.Text("b"), value.Text("c")}, split.Items)
}

func TestSplitOnEmptySeparatorYieldsEmptyList(t *testing.T) {
	split := call(t, "|", value.Text("abc"), value.Text("")).(*value.List)
	assert.Len(t, split.Items, 0)
}

func TestNotIsInvolutive(t *testing.T) {
	for _, b := range []value.Bool{true, false} {
		once := call(t, "!", b)
		twice := call(t, "!", once)
		assert.Equal(t, value.Bool(b), twice)
	}
}

func TestReverseIsInvolutive(t *testing.T) {
	xs := value.NewList([]value.Value{value.Number(3), value.Number(1), value.Number(2)})
	reversed := call(t, "<>", xs).(*value.List)
	assert.Equal(t, []value.Value{value.Number(2), value.Number(1), value.Number(3)}, reversed.Items)
	assert.Equal(t, []value.Value{value.Number(3), value.Number(1), value.Number(2)}, xs.Items, "reverse must not mutate its input")

	twice := call(t, "<>", reversed).(*value.List)
	assert.True(t, value.Equal(xs, twice))
}

func TestAscThenDescSortsAreMirrored(t *testing.T) {
	xs := value.NewList([]value.Value{value.Number(3), value.Number(1), value.Number(2)})
	asc := call(t, "++", xs).(*value.List)
	assert.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, asc.Items)
	assert.Equal(t, []value.Value{value.Number(3), value.Number(1), value.Number(2)}, xs.Items, "sort must not mutate its input")

	desc := call(t, "--", xs).(*value.List)
	reversedAsc := call(t, "<>", asc).(*value.List)
	assert.True(t, value.Equal(desc, reversedAsc))
}

func TestSortOrdersTextsLexicographically(t *testing.T) {
	xs := value.NewList([]value.Value{value.Text("pear"), value.Text("apple"), value.Text("mango")})
	asc := call(t, "++", xs).(*value.List)
	assert.Equal(t, []value.Value{value.Text("apple"), value.Text("mango"), value.Text("pear")}, asc.Items)
}

func TestSortKeepsMixedTypeNeighborsInOriginalOrder(t *testing.T) {
	// A Text/Number pair never compares less in either direction, so an
	// interleaved mixed list comes back in its original order.
	xs := value.NewList([]value.Value{value.Text("b"), value.Number(1), value.Text("a")})
	asc := call(t, "++", xs).(*value.List)
	assert.Equal(t, xs.Items, asc.Items)
}

func TestMemberTest(t *testing.T) {
	xs := value.NewList([]value.Value{value.Number(1), value.Number(2), value.Number(3)})
	assert.Equal(t, value.Bool(true), call(t, "><", xs, value.Number(2)))
	assert.Equal(t, value.Bool(false), call(t, "><", xs, value.Number(9)))
}

func TestDedupPreservesFirstOccurrenceOrder(t *testing.T) {
	xs := value.NewList([]value.Value{value.Number(1), value.Number(2), value.Number(1), value.Number(3), value.Number(2)})
	deduped := call(t, "<<", xs).(*value.List)
	assert.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, deduped.Items)
}
