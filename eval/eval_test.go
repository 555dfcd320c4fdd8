package eval

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepingmovie/lazylang/parser"
)

func run(t *testing.T, src string) []string {
	t.Helper()
	var out []string
	stmts, diags := parser.Parse(src)
	require.Empty(t, diags, "source must parse cleanly: %v", diags)
	e := New(func(s string) { out = append(out, s) }, nil)
	e.Run(stmts)
	return out
}

// runWithInput feeds lines to the program's input statements and
// records the prompts shown for each read alongside the output.
func runWithInput(t *testing.T, src string, lines []string) (out, prompts []string) {
	t.Helper()
	stmts, diags := parser.Parse(src)
	require.Empty(t, diags)
	i := 0
	reader := func(prompt string) (string, bool) {
		prompts = append(prompts, prompt)
		if i >= len(lines) {
			return "", false
		}
		line := lines[i]
		i++
		return line, true
	}
	e := New(func(s string) { out = append(out, s) }, reader)
	e.Run(stmts)
	return out, prompts
}

func TestPrintSkipsNothing(t *testing.T) {
	out := run(t, "x = 5\nx\nn = \"a\" - 1\nn")
	assert.Equal(t, []string{"5"}, out, "Nothing results (here: a type-mismatched operator) must not print")
}

func TestArithmeticAndAssociativity(t *testing.T) {
	out := run(t, "10 - 3 - 2")
	assert.Equal(t, []string{"5"}, out)
}

func TestDivisionByZeroIsANumber(t *testing.T) {
	out := run(t, "9 / 0")
	assert.Equal(t, []string{"+Inf"}, out, "division by zero inherits IEEE-754 behavior and still prints")
}

func TestPlusConcatenatesTextAndNumber(t *testing.T) {
	out := run(t, `"total: " + 3
7 + " wonders"`)
	assert.Equal(t, []string{"total: 3", "7 wonders"}, out)
}

func TestPlusAppendsLists(t *testing.T) {
	out := run(t, "xs = [1 2]\nys = [3]\nxs + ys\nxs")
	assert.Equal(t, []string{"[1 2 3]", "[1 2]"}, out, "list append must not mutate either operand")
}

func TestIfElifElse(t *testing.T) {
	src := `
n = 0
? n < 0 {
"negative"
}
?? n > 0 {
"positive"
}
?? {
"zero"
}
`
	out := run(t, src)
	assert.Equal(t, []string{"zero"}, out)
}

func TestWhileLoop(t *testing.T) {
	src := "n = 3\n@ n > 0 {\nn\nn--\n}"
	out := run(t, src)
	assert.Equal(t, []string{"3", "2", "1"}, out)
}

func TestForEachOverList(t *testing.T) {
	src := "xs = [1 2 3]\n>> x -> xs {\nx\n}"
	out := run(t, src)
	assert.Equal(t, []string{"1", "2", "3"}, out)
}

func TestForEachOverNonListYieldsNoIterations(t *testing.T) {
	src := "n = 5\n>> x -> n {\nx\n}\n\"after\""
	out := run(t, src)
	assert.Equal(t, []string{"after"}, out)
}

func TestBlockFunctionCallAndReturn(t *testing.T) {
	src := "add(a b) => {\n-> a + b\n}\nadd(2 3)"
	out := run(t, src)
	assert.Equal(t, []string{"5"}, out)
}

func TestQuickFunctionCall(t *testing.T) {
	src := "square(n) ~> n * n\nsquare(4)"
	out := run(t, src)
	assert.Equal(t, []string{"16"}, out)
}

func TestReturnInsideLoopExitsFunction(t *testing.T) {
	src := `
firstOver(xs bound) => {
>> x -> xs {
? x > bound {
-> x
}
}
-> -1
}
firstOver([1 2 7 3] 5)
`
	out := run(t, src)
	assert.Equal(t, []string{"7"}, out)
}

func TestFunctionsDoNotCloseOverCallerLocals(t *testing.T) {
	src := `
secret = 99
reveal() => {
-> secret
}
secret = 1
reveal()
`
	out := run(t, src)
	assert.Equal(t, []string{"1"}, out, "a function must read the current global, never a captured value from definition time")
}

func TestScopeDepthRestoredAfterCall(t *testing.T) {
	src := "f(n) => {\n-> n\n}\nf(1)\nf(2)"
	var out []string
	stmts, diags := parser.Parse(src)
	require.Empty(t, diags)
	e := New(func(s string) { out = append(out, s) }, nil)
	e.Run(stmts)
	assert.Equal(t, []string{"1", "2"}, out)
	_, ok := e.Scope.Get("n")
	assert.False(t, ok, "a call frame's parameter bindings must not survive the call")
}

func TestMissingArgumentsResolveToNothing(t *testing.T) {
	src := "show(a b) => {\n-> $ (b)\n}\nshow(1)\n\"after\""
	out := run(t, src)
	assert.Equal(t, []string{"", "after"}, out, "a missing argument stringifies to Nothing's empty display")
}

func TestMutatingCallWritesBackToVariable(t *testing.T) {
	src := "xs = [1 2]\n^(xs 3)*\nxs"
	out := run(t, src)
	assert.Equal(t, []string{"[1 2 3]"}, out)
}

func TestMutatingCallOfUserFunctionWritesBack(t *testing.T) {
	src := "double(n) ~> n * 2\nx = 5\ndouble(x)*\nx"
	out := run(t, src)
	assert.Equal(t, []string{"10"}, out)
}

func TestMutatingCallOnNonVariableFirstArgIsIgnored(t *testing.T) {
	src := "<>([1 2 3])*\n\"after\""
	out := run(t, src)
	assert.Equal(t, []string{"after"}, out)
}

func TestNonMutatingCallLeavesVariableUnchanged(t *testing.T) {
	src := "xs = [1 2]\n^(xs 3)\nxs"
	out := run(t, src)
	assert.Equal(t, []string{"[1 2 3]", "[1 2]"}, out)
}

func TestAugAssignOnUnboundNameIsNoOp(t *testing.T) {
	stmts, diags := parser.Parse("x += 1")
	require.Empty(t, diags)
	e := New(func(string) {}, nil)
	e.Run(stmts)
	_, ok := e.Scope.Get("x")
	assert.False(t, ok)
}

func TestCallToUndefinedNameFallsToNothing(t *testing.T) {
	out := run(t, "mystery(1 2)\n\"after\"")
	assert.Equal(t, []string{"after"}, out)
}

func TestIndexOutOfRangeYieldsNothing(t *testing.T) {
	out := run(t, "xs = [1 2]\nxs[5]\nxs[0 - 1]\n\"after\"")
	assert.Equal(t, []string{"after"}, out)
}

func TestInputParsesNumbersAndKeepsText(t *testing.T) {
	out, prompts := runWithInput(t, "+? n\n n + 1\n+? name\nname", []string{"41", "Ada"})
	assert.Equal(t, []string{"42", "Ada"}, out)
	assert.Equal(t, []string{DefaultPrompt, DefaultPrompt}, prompts)
}

func TestInputPromptSubstitutesReadIndex(t *testing.T) {
	src := `+? a b : "value {?}: "
a
b`
	out, prompts := runWithInput(t, src, []string{"x", "y"})
	assert.Equal(t, []string{"value 1: ", "value 2: "}, prompts)
	assert.Equal(t, []string{"x", "y"}, out)
}

func TestInputExpression(t *testing.T) {
	out, prompts := runWithInput(t, "x = +??\nx + 1", []string{"9"})
	assert.Equal(t, []string{"10"}, out)
	assert.Equal(t, []string{DefaultPrompt}, prompts)
}

func TestRandomWithinBound(t *testing.T) {
	var printed []string
	stmts, diags := parser.Parse("?=(10)")
	require.Empty(t, diags)
	e := New(func(s string) { printed = append(printed, s) }, nil).WithSeed(42)
	e.Run(stmts)
	require.Len(t, printed, 1)
	n, err := strconv.Atoi(printed[0])
	require.NoError(t, err)
	assert.True(t, n >= 0 && n < 10)
}
