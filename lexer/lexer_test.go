package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestPreprocessStripsCommentsAndBlankLines(t *testing.T) {
	src := "x = 5\n// a comment\n\n  y = x + 3  \ny\n"
	got := texts(Preprocess(src))
	assert.Equal(t, []string{"x = 5", "y = x + 3", "y"}, got)
}

func TestPreprocessTrailingComment(t *testing.T) {
	src := "x = 5 // set x"
	got := texts(Preprocess(src))
	assert.Equal(t, []string{"x = 5"}, got)
}

func TestPreprocessPreservesSlashesInStrings(t *testing.T) {
	src := `s = "http://example.com"`
	got := texts(Preprocess(src))
	assert.Equal(t, []string{`s = "http://example.com"`}, got)
}

func TestPreprocessCRLF(t *testing.T) {
	src := "x = 1\r\ny = 2\r\n"
	got := texts(Preprocess(src))
	assert.Equal(t, []string{"x = 1", "y = 2"}, got)
}

func TestPreprocessLineNumbersSkipBlankLines(t *testing.T) {
	src := "a = 1\n\nb = 2"
	lines := Preprocess(src)
	assert.Equal(t, 1, lines[0].Num)
	assert.Equal(t, 3, lines[1].Num)
}
