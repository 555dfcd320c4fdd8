/*
File    : lazylang/parser/statements.go
Package : parser

Simple-statement recognition, tried in this order once a line has
fallen through every block-head rule in parseOne: input, return,
postfix increment/decrement, augmented assignment, plain assignment,
then a bare expression (printed unless it is a mutating call, which is
run for effect only).
*/
package parser

import (
	"strings"

	"github.com/sleepingmovie/lazylang/lexer"
)

var augOps = []string{"+=", "-=", "*=", "/="}

func (p *Parser) parseSimple(line lexer.Line) (Stmt, bool) {
	text := line.Text
	p.advance()

	if len(text) >= 2 && text[:2] == "+?" {
		return p.parseInput(line, text)
	}

	if len(text) >= 2 && text[:2] == "->" {
		value := p.mustExpr(line, trimSpace(text[2:]))
		return ReturnStmt{Value: value}, true
	}

	if idx := indexOutsideQuotes(text, "("); idx < 0 {
		if len(text) >= 2 && (text[len(text)-2:] == "++" || text[len(text)-2:] == "--") {
			name := trimSpace(text[:len(text)-2])
			if isValidName(name) {
				return IncDecStmt{Name: name, Op: text[len(text)-2:]}, true
			}
		}
	}

	if idx, op, ok := findFirstOutsideQuotes(text, augOps); ok {
		name := trimSpace(text[:idx])
		if isValidName(name) {
			value := p.mustExpr(line, trimSpace(text[idx+2:]))
			return AugAssignStmt{Name: name, Op: string(op[0]), Value: value}, true
		}
	}

	if idx, ok := findAssignOp(text); ok {
		name := trimSpace(text[:idx])
		if isValidName(name) {
			value := p.mustExpr(line, trimSpace(text[idx+1:]))
			return AssignStmt{Name: name, Value: value}, true
		}
	}

	expr := p.mustExpr(line, text)
	if call, ok := expr.(CallExpr); ok && call.Mutates {
		return FunctionCallStmt{Name: call.Name, Args: call.Args, Mutates: true}, true
	}
	return PrintStmt{Value: expr}, true
}

// parseInput handles "+? var1 var2 [: prompt]". A "{?}" placeholder in
// the prompt marks it as indexed; the per-read substitution itself
// happens in eval.
func (p *Parser) parseInput(line lexer.Line, text string) (Stmt, bool) {
	rest := trimSpace(text[2:])
	prompt := ""
	hasPrompt := false
	if idx := indexOutsideQuotes(rest, ":"); idx >= 0 {
		prompt = trimSpace(rest[idx+1:])
		if len(prompt) >= 2 && prompt[0] == '"' && prompt[len(prompt)-1] == '"' {
			prompt = unescapeString(prompt[1 : len(prompt)-1])
		}
		hasPrompt = true
		rest = trimSpace(rest[:idx])
	}
	vars := splitOutsideNesting(rest)
	if len(vars) == 0 {
		p.diag(line, "input statement missing variable list")
		return nil, false
	}
	iter := hasPrompt && strings.Contains(prompt, "{?}")
	return InputStmt{Vars: vars, Prompt: prompt, HasPrompt: hasPrompt, Iter: iter}, true
}

func findFirstOutsideQuotes(s string, ops []string) (int, string, bool) {
	best := -1
	bestOp := ""
	for _, op := range ops {
		if idx := indexOutsideQuotes(s, op); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			bestOp = op
		}
	}
	if best == -1 {
		return 0, "", false
	}
	return best, bestOp, true
}

// findAssignOp locates the first "=" outside a string whose neighbors
// rule out it being part of ==, !=, <=, >=, =>, ~>, or one of the
// augmented-assign operators (those are already handled before this is
// ever reached, but the guard keeps this function correct standalone
// too).
func findAssignOp(s string) (int, bool) {
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' && (i == 0 || s[i-1] != '\\') {
			inString = !inString
			continue
		}
		if inString || c != '=' {
			continue
		}
		var prev, next byte
		if i > 0 {
			prev = s[i-1]
		}
		if i+1 < len(s) {
			next = s[i+1]
		}
		if next == '=' || next == '>' {
			continue
		}
		switch prev {
		case '=', '>', '<', '!', '+', '-', '*', '/', '~':
			continue
		}
		return i, true
	}
	return 0, false
}
