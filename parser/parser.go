/*
File    : lazylang/parser/parser.go
Package : parser

Parser drives the line cursor and the block-head dispatch: a
recursive-descent pass with one recognizer function per construct,
working over preprocessed lines instead of tokens, per Lazy's
line-oriented grammar.
*/
package parser

import (
	"fmt"

	"github.com/sleepingmovie/lazylang/lexer"
)

// Parser consumes preprocessed lines and produces a statement list. It
// accumulates non-fatal diagnostics (such as an orphan "??") rather
// than aborting on the first recoverable problem.
type Parser struct {
	lines []lexer.Line
	pos   int
	Diags []string
}

// New creates a Parser over already-preprocessed lines.
func New(lines []lexer.Line) *Parser {
	return &Parser{lines: lines}
}

// Parse parses the full program as a flat statement list.
func Parse(src string) ([]Stmt, []string) {
	p := New(lexer.Preprocess(src))
	stmts := p.parseBlock()
	return stmts, p.Diags
}

func (p *Parser) done() bool { return p.pos >= len(p.lines) }

func (p *Parser) peek() lexer.Line { return p.lines[p.pos] }

func (p *Parser) advance() lexer.Line {
	l := p.lines[p.pos]
	p.pos++
	return l
}

func (p *Parser) diag(line lexer.Line, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.Diags = append(p.Diags, fmt.Sprintf("line %d: %s", line.Num, msg))
}

// parseBlock parses statements until a "}" terminator or end of input,
// consuming the terminator itself when present. A missing terminator
// at EOF is not an error.
func (p *Parser) parseBlock() []Stmt {
	var stmts []Stmt
	for !p.done() {
		if p.peek().Text == "}" {
			p.advance()
			return stmts
		}
		if stmt, ok := p.parseOne(); ok {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// parseOne recognizes and parses a single statement. Priority order,
// first match wins: terminator (handled by the caller), orphan "??",
// quick function, block function, while, for-each, if-chain, then
// simple statement.
func (p *Parser) parseOne() (Stmt, bool) {
	line := p.peek()
	text := line.Text

	if len(text) >= 2 && text[:2] == "??" {
		p.advance()
		p.diag(line, "orphan ?? with no preceding if")
		p.parseBlock() // discard a trailing block to stay in sync
		return nil, false
	}

	if sig, expr, ok := splitHead(text, "~>"); ok {
		if name, params, okSig := callSignature(sig); okSig {
			p.advance()
			body := []Stmt{ReturnStmt{Value: p.mustExpr(line, expr)}}
			return FunctionDefStmt{Name: name, Params: params, Body: body, Quick: true}, true
		}
	}

	if sig, rest, ok := splitHead(text, "=>"); ok {
		if name, params, okSig := callSignature(sig); okSig {
			_ = rest // trailing content is cosmetic, just "{" if present
			p.advance()
			body := p.parseBlock()
			return FunctionDefStmt{Name: name, Params: params, Body: body}, true
		}
	}

	if len(text) >= 1 && text[0] == '@' {
		p.advance()
		cond := p.mustExpr(line, stripBrace(trimSpace(text[1:])))
		body := p.parseBlock()
		return WhileStmt{Cond: cond, Body: body}, true
	}

	if len(text) >= 2 && text[:2] == ">>" {
		p.advance()
		return p.finishForEach(line)
	}

	if len(text) >= 1 && text[0] == '?' && !(len(text) > 1 && (text[1] == '?' || text[1] == '=')) {
		p.advance()
		return p.finishIf(line)
	}

	return p.parseSimple(line)
}

func (p *Parser) finishForEach(line lexer.Line) (Stmt, bool) {
	rest := trimSpace(line.Text[2:])
	rest = stripBrace(rest)
	tokens := splitOutsideNesting(rest)
	if len(tokens) == 0 {
		p.diag(line, "for-each missing loop variable")
		return nil, false
	}
	varName := tokens[0]
	iterText := trimSpace(rest[len(tokens[0]):])
	if len(iterText) >= 2 && iterText[:2] == "->" {
		iterText = trimSpace(iterText[2:])
	}
	iter := p.mustExpr(line, iterText)
	body := p.parseBlock()
	return ForStmt{Var: varName, Iter: iter, Body: body}, true
}

func (p *Parser) finishIf(line lexer.Line) (Stmt, bool) {
	cond := p.mustExpr(line, stripBrace(trimSpace(line.Text[1:])))
	then := p.parseBlock()
	stmt := IfStmt{Cond: cond, Then: then}
	for !p.done() {
		next := p.peek()
		if len(next.Text) < 2 || next.Text[:2] != "??" {
			break
		}
		arm := stripBrace(trimSpace(next.Text[2:]))
		p.advance()
		if arm == "" {
			stmt.Else = p.parseBlock()
			break
		}
		armCond := p.mustExpr(next, arm)
		armBody := p.parseBlock()
		stmt.Elif = append(stmt.Elif, ElifArm{Cond: armCond, Body: armBody})
	}
	return stmt, true
}

func stripBrace(s string) string {
	s = trimSpace(s)
	if len(s) > 0 && s[len(s)-1] == '{' {
		s = trimSpace(s[:len(s)-1])
	}
	return s
}

// splitHead finds sep outside strings, returning the text before and
// after it. ok is false when sep is absent.
func splitHead(s, sep string) (before, after string, ok bool) {
	idx := indexOutsideQuotes(s, sep)
	if idx < 0 {
		return "", "", false
	}
	return trimSpace(s[:idx]), trimSpace(s[idx+len(sep):]), true
}

// callSignature recognizes a "name(params)" head, splitting params on
// whitespace.
func callSignature(sig string) (name string, params []string, ok bool) {
	if sig == "" || sig[len(sig)-1] != ')' {
		return "", nil, false
	}
	open := matchingParen(sig, len(sig)-1)
	if open < 0 {
		return "", nil, false
	}
	name = trimSpace(sig[:open])
	if !isValidName(name) {
		return "", nil, false
	}
	paramsText := trimSpace(sig[open+1 : len(sig)-1])
	if paramsText != "" {
		params = splitOutsideNesting(paramsText)
	}
	return name, params, true
}

// mustExpr parses an expression, recording a diagnostic and falling
// back to an empty-text placeholder on failure so callers never have
// to thread an error up through the best-effort block recognizers.
func (p *Parser) mustExpr(line lexer.Line, s string) Expr {
	e, err := parseExpr(s)
	if err != nil {
		p.diag(line, "%s", err)
		return TextExpr{Value: ""}
	}
	return e
}

func errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
