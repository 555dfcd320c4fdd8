/*
File    : lazylang/parser/expr.go
Package : parser

Expression grammar. There is no separate tokenizer or precedence
table: parseExpr works directly on line text,
trying each category outer-to-inner and recursing on whatever text
remains on either side of the split it finds. Outer categories bind
loosest; by the time a split is found, it is always the expression's
top-level operator.
*/
package parser

import "strconv"

var relOps = []string{"==", "!=", ">=", "<=", ">", "<"}
var addOps = []string{"+", "-", "*", "/", "%"}

// ParseExpr parses a full expression from raw line text.
func ParseExpr(s string) (Expr, error) {
	s = trimSpace(s)
	if s == "" {
		return nil, errf("empty expression")
	}
	return parseExpr(s)
}

func parseExpr(s string) (Expr, error) {
	s = trimSpace(s)
	if s == "" {
		return nil, errf("empty expression")
	}

	// 1. Unary "!" (not "!=") desugars to a call of the "!" builtin.
	if s[0] == '!' && !(len(s) > 1 && s[1] == '=') {
		operand, err := parseExpr(s[1:])
		if err != nil {
			return nil, err
		}
		return CallExpr{Name: "!", Args: []Expr{operand}}, nil
	}

	// 2. Relational: first occurrence, left to right.
	if idx, op, ok := findRelational(s); ok {
		left, err := parseExpr(s[:idx])
		if err != nil {
			return nil, err
		}
		right, err := parseExpr(s[idx+len(op):])
		if err != nil {
			return nil, err
		}
		return BinaryExpr{Left: left, Op: op, Right: right}, nil
	}

	// 3. Additive/multiplicative: last occurrence, scanned right to
	// left, so repeated operators at the same precedence associate left.
	if idx, op, ok := findAdditive(s); ok {
		left, err := parseExpr(s[:idx])
		if err != nil {
			return nil, err
		}
		right, err := parseExpr(s[idx+len(op):])
		if err != nil {
			return nil, err
		}
		return BinaryExpr{Left: left, Op: op, Right: right}, nil
	}

	// 4. List literal: whole string wrapped in [...].
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' && matchingBracket(s, len(s)-1, '[', ']') == 0 {
		return parseListLiteral(s)
	}

	// 5. Index suffix: expr[idx].
	if len(s) >= 1 && s[len(s)-1] == ']' {
		open := matchingBracket(s, len(s)-1, '[', ']')
		if open > 0 {
			listExpr, err := parseExpr(s[:open])
			if err != nil {
				return nil, err
			}
			idxExpr, err := parseExpr(s[open+1 : len(s)-1])
			if err != nil {
				return nil, err
			}
			return IndexExpr{List: listExpr, Index: idxExpr}, nil
		}
	}

	// 6. Call suffix: name(args) or name(args)* (mutating).
	if e, ok, err := tryParseCall(s); ok {
		return e, err
	}

	// 7. Primary: string / number / bool / input / variable.
	return parsePrimary(s)
}

// findRelational scans left to right for the first relational
// operator outside strings/nesting. "<" and ">" are skipped when
// adjacent to another "<"/">" so that builtin names like "<>", "<<",
// "><" parse as call heads rather than stray comparisons.
func findRelational(s string) (int, string, bool) {
	mask := outsideMask(s)
	for i := 1; i < len(s); i++ { // i starts at 1: an operator needs a left operand
		if !mask[i] {
			continue
		}
		for _, op := range relOps {
			if !hasPrefixAt(s, i, op) {
				continue
			}
			if op == "<" || op == ">" {
				if i > 0 && (s[i-1] == '<' || s[i-1] == '>') {
					continue
				}
				if i+1 < len(s) && (s[i+1] == '<' || s[i+1] == '>') {
					continue
				}
			}
			return i, op, true
		}
	}
	return 0, "", false
}

// findAdditive scans right to left for the last +,-,*,/,% outside
// strings/nesting, skipping duplicated-neighbor tokens (++, --), a
// "-" immediately followed by ">" (the return-statement arrow/for-each
// separator, never a subtraction), and the "*" of a trailing ")*"
// mutating-call suffix.
func findAdditive(s string) (int, string, bool) {
	mask := outsideMask(s)
	for i := len(s) - 1; i >= 1; i-- {
		if !mask[i] {
			continue
		}
		c := s[i]
		isAdd := false
		for _, op := range addOps {
			if c == op[0] {
				isAdd = true
				break
			}
		}
		if !isAdd {
			continue
		}
		if c == '-' && i+1 < len(s) && s[i+1] == '>' {
			continue
		}
		if c == '*' && i == len(s)-1 && s[i-1] == ')' {
			continue
		}
		if (c == '+' || c == '-') && i+1 < len(s) && s[i+1] == c {
			continue
		}
		if (c == '+' || c == '-') && i > 0 && s[i-1] == c {
			continue
		}
		return i, string(c), true
	}
	return 0, "", false
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return i+len(prefix) <= len(s) && s[i:i+len(prefix)] == prefix
}

func parseListLiteral(s string) (Expr, error) {
	inner := trimSpace(s[1 : len(s)-1])
	if inner == "" {
		return ListExpr{}, nil
	}
	items, err := parseArgText(inner)
	if err != nil {
		return nil, err
	}
	return ListExpr{Items: items}, nil
}

// tryParseCall attempts the call-suffix production. ok is false when s
// does not end in ')' (or ')*'), meaning the caller should fall through
// to primary parsing.
func tryParseCall(s string) (Expr, bool, error) {
	mutates := false
	body := s
	if len(body) >= 2 && body[len(body)-1] == '*' && body[len(body)-2] == ')' {
		mutates = true
		body = body[:len(body)-1]
	}
	if len(body) == 0 || body[len(body)-1] != ')' {
		return nil, false, nil
	}
	open := matchingParen(body, len(body)-1)
	if open < 0 {
		return nil, false, nil
	}
	name := trimSpace(body[:open])
	argsText := body[open+1 : len(body)-1]
	if name == "" {
		// Grouping parens: (expr). A mutating suffix on a grouping makes
		// no sense and never occurs in practice, so it is ignored.
		e, err := parseExpr(argsText)
		return e, true, err
	}
	args, err := parseArgText(trimSpace(argsText))
	if err != nil {
		return nil, true, err
	}
	return CallExpr{Name: name, Args: args, Mutates: mutates}, true, nil
}

// parseArgText splits an argument list: arrow-separated arguments when
// "->" appears outside nesting and yields more than one piece, else
// whitespace-separated with infix-operator tokens merged back into the
// argument on either side of them.
func parseArgText(s string) ([]Expr, error) {
	if s == "" {
		return nil, nil
	}
	if pieces := splitArrowOutsideNesting(s); len(pieces) > 1 {
		return parseEach(pieces)
	}
	tokens := splitOutsideNesting(s)
	merged := mergeArgTokens(tokens)
	return parseEach(merged)
}

func parseEach(pieces []string) ([]Expr, error) {
	exprs := make([]Expr, len(pieces))
	for i, p := range pieces {
		e, err := parseExpr(p)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return exprs, nil
}

func parsePrimary(s string) (Expr, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return TextExpr{Value: unescapeString(s[1 : len(s)-1])}, nil
	}
	if s == "yes" || s == "true" {
		return BoolExpr{Value: true}, nil
	}
	if s == "no" || s == "false" {
		return BoolExpr{Value: false}, nil
	}
	if len(s) >= 3 && s[:3] == "+??" {
		rest := trimSpace(s[3:])
		if rest == "" {
			return InputExpr{}, nil
		}
		if rest[0] == ':' {
			prompt := trimSpace(rest[1:])
			if len(prompt) >= 2 && prompt[0] == '"' && prompt[len(prompt)-1] == '"' {
				prompt = unescapeString(prompt[1 : len(prompt)-1])
			}
			return InputExpr{Prompt: prompt, HasPrompt: true}, nil
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NumberExpr{Value: f}, nil
	}
	if isValidName(s) {
		return VariableExpr{Name: s}, nil
	}
	return nil, errf("cannot parse expression %q", s)
}

func isValidName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !(isDigit && i > 0) {
			return false
		}
	}
	return true
}

func unescapeString(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				out = append(out, '\n')
				i++
				continue
			case 't':
				out = append(out, '\t')
				i++
				continue
			case '"':
				out = append(out, '"')
				i++
				continue
			case '\\':
				out = append(out, '\\')
				i++
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
