// Package parse implements the parser of slt.
//
// Source text can be parsed in two ways: as a script (a sequence of
// statements, see [ParseScript]) or as a single expression (see
// [ParseExpression]). The grammars differ in that an expression statement in
// a script must be terminated by ';', so bare expressions like "1 + 2" only
// parse as expressions.
//
// Both functions stop at the first error, which always has type *Error.
package parse

import "strings"

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
}

// ParseScript parses the source as a script.
func ParseScript(src Source) (*Chunk, error) {
	ps, err := newParser(src)
	if err != nil {
		return nil, err
	}
	var chunk *Chunk
	err = ps.run(func() { chunk = ps.parseChunk() })
	if err != nil {
		return nil, err
	}
	return chunk, nil
}

// ParseExpression parses the source as a single expression, optionally
// surrounded by whitespace and newlines.
func ParseExpression(src Source) (Expr, error) {
	ps, err := newParser(src)
	if err != nil {
		return nil, err
	}
	var expr Expr
	err = ps.run(func() {
		ps.skipNewlines()
		expr = ps.parseExpr()
		ps.skipNewlines()
		if ps.peek().kind != tokEOF {
			ps.unexpected()
		}
	})
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// IsIncomplete reports whether the code has unclosed brackets, meaning that
// more lines are needed before it can possibly parse. Code that cannot be
// tokenized is never considered incomplete.
func IsIncomplete(code string) bool {
	toks, err := lex("", code)
	if err != nil {
		return false
	}
	depth := 0
	for _, t := range toks {
		if t.kind != tokOp {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
	}
	return depth > 0
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`, `"`, `\"`, "\n", `\n`, "\t", `\t`, "\r", `\r`, "\x00", `\0`)

// Quote returns a representation of s as a double-quoted string literal that
// parses back to s.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
