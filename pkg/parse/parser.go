package parse

import (
	"bytes"
	"errors"
	"fmt"

	"src.slt.sh/pkg/diag"
)

// Error is a parse error.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "parse error" }

// UnpackErrors returns the constituent parse errors if the given error contains
// one or more parse errors. Otherwise it returns nil.
func UnpackErrors(e error) []*Error {
	return diag.UnpackErrors[ErrorTag](e)
}

// Errors.
var (
	errShouldBeExpr      = newError("", "expression")
	errShouldBeSemicolon = newError("expression statement not terminated", "';'")
	errShouldBeSep       = newError("", "';'", "newline")
	errShouldBeRParen    = newError("", "')'")
	errShouldBeRBracket  = newError("", "']'")
	errShouldBeLBrace    = newError("", "'{'")
	errShouldBeRBrace    = newError("", "'}'")
	errShouldBeParam     = newError("", "parameter name")
	errShouldBeCommaOrRP = newError("", "','", "')'")
	errShouldBeCommaOrRB = newError("", "','", "']'")
)

// parser maintains the mutable states of parsing.
type parser struct {
	srcName string
	src     string
	toks    []token
	pos     int
	// End position of the last consumed token.
	lastEnd int
}

// Used with panic to abort parsing at the first error.
type bailout struct{ err *Error }

func newParser(src Source) (*parser, error) {
	toks, err := lex(src.Name, src.Code)
	if err != nil {
		return nil, err
	}
	return &parser{srcName: src.Name, src: src.Code, toks: toks}, nil
}

// Runs f, converting a bailout into an error.
func (ps *parser) run(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	f()
	return nil
}

func (ps *parser) peek() token { return ps.toks[ps.pos] }

func (ps *parser) peekAt(offset int) token {
	if ps.pos+offset >= len(ps.toks) {
		return ps.toks[len(ps.toks)-1]
	}
	return ps.toks[ps.pos+offset]
}

func (ps *parser) next() token {
	t := ps.toks[ps.pos]
	if t.kind != tokEOF {
		ps.pos++
		ps.lastEnd = t.To
	}
	return t
}

// Consumes the next token if it is the given operator.
func (ps *parser) acceptOp(op string) bool {
	if ps.peek().is(tokOp, op) {
		ps.next()
		return true
	}
	return false
}

func (ps *parser) expectOp(op string, e error) {
	if !ps.acceptOp(op) {
		ps.error(e)
	}
}

func (ps *parser) skipNewlines() {
	for ps.peek().kind == tokNewline {
		ps.next()
	}
}

func isSep(t token) bool {
	return t.kind == tokNewline || t.kind == tokSemicolon
}

func (ps *parser) skipSeps() {
	for isSep(ps.peek()) {
		ps.next()
	}
}

// Sets the range and source text of n, ending at the last consumed token.
func (ps *parser) finish(n Node, from int) {
	nn := n.n()
	nn.From = from
	nn.To = ps.lastEnd
	nn.sourceText = ps.src[from:ps.lastEnd]
}

func addChild(p Node, ch Node) {
	p.n().addChild(ch)
}

func (ps *parser) errorp(r diag.Ranger, e error) {
	panic(bailout{&Error{
		Message: e.Error(),
		Context: *diag.NewContext(ps.srcName, ps.src, r),
		Partial: r.Range().From == len(ps.src),
	}})
}

// Reports an error at the next token.
func (ps *parser) error(e error) {
	ps.errorp(ps.peek(), e)
}

func newError(text string, shouldbe ...string) error {
	if len(shouldbe) == 0 {
		return errors.New(text)
	}
	var buf bytes.Buffer
	if len(text) > 0 {
		buf.WriteString(text + ", ")
	}
	buf.WriteString("should be " + shouldbe[0])
	for i, opt := range shouldbe[1:] {
		if i == len(shouldbe)-2 {
			buf.WriteString(" or ")
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(opt)
	}
	return errors.New(buf.String())
}

// Statements.

func (ps *parser) parseChunk() *Chunk {
	ch := &Chunk{}
	ps.parseStmts(ch, &ch.Stmts, func(t token) bool { return t.kind == tokEOF })
	ch.From, ch.To, ch.sourceText = 0, len(ps.src), ps.src
	return ch
}

// Parses statements until closing reports true for the next token, which is
// left unconsumed.
func (ps *parser) parseStmts(parent Node, stmts *[]Stmt, closing func(token) bool) {
	ps.skipSeps()
	for !closing(ps.peek()) {
		st := ps.parseStmt()
		*stmts = append(*stmts, st)
		addChild(parent, st)
		if needsSep(st) && !closing(ps.peek()) && !isSep(ps.peek()) {
			ps.error(errShouldBeSep)
		}
		ps.skipSeps()
	}
}

// Whether a statement must be followed by a separator when it is not the last
// one. Statements ending in ';' or '}' need none.
func needsSep(st Stmt) bool {
	switch st.(type) {
	case *Assign, *Return:
		return true
	}
	return false
}

func (ps *parser) parseStmt() Stmt {
	t := ps.peek()
	switch {
	case t.is(tokKeyword, "if"):
		return ps.parseIf()
	case t.is(tokKeyword, "while"):
		return ps.parseWhile()
	case t.is(tokKeyword, "return"):
		return ps.parseReturn()
	case t.is(tokOp, "{"):
		return ps.parseBlock()
	case t.kind == tokIdent && ps.peekAt(1).is(tokOp, "="):
		return ps.parseAssign()
	case t.kind == tokEOF:
		ps.error(errShouldBeExpr)
	}
	n := &ExprStmt{Expr: ps.parseExpr()}
	addChild(n, n.Expr)
	if ps.peek().kind != tokSemicolon {
		ps.error(errShouldBeSemicolon)
	}
	ps.next()
	ps.finish(n, t.From)
	return n
}

func (ps *parser) parseAssign() *Assign {
	name := ps.next()
	ps.next() // '='
	ps.skipNewlines()
	n := &Assign{Name: name.text, Value: ps.parseExpr()}
	addChild(n, n.Value)
	ps.finish(n, name.From)
	return n
}

func (ps *parser) parseBlock() *Block {
	begin := ps.peek().From
	ps.expectOp("{", errShouldBeLBrace)
	n := &Block{}
	ps.parseStmts(n, &n.Stmts, func(t token) bool {
		return t.kind == tokEOF || t.is(tokOp, "}")
	})
	ps.expectOp("}", errShouldBeRBrace)
	ps.finish(n, begin)
	return n
}

func (ps *parser) parseIf() *If {
	begin := ps.next().From
	n := &If{Cond: ps.parseExpr()}
	addChild(n, n.Cond)
	n.Body = ps.parseBlock()
	addChild(n, n.Body)
	if ps.peek().is(tokKeyword, "else") {
		ps.next()
		if ps.peek().is(tokKeyword, "if") {
			n.Else = ps.parseIf()
		} else {
			n.Else = ps.parseBlock()
		}
		addChild(n, n.Else)
	}
	ps.finish(n, begin)
	return n
}

func (ps *parser) parseWhile() *While {
	begin := ps.next().From
	n := &While{Cond: ps.parseExpr()}
	addChild(n, n.Cond)
	n.Body = ps.parseBlock()
	addChild(n, n.Body)
	ps.finish(n, begin)
	return n
}

func (ps *parser) parseReturn() *Return {
	begin := ps.next().From
	n := &Return{}
	if t := ps.peek(); !isSep(t) && t.kind != tokEOF && !t.is(tokOp, "}") {
		n.Value = ps.parseExpr()
		addChild(n, n.Value)
	}
	ps.finish(n, begin)
	return n
}

// Expressions, from the lowest precedence to the highest.

func (ps *parser) parseExpr() Expr { return ps.parseOr() }

func (ps *parser) parseOr() Expr {
	left := ps.parseAnd()
	for ps.peek().is(tokOp, "||") {
		left = ps.binary(left, ps.parseAnd)
	}
	return left
}

func (ps *parser) parseAnd() Expr {
	left := ps.parseCompare()
	for ps.peek().is(tokOp, "&&") {
		left = ps.binary(left, ps.parseCompare)
	}
	return left
}

var compareOps = map[string]bool{
	"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}

func (ps *parser) parseCompare() Expr {
	left := ps.parseSum()
	if t := ps.peek(); t.kind == tokOp && compareOps[t.text] {
		left = ps.binary(left, ps.parseSum)
	}
	return left
}

func (ps *parser) parseSum() Expr {
	left := ps.parseProduct()
	for t := ps.peek(); t.is(tokOp, "+") || t.is(tokOp, "-"); t = ps.peek() {
		left = ps.binary(left, ps.parseProduct)
	}
	return left
}

func (ps *parser) parseProduct() Expr {
	left := ps.parseUnary()
	for t := ps.peek(); t.is(tokOp, "*") || t.is(tokOp, "/") || t.is(tokOp, "%"); t = ps.peek() {
		left = ps.binary(left, ps.parseUnary)
	}
	return left
}

// Consumes an operator token and parses the right operand with parseRight.
func (ps *parser) binary(left Expr, parseRight func() Expr) Expr {
	op := ps.next()
	ps.skipNewlines()
	n := &Binary{Op: op.text, Left: left, Right: parseRight()}
	addChild(n, n.Left)
	addChild(n, n.Right)
	ps.finish(n, left.Range().From)
	return n
}

func (ps *parser) parseUnary() Expr {
	t := ps.peek()
	if t.is(tokOp, "-") || t.is(tokOp, "!") {
		ps.next()
		n := &Unary{Op: t.text, Operand: ps.parseUnary()}
		addChild(n, n.Operand)
		ps.finish(n, t.From)
		return n
	}
	return ps.parsePostfix()
}

func (ps *parser) parsePostfix() Expr {
	e := ps.parsePrimary()
	for {
		switch {
		case ps.peek().is(tokOp, "("):
			ps.next()
			n := &Call{Callee: e}
			addChild(n, e)
			n.Args = ps.parseExprList(n, ")", errShouldBeCommaOrRP)
			ps.finish(n, e.Range().From)
			e = n
		case ps.peek().is(tokOp, "["):
			ps.next()
			ps.skipNewlines()
			n := &Index{Target: e, Key: ps.parseExpr()}
			addChild(n, n.Target)
			addChild(n, n.Key)
			ps.skipNewlines()
			ps.expectOp("]", errShouldBeRBracket)
			ps.finish(n, e.Range().From)
			e = n
		default:
			return e
		}
	}
}

// Parses a comma-separated list of expressions after the opening bracket has
// been consumed, up to and including the closing bracket.
func (ps *parser) parseExprList(parent Node, closing string, errSep error) []Expr {
	var exprs []Expr
	ps.skipNewlines()
	for !ps.acceptOp(closing) {
		if len(exprs) > 0 {
			ps.expectOp(",", errSep)
			ps.skipNewlines()
		}
		e := ps.parseExpr()
		exprs = append(exprs, e)
		addChild(parent, e)
		ps.skipNewlines()
	}
	return exprs
}

func (ps *parser) parsePrimary() Expr {
	t := ps.peek()
	switch {
	case t.kind == tokInt || t.kind == tokFloat:
		ps.next()
		n := &Number{Value: t.value}
		ps.finish(n, t.From)
		return n
	case t.kind == tokString:
		ps.next()
		n := &String{Value: t.value.(string)}
		ps.finish(n, t.From)
		return n
	case t.kind == tokIdent:
		ps.next()
		n := &Ident{Name: t.text}
		ps.finish(n, t.From)
		return n
	case t.is(tokKeyword, "true"), t.is(tokKeyword, "false"):
		ps.next()
		n := &Bool{Value: t.text == "true"}
		ps.finish(n, t.From)
		return n
	case t.is(tokKeyword, "null"):
		ps.next()
		n := &Null{}
		ps.finish(n, t.From)
		return n
	case t.is(tokKeyword, "fn"):
		return ps.parseFn()
	case t.is(tokOp, "("):
		ps.next()
		ps.skipNewlines()
		e := ps.parseExpr()
		ps.skipNewlines()
		ps.expectOp(")", errShouldBeRParen)
		return e
	case t.is(tokOp, "["):
		ps.next()
		n := &List{}
		n.Elems = ps.parseExprList(n, "]", errShouldBeCommaOrRB)
		ps.finish(n, t.From)
		return n
	}
	ps.error(errShouldBeExpr)
	panic("unreachable")
}

func (ps *parser) parseFn() *Fn {
	begin := ps.next().From
	n := &Fn{}
	ps.expectOp("(", newError("", "'('"))
	for !ps.acceptOp(")") {
		if len(n.Params) > 0 {
			ps.expectOp(",", errShouldBeCommaOrRP)
		}
		param := ps.peek()
		if param.kind != tokIdent {
			ps.error(errShouldBeParam)
		}
		ps.next()
		n.Params = append(n.Params, param.text)
	}
	n.Body = ps.parseBlock()
	addChild(n, n.Body)
	ps.finish(n, begin)
	return n
}

func (ps *parser) unexpected() {
	ps.error(fmt.Errorf("unexpected %s", ps.peek().describe()))
}
