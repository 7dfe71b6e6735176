package parse

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"src.slt.sh/pkg/diag"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokSemicolon
	tokIdent
	tokKeyword
	tokInt
	tokFloat
	tokString
	tokOp
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNewline:
		return "newline"
	case tokSemicolon:
		return "';'"
	case tokIdent:
		return "identifier"
	case tokKeyword:
		return "keyword"
	case tokInt, tokFloat:
		return "number"
	case tokString:
		return "string"
	default:
		return "operator"
	}
}

// A token. For tokString, value holds the unquoted text; for tokInt and
// tokFloat it holds the parsed number.
type token struct {
	kind  tokenKind
	text  string
	value any
	diag.Ranging
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF, tokNewline, tokSemicolon:
		return t.kind.String()
	}
	return strconv.Quote(t.text)
}

var keywords = map[string]bool{
	"if": true, "else": true, "while": true, "return": true, "fn": true,
	"true": true, "false": true, "null": true,
}

// Keywords returns all keywords of the language, in no particular order.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	return names
}

// Two-rune operators must come before their one-rune prefixes.
var operators = []string{
	"==", "!=", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "<", ">", "!", "=",
	"(", ")", "[", "]", "{", "}", ",",
}

var (
	errStringUnterminated = newError("string not terminated")
	errInvalidEscape      = newError("invalid escape sequence")
	errBadNumber          = newError("bad number literal")
)

type lexer struct {
	srcName string
	src     string
	pos     int
	toks    []token
}

// Splits src into tokens. The last token is always tokEOF.
func lex(srcName, src string) ([]token, *Error) {
	lx := &lexer{srcName: srcName, src: src}
	for {
		if err := lx.skipSpaces(); err != nil {
			return nil, err
		}
		if lx.pos == len(src) {
			lx.emit(tokEOF, lx.pos, nil)
			return lx.toks, nil
		}
		if err := lx.next(); err != nil {
			return nil, err
		}
	}
}

// Skips inline whitespace and comments.
func (lx *lexer) skipSpaces() *Error {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		switch {
		case r == '#':
			end := strings.IndexByte(lx.src[lx.pos:], '\n')
			if end == -1 {
				lx.pos = len(lx.src)
			} else {
				lx.pos += end
			}
		case r == '\n':
			return nil
		case unicode.IsSpace(r):
			lx.pos += size
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) next() *Error {
	begin := lx.pos
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	switch {
	case r == '\n':
		lx.pos += size
		lx.emit(tokNewline, begin, nil)
	case r == ';':
		lx.pos += size
		lx.emit(tokSemicolon, begin, nil)
	case r == '"' || r == '\'':
		return lx.lexString(r)
	case isDigit(r):
		return lx.lexNumber()
	case isIdentStart(r):
		for lx.pos < len(lx.src) {
			r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
			if !IsIdentRune(r) {
				break
			}
			lx.pos += size
		}
		if keywords[lx.src[begin:lx.pos]] {
			lx.emit(tokKeyword, begin, nil)
		} else {
			lx.emit(tokIdent, begin, nil)
		}
	default:
		for _, op := range operators {
			if strings.HasPrefix(lx.src[lx.pos:], op) {
				lx.pos += len(op)
				lx.emit(tokOp, begin, nil)
				return nil
			}
		}
		return lx.errorAt(diag.Ranging{From: begin, To: begin + size},
			fmt.Errorf("unexpected rune %q", r))
	}
	return nil
}

func (lx *lexer) lexString(quote rune) *Error {
	begin := lx.pos
	lx.pos++
	var sb strings.Builder
	for {
		if lx.pos == len(lx.src) {
			return lx.errorAt(diag.PointRanging(lx.pos), errStringUnterminated)
		}
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		lx.pos += size
		switch {
		case r == quote:
			lx.emit(tokString, begin, sb.String())
			return nil
		case r == '\\' && quote == '"':
			if lx.pos == len(lx.src) {
				return lx.errorAt(diag.PointRanging(lx.pos), errStringUnterminated)
			}
			esc, escSize := utf8.DecodeRuneInString(lx.src[lx.pos:])
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			case '\\', '"':
				sb.WriteRune(esc)
			default:
				return lx.errorAt(diag.Ranging{From: lx.pos - 1, To: lx.pos + escSize},
					errInvalidEscape)
			}
			lx.pos += escSize
		default:
			sb.WriteRune(r)
		}
	}
}

func (lx *lexer) lexNumber() *Error {
	begin := lx.pos
	isFloat := false
	lx.skipDigits()
	if lx.peekByte(0) == '.' && isDigit(rune(lx.peekByte(1))) {
		isFloat = true
		lx.pos++
		lx.skipDigits()
	}
	if b := lx.peekByte(0); b == 'e' || b == 'E' {
		isFloat = true
		lx.pos++
		if b := lx.peekByte(0); b == '+' || b == '-' {
			lx.pos++
		}
		if !isDigit(rune(lx.peekByte(0))) {
			return lx.errorAt(diag.Ranging{From: begin, To: lx.pos}, errBadNumber)
		}
		lx.skipDigits()
	}
	text := lx.src[begin:lx.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lx.errorAt(diag.Ranging{From: begin, To: lx.pos}, errBadNumber)
		}
		lx.emit(tokFloat, begin, f)
	} else {
		i, err := strconv.Atoi(text)
		if err != nil {
			return lx.errorAt(diag.Ranging{From: begin, To: lx.pos},
				newError("integer out of range"))
		}
		lx.emit(tokInt, begin, i)
	}
	return nil
}

func (lx *lexer) skipDigits() {
	for lx.pos < len(lx.src) && isDigit(rune(lx.src[lx.pos])) {
		lx.pos++
	}
}

func (lx *lexer) peekByte(offset int) byte {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+offset]
}

func (lx *lexer) emit(kind tokenKind, begin int, value any) {
	lx.toks = append(lx.toks, token{
		kind: kind, text: lx.src[begin:lx.pos], value: value,
		Ranging: diag.Ranging{From: begin, To: lx.pos}})
}

func (lx *lexer) errorAt(r diag.Ranging, e error) *Error {
	return &Error{
		Message: e.Error(),
		Context: *diag.NewContext(lx.srcName, lx.src, r),
		Partial: r.From == len(lx.src),
	}
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentRune reports whether r can appear in an identifier.
func IsIdentRune(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// IdentStart returns the byte index in s where the run of identifier runes
// ending at byte index end begins.
func IdentStart(s string, end int) int {
	begin := end
	for begin > 0 {
		r, size := utf8.DecodeLastRuneInString(s[:begin])
		if !IsIdentRune(r) {
			break
		}
		begin -= size
	}
	return begin
}
