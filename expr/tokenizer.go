package expr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenType is the kind of a token of a property expression.
type TokenType int

// Token types.
const (
	EOF TokenType = iota
	PLUS
	MINUS
	DIV
	MOD
	MULTIPLY
	LPAR
	RPAR
	COMMA
	LITERAL       // 'string' or "string"
	NCNAME        // name, e.g. auto, lr-tb
	FLOAT         // 1.5
	INTEGER       // 12
	PERCENT       // 50%
	NUMERIC       // 12pt
	COLORSPEC     // #ff0000
	FUNCTION_LPAR // name(
)

var tokenNames = [...]string{"EOF", "+", "-", "div", "mod", "*", "(", ")", ",",
	"LITERAL", "NCNAME", "FLOAT", "INTEGER", "PERCENT", "NUMERIC", "COLORSPEC", "FUNCTION"}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("<token %d>", int(t))
}

// Token is a lexical token of a property expression.
type Token struct {
	Type    TokenType
	Text    string // for LITERAL without quotes, for FUNCTION_LPAR the function name
	Pos     int    // byte offset into the expression
	UnitLen int    // length of the unit suffix of NUMERIC tokens
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%s)", t.Type, t.Text)
}

// tokenizer produces tokens on demand. It is not resumable; to re-read an
// expression, create a new tokenizer.
type tokenizer struct {
	expr  string
	pos   int   // read position
	token Token // current token

	// Operator names (div, mod) and the standalone % are recognized only
	// after an operand.
	recognizeOperator bool
}

func newTokenizer(expr string) *tokenizer {
	return &tokenizer{expr: expr}
}

// next advances to the next token.
func (t *tokenizer) next() error {
	t.skipSpace()
	start := t.pos
	if t.pos >= len(t.expr) {
		t.set(EOF, "", start, false)
		return nil
	}
	c := t.expr[t.pos]
	switch c {
	case ',':
		t.pos++
		t.set(COMMA, "", start, false)
	case '(':
		t.pos++
		t.set(LPAR, "", start, false)
	case ')':
		t.pos++
		t.set(RPAR, "", start, true)
	case '+':
		t.pos++
		t.set(PLUS, "", start, false)
	case '-':
		t.pos++
		t.set(MINUS, "", start, false)
	case '*':
		t.pos++
		t.set(MULTIPLY, "", start, false)
	case '/':
		t.pos++
		t.set(DIV, "", start, false)
	case '%':
		if !t.recognizeOperator {
			return t.errorf(start, "unexpected '%%'")
		}
		t.pos++
		t.set(MOD, "", start, false)
	case '"', '\'':
		end := t.pos + 1
		for end < len(t.expr) && t.expr[end] != c {
			end++
		}
		if end >= len(t.expr) {
			return t.errorf(start, "unterminated string literal")
		}
		t.pos = end + 1
		t.set(LITERAL, t.expr[start+1:end], start, true)
	case '#':
		t.pos++
		for t.pos < len(t.expr) && isHexDigit(t.expr[t.pos]) {
			t.pos++
		}
		if t.pos == start+1 {
			return t.errorf(start, "illegal color specification")
		}
		t.set(COLORSPEC, t.expr[start:t.pos], start, true)
	default:
		switch {
		case isDigit(c) || c == '.':
			return t.scanNumber(start)
		case isNameStart(t.expr[t.pos:]):
			return t.scanName(start)
		}
		r, _ := utf8.DecodeRuneInString(t.expr[t.pos:])
		return t.errorf(start, fmt.Sprintf("illegal character %q", r))
	}
	return nil
}

func (t *tokenizer) scanNumber(start int) error {
	digits := t.scanDigits()
	typ := INTEGER
	if t.pos < len(t.expr) && t.expr[t.pos] == '.' {
		t.pos++
		typ = FLOAT
		digits += t.scanDigits()
	}
	if digits == 0 {
		return t.errorf(start, "illegal number")
	}
	if t.pos < len(t.expr) {
		if t.expr[t.pos] == '%' {
			t.pos++
			t.set(PERCENT, t.expr[start:t.pos], start, true)
			return nil
		}
		if isLetter(t.expr[t.pos]) {
			ustart := t.pos
			for t.pos < len(t.expr) && isLetter(t.expr[t.pos]) {
				t.pos++
			}
			t.set(NUMERIC, t.expr[start:t.pos], start, true)
			t.token.UnitLen = t.pos - ustart
			return nil
		}
	}
	t.set(typ, t.expr[start:t.pos], start, true)
	return nil
}

func (t *tokenizer) scanDigits() int {
	n := 0
	for t.pos < len(t.expr) && isDigit(t.expr[t.pos]) {
		t.pos++
		n++
	}
	return n
}

func (t *tokenizer) scanName(start int) error {
	for t.pos < len(t.expr) {
		r, size := utf8.DecodeRuneInString(t.expr[t.pos:])
		if !isNameChar(r) {
			break
		}
		t.pos += size
	}
	name := t.expr[start:t.pos]
	if t.pos < len(t.expr) && t.expr[t.pos] == '(' {
		t.pos++
		t.set(FUNCTION_LPAR, name, start, false)
		return nil
	}
	if t.recognizeOperator {
		switch name {
		case "div":
			t.set(DIV, "", start, false)
			return nil
		case "mod":
			t.set(MOD, "", start, false)
			return nil
		}
	}
	t.set(NCNAME, name, start, true)
	return nil
}

func (t *tokenizer) set(typ TokenType, text string, pos int, operand bool) {
	t.token = Token{Type: typ, Text: text, Pos: pos}
	t.recognizeOperator = operand
}

func (t *tokenizer) skipSpace() {
	for t.pos < len(t.expr) {
		switch t.expr[t.pos] {
		case ' ', '\t', '\r', '\n':
			t.pos++
		default:
			return
		}
	}
}

func (t *tokenizer) errorf(pos int, msg string) error {
	return &PropertyError{Expr: t.expr, Pos: pos, Err: ErrSyntax, Msg: msg}
}

// Tokens splits an expression into its tokens, up to and excluding EOF.
// It is intended for diagnostics.
func Tokens(expr string) ([]Token, error) {
	t := newTokenizer(expr)
	var tokens []Token
	for {
		if err := t.next(); err != nil {
			return tokens, err
		}
		if t.token.Type == EOF {
			return tokens, nil
		}
		tokens = append(tokens, t.token)
	}
}

// --- Character classes -----------------------------------------------------

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return r == '_' || r == '-' || r == '.' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
