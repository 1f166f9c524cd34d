package compiler

import (
	"fmt"
	"unicode"
)

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"int":      INT,
	"float":    FLOAT,
	"bool":     BOOL,
	"char":     CHAR,
	"double":   DOUBLE,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"do":       DO,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"main":     MAIN,
}

// boolLiterals are not keywords in this grammar but still lex as literals.
var boolLiterals = map[string]string{
	"true":  "1",
	"false": "0",
}

// Lexer holds all mutable state for a single scanning pass over src.
type Lexer struct {
	src  []rune
	pos  int // index of the next rune to consume
	line int // current 1-based source line
	col  int // current 1-based source column
}

func newLexer(src string) *Lexer {
	return &Lexer{src: []rune(src), pos: 0, line: 1, col: 1}
}

// peek returns the rune at the current position without advancing.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

// peek2 returns the rune one position ahead of the current position.
func (l *Lexer) peek2() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) here() Pos { return Pos{Line: l.line, Col: l.col} }

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// skipLineComment discards everything from the current position to end-of-line.
// The opening "//" must already have been consumed.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.peek() != '\n' {
		l.advance()
	}
}

// skipBlockComment discards everything up to and including the closing "*/".
// The opening "/*" must already have been consumed.
func (l *Lexer) skipBlockComment(opened Pos) error {
	for l.pos < len(l.src) {
		if l.peek() == '*' && l.peek2() == '/' {
			l.advance() // *
			l.advance() // /
			return nil
		}
		l.advance()
	}
	return lexErrorf(opened, "unterminated block comment")
}

// scanIdent collects an identifier, keyword, or bool literal.
// The first character (letter or '_') must still be at l.peek().
func (l *Lexer) scanIdent() Token {
	pos := l.here()
	start := l.pos
	for l.pos < len(l.src) {
		r := l.peek()
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		l.advance()
	}
	lexeme := string(l.src[start:l.pos])
	if kw, ok := keywords[lexeme]; ok {
		return Token{Type: kw, Lexeme: lexeme, Line: pos.Line, Col: pos.Col}
	}
	if val, ok := boolLiterals[lexeme]; ok {
		return Token{Type: BOOL_LIT, Lexeme: val, Line: pos.Line, Col: pos.Col}
	}
	return Token{Type: IDENTIFIER, Lexeme: lexeme, Line: pos.Line, Col: pos.Col}
}

// scanNumber collects a contiguous digit run with at most one decimal point.
// A second '.' inside the run is a malformed literal, not two tokens.
func (l *Lexer) scanNumber() (Token, error) {
	pos := l.here()
	start := l.pos
	sawDot := false
	for l.pos < len(l.src) {
		r := l.peek()
		if unicode.IsDigit(r) {
			l.advance()
			continue
		}
		if r == '.' && unicode.IsDigit(l.peek2()) {
			if sawDot {
				// Keep consuming so the error names the whole run.
				for l.pos < len(l.src) && (unicode.IsDigit(l.peek()) || l.peek() == '.') {
					l.advance()
				}
				return Token{}, lexErrorf(pos, "malformed numeric literal %q", string(l.src[start:l.pos]))
			}
			sawDot = true
			l.advance()
			continue
		}
		break
	}
	lexeme := string(l.src[start:l.pos])
	tt := INT_LIT
	if sawDot {
		tt = FLOAT_LIT
	}
	return Token{Type: tt, Lexeme: lexeme, Line: pos.Line, Col: pos.Col}, nil
}

// scanChar collects a character literal 'c'. The token lexeme carries the
// decimal code point so the parser can treat it like any other literal.
func (l *Lexer) scanChar() (Token, error) {
	pos := l.here()
	l.advance() // consume opening '

	r := l.peek()
	var val rune

	if r == '\'' {
		return Token{}, lexErrorf(pos, "empty character literal")
	}

	if r == '\\' {
		l.advance() // consume backslash
		next := l.peek()
		switch next {
		case 'n':
			val = '\n'
		case 'r':
			val = '\r'
		case 't':
			val = '\t'
		case '0':
			val = 0
		case '\\':
			val = '\\'
		case '\'':
			val = '\''
		default:
			return Token{}, lexErrorf(pos, "unknown escape sequence \\%c", next)
		}
		l.advance()
	} else {
		val = r
		l.advance()
	}

	if l.peek() != '\'' {
		return Token{}, lexErrorf(pos, "unterminated character literal")
	}
	l.advance() // consume closing '

	return Token{Type: CHAR_LIT, Lexeme: fmt.Sprintf("%d", val), Line: pos.Line, Col: pos.Col}, nil
}

// nextToken skips whitespace/comments and returns the next Token.
func (l *Lexer) nextToken() (Token, error) {
	// Skip whitespace and both comment styles in a loop so that
	// a comment followed immediately by more whitespace is handled.
	for {
		l.skipWhitespace()
		if l.pos >= len(l.src) {
			return Token{Type: EOF, Lexeme: "", Line: l.line, Col: l.col}, nil
		}
		if l.peek() == '/' && l.peek2() == '/' {
			l.advance()
			l.advance()
			l.skipLineComment()
			continue
		}
		if l.peek() == '/' && l.peek2() == '*' {
			opened := l.here()
			l.advance()
			l.advance()
			if err := l.skipBlockComment(opened); err != nil {
				return Token{}, err
			}
			continue
		}
		break
	}

	ch := l.peek()
	pos := l.here()

	if unicode.IsLetter(ch) || ch == '_' {
		return l.scanIdent(), nil
	}
	if unicode.IsDigit(ch) {
		return l.scanNumber()
	}
	if ch == '\'' {
		return l.scanChar()
	}

	l.advance() // consume the character before the switch
	tok := func(tt TokenType, lexeme string) Token {
		return Token{Type: tt, Lexeme: lexeme, Line: pos.Line, Col: pos.Col}
	}
	switch ch {
	case '{':
		return tok(LBRACE, "{"), nil
	case '}':
		return tok(RBRACE, "}"), nil
	case '(':
		return tok(LPAREN, "("), nil
	case ')':
		return tok(RPAREN, ")"), nil
	case ';':
		return tok(SEMICOLON, ";"), nil
	case ',':
		return tok(COMMA, ","), nil

	case '+':
		if l.peek() == '+' {
			l.advance()
			return tok(PLUS_PLUS, "++"), nil
		}
		if l.peek() == '=' {
			l.advance()
			return tok(PLUS_ASSIGN, "+="), nil
		}
		return tok(PLUS, "+"), nil
	case '-':
		if l.peek() == '-' {
			l.advance()
			return tok(MINUS_MINUS, "--"), nil
		}
		if l.peek() == '=' {
			l.advance()
			return tok(MINUS_ASSIGN, "-="), nil
		}
		return tok(MINUS, "-"), nil
	case '*':
		if l.peek() == '=' {
			l.advance()
			return tok(STAR_ASSIGN, "*="), nil
		}
		return tok(STAR, "*"), nil
	case '/':
		if l.peek() == '=' {
			l.advance()
			return tok(SLASH_ASSIGN, "/="), nil
		}
		return tok(SLASH, "/"), nil
	case '%':
		if l.peek() == '=' {
			l.advance()
			return tok(PERCENT_ASSIGN, "%="), nil
		}
		return tok(PERCENT, "%"), nil
	case '&':
		if l.peek() == '&' {
			l.advance()
			return tok(AND_LOGICAL, "&&"), nil
		}
		return Token{}, lexErrorf(pos, "unexpected character %q", ch)
	case '|':
		if l.peek() == '|' {
			l.advance()
			return tok(OR_LOGICAL, "||"), nil
		}
		return Token{}, lexErrorf(pos, "unexpected character %q", ch)
	case '!':
		if l.peek() == '=' {
			l.advance()
			return tok(NOT_EQ, "!="), nil
		}
		return tok(NOT, "!"), nil
	case '<':
		if l.peek() == '=' {
			l.advance()
			return tok(LESS_EQ, "<="), nil
		}
		return tok(LESS, "<"), nil
	case '>':
		if l.peek() == '=' {
			l.advance()
			return tok(GREATER_EQ, ">="), nil
		}
		return tok(GREATER, ">"), nil
	case '=':
		if l.peek() == '=' { // lookahead: distinguish = vs ==
			l.advance()
			return tok(EQUALS, "=="), nil
		}
		return tok(ASSIGN, "="), nil
	default:
		return Token{}, lexErrorf(pos, "unexpected character %q", ch)
	}
}

// Lex tokenises src and returns all tokens including the final EOF token.
// It returns a non-nil error on the first illegal character, malformed
// literal, or unterminated comment.
func Lex(src string) ([]Token, error) {
	l := newLexer(src)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}
