package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF TokenType = iota // sentinel: end of input

	// Literals
	IDENTIFIER // variable / function name
	INT_LIT    // decimal integer literal
	FLOAT_LIT  // decimal literal with one '.'
	CHAR_LIT   // character literal 'c', lexeme holds its code point
	BOOL_LIT   // true / false

	// Keywords
	INT      // "int"
	FLOAT    // "float"
	BOOL     // "bool"
	CHAR     // "char"
	DOUBLE   // "double"
	IF       // "if"
	ELSE     // "else"
	WHILE    // "while"
	FOR      // "for"
	DO       // "do"
	BREAK    // "break"
	CONTINUE // "continue"
	RETURN   // "return"
	MAIN     // "main"

	// Delimiters
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,

	// Grouping (operators in the source grammar, not delimiters)
	LPAREN // (
	RPAREN // )

	// Arithmetic operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %

	PLUS_PLUS   // ++
	MINUS_MINUS // --

	// Boolean operators
	AND_LOGICAL // &&
	OR_LOGICAL  // ||
	NOT         // !

	// Assignment / comparison  (order matters: ASSIGN before EQUALS)
	ASSIGN         // =
	PLUS_ASSIGN    // +=
	MINUS_ASSIGN   // -=
	STAR_ASSIGN    // *=
	SLASH_ASSIGN   // /=
	PERCENT_ASSIGN // %=

	EQUALS     // ==
	NOT_EQ     // !=
	LESS       // <
	GREATER    // >
	LESS_EQ    // <=
	GREATER_EQ // >=
)

var tokenNames = [...]string{
	EOF:            "EOF",
	IDENTIFIER:     "IDENTIFIER",
	INT_LIT:        "INT_LIT",
	FLOAT_LIT:      "FLOAT_LIT",
	CHAR_LIT:       "CHAR_LIT",
	BOOL_LIT:       "BOOL_LIT",
	INT:            "INT",
	FLOAT:          "FLOAT",
	BOOL:           "BOOL",
	CHAR:           "CHAR",
	DOUBLE:         "DOUBLE",
	IF:             "IF",
	ELSE:           "ELSE",
	WHILE:          "WHILE",
	FOR:            "FOR",
	DO:             "DO",
	BREAK:          "BREAK",
	CONTINUE:       "CONTINUE",
	RETURN:         "RETURN",
	MAIN:           "MAIN",
	LBRACE:         "LBRACE",
	RBRACE:         "RBRACE",
	SEMICOLON:      "SEMICOLON",
	COMMA:          "COMMA",
	LPAREN:         "LPAREN",
	RPAREN:         "RPAREN",
	PLUS:           "PLUS",
	MINUS:          "MINUS",
	STAR:           "STAR",
	SLASH:          "SLASH",
	PERCENT:        "PERCENT",
	PLUS_PLUS:      "PLUS_PLUS",
	MINUS_MINUS:    "MINUS_MINUS",
	AND_LOGICAL:    "AND_LOGICAL",
	OR_LOGICAL:     "OR_LOGICAL",
	NOT:            "NOT",
	ASSIGN:         "ASSIGN",
	PLUS_ASSIGN:    "PLUS_ASSIGN",
	MINUS_ASSIGN:   "MINUS_ASSIGN",
	STAR_ASSIGN:    "STAR_ASSIGN",
	SLASH_ASSIGN:   "SLASH_ASSIGN",
	PERCENT_ASSIGN: "PERCENT_ASSIGN",
	EQUALS:         "EQUALS",
	NOT_EQ:         "NOT_EQ",
	LESS:           "LESS",
	GREATER:        "GREATER",
	LESS_EQ:        "LESS_EQ",
	GREATER_EQ:     "GREATER_EQ",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// isTypeKeyword reports whether tt is one of the five declarable types.
func isTypeKeyword(tt TokenType) bool {
	switch tt {
	case INT, FLOAT, BOOL, CHAR, DOUBLE:
		return true
	}
	return false
}

// isCompoundAssign reports whether tt is = or one of the compound forms.
func isCompoundAssign(tt TokenType) bool {
	switch tt {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN:
		return true
	}
	return false
}

// isRelop reports whether tt is one of the six relational operators.
func isRelop(tt TokenType) bool {
	switch tt {
	case LESS, GREATER, LESS_EQ, GREATER_EQ, EQUALS, NOT_EQ:
		return true
	}
	return false
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Lexeme string // the exact source text that was matched
	Line   int    // 1-based source line
	Col    int    // 1-based source column
}

func (t Token) Pos() Pos { return Pos{Line: t.Line, Col: t.Col} }

func (t Token) String() string {
	return fmt.Sprintf("%-10s %-14q  line %d col %d", t.Type, t.Lexeme, t.Line, t.Col)
}
