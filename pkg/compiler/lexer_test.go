package compiler

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLex_Declaration(t *testing.T) {
	tokens, err := Lex("int x = 10;")
	be.Err(t, err, nil)
	be.Equal(t, tokenTypes(tokens), []TokenType{INT, IDENTIFIER, ASSIGN, INT_LIT, SEMICOLON, EOF})
	be.Equal(t, tokens[1].Lexeme, "x")
	be.Equal(t, tokens[3].Lexeme, "10")
}

func TestLex_Keywords(t *testing.T) {
	tokens, err := Lex("if else while for do break continue return main")
	be.Err(t, err, nil)
	be.Equal(t, tokenTypes(tokens), []TokenType{
		IF, ELSE, WHILE, FOR, DO, BREAK, CONTINUE, RETURN, MAIN, EOF,
	})
}

func TestLex_Operators(t *testing.T) {
	tokens, err := Lex("+ - * / % ++ -- += -= *= /= %= == != < > <= >= && || ! =")
	be.Err(t, err, nil)
	be.Equal(t, tokenTypes(tokens), []TokenType{
		PLUS, MINUS, STAR, SLASH, PERCENT, PLUS_PLUS, MINUS_MINUS,
		PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN, PERCENT_ASSIGN,
		EQUALS, NOT_EQ, LESS, GREATER, LESS_EQ, GREATER_EQ,
		AND_LOGICAL, OR_LOGICAL, NOT, ASSIGN, EOF,
	})
}

func TestLex_BoolLiterals(t *testing.T) {
	tokens, err := Lex("true false")
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Type, BOOL_LIT)
	be.Equal(t, tokens[0].Lexeme, "1")
	be.Equal(t, tokens[1].Type, BOOL_LIT)
	be.Equal(t, tokens[1].Lexeme, "0")
}

func TestLex_CharLiterals(t *testing.T) {
	tokens, err := Lex(`'a' '\n' '\0'`)
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Type, CHAR_LIT)
	be.Equal(t, tokens[0].Lexeme, "97")
	be.Equal(t, tokens[1].Lexeme, "10")
	be.Equal(t, tokens[2].Lexeme, "0")
}

func TestLex_FloatLiteral(t *testing.T) {
	tokens, err := Lex("3.14")
	be.Err(t, err, nil)
	be.Equal(t, tokens[0].Type, FLOAT_LIT)
	be.Equal(t, tokens[0].Lexeme, "3.14")
}

func TestLex_MalformedNumber(t *testing.T) {
	_, err := Lex("int x = 1.2.3;")
	be.Err(t, err)

	var lexErr *LexicalError
	be.True(t, errors.As(err, &lexErr))
	be.Err(t, err, "malformed numeric literal")
}

func TestLex_SingleAmpersand(t *testing.T) {
	_, err := Lex("a & b")
	be.Err(t, err)

	var lexErr *LexicalError
	be.True(t, errors.As(err, &lexErr))
}

func TestLex_UnknownCharacter(t *testing.T) {
	_, err := Lex("int x = @;")
	be.Err(t, err)

	var lexErr *LexicalError
	be.True(t, errors.As(err, &lexErr))
	be.Equal(t, lexErr.Pos.Line, 1)
}

func TestLex_Comments(t *testing.T) {
	tokens, err := Lex("// leading\nint /* inline */ y; /* trailing */")
	be.Err(t, err, nil)
	be.Equal(t, tokenTypes(tokens), []TokenType{INT, IDENTIFIER, SEMICOLON, EOF})
	be.Equal(t, tokens[1].Lexeme, "y")
}

func TestLex_UnterminatedBlockComment(t *testing.T) {
	_, err := Lex("int x; /* never closed")
	be.Err(t, err)
	be.Err(t, err, "unterminated block comment")
}

func TestLex_Positions(t *testing.T) {
	tokens, err := Lex("int x;\nx = 1;")
	be.Err(t, err, nil)

	// Second line: x at 2:1, = at 2:3, 1 at 2:5.
	be.Equal(t, tokens[3].Line, 2)
	be.Equal(t, tokens[3].Col, 1)
	be.Equal(t, tokens[4].Line, 2)
	be.Equal(t, tokens[4].Col, 3)
	be.Equal(t, tokens[5].Col, 5)
}

func TestLex_IdentifierVsKeywordPrefix(t *testing.T) {
	tokens, err := Lex("integer iffy mainline")
	be.Err(t, err, nil)
	be.Equal(t, tokenTypes(tokens), []TokenType{IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF})
}
