package compiler

import "fmt"

// Pos is a 1-based line/column source position.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// LexicalError reports an unrecognized character or malformed literal.
type LexicalError struct {
	Pos Pos
	Msg string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %s: %s", e.Pos, e.Msg)
}

func lexErrorf(pos Pos, format string, args ...any) *LexicalError {
	return &LexicalError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// SyntaxError reports a token that does not fit the grammar. Expected names
// the terminal(s) the parser would have accepted; Snippet is the trimmed
// source line the offending token sits on.
type SyntaxError struct {
	Pos      Pos
	Expected string
	Got      Token
	Snippet  string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("line %d: expected %s, got %s (%q)",
		e.Pos.Line, e.Expected, e.Got.Type, e.Got.Lexeme)
	if e.Snippet != "" {
		msg += "\n  |> " + e.Snippet
	}
	return msg
}

// SemanticErrorKind classifies resolver failures.
type SemanticErrorKind int

const (
	UndeclaredIdentifier SemanticErrorKind = iota
	DuplicateDeclaration
	TypeMismatch
	ArityMismatch
	InvalidControlFlow
	MissingReturn
)

var semanticKindNames = [...]string{
	UndeclaredIdentifier: "undeclared identifier",
	DuplicateDeclaration: "duplicate declaration",
	TypeMismatch:         "type mismatch",
	ArityMismatch:        "arity mismatch",
	InvalidControlFlow:   "invalid control flow",
	MissingReturn:        "missing return",
}

func (k SemanticErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(semanticKindNames) {
		return semanticKindNames[k]
	}
	return fmt.Sprintf("SemanticErrorKind(%d)", int(k))
}

// SemanticError reports a name-binding or control-flow violation found by
// the resolver.
type SemanticError struct {
	Kind SemanticErrorKind
	Pos  Pos
	Msg  string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Pos.Line, e.Kind, e.Msg)
}

func semErrorf(kind SemanticErrorKind, pos Pos, format string, args ...any) *SemanticError {
	return &SemanticError{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
