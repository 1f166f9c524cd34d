package compiler

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"
)

func parseSource(t *testing.T, src string) *Program {
	t.Helper()
	tokens, err := Lex(src)
	be.Err(t, err, nil)
	prog, err := Parse(tokens, src)
	be.Err(t, err, nil)
	return prog
}

func parseError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	tokens, err := Lex(src)
	be.Err(t, err, nil)
	_, err = Parse(tokens, src)
	be.Err(t, err)

	var synErr *SyntaxError
	be.True(t, errors.As(err, &synErr))
	return synErr
}

// mainBody parses a program consisting only of a main wrapping src and
// returns main's statements.
func mainBody(t *testing.T, src string) []Stmt {
	t.Helper()
	prog := parseSource(t, "main() {\n"+src+"\n}")
	return prog.Items[0].(*FunctionDecl).Body.Stmts
}

func TestParse_FunctionDefinition(t *testing.T) {
	prog := parseSource(t, "int twice(int n) { return n + n; }\nmain() { }")
	be.Equal(t, len(prog.Items), 2)

	fn, ok := prog.Items[0].(*FunctionDecl)
	be.True(t, ok)
	be.Equal(t, fn.Name, "twice")
	be.Equal(t, fn.ReturnType, INT)
	be.Equal(t, len(fn.Params), 1)
	be.Equal(t, fn.Params[0].Name, "n")
	be.Equal(t, len(fn.Body.Stmts), 1)

	ret, ok := fn.Body.Stmts[0].(*ReturnStmt)
	be.True(t, ok)
	be.True(t, ret.Expr != nil)
}

func TestParse_Prototype(t *testing.T) {
	prog := parseSource(t, "int max(int, int);\nmain() { }")
	proto, ok := prog.Items[0].(*FunctionProto)
	be.True(t, ok)
	be.Equal(t, proto.Name, "max")
	be.Equal(t, len(proto.Params), 2)
	be.Equal(t, proto.Params[0].Name, "")
}

func TestParse_MainWithoutType(t *testing.T) {
	prog := parseSource(t, "main() { }")
	fn, ok := prog.Items[0].(*FunctionDecl)
	be.True(t, ok)
	be.True(t, fn.IsMain)
	be.Equal(t, fn.Name, "main")
}

func TestParse_MainWithType(t *testing.T) {
	prog := parseSource(t, "int main() { return 0; }")
	fn := prog.Items[0].(*FunctionDecl)
	be.True(t, fn.IsMain)
	be.Equal(t, fn.ReturnType, INT)
}

func TestParse_Precedence(t *testing.T) {
	stmts := mainBody(t, "x = 1 + 2 * 3;")
	assign := stmts[0].(*Assignment)

	want := &BinaryExpr{
		Op:   PLUS,
		Left: &Literal{Kind: INT_LIT, Raw: "1", Value: 1},
		Right: &BinaryExpr{
			Op:    STAR,
			Left:  &Literal{Kind: INT_LIT, Raw: "2", Value: 2},
			Right: &Literal{Kind: INT_LIT, Raw: "3", Value: 3},
		},
	}
	if diff := cmp.Diff(want, assign.Value); diff != "" {
		t.Errorf("expression tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_RelationalBelowLogical(t *testing.T) {
	stmts := mainBody(t, "x = 1 < 2 && 3 < 4;")
	assign := stmts[0].(*Assignment)

	logical, ok := assign.Value.(*LogicalExpr)
	be.True(t, ok)
	be.Equal(t, logical.Op, AND_LOGICAL)

	left, ok := logical.Left.(*BinaryExpr)
	be.True(t, ok)
	be.Equal(t, left.Op, LESS)
}

func TestParse_NegationPrefixOnly(t *testing.T) {
	// Leading negation is fine.
	stmts := mainBody(t, "if (!(x > 1)) ;")
	_, ok := stmts[0].(*IfStmt).Cond.(*NotExpr)
	be.True(t, ok)

	// '!' after an operand cannot parse.
	synErr := parseError(t, "main() { if (x > 1 ! 2) ; }")
	be.Equal(t, synErr.Got.Type, NOT)
}

func TestParse_DanglingElse(t *testing.T) {
	stmts := mainBody(t, "if (a > 0) if (b > 0) ; else ;")
	outer := stmts[0].(*IfStmt)
	be.True(t, outer.ElseBody == nil)

	inner := outer.Body.(*IfStmt)
	be.True(t, inner.ElseBody != nil)
}

func TestParse_DeclarationList(t *testing.T) {
	stmts := mainBody(t, "int a, b = 2, c;")
	decl := stmts[0].(*DeclStmt)
	be.Equal(t, len(decl.Decls), 3)
	be.Equal(t, decl.Decls[0].Name, "a")
	be.True(t, decl.Decls[0].Init == nil)
	be.Equal(t, decl.Decls[1].Name, "b")
	be.True(t, decl.Decls[1].Init != nil)
}

func TestParse_ForVariants(t *testing.T) {
	// Declaration initializer, relational condition, postfix iterator.
	stmts := mainBody(t, "for (int i = 0; i < 3; i++) ;")
	loop := stmts[0].(*ForStmt)
	_, ok := loop.Init.(*DeclStmt)
	be.True(t, ok)
	be.True(t, loop.Cond != nil)
	be.True(t, loop.Post != nil)

	// Empty init and iterator.
	stmts = mainBody(t, "for (; x < 3;) ;")
	loop = stmts[0].(*ForStmt)
	be.True(t, loop.Init == nil)
	be.True(t, loop.Post == nil)
}

func TestParse_DoWhile(t *testing.T) {
	stmts := mainBody(t, "do { x = x - 1; } while (x > 0);")
	loop, ok := stmts[0].(*DoWhileStmt)
	be.True(t, ok)
	be.True(t, loop.Cond != nil)
}

func TestParse_CompoundAssignment(t *testing.T) {
	stmts := mainBody(t, "x += 2; y %= 3;")
	be.Equal(t, stmts[0].(*Assignment).Op, PLUS_ASSIGN)
	be.Equal(t, stmts[1].(*Assignment).Op, PERCENT_ASSIGN)
}

func TestParse_CallStatement(t *testing.T) {
	stmts := mainBody(t, "write(add(x, 1));")
	call := stmts[0].(*ExprStmt).Expr.(*FunctionCall)
	be.Equal(t, call.Name, "write")
	be.Equal(t, len(call.Args), 1)

	inner := call.Args[0].(*FunctionCall)
	be.Equal(t, inner.Name, "add")
	be.Equal(t, len(inner.Args), 2)
}

func TestParse_AnonymousBlock(t *testing.T) {
	prog := parseSource(t, "{ int t; t = 1; }\nmain() { }")
	block, ok := prog.Items[0].(*BlockStmt)
	be.True(t, ok)
	be.Equal(t, len(block.Stmts), 2)
}

func TestParse_ResidualInput(t *testing.T) {
	synErr := parseError(t, "main() { } }")
	be.Equal(t, synErr.Expected, "end of input")
}

func TestParse_MissingSemicolon(t *testing.T) {
	synErr := parseError(t, "main() { x = 1 }")
	be.Equal(t, synErr.Got.Type, RBRACE)
	be.True(t, synErr.Snippet != "")
}

func TestParse_LookaheadPastEndKeepsPosition(t *testing.T) {
	tokens, err := Lex("int")
	be.Err(t, err, nil)

	p := NewParser(tokens, "int")
	tok := p.peekAt(5)
	be.Equal(t, tok.Type, EOF)
	be.Equal(t, tok.Line, 1)
	be.Equal(t, tok.Col, 4)
}

func TestParse_GlobalDeclaration(t *testing.T) {
	prog := parseSource(t, "int g = 42;\nmain() { }")
	decl, ok := prog.Items[0].(*DeclStmt)
	be.True(t, ok)
	be.Equal(t, decl.Decls[0].Name, "g")
}
