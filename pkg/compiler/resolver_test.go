package compiler

import (
	"errors"
	"testing"

	"github.com/nalgeon/be"
)

func resolveSource(t *testing.T, src string) (*Program, *SymbolTable) {
	t.Helper()
	prog := parseSource(t, src)
	syms, err := Resolve(prog)
	be.Err(t, err, nil)
	return prog, syms
}

func resolveErrorKind(t *testing.T, src string) SemanticErrorKind {
	t.Helper()
	prog := parseSource(t, src)
	_, err := Resolve(prog)
	be.Err(t, err)

	var semErr *SemanticError
	be.True(t, errors.As(err, &semErr))
	return semErr.Kind
}

func TestResolve_UndeclaredVariable(t *testing.T) {
	kind := resolveErrorKind(t, "main() { x = 1; }")
	be.Equal(t, kind, UndeclaredIdentifier)
}

func TestResolve_UndeclaredInExpression(t *testing.T) {
	kind := resolveErrorKind(t, "main() { int x; x = y + 1; }")
	be.Equal(t, kind, UndeclaredIdentifier)
}

func TestResolve_DuplicateInScope(t *testing.T) {
	kind := resolveErrorKind(t, "main() { int x; int x; }")
	be.Equal(t, kind, DuplicateDeclaration)
}

func TestResolve_ShadowingAllowed(t *testing.T) {
	resolveSource(t, "main() { int x; { int x; x = 1; } x = 2; }")
}

func TestResolve_ShadowBindsInnermost(t *testing.T) {
	prog, _ := resolveSource(t, "main() { int x; { int x; x = 1; } }")
	body := prog.Items[0].(*FunctionDecl).Body.Stmts

	outer := body[0].(*DeclStmt).Decls[0].Sym
	block := body[1].(*BlockStmt)
	inner := block.Stmts[0].(*DeclStmt).Decls[0].Sym
	assign := block.Stmts[1].(*Assignment)

	be.True(t, assign.Sym == inner)
	be.True(t, assign.Sym != outer)
}

func TestResolve_ArityMismatch(t *testing.T) {
	kind := resolveErrorKind(t, "int f(int a) { return a; }\nmain() { int x; x = f(1, 2); }")
	be.Equal(t, kind, ArityMismatch)
}

func TestResolve_CallingVariable(t *testing.T) {
	kind := resolveErrorKind(t, "main() { int x; x(); }")
	be.Equal(t, kind, TypeMismatch)
}

func TestResolve_FunctionAsVariable(t *testing.T) {
	kind := resolveErrorKind(t, "int f() { return 0; }\nmain() { f = 1; }")
	be.Equal(t, kind, TypeMismatch)
}

func TestResolve_UndeclaredFunction(t *testing.T) {
	kind := resolveErrorKind(t, "main() { g(); }")
	be.Equal(t, kind, UndeclaredIdentifier)
}

func TestResolve_BreakOutsideLoop(t *testing.T) {
	kind := resolveErrorKind(t, "main() { break; }")
	be.Equal(t, kind, InvalidControlFlow)
}

func TestResolve_ContinueOutsideLoop(t *testing.T) {
	kind := resolveErrorKind(t, "main() { if (1 > 0) continue; }")
	be.Equal(t, kind, InvalidControlFlow)
}

func TestResolve_BreakInsideLoop(t *testing.T) {
	resolveSource(t, "main() { while (1 > 0) { break; } }")
}

func TestResolve_MissingReturn(t *testing.T) {
	kind := resolveErrorKind(t, "int f(int a) { if (a > 0) return 1; }\nmain() { }")
	be.Equal(t, kind, MissingReturn)
}

func TestResolve_ReturnOnBothBranches(t *testing.T) {
	resolveSource(t, `
int sign(int a) {
    if (a > 0) { return 1; } else { return 0; }
}
main() { }`)
}

func TestResolve_DoWhileCountsAsReturning(t *testing.T) {
	resolveSource(t, "int f() { do { return 1; } while (1 > 0); }\nmain() { }")
}

func TestResolve_MainExemptFromReturn(t *testing.T) {
	resolveSource(t, "main() { int x; x = 1; }")
}

func TestResolve_NoMain(t *testing.T) {
	kind := resolveErrorKind(t, "int f() { return 0; }")
	be.Equal(t, kind, UndeclaredIdentifier)
}

func TestResolve_RedeclareBuiltin(t *testing.T) {
	kind := resolveErrorKind(t, "int read() { return 0; }\nmain() { }")
	be.Equal(t, kind, DuplicateDeclaration)
}

func TestResolve_PrototypeThenDefinition(t *testing.T) {
	_, syms := resolveSource(t, `
int f(int a);
main() { int x; x = f(1); }
int f(int a) { return a; }`)

	desc, ok := syms.LookupFunction("f")
	be.True(t, ok)
	be.True(t, desc.Defined)
}

func TestResolve_PrototypeErrorPropagates(t *testing.T) {
	// The prototype arm must surface declaration conflicts itself.
	kind := resolveErrorKind(t, "int write(int);\nmain() { }")
	be.Equal(t, kind, DuplicateDeclaration)
}

func TestResolve_ConflictingPrototype(t *testing.T) {
	kind := resolveErrorKind(t, "int f(int a);\nint f(int a, int b) { return a; }\nmain() { }")
	be.Equal(t, kind, DuplicateDeclaration)
}

func TestResolve_DuplicateDefinition(t *testing.T) {
	kind := resolveErrorKind(t, "int f() { return 0; }\nint f() { return 1; }\nmain() { }")
	be.Equal(t, kind, DuplicateDeclaration)
}

func TestResolve_CallBeforeDeclaration(t *testing.T) {
	kind := resolveErrorKind(t, "main() { later(); }\nint later() { return 0; }")
	be.Equal(t, kind, UndeclaredIdentifier)
}

func TestResolve_ParamAndLocalOffsets(t *testing.T) {
	prog, _ := resolveSource(t, `
int f(int a, int b) {
    int x;
    int y;
    return a;
}
main() { }`)

	fn := prog.Items[0].(*FunctionDecl)

	// Args push left to right: first param is deepest.
	be.Equal(t, fn.Params[0].Sym.Offset, 6)
	be.Equal(t, fn.Params[1].Sym.Offset, 4)

	body := fn.Body.Stmts
	be.Equal(t, body[0].(*DeclStmt).Decls[0].Sym.Offset, -2)
	be.Equal(t, body[1].(*DeclStmt).Decls[0].Sym.Offset, -4)
	be.Equal(t, fn.Desc.FrameSize, 4)
}

func TestResolve_NoSlotReuseAcrossBlocks(t *testing.T) {
	prog, _ := resolveSource(t, `
int f() {
    { int a; a = 1; }
    { int b; b = 2; }
    return 0;
}
main() { }`)

	fn := prog.Items[0].(*FunctionDecl)
	blockA := fn.Body.Stmts[0].(*BlockStmt)
	blockB := fn.Body.Stmts[1].(*BlockStmt)

	a := blockA.Stmts[0].(*DeclStmt).Decls[0].Sym
	b := blockB.Stmts[0].(*DeclStmt).Decls[0].Sym
	be.Equal(t, a.Offset, -2)
	be.Equal(t, b.Offset, -4)
	be.Equal(t, fn.Desc.FrameSize, 4)
}

func TestResolve_ForInitScopedToLoop(t *testing.T) {
	kind := resolveErrorKind(t, "main() { for (int i = 0; i < 3; i++) ; i = 1; }")
	be.Equal(t, kind, UndeclaredIdentifier)
}

func TestResolve_GlobalLabels(t *testing.T) {
	_, syms := resolveSource(t, "int g;\nmain() { g = 1; }")
	sym, ok := syms.Lookup("g")
	be.True(t, ok)
	be.Equal(t, sym.Kind, SymGlobal)
	be.Equal(t, sym.Label, "_g")
}

func TestResolve_AnonymousBlockShadowsGlobal(t *testing.T) {
	prog, _ := resolveSource(t, "int t;\n{ int t; t = 5; }\nmain() { }")

	block := prog.Items[1].(*BlockStmt)
	inner := block.Stmts[0].(*DeclStmt).Decls[0].Sym
	be.Equal(t, inner.Kind, SymGlobal)
	be.Equal(t, inner.Label, "_t_2")

	assign := block.Stmts[1].(*Assignment)
	be.True(t, assign.Sym == inner)
}

func TestResolve_VariableNamedLikeFunction(t *testing.T) {
	kind := resolveErrorKind(t, "int f() { return 0; }\nmain() { int f; }")
	be.Equal(t, kind, DuplicateDeclaration)
}

func TestResolve_UnnamedParams(t *testing.T) {
	_, syms := resolveSource(t, "int f(int, int) { return 0; }\nmain() { int x; x = f(1, 2); }")
	desc, _ := syms.LookupFunction("f")
	be.Equal(t, len(desc.ParamTypes), 2)
}
