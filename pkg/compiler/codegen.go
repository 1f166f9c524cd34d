package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// CodeGen walks a resolved AST and emits 8086 assembly source text.
//
// The generator is a plain accumulator machine: every expression leaves
// its result in ax, binary operations stage the left operand on the stack
// while the right one is computed, and bx holds the right operand for the
// combining instruction. It never mutates the tree or the symbol table;
// all binding work happened in the resolver.
type CodeGen struct {
	syms      *SymbolTable
	out       strings.Builder
	nextLabel int
	fn        *FunctionDescriptor // function being generated, nil at startup
	loopStack []LoopLabel
}

type LoopLabel struct {
	Start string
	End   string
	Post  string // where 'continue' jumps to
}

func newCodeGen(syms *SymbolTable) *CodeGen {
	return &CodeGen{syms: syms}
}

func (cg *CodeGen) newLabel() string {
	l := fmt.Sprintf("L%d", cg.nextLabel)
	cg.nextLabel++
	return l
}

func (cg *CodeGen) line(format string, args ...any) {
	fmt.Fprintf(&cg.out, format+"\n", args...)
}

func (cg *CodeGen) ins(format string, args ...any) {
	cg.line("    "+format, args...)
}

func (cg *CodeGen) label(name string) {
	cg.line("%s:", name)
}

func (cg *CodeGen) comment(format string, args ...any) {
	cg.line("; "+format, args...)
}

// symRef returns the operand text addressing sym's word.
func symRef(sym *Symbol) string {
	if sym.Kind == SymGlobal {
		return fmt.Sprintf("word ptr ds:[%s]", sym.Label)
	}
	return fmt.Sprintf("word ptr ss:[bp%+d]", sym.Offset)
}

// Generate emits the complete assembly program for a resolved tree.
func Generate(prog *Program, syms *SymbolTable) string {
	cg := newCodeGen(syms)

	// Globals whose initializer is a plain literal get their value baked
	// into the data segment; everything else initializes at startup.
	constInit := make(map[*Symbol]uint16)
	for _, item := range prog.Items {
		decl, ok := item.(*DeclStmt)
		if !ok {
			continue
		}
		for _, d := range decl.Decls {
			if lit, ok := d.Init.(*Literal); ok {
				constInit[d.Sym] = lit.Value
			}
		}
	}

	cg.out.WriteString(asmPrelude)
	globals := append([]*Symbol(nil), syms.Globals()...)
	sort.Slice(globals, func(i, j int) bool { return globals[i].Label < globals[j].Label })
	for _, sym := range globals {
		cg.ins("%s dw %d", sym.Label, constInit[sym])
	}
	cg.line("data ends")
	cg.line("")

	cg.out.WriteString(asmInit)

	// Startup code: non-constant global initializers and top-level
	// anonymous blocks, in program order, before main gains control.
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *DeclStmt:
			for _, d := range it.Decls {
				if d.Init == nil {
					continue
				}
				if _, folded := constInit[d.Sym]; folded {
					continue
				}
				cg.genExpr(d.Init)
				cg.ins("mov %s, ax", symRef(d.Sym))
			}
		case *BlockStmt:
			cg.genStmt(it)
		}
	}
	cg.ins("jmp F_main")
	cg.line("")

	for _, item := range prog.Items {
		if fn, ok := item.(*FunctionDecl); ok {
			cg.genFunction(fn)
		}
	}

	cg.out.WriteString(asmLibrary)
	cg.out.WriteString(asmFooter)
	return cg.out.String()
}

func (cg *CodeGen) genFunction(fn *FunctionDecl) {
	cg.comment("function %s", fn.Name)
	cg.label(fn.Desc.EntryLabel)
	cg.ins("push bp")
	cg.ins("mov bp, sp")
	if fn.Desc.FrameSize > 0 {
		cg.ins("sub sp, %d", fn.Desc.FrameSize)
	}

	cg.fn = fn.Desc
	cg.genStmt(fn.Body)
	cg.fn = nil

	// Implicit fall-off-the-end epilogue. For non-main functions the
	// resolver guarantees every path returned already, but a trailing
	// epilogue keeps the routine well formed either way.
	cg.genEpilogue(fn.Desc)
	cg.line("")
}

// genEpilogue unwinds the frame. main exits the program instead of
// returning, mirroring the startup jmp that entered it.
func (cg *CodeGen) genEpilogue(desc *FunctionDescriptor) {
	cg.ins("mov sp, bp")
	cg.ins("pop bp")
	if desc.Name == "main" {
		cg.ins("mov ah,4ch")
		cg.ins("int 21h")
	} else {
		cg.ins("ret")
	}
}

func (cg *CodeGen) genStmt(stmt Stmt) {
	switch st := stmt.(type) {
	case *EmptyStmt:

	case *DeclStmt:
		for _, d := range st.Decls {
			if d.Init == nil {
				continue
			}
			cg.genExpr(d.Init)
			cg.ins("mov %s, ax", symRef(d.Sym))
		}

	case *Assignment:
		cg.genAssignment(st)

	case *ExprStmt:
		cg.genExpr(st.Expr)

	case *BlockStmt:
		for _, s := range st.Stmts {
			cg.genStmt(s)
		}

	case *IfStmt:
		cg.genIf(st)

	case *WhileStmt:
		cg.genWhile(st)

	case *DoWhileStmt:
		cg.genDoWhile(st)

	case *ForStmt:
		cg.genFor(st)

	case *BreakStmt:
		cg.ins("jmp %s", cg.loopStack[len(cg.loopStack)-1].End)

	case *ContinueStmt:
		cg.ins("jmp %s", cg.loopStack[len(cg.loopStack)-1].Post)

	case *ReturnStmt:
		if st.Expr != nil {
			cg.genExpr(st.Expr)
		}
		cg.genEpilogue(cg.fn)

	default:
		panic("unhandled statement node in codegen")
	}
}

// genAssignment handles = and the compound forms. Compound assignment
// desugars to read-modify-write: the right side lands in bx, the old value
// in ax, and the combined result is stored back.
func (cg *CodeGen) genAssignment(a *Assignment) {
	cg.genExpr(a.Value)
	if a.Op == ASSIGN {
		cg.ins("mov %s, ax", symRef(a.Sym))
		return
	}
	cg.ins("mov bx, ax")
	cg.ins("mov ax, %s", symRef(a.Sym))
	switch a.Op {
	case PLUS_ASSIGN:
		cg.ins("add ax, bx")
	case MINUS_ASSIGN:
		cg.ins("sub ax, bx")
	case STAR_ASSIGN:
		cg.ins("imul bx")
	case SLASH_ASSIGN:
		cg.ins("cwd")
		cg.ins("idiv bx")
	case PERCENT_ASSIGN:
		cg.ins("cwd")
		cg.ins("idiv bx")
		cg.ins("mov ax, dx")
	}
	cg.ins("mov %s, ax", symRef(a.Sym))
}

func (cg *CodeGen) genIf(st *IfStmt) {
	endLabel := cg.newLabel()
	cg.genExpr(st.Cond)
	cg.ins("cmp ax, 0")
	if st.ElseBody == nil {
		cg.ins("je %s", endLabel)
		cg.genStmt(st.Body)
	} else {
		elseLabel := cg.newLabel()
		cg.ins("je %s", elseLabel)
		cg.genStmt(st.Body)
		cg.ins("jmp %s", endLabel)
		cg.label(elseLabel)
		cg.genStmt(st.ElseBody)
	}
	cg.label(endLabel)
}

func (cg *CodeGen) genWhile(st *WhileStmt) {
	start := cg.newLabel()
	end := cg.newLabel()

	cg.label(start)
	cg.genExpr(st.Cond)
	cg.ins("cmp ax, 0")
	cg.ins("je %s", end)

	cg.loopStack = append(cg.loopStack, LoopLabel{Start: start, End: end, Post: start})
	cg.genStmt(st.Body)
	cg.loopStack = cg.loopStack[:len(cg.loopStack)-1]

	cg.ins("jmp %s", start)
	cg.label(end)
}

func (cg *CodeGen) genDoWhile(st *DoWhileStmt) {
	start := cg.newLabel()
	cond := cg.newLabel()
	end := cg.newLabel()

	cg.label(start)
	cg.loopStack = append(cg.loopStack, LoopLabel{Start: start, End: end, Post: cond})
	cg.genStmt(st.Body)
	cg.loopStack = cg.loopStack[:len(cg.loopStack)-1]

	// The body runs once before the condition is first tested.
	cg.label(cond)
	cg.genExpr(st.Cond)
	cg.ins("cmp ax, 0")
	cg.ins("jne %s", start)
	cg.label(end)
}

func (cg *CodeGen) genFor(st *ForStmt) {
	if st.Init != nil {
		cg.genStmt(st.Init)
	}
	cond := cg.newLabel()
	post := cg.newLabel()
	end := cg.newLabel()

	cg.label(cond)
	cg.genExpr(st.Cond)
	cg.ins("cmp ax, 0")
	cg.ins("je %s", end)

	cg.loopStack = append(cg.loopStack, LoopLabel{Start: cond, End: end, Post: post})
	cg.genStmt(st.Body)
	cg.loopStack = cg.loopStack[:len(cg.loopStack)-1]

	cg.label(post)
	if st.Post != nil {
		cg.genStmt(st.Post)
	}
	cg.ins("jmp %s", cond)
	cg.label(end)
}

// genExpr leaves the expression's value in ax.
func (cg *CodeGen) genExpr(expr Expr) {
	switch e := expr.(type) {
	case *Literal:
		cg.ins("mov ax, %d", e.Value)

	case *VarRef:
		cg.ins("mov ax, %s", symRef(e.Sym))

	case *BinaryExpr:
		cg.genBinary(e)

	case *LogicalExpr:
		cg.genLogical(e)

	case *NotExpr:
		cg.genNot(e)

	case *PrefixExpr:
		cg.genPrefix(e)

	case *PostfixExpr:
		cg.genPostfix(e)

	case *FunctionCall:
		cg.genCall(e)

	default:
		panic("unhandled expression node in codegen")
	}
}

// genBinary stages the left operand on the stack while the right one is
// computed, then combines with ax = left, bx = right.
func (cg *CodeGen) genBinary(e *BinaryExpr) {
	cg.genExpr(e.Left)
	cg.ins("push ax")
	cg.genExpr(e.Right)
	cg.ins("mov bx, ax")
	cg.ins("pop ax")

	switch e.Op {
	case PLUS:
		cg.ins("add ax, bx")
	case MINUS:
		cg.ins("sub ax, bx")
	case STAR:
		cg.ins("imul bx")
	case SLASH:
		cg.ins("cwd")
		cg.ins("idiv bx")
	case PERCENT:
		cg.ins("cwd")
		cg.ins("idiv bx")
		cg.ins("mov ax, dx")
	default:
		cg.genRelational(e.Op)
	}
}

// genRelational folds a comparison into 0 or 1. ax and bx already hold the
// operands.
func (cg *CodeGen) genRelational(op TokenType) {
	jcc := map[TokenType]string{
		LESS:       "jl",
		GREATER:    "jg",
		LESS_EQ:    "jle",
		GREATER_EQ: "jge",
		EQUALS:     "je",
		NOT_EQ:     "jne",
	}[op]

	trueLabel := cg.newLabel()
	endLabel := cg.newLabel()
	cg.ins("cmp ax, bx")
	cg.ins("%s %s", jcc, trueLabel)
	cg.ins("mov ax, 0")
	cg.ins("jmp %s", endLabel)
	cg.label(trueLabel)
	cg.ins("mov ax, 1")
	cg.label(endLabel)
}

// genLogical short-circuits: the right operand is not evaluated when the
// left one already decides the result.
func (cg *CodeGen) genLogical(e *LogicalExpr) {
	endLabel := cg.newLabel()
	if e.Op == AND_LOGICAL {
		falseLabel := cg.newLabel()
		cg.genExpr(e.Left)
		cg.ins("cmp ax, 0")
		cg.ins("je %s", falseLabel)
		cg.genExpr(e.Right)
		cg.ins("cmp ax, 0")
		cg.ins("je %s", falseLabel)
		cg.ins("mov ax, 1")
		cg.ins("jmp %s", endLabel)
		cg.label(falseLabel)
		cg.ins("mov ax, 0")
	} else {
		trueLabel := cg.newLabel()
		cg.genExpr(e.Left)
		cg.ins("cmp ax, 0")
		cg.ins("jne %s", trueLabel)
		cg.genExpr(e.Right)
		cg.ins("cmp ax, 0")
		cg.ins("jne %s", trueLabel)
		cg.ins("mov ax, 0")
		cg.ins("jmp %s", endLabel)
		cg.label(trueLabel)
		cg.ins("mov ax, 1")
	}
	cg.label(endLabel)
}

func (cg *CodeGen) genNot(e *NotExpr) {
	trueLabel := cg.newLabel()
	endLabel := cg.newLabel()
	cg.genExpr(e.Operand)
	cg.ins("cmp ax, 0")
	cg.ins("je %s", trueLabel)
	cg.ins("mov ax, 0")
	cg.ins("jmp %s", endLabel)
	cg.label(trueLabel)
	cg.ins("mov ax, 1")
	cg.label(endLabel)
}

func (cg *CodeGen) genPrefix(e *PrefixExpr) {
	switch e.Op {
	case PLUS:
		cg.genExpr(e.Operand)
	case MINUS:
		cg.genExpr(e.Operand)
		cg.ins("neg ax")
	case PLUS_PLUS, MINUS_MINUS:
		// Prefix form: the expression's value is the updated one.
		ref := symRef(e.Operand.(*VarRef).Sym)
		cg.ins("mov ax, %s", ref)
		if e.Op == PLUS_PLUS {
			cg.ins("inc ax")
		} else {
			cg.ins("dec ax")
		}
		cg.ins("mov %s, ax", ref)
	}
}

func (cg *CodeGen) genPostfix(e *PostfixExpr) {
	// Postfix form: ax keeps the old value, the stored word is updated.
	ref := symRef(e.Operand.(*VarRef).Sym)
	cg.ins("mov ax, %s", ref)
	cg.ins("mov bx, ax")
	if e.Op == PLUS_PLUS {
		cg.ins("inc bx")
	} else {
		cg.ins("dec bx")
	}
	cg.ins("mov %s, bx", ref)
}

// genCall pushes arguments left to right and invokes the routine. Callers
// pop their own arguments afterwards, except for routines that clean up
// themselves (the runtime's _write ends in ret 2).
func (cg *CodeGen) genCall(e *FunctionCall) {
	for _, arg := range e.Args {
		cg.genExpr(arg)
		cg.ins("push ax")
	}
	cg.ins("call %s", e.Desc.EntryLabel)
	if !e.Desc.CalleeCleans && len(e.Args) > 0 {
		cg.ins("add sp, %d", 2*len(e.Args))
	}
}
