package compiler

// Resolver walks the parsed tree once, binding every name use to its
// declaration and rejecting semantic violations. It annotates the tree in
// place (Sym and Desc fields) so the generator can emit code without doing
// any lookups of its own.
type Resolver struct {
	table     *SymbolTable
	fn        *FunctionDescriptor // nil at the top level
	loopDepth int
}

// builtins are the runtime primitives every program can call. write's
// runtime routine pops its own argument, so the caller must not clean up.
func builtinDescriptors() []*FunctionDescriptor {
	return []*FunctionDescriptor{
		{Name: "read", ReturnType: INT, EntryLabel: "_read", Builtin: true, Defined: true},
		{Name: "write", ReturnType: INT, ParamTypes: []TokenType{INT},
			EntryLabel: "_write", CalleeCleans: true, Builtin: true, Defined: true},
	}
}

// Resolve checks prog and returns the populated symbol table. The tree is
// annotated in place; on error the tree must be considered unusable.
func Resolve(prog *Program) (*SymbolTable, error) {
	r := &Resolver{table: NewSymbolTable()}
	for _, desc := range builtinDescriptors() {
		r.table.DefineFunction(desc)
	}

	sawMain := false
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *FunctionProto:
			if _, err := r.declareFunction(it.Name, it.ReturnType, it.Params, false, it.Pos); err != nil {
				return nil, err
			}
		case *FunctionDecl:
			if it.IsMain {
				sawMain = true
			}
			if err := r.resolveFunction(it); err != nil {
				return nil, err
			}
		case *DeclStmt:
			if err := r.resolveDeclStmt(it); err != nil {
				return nil, err
			}
		case *BlockStmt:
			// Top-level anonymous block: its variables shadow globals
			// but still live in the data segment.
			r.table.EnterScope()
			err := r.resolveStmts(it.Stmts)
			r.table.ExitScope()
			if err != nil {
				return nil, err
			}
		}
	}

	if !sawMain {
		return nil, semErrorf(UndeclaredIdentifier, Pos{Line: 1, Col: 1}, "program has no main function")
	}
	return r.table, nil
}

// declareFunction registers a signature, merging a definition into an
// earlier prototype when the signatures agree.
func (r *Resolver) declareFunction(name string, ret TokenType, params []*VarDecl, defining bool, pos Pos) (*FunctionDescriptor, error) {
	paramTypes := make([]TokenType, len(params))
	for i, p := range params {
		paramTypes[i] = p.Type
	}

	if prev, ok := r.table.LookupFunction(name); ok {
		if prev.Builtin {
			return nil, semErrorf(DuplicateDeclaration, pos, "%q is a runtime primitive and cannot be redeclared", name)
		}
		if prev.ReturnType != ret || len(prev.ParamTypes) != len(paramTypes) {
			return nil, semErrorf(DuplicateDeclaration, pos, "conflicting declarations of function %q", name)
		}
		for i := range paramTypes {
			if prev.ParamTypes[i] != paramTypes[i] {
				return nil, semErrorf(DuplicateDeclaration, pos, "conflicting declarations of function %q", name)
			}
		}
		if defining {
			if prev.Defined {
				return nil, semErrorf(DuplicateDeclaration, pos, "function %q is already defined", name)
			}
			prev.Defined = true
		}
		return prev, nil
	}

	desc := &FunctionDescriptor{
		Name:       name,
		ReturnType: ret,
		ParamTypes: paramTypes,
		EntryLabel: "F_" + name,
		Defined:    defining,
	}
	r.table.DefineFunction(desc)
	return desc, nil
}

func (r *Resolver) resolveFunction(fn *FunctionDecl) error {
	desc, err := r.declareFunction(fn.Name, fn.ReturnType, fn.Params, true, fn.Pos)
	if err != nil {
		return err
	}
	fn.Desc = desc

	r.table.EnterFunction()
	for i, p := range fn.Params {
		if p.Name == "" {
			continue // unnamed parameter: occupies a slot, never referenced
		}
		sym, ok := r.table.DefineParam(p.Name, p.Type, i, len(fn.Params))
		if !ok {
			return semErrorf(DuplicateDeclaration, p.Pos, "duplicate parameter %q", p.Name)
		}
		p.Sym = sym
	}

	prevFn := r.fn
	r.fn = desc
	err = r.resolveStmts(fn.Body.Stmts)
	r.fn = prevFn

	desc.FrameSize = r.table.ExitFunction()
	if err != nil {
		return err
	}

	// Every function promises a word-sized result. main is exempt: it
	// terminates the program instead of returning to a caller.
	if !fn.IsMain && !alwaysReturns(fn.Body) {
		return semErrorf(MissingReturn, fn.Pos, "function %q does not return on every path", fn.Name)
	}
	return nil
}

func (r *Resolver) resolveStmts(stmts []Stmt) error {
	for _, stmt := range stmts {
		if err := r.resolveStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) resolveStmt(stmt Stmt) error {
	switch st := stmt.(type) {
	case *EmptyStmt:
		return nil

	case *DeclStmt:
		return r.resolveDeclStmt(st)

	case *Assignment:
		return r.resolveAssignment(st)

	case *ExprStmt:
		return r.resolveExpr(st.Expr)

	case *BlockStmt:
		r.table.EnterScope()
		err := r.resolveStmts(st.Stmts)
		r.table.ExitScope()
		return err

	case *IfStmt:
		if err := r.resolveExpr(st.Cond); err != nil {
			return err
		}
		if err := r.resolveStmt(st.Body); err != nil {
			return err
		}
		if st.ElseBody != nil {
			return r.resolveStmt(st.ElseBody)
		}
		return nil

	case *WhileStmt:
		if err := r.resolveExpr(st.Cond); err != nil {
			return err
		}
		return r.resolveLoopBody(st.Body)

	case *DoWhileStmt:
		if err := r.resolveLoopBody(st.Body); err != nil {
			return err
		}
		return r.resolveExpr(st.Cond)

	case *ForStmt:
		// A declaration in the initializer scopes to the loop.
		r.table.EnterScope()
		defer r.table.ExitScope()
		if st.Init != nil {
			if err := r.resolveStmt(st.Init); err != nil {
				return err
			}
		}
		if err := r.resolveExpr(st.Cond); err != nil {
			return err
		}
		if st.Post != nil {
			if err := r.resolveStmt(st.Post); err != nil {
				return err
			}
		}
		return r.resolveLoopBody(st.Body)

	case *BreakStmt:
		if r.loopDepth == 0 {
			return semErrorf(InvalidControlFlow, st.Pos, "break outside loop")
		}
		return nil

	case *ContinueStmt:
		if r.loopDepth == 0 {
			return semErrorf(InvalidControlFlow, st.Pos, "continue outside loop")
		}
		return nil

	case *ReturnStmt:
		if r.fn == nil {
			return semErrorf(InvalidControlFlow, st.Pos, "return outside function")
		}
		if st.Expr != nil {
			return r.resolveExpr(st.Expr)
		}
		return nil

	default:
		panic("unhandled statement node in resolver")
	}
}

func (r *Resolver) resolveLoopBody(body Stmt) error {
	r.loopDepth++
	err := r.resolveStmt(body)
	r.loopDepth--
	return err
}

func (r *Resolver) resolveDeclStmt(decl *DeclStmt) error {
	for _, d := range decl.Decls {
		// The initializer is resolved before the name is declared, so
		// "int x = x;" reads the outer x (or fails as undeclared).
		if d.Init != nil {
			if err := r.resolveExpr(d.Init); err != nil {
				return err
			}
		}
		if _, fnTaken := r.table.LookupFunction(d.Name); fnTaken {
			return semErrorf(DuplicateDeclaration, d.Pos, "%q is already declared as a function", d.Name)
		}
		sym, ok := r.table.Allocate(d.Name, d.Type)
		if !ok {
			return semErrorf(DuplicateDeclaration, d.Pos, "%q is already declared in this scope", d.Name)
		}
		d.Sym = sym
	}
	return nil
}

func (r *Resolver) resolveAssignment(a *Assignment) error {
	sym, ok := r.table.Lookup(a.Name)
	if !ok {
		if _, isFn := r.table.LookupFunction(a.Name); isFn {
			return semErrorf(TypeMismatch, a.Pos, "%q is a function, not a variable", a.Name)
		}
		return semErrorf(UndeclaredIdentifier, a.Pos, "assignment to undeclared variable %q", a.Name)
	}
	a.Sym = sym
	return r.resolveExpr(a.Value)
}

func (r *Resolver) resolveExpr(expr Expr) error {
	switch e := expr.(type) {
	case *Literal:
		return nil

	case *VarRef:
		sym, ok := r.table.Lookup(e.Name)
		if !ok {
			if _, isFn := r.table.LookupFunction(e.Name); isFn {
				return semErrorf(TypeMismatch, e.Pos, "%q is a function, not a variable", e.Name)
			}
			return semErrorf(UndeclaredIdentifier, e.Pos, "undeclared variable %q", e.Name)
		}
		e.Sym = sym
		return nil

	case *BinaryExpr:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)

	case *LogicalExpr:
		if err := r.resolveExpr(e.Left); err != nil {
			return err
		}
		return r.resolveExpr(e.Right)

	case *NotExpr:
		return r.resolveExpr(e.Operand)

	case *PrefixExpr:
		return r.resolveExpr(e.Operand)

	case *PostfixExpr:
		return r.resolveExpr(e.Operand)

	case *FunctionCall:
		desc, ok := r.table.LookupFunction(e.Name)
		if !ok {
			if _, isVar := r.table.Lookup(e.Name); isVar {
				return semErrorf(TypeMismatch, e.Pos, "%q is a variable, not a function", e.Name)
			}
			return semErrorf(UndeclaredIdentifier, e.Pos, "call to undeclared function %q", e.Name)
		}
		if len(e.Args) != len(desc.ParamTypes) {
			return semErrorf(ArityMismatch, e.Pos, "function %q takes %d argument(s), got %d",
				e.Name, len(desc.ParamTypes), len(e.Args))
		}
		e.Desc = desc
		for _, arg := range e.Args {
			if err := r.resolveExpr(arg); err != nil {
				return err
			}
		}
		return nil

	default:
		panic("unhandled expression node in resolver")
	}
}

// alwaysReturns reports whether stmt returns on every execution path.
// The analysis is conservative: loops are assumed to possibly run zero
// times, except do-while whose body always executes.
func alwaysReturns(stmt Stmt) bool {
	switch st := stmt.(type) {
	case *ReturnStmt:
		return true
	case *BlockStmt:
		for _, s := range st.Stmts {
			if alwaysReturns(s) {
				return true
			}
		}
		return false
	case *IfStmt:
		return st.ElseBody != nil && alwaysReturns(st.Body) && alwaysReturns(st.ElseBody)
	case *DoWhileStmt:
		return alwaysReturns(st.Body)
	default:
		return false
	}
}
