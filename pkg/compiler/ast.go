package compiler

import (
	"fmt"
	"strings"
)

//  Expression nodes

// Expr is implemented by every node that produces a value.
// genExpr always leaves the result in ax.
type Expr interface {
	exprNode()
	String() string
}

// Literal is a compile-time constant. All literal kinds materialize as one
// 16-bit word: float truncates to its integer part, char is its code point,
// bool is 0 or 1.
//
//	x = 10;
//	    ^^  Literal{Kind: INT_LIT, Value: 10}
type Literal struct {
	Kind  TokenType // INT_LIT, FLOAT_LIT, CHAR_LIT, BOOL_LIT
	Raw   string    // the source lexeme
	Value uint16    // the word the generator emits
}

func (*Literal) exprNode() {}
func (l *Literal) String() string { return l.Raw }

// VarRef is a read of a named variable.
//
//	return x;
//	       ^  VarRef{Name: "x"}
//
// Sym is nil until the resolver binds the use to its declaration.
type VarRef struct {
	Name string
	Pos  Pos
	Sym  *Symbol
}

func (*VarRef) exprNode() {}
func (v *VarRef) String() string { return v.Name }

// BinaryExpr represents an arithmetic or relational operation: Left Op Right.
type BinaryExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// LogicalExpr represents Left && Right or Left || Right. It is separate from
// BinaryExpr because the generator must short-circuit the right operand.
type LogicalExpr struct {
	Op    TokenType
	Left  Expr
	Right Expr
}

func (*LogicalExpr) exprNode() {}
func (l *LogicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", l.Left, l.Op, l.Right)
}

// NotExpr represents !Operand. The parser only builds this node when '!' is
// the leading token of a boolean sub-expression, so "a > b ! c" cannot parse.
type NotExpr struct {
	Operand Expr
}

func (*NotExpr) exprNode() {}
func (n *NotExpr) String() string { return fmt.Sprintf("(! %s)", n.Operand) }

// PrefixExpr represents ++x, --x, -x, or +x.
type PrefixExpr struct {
	Op      TokenType
	Operand Expr
}

func (*PrefixExpr) exprNode() {}
func (p *PrefixExpr) String() string { return fmt.Sprintf("(%s %s)", p.Op, p.Operand) }

// PostfixExpr represents x++ or x--.
type PostfixExpr struct {
	Op      TokenType
	Operand Expr
}

func (*PostfixExpr) exprNode() {}
func (p *PostfixExpr) String() string { return fmt.Sprintf("(%s %s)", p.Operand, p.Op) }

// FunctionCall represents name(args). Desc is nil until the resolver binds
// the call to its FunctionDescriptor.
type FunctionCall struct {
	Name string
	Args []Expr
	Pos  Pos
	Desc *FunctionDescriptor
}

func (*FunctionCall) exprNode() {}
func (c *FunctionCall) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(parts, ", "))
}

//  Statement nodes

// Stmt is implemented by every node that does not produce a value.
type Stmt interface {
	stmtNode()
	String() string
}

// EmptyStmt represents a bare ';'.
type EmptyStmt struct{}

func (*EmptyStmt) stmtNode() {}
func (*EmptyStmt) String() string { return ";" }

// VarDecl is one declared name inside a declaration statement.
// Sym is nil until the resolver allocates a slot (or data word) for it.
type VarDecl struct {
	Type TokenType // INT, FLOAT, BOOL, CHAR, DOUBLE
	Name string
	Init Expr // may be nil
	Pos  Pos
	Sym  *Symbol
}

func (d *VarDecl) String() string {
	if d.Init != nil {
		return fmt.Sprintf("%s %s = %s", strings.ToLower(d.Type.String()), d.Name, d.Init)
	}
	return fmt.Sprintf("%s %s", strings.ToLower(d.Type.String()), d.Name)
}

// DeclStmt represents  type id [= B] (, id [= B])* ;
// One VarDecl per declared name, all sharing the written type.
type DeclStmt struct {
	Decls []*VarDecl
}

func (*DeclStmt) stmtNode() {}
func (d *DeclStmt) String() string {
	parts := make([]string, len(d.Decls))
	for i, v := range d.Decls {
		parts[i] = v.String()
	}
	return fmt.Sprintf("DeclStmt(%s)", strings.Join(parts, ", "))
}

// Assignment represents  id CompoundOp B ;
// The grammar only admits a bare identifier target. Sym is bound by the
// resolver; the generator desugars compound forms into read-modify-write.
type Assignment struct {
	Name  string
	Op    TokenType // ASSIGN or one of the compound forms
	Value Expr
	Pos   Pos
	Sym   *Symbol
}

func (*Assignment) stmtNode() {}
func (a *Assignment) String() string {
	return fmt.Sprintf("Assignment(%s %s %s)", a.Name, a.Op, a.Value)
}

// ExprStmt represents an expression evaluated for its side effects
// (a call, or a ++/-- statement).
type ExprStmt struct {
	Expr Expr
}

func (*ExprStmt) stmtNode() {}
func (e *ExprStmt) String() string { return fmt.Sprintf("ExprStmt(%s)", e.Expr) }

// BlockStmt represents { statement ... }
type BlockStmt struct {
	Stmts []Stmt
}

func (*BlockStmt) stmtNode() {}
func (b *BlockStmt) String() string { return fmt.Sprintf("BlockStmt(len=%d)", len(b.Stmts)) }

// IfStmt represents if (cond) body [else elseBody].
// else binds to the nearest unmatched if.
type IfStmt struct {
	Cond     Expr
	Body     Stmt
	ElseBody Stmt // may be nil
}

func (*IfStmt) stmtNode() {}
func (i *IfStmt) String() string {
	if i.ElseBody != nil {
		return fmt.Sprintf("IfStmt(if %s then %s else %s)", i.Cond, i.Body, i.ElseBody)
	}
	return fmt.Sprintf("IfStmt(if %s then %s)", i.Cond, i.Body)
}

// WhileStmt represents while (cond) body
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

func (*WhileStmt) stmtNode() {}
func (w *WhileStmt) String() string {
	return fmt.Sprintf("WhileStmt(while %s do %s)", w.Cond, w.Body)
}

// DoWhileStmt represents do body while (cond);
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
}

func (*DoWhileStmt) stmtNode() {}
func (d *DoWhileStmt) String() string {
	return fmt.Sprintf("DoWhileStmt(do %s while %s)", d.Body, d.Cond)
}

// ForStmt represents for (init; cond; post) body.
// Init and Post are statements without their own terminating semicolon;
// any of Init/Cond/Post may be nil. A declaration in Init scopes to the loop.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Stmt
	Body Stmt
}

func (*ForStmt) stmtNode() {}
func (f *ForStmt) String() string {
	return fmt.Sprintf("ForStmt(init=%s, cond=%s, post=%s, body=%s)", f.Init, f.Cond, f.Post, f.Body)
}

// BreakStmt represents break;
type BreakStmt struct {
	Pos Pos
}

func (*BreakStmt) stmtNode() {}
func (*BreakStmt) String() string { return "BreakStmt" }

// ContinueStmt represents continue;
type ContinueStmt struct {
	Pos Pos
}

func (*ContinueStmt) stmtNode() {}
func (*ContinueStmt) String() string { return "ContinueStmt" }

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	Expr Expr // may be nil
	Pos  Pos
}

func (*ReturnStmt) stmtNode() {}
func (r *ReturnStmt) String() string {
	if r.Expr != nil {
		return fmt.Sprintf("ReturnStmt(%s)", r.Expr)
	}
	return "ReturnStmt"
}

//  Top-level items

// FunctionProto represents  type id ( ParamListOpt ) ;
// It registers the signature so later call sites resolve.
type FunctionProto struct {
	Name       string
	ReturnType TokenType
	Params     []*VarDecl // Init always nil; Name may be ""
	Pos        Pos
}

func (*FunctionProto) stmtNode() {}
func (f *FunctionProto) String() string {
	return fmt.Sprintf("FunctionProto(%s, params=%d)", f.Name, len(f.Params))
}

// FunctionDecl represents  type id ( ParamListOpt ) { body }  and, with
// IsMain set, the main definition (whose leading type is optional).
type FunctionDecl struct {
	Name       string
	ReturnType TokenType // zero value when main omits its type
	Params     []*VarDecl
	Body       *BlockStmt
	IsMain     bool
	Pos        Pos
	Desc       *FunctionDescriptor
}

func (*FunctionDecl) stmtNode() {}
func (f *FunctionDecl) String() string {
	return fmt.Sprintf("FunctionDecl(%s, params=%d, body=%s)", f.Name, len(f.Params), f.Body)
}

// Program is the root of the tree: the ordered top-level items.
// Items are DeclStmt, FunctionProto, FunctionDecl, or *BlockStmt
// (anonymous block).
type Program struct {
	Items []Stmt
}

func (p *Program) String() string { return fmt.Sprintf("Program(items=%d)", len(p.Items)) }
