package compiler

import (
	"strconv"
	"strings"
)

// Parser consumes the flat token slice produced by the Lexer and builds an
// AST. One method per grammar nonterminal, single-token lookahead, no
// backtracking (three tokens of peeking disambiguate the top level, as the
// grammar intends).
//
// Grammar:
//
//	P        = TopList EOF
//	Top      = D | FunDecl | FunDef | MainFunDef | "{" L "}"
//	FunDecl  = type id "(" ParamListOpt ")" ";"
//	FunDef   = type id "(" ParamListOpt ")" "{" L "}"
//	MainFunDef = [type] "main" "(" ParamListOpt ")" "{" L "}"
//	Param    = type [id]
//	D        = type id IDInit ("," id IDInit)* ";"
//	IDInit   = "=" B | ε
//	S        = ";" | id CompAssign B ";" | "{" L "}"
//	         | "if" "(" B ")" S S' | "while" "(" B ")" S
//	         | "for" "(" ForInit ";" B ";" ForIter ")" S
//	         | "do" S "while" "(" B ")" ";"
//	         | "break" ";" | "continue" ";" | "return" ReturnExpr ";" | D
//	S'       = "else" S | ε
//	B        = "(" B ")" B' | "!" B B' | R B'
//	B'       = "&&" B B' | "||" B B' | ε
//	R        = E (relop E)*
//	E        = T (("+"|"-") T)*
//	T        = F (("*"|"/"|"%") F)*
//	F        = id "(" ArgListOpt ")" | "(" R ")" | id Postfix | Prefix F | literal
//
// '!' is parsed only at the head of B, never after an operand, so a postfix
// or infix '!' is a SyntaxError by construction.
type Parser struct {
	tokens      []Token
	pos         int
	sourceLines []string
}

func NewParser(tokens []Token, rawSource string) *Parser {
	return &Parser{tokens: tokens, sourceLines: strings.Split(rawSource, "\n")}
}

// Parse builds the Program for the whole token stream. Parsing must consume
// every token: anything left over after the top-level list is an error.
func Parse(tokens []Token, rawSource string) (*Program, error) {
	p := NewParser(tokens, rawSource)
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != EOF {
		return nil, p.syntaxError(tok, "end of input")
	}
	return prog, nil
}

// syntaxError builds a SyntaxError carrying the source line of tok.
func (p *Parser) syntaxError(tok Token, expected string) *SyntaxError {
	snippet := ""
	lineIdx := tok.Line - 1 // lines are 1-based
	if lineIdx >= 0 && lineIdx < len(p.sourceLines) {
		snippet = strings.TrimSpace(p.sourceLines[lineIdx])
	}
	return &SyntaxError{Pos: tok.Pos(), Expected: expected, Got: tok, Snippet: snippet}
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekNext returns the token immediately after the current one.
func (p *Parser) peekNext() Token {
	return p.peekAt(1)
}

// peekAt returns the token at the given offset from the current position.
// Past the end it returns the trailing EOF token, so diagnostics built from
// it keep a real source position.
func (p *Parser) peekAt(offset int) Token {
	if p.pos+offset >= len(p.tokens) {
		if len(p.tokens) == 0 {
			return Token{Type: EOF, Line: 1, Col: 1}
		}
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+offset]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it matches tt, otherwise fails.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.syntaxError(tok, "'"+tt.String()+"'")
	}
	return p.advance(), nil
}

// startsTop reports whether tok can begin a top-level item.
func startsTop(tok Token) bool {
	return isTypeKeyword(tok.Type) || tok.Type == MAIN || tok.Type == LBRACE
}

// parseProgram handles  P → TopList
func (p *Parser) parseProgram() (*Program, error) {
	prog := &Program{}
	for startsTop(p.peek()) {
		item, err := p.parseTop()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
	}
	return prog, nil
}

// parseTop handles one top-level item: a global declaration, a function
// prototype or definition, the main definition, or an anonymous block.
func (p *Parser) parseTop() (Stmt, error) {
	tok := p.peek()

	// [type] main ( ... ) { ... }
	if tok.Type == MAIN || (isTypeKeyword(tok.Type) && p.peekNext().Type == MAIN) {
		return p.parseMain()
	}

	if isTypeKeyword(tok.Type) {
		// Distinguish a function from a global declaration with two more
		// tokens of lookahead: "int a (" vs "int a =", "int a ;", "int a ,".
		t2 := p.peekNext()
		if t2.Type != IDENTIFIER {
			return nil, p.syntaxError(t2, "identifier after type")
		}
		switch p.peekAt(2).Type {
		case LPAREN:
			return p.parseFunction()
		case ASSIGN, SEMICOLON, COMMA:
			return p.parseDeclStmt()
		default:
			return nil, p.syntaxError(p.peekAt(2), "'(', '=', ',' or ';' after declarator")
		}
	}

	if tok.Type == LBRACE {
		p.advance()
		return p.parseBlock()
	}
	return nil, p.syntaxError(tok, "declaration, function, main, or block")
}

// parseMain handles  MainFunDef → [type] main ( ParamListOpt ) { L }
func (p *Parser) parseMain() (Stmt, error) {
	var retType TokenType
	if isTypeKeyword(p.peek().Type) {
		retType = p.advance().Type
	}
	nameTok, err := p.expect(MAIN)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParamListOpt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FunctionDecl{
		Name:       "main",
		ReturnType: retType,
		Params:     params,
		Body:       body.(*BlockStmt),
		IsMain:     true,
		Pos:        nameTok.Pos(),
	}, nil
}

// parseFunction handles both  FunDecl → type id ( ParamListOpt ) ;
// and  FunDef → type id ( ParamListOpt ) { L }
func (p *Parser) parseFunction() (Stmt, error) {
	typeTok := p.advance()
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParamListOpt()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case SEMICOLON:
		p.advance()
		return &FunctionProto{
			Name:       nameTok.Lexeme,
			ReturnType: typeTok.Type,
			Params:     params,
			Pos:        nameTok.Pos(),
		}, nil
	case LBRACE:
		p.advance()
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &FunctionDecl{
			Name:       nameTok.Lexeme,
			ReturnType: typeTok.Type,
			Params:     params,
			Body:       body.(*BlockStmt),
			Pos:        nameTok.Pos(),
		}, nil
	default:
		return nil, p.syntaxError(p.peek(), "';' or '{' after function signature")
	}
}

// parseParamListOpt handles  ParamListOpt → Param ("," Param)* | ε
// A parameter name is optional:  Param → type [id]
func (p *Parser) parseParamListOpt() ([]*VarDecl, error) {
	var params []*VarDecl
	if !isTypeKeyword(p.peek().Type) {
		return params, nil
	}
	for {
		typeTok := p.advance()
		param := &VarDecl{Type: typeTok.Type, Pos: typeTok.Pos()}
		if p.peek().Type == IDENTIFIER {
			nameTok := p.advance()
			param.Name = nameTok.Lexeme
			param.Pos = nameTok.Pos()
		}
		params = append(params, param)

		if p.peek().Type != COMMA {
			return params, nil
		}
		p.advance()
		if !isTypeKeyword(p.peek().Type) {
			return nil, p.syntaxError(p.peek(), "type keyword after ','")
		}
	}
}

// parseBlock parses { stmt ... }. The leading LBRACE has already been
// consumed by the caller.
func (p *Parser) parseBlock() (Stmt, error) {
	var stmts []Stmt
	for p.peek().Type != RBRACE && p.peek().Type != EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}
	return &BlockStmt{Stmts: stmts}, nil
}

// parseStatement dispatches on the statement's first token(s).
func (p *Parser) parseStatement() (Stmt, error) {
	tok := p.peek()
	switch {
	case tok.Type == SEMICOLON:
		p.advance()
		return &EmptyStmt{}, nil

	// Expression statements: a call, or a ++/-- form.
	case tok.Type == IDENTIFIER && p.peekNext().Type == LPAREN,
		tok.Type == PLUS_PLUS || tok.Type == MINUS_MINUS,
		tok.Type == IDENTIFIER && (p.peekNext().Type == PLUS_PLUS || p.peekNext().Type == MINUS_MINUS):
		expr, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &ExprStmt{Expr: expr}, nil

	case tok.Type == IDENTIFIER:
		stmt, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return stmt, nil

	case tok.Type == LBRACE:
		p.advance()
		return p.parseBlock()

	case tok.Type == IF:
		return p.parseIf()

	case tok.Type == WHILE:
		return p.parseWhile()

	case tok.Type == FOR:
		return p.parseFor()

	case tok.Type == DO:
		return p.parseDoWhile()

	case tok.Type == BREAK:
		p.advance()
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &BreakStmt{Pos: tok.Pos()}, nil

	case tok.Type == CONTINUE:
		p.advance()
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return &ContinueStmt{Pos: tok.Pos()}, nil

	case tok.Type == RETURN:
		return p.parseReturn()

	case isTypeKeyword(tok.Type):
		return p.parseDeclStmt()

	default:
		return nil, p.syntaxError(tok, "statement")
	}
}

// parseAssignment handles  id CompAssign B  without the trailing ';'
// (the for-iterator reuses it).
func (p *Parser) parseAssignment() (Stmt, error) {
	nameTok := p.advance()
	opTok := p.peek()
	if !isCompoundAssign(opTok.Type) {
		return nil, p.syntaxError(opTok, "assignment operator (=, +=, -=, *=, /=, %=)")
	}
	p.advance()
	val, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	return &Assignment{Name: nameTok.Lexeme, Op: opTok.Type, Value: val, Pos: nameTok.Pos()}, nil
}

// parseDeclStmt handles  D → type id IDInit ("," id IDInit)* ;
func (p *Parser) parseDeclStmt() (Stmt, error) {
	decl, err := p.parseDeclBody()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseDeclBody parses a declaration without the trailing ';'
// (the for-initializer reuses it).
func (p *Parser) parseDeclBody() (*DeclStmt, error) {
	typeTok := p.advance()
	decl := &DeclStmt{}
	for {
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		item := &VarDecl{Type: typeTok.Type, Name: nameTok.Lexeme, Pos: nameTok.Pos()}
		if p.peek().Type == ASSIGN {
			p.advance()
			init, err := p.parseBool()
			if err != nil {
				return nil, err
			}
			item.Init = init
		}
		decl.Decls = append(decl.Decls, item)

		if p.peek().Type != COMMA {
			return decl, nil
		}
		p.advance()
	}
}

// parseIf handles  if ( B ) S S'  where  S' → else S | ε
// else attaches to the nearest unmatched if because S' follows immediately.
func (p *Parser) parseIf() (Stmt, error) {
	p.advance() // if
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	var elseBody Stmt
	if p.peek().Type == ELSE {
		p.advance()
		elseBody, err = p.parseStatement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Body: body, ElseBody: elseBody}, nil
}

// parseWhile handles  while ( B ) S
func (p *Parser) parseWhile() (Stmt, error) {
	p.advance() // while
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// parseDoWhile handles  do S while ( B ) ;
func (p *Parser) parseDoWhile() (Stmt, error) {
	p.advance() // do
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WHILE); err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &DoWhileStmt{Body: body, Cond: cond}, nil
}

// parseFor handles  for ( ForInit ; B ; ForIter ) S
// The condition is mandatory in the grammar; init and iter may be empty.
func (p *Parser) parseFor() (Stmt, error) {
	p.advance() // for
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	init, err := p.parseForInit()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	cond, err := p.parseBool()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	post, err := p.parseForIter()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Init: init, Cond: cond, Post: post, Body: body}, nil
}

// parseForInit handles  ForInit → id = B | D | ε
func (p *Parser) parseForInit() (Stmt, error) {
	tok := p.peek()
	switch {
	case tok.Type == IDENTIFIER:
		p.advance()
		if _, err := p.expect(ASSIGN); err != nil {
			return nil, err
		}
		val, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: tok.Lexeme, Op: ASSIGN, Value: val, Pos: tok.Pos()}, nil
	case isTypeKeyword(tok.Type):
		return p.parseDeclBody()
	default:
		return nil, nil // ε
	}
}

// parseForIter handles  ForIter → id CompAssign B | Prefix id | id Postfix | ε
func (p *Parser) parseForIter() (Stmt, error) {
	tok := p.peek()
	switch {
	case tok.Type == IDENTIFIER && isCompoundAssign(p.peekNext().Type):
		return p.parseAssignment()
	case tok.Type == PLUS_PLUS || tok.Type == MINUS_MINUS:
		p.advance()
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		operand := &VarRef{Name: nameTok.Lexeme, Pos: nameTok.Pos()}
		return &ExprStmt{Expr: &PrefixExpr{Op: tok.Type, Operand: operand}}, nil
	case tok.Type == IDENTIFIER && (p.peekNext().Type == PLUS_PLUS || p.peekNext().Type == MINUS_MINUS):
		p.advance()
		opTok := p.advance()
		operand := &VarRef{Name: tok.Lexeme, Pos: tok.Pos()}
		return &ExprStmt{Expr: &PostfixExpr{Op: opTok.Type, Operand: operand}}, nil
	default:
		return nil, nil // ε
	}
}

// parseReturn handles  return ReturnExpr ;  where  ReturnExpr → B | ε
func (p *Parser) parseReturn() (Stmt, error) {
	retTok := p.advance()
	var expr Expr
	if startsExpr(p.peek()) {
		var err error
		expr, err = p.parseBool()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &ReturnStmt{Expr: expr, Pos: retTok.Pos()}, nil
}

// startsExpr reports whether tok is in FIRST(B).
func startsExpr(tok Token) bool {
	switch tok.Type {
	case NOT, LPAREN, IDENTIFIER, INT_LIT, FLOAT_LIT, CHAR_LIT, BOOL_LIT,
		PLUS_PLUS, MINUS_MINUS, PLUS, MINUS:
		return true
	}
	return false
}

//  Expression layers. Each method peels exactly one precedence level.

// parseBool handles  B → ( B ) B' | ! B B' | R B'
// '!' is legal only here, at the head of a boolean sub-expression. The
// continuation B' → && B B' | || B B' is right-recursive in the grammar;
// the recursive call to parseBool for the right operand reproduces that.
func (p *Parser) parseBool() (Expr, error) {
	var expr Expr
	switch p.peek().Type {
	case LPAREN:
		p.advance()
		inner, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		expr = inner
	case NOT:
		p.advance()
		operand, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		expr = &NotExpr{Operand: operand}
	default:
		rel, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		expr = rel
	}

	for p.peek().Type == AND_LOGICAL || p.peek().Type == OR_LOGICAL {
		op := p.advance().Type
		right, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseRel handles  R → E R'  with  R' → relop E R' | ε
func (p *Parser) parseRel() (Expr, error) {
	expr, err := p.parseArith()
	if err != nil {
		return nil, err
	}
	for isRelop(p.peek().Type) {
		op := p.advance().Type
		right, err := p.parseArith()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseArith handles  E → T E'  with  E' → + T E' | - T E' | ε
func (p *Parser) parseArith() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == PLUS || p.peek().Type == MINUS {
		op := p.advance().Type
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseTerm handles  T → F T'  with  T' → * F T' | / F T' | % F T' | ε
func (p *Parser) parseTerm() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == STAR || p.peek().Type == SLASH || p.peek().Type == PERCENT {
		op := p.advance().Type
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Op: op, Left: expr, Right: right}
	}
	return expr, nil
}

// parseFactor handles the atomic forms:
//
//	F → id ( ArgListOpt ) | ( R ) | id Postfix | Prefix F | literal
//
// Note the parenthesized form recurses into R, not B: '!' cannot restart
// inside parentheses at this level.
func (p *Parser) parseFactor() (Expr, error) {
	tok := p.peek()
	switch {
	// Unary + / - applies to a factor.
	case tok.Type == PLUS || tok.Type == MINUS:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &PrefixExpr{Op: tok.Type, Operand: operand}, nil

	// Prefix increment/decrement binds an identifier.
	case tok.Type == PLUS_PLUS || tok.Type == MINUS_MINUS:
		p.advance()
		nameTok, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		operand := &VarRef{Name: nameTok.Lexeme, Pos: nameTok.Pos()}
		return &PrefixExpr{Op: tok.Type, Operand: operand}, nil

	// Function call.
	case tok.Type == IDENTIFIER && p.peekNext().Type == LPAREN:
		p.advance()
		p.advance() // (
		args, err := p.parseArgListOpt()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return &FunctionCall{Name: tok.Lexeme, Args: args, Pos: tok.Pos()}, nil

	case tok.Type == LPAREN:
		p.advance()
		expr, err := p.parseRel()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	// Identifier with optional postfix ++/--.
	case tok.Type == IDENTIFIER:
		p.advance()
		ref := &VarRef{Name: tok.Lexeme, Pos: tok.Pos()}
		if p.peek().Type == PLUS_PLUS || p.peek().Type == MINUS_MINUS {
			opTok := p.advance()
			return &PostfixExpr{Op: opTok.Type, Operand: ref}, nil
		}
		return ref, nil

	case tok.Type == INT_LIT, tok.Type == FLOAT_LIT, tok.Type == CHAR_LIT, tok.Type == BOOL_LIT:
		p.advance()
		return p.literalFromToken(tok)

	default:
		return nil, p.syntaxError(tok, "'(', identifier, or literal")
	}
}

// literalFromToken folds a literal token into its 16-bit word value.
func (p *Parser) literalFromToken(tok Token) (Expr, error) {
	switch tok.Type {
	case INT_LIT, CHAR_LIT, BOOL_LIT:
		val, err := strconv.ParseUint(tok.Lexeme, 10, 16)
		if err != nil {
			return nil, p.syntaxError(tok, "integer literal in 16-bit range")
		}
		return &Literal{Kind: tok.Type, Raw: tok.Lexeme, Value: uint16(val)}, nil
	case FLOAT_LIT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil || f < 0 || f > 65535 {
			return nil, p.syntaxError(tok, "float literal in 16-bit range")
		}
		// The word-sized target has no float representation; the literal
		// materializes as its truncated integer part.
		return &Literal{Kind: FLOAT_LIT, Raw: tok.Lexeme, Value: uint16(f)}, nil
	default:
		return nil, p.syntaxError(tok, "literal")
	}
}

// parseArgListOpt handles  ArgListOpt → B ("," B)* | ε
func (p *Parser) parseArgListOpt() ([]Expr, error) {
	var args []Expr
	if !startsExpr(p.peek()) {
		return args, nil
	}
	for {
		arg, err := p.parseBool()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.peek().Type != COMMA {
			return args, nil
		}
		p.advance()
	}
}
