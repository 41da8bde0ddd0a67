package parser

import (
	"minilang/pkg/ast"
	"minilang/pkg/lexer"
	"strconv"
	"strings"
)

type Parser struct {
	tokens       []lexer.Token // token stream, always terminated by EOF
	current      int           // index of currentToken in tokens
	currentToken lexer.Token   // current token
	errors       []string      // list of errors
	incomplete   bool          // an error was caused by running out of input
}

// bailout unwinds a failed declaration back to parseDeclaration, which
// records nothing further and resynchronises on the next statement.
type bailout struct{}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer) *Parser {
	p := &Parser{
		tokens: l.Tokens(),
		errors: []string{},
	}

	// Initialize current token
	p.currentToken = p.tokens[0]

	return p
}

// Parse is a shorthand for NewParser(lexer.NewLexer(src)).Parse()
func Parse(src string) (*ast.Program, []string) {
	p := NewParser(lexer.NewLexer(src))
	prog := p.Parse()
	return prog, p.Errors()
}

// Parse consumes the whole token stream. Declarations that fail to parse are
// reported and skipped; the rest of the program is still returned.
func (p *Parser) Parse() *ast.Program {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			prog.Stmts = append(prog.Stmts, stmt)
		}
	}
	return prog
}

// Incomplete reports whether parsing failed only because the input ended
// early (open block, unterminated string or comment). The REPL uses it to
// keep reading lines.
func (p *Parser) Incomplete() bool {
	return p.incomplete
}

func (p *Parser) parseDeclaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(lexer.CLASS):
		return p.parseClassDeclaration()
	case p.check(lexer.FUNC) && p.peekType(1) == lexer.ID:
		p.nextToken()
		return p.parseFuncDeclaration()
	case p.isVarDeclStart():
		return p.parseVarDeclaration()
	}

	return p.parseStatement()
}

// isVarDeclStart distinguishes `int x = ...;` from `int(x);`: type keywords
// double as the names of the conversion natives.
func (p *Parser) isVarDeclStart() bool {
	if p.check(lexer.VAR) {
		return true
	}
	return p.currentToken.Type.IsTypeKeyword() && p.peekType(1) == lexer.ID
}

func (p *Parser) parseFuncDeclaration() *ast.Func {
	line := p.previous().Line()
	name := p.consume(lexer.ID, "Expected function name")

	fn := &ast.Func{Loc: ast.Loc(line), Name: name.Lexeme}
	fn.Params = p.parseParams()

	p.consume(lexer.LBRACE, "")
	fn.Body = p.parseBlock()
	return fn
}

func (p *Parser) parseParams() []ast.Param {
	p.consume(lexer.LPAREN, "")

	var params []ast.Param
	if !p.check(lexer.RPAREN) {
		for {
			param := ast.Param{}
			if p.currentToken.Type.IsTypeKeyword() {
				param.Type = ast.TypeFromToken(p.currentToken.Type)
				p.nextToken()
			} else {
				p.match(lexer.VAR)
			}
			param.Name = p.consume(lexer.ID, "Expected parameter name").Lexeme
			params = append(params, param)

			if !p.match(lexer.COMMA) {
				break
			}
		}
	}

	p.consume(lexer.RPAREN, "")
	return params
}

func (p *Parser) parseClassDeclaration() ast.Stmt {
	line := p.previous().Line()
	name := p.consume(lexer.ID, "Expected class name")
	class := &ast.Class{Loc: ast.Loc(line), Name: name.Lexeme}

	if p.match(lexer.EXTENDS) {
		super := p.consume(lexer.ID, "Expected superclass name")
		class.Superclass = &ast.Variable{Loc: ast.Loc(super.Line()), Name: super.Lexeme}
	}

	p.consume(lexer.LBRACE, "")
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		p.match(lexer.FUNC) // optional in method position
		if !p.check(lexer.ID) {
			p.addError("Expected method declaration")
			panic(bailout{})
		}
		class.Methods = append(class.Methods, p.parseFuncDeclaration())
	}
	p.consume(lexer.RBRACE, "")

	return class
}

func (p *Parser) parseVarDeclaration() *ast.VarDecl {
	typeToken := p.currentToken
	p.nextToken()

	name := p.consume(lexer.ID, "")
	decl := &ast.VarDecl{
		Loc:  ast.Loc(typeToken.Line()),
		Name: name.Lexeme,
		Type: ast.TypeFromToken(typeToken.Type),
	}

	if p.match(lexer.ASSIGN) {
		decl.Init = p.parseExpression()
	}
	p.consume(lexer.SEMICOLON, "")

	return decl
}

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.match(lexer.IF):
		return p.parseIfStatement()
	case p.match(lexer.WHILE):
		return p.parseWhileStatement()
	case p.match(lexer.FOR):
		return p.parseForStatement()
	case p.match(lexer.LBRACE):
		return p.parseBlock()
	case p.match(lexer.RETURN):
		return p.parseReturnStatement()
	case p.match(lexer.BREAK):
		stmt := &ast.Break{Loc: ast.Loc(p.previous().Line())}
		p.consume(lexer.SEMICOLON, "")
		return stmt
	case p.match(lexer.CONTINUE):
		stmt := &ast.Continue{Loc: ast.Loc(p.previous().Line())}
		p.consume(lexer.SEMICOLON, "")
		return stmt
	case p.match(lexer.THROW):
		return p.parseThrowStatement()
	case p.match(lexer.TRY):
		return p.parseTryStatement()
	case p.match(lexer.SEMICOLON):
		return nil
	}

	return p.parseExprStatement()
}

func (p *Parser) parseIfStatement() ast.Stmt {
	stmt := &ast.If{Loc: ast.Loc(p.previous().Line())}
	stmt.Cond = p.parseCondition()
	stmt.Then = p.parseStatement()
	if p.match(lexer.ELSE) {
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	stmt := &ast.While{Loc: ast.Loc(p.previous().Line())}
	stmt.Cond = p.parseCondition()
	stmt.Body = p.parseStatement()
	return stmt
}

// parseCondition parses the parenthesised condition of if and while
func (p *Parser) parseCondition() ast.Expr {
	p.consume(lexer.LPAREN, "")
	if p.check(lexer.RPAREN) {
		p.addError("Empty condition")
		panic(bailout{})
	}
	cond := p.parseExpression()
	p.consume(lexer.RPAREN, "")
	return cond
}

func (p *Parser) parseForStatement() ast.Stmt {
	line := p.previous().Line()
	p.consume(lexer.LPAREN, "")

	// for (var x : iterable) / for (int x : iterable)
	if (p.check(lexer.VAR) || p.currentToken.Type.IsTypeKeyword()) &&
		p.peekType(1) == lexer.ID && p.peekType(2) == lexer.COLON {
		typ := ast.TypeFromToken(p.currentToken.Type)
		p.nextToken()
		name := p.consume(lexer.ID, "")
		p.consume(lexer.COLON, "")

		stmt := &ast.ForEach{Loc: ast.Loc(line), Var: name.Lexeme, Type: typ}
		stmt.Iterable = p.parseExpression()
		p.consume(lexer.RPAREN, "")
		stmt.Body = p.parseStatement()
		return stmt
	}

	stmt := &ast.For{Loc: ast.Loc(line)}
	switch {
	case p.match(lexer.SEMICOLON):
	case p.isVarDeclStart():
		stmt.Init = p.parseVarDeclaration()
	default:
		stmt.Init = p.parseExprStatement()
	}

	if !p.check(lexer.SEMICOLON) {
		stmt.Cond = p.parseExpression()
	}
	p.consume(lexer.SEMICOLON, "")

	if !p.check(lexer.RPAREN) {
		stmt.Incr = p.parseExpression()
	}
	p.consume(lexer.RPAREN, "")

	stmt.Body = p.parseStatement()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	stmt := &ast.Return{Loc: ast.Loc(p.previous().Line())}
	if !p.check(lexer.SEMICOLON) {
		stmt.Value = p.parseExpression()
	}
	p.consume(lexer.SEMICOLON, "")
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Stmt {
	stmt := &ast.Throw{Loc: ast.Loc(p.previous().Line())}
	if p.check(lexer.SEMICOLON) {
		p.addError("Missing expression")
		panic(bailout{})
	}
	stmt.Value = p.parseExpression()
	p.consume(lexer.SEMICOLON, "")
	return stmt
}

func (p *Parser) parseTryStatement() ast.Stmt {
	stmt := &ast.Try{Loc: ast.Loc(p.previous().Line())}

	p.consume(lexer.LBRACE, "")
	stmt.Body = p.parseBlock()

	p.consume(lexer.CATCH, "Expected 'catch' after try block")
	p.consume(lexer.LPAREN, "")
	stmt.Name = p.consume(lexer.ID, "").Lexeme
	p.consume(lexer.RPAREN, "")

	p.consume(lexer.LBRACE, "")
	stmt.Handler = p.parseBlock()
	return stmt
}

// parseBlock parses statements up to the closing brace; the opening brace
// has already been consumed.
func (p *Parser) parseBlock() *ast.Block {
	block := &ast.Block{Loc: ast.Loc(p.previous().Line())}
	for !p.check(lexer.RBRACE) && !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	p.consume(lexer.RBRACE, "")
	return block
}

func (p *Parser) parseExprStatement() ast.Stmt {
	line := p.currentToken.Line()
	expr := p.parseExpression()
	p.consume(lexer.SEMICOLON, "")
	return &ast.ExprStmt{Loc: ast.Loc(line), X: expr}
}

func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() ast.Expr {
	expr := p.parseLogicalOr()

	if p.match(lexer.ASSIGN) {
		equals := p.previous()
		value := p.parseAssignment()

		switch expr.(type) {
		case *ast.Variable, *ast.Index, *ast.Member:
			return &ast.Assign{Loc: ast.Loc(equals.Line()), Target: expr, Value: value}
		}
		p.addErrorAt(equals, "Invalid assignment target")
		panic(bailout{})
	}

	return expr
}

func (p *Parser) parseLogicalOr() ast.Expr {
	expr := p.parseLogicalAnd()
	for p.match(lexer.OR) {
		op := p.previous()
		right := p.parseLogicalAnd()
		expr = &ast.Logical{Loc: ast.Loc(op.Line()), Op: op.Type, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	expr := p.parseEquality()
	for p.match(lexer.AND) {
		op := p.previous()
		right := p.parseEquality()
		expr = &ast.Logical{Loc: ast.Loc(op.Line()), Op: op.Type, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) parseEquality() ast.Expr {
	return p.parseBinary(p.parseComparison, lexer.EQ, lexer.NE)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.parseBinary(p.parseTerm, lexer.LT, lexer.LE, lexer.GT, lexer.GE)
}

func (p *Parser) parseTerm() ast.Expr {
	return p.parseBinary(p.parseFactor, lexer.PLUS, lexer.MINUS)
}

func (p *Parser) parseFactor() ast.Expr {
	return p.parseBinary(p.parseUnary, lexer.MULT, lexer.DIV, lexer.MOD)
}

// parseBinary parses a left-associative chain of the given operators
func (p *Parser) parseBinary(operand func() ast.Expr, ops ...lexer.TokenType) ast.Expr {
	expr := operand()
	for p.match(ops...) {
		op := p.previous()
		right := operand()
		expr = &ast.Binary{Loc: ast.Loc(op.Line()), Op: op.Type, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) parseUnary() ast.Expr {
	if p.match(lexer.MINUS, lexer.NOT) {
		op := p.previous()
		right := p.parseUnary()
		return &ast.Unary{Loc: ast.Loc(op.Line()), Op: op.Type, Right: right}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()

	for {
		switch {
		case p.match(lexer.LPAREN):
			call := &ast.Call{Loc: ast.Loc(p.previous().Line()), Callee: expr}
			if !p.check(lexer.RPAREN) {
				for {
					call.Args = append(call.Args, p.parseExpression())
					if !p.match(lexer.COMMA) {
						break
					}
				}
			}
			p.consume(lexer.RPAREN, "")
			expr = call

		case p.match(lexer.LSBRACE):
			line := p.previous().Line()
			index := p.parseExpression()
			p.consume(lexer.RSBRACE, "")
			expr = &ast.Index{Loc: ast.Loc(line), Target: expr, Index: index}

		case p.match(lexer.DOT):
			name := p.consume(lexer.ID, "Expected property name after '.'")
			expr = &ast.Member{Loc: ast.Loc(name.Line()), Object: expr, Name: name.Lexeme}

		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.currentToken
	loc := ast.Loc(tok.Line())

	switch {
	case p.match(lexer.NUM):
		return p.parseNumber(tok)
	case p.match(lexer.STR):
		return &ast.StringLit{Loc: loc, Value: tok.Literal}
	case p.match(lexer.TRUE):
		return &ast.BoolLit{Loc: loc, Value: true}
	case p.match(lexer.FALSE):
		return &ast.BoolLit{Loc: loc, Value: false}
	case p.match(lexer.NIL):
		return &ast.NilLit{Loc: loc}
	case p.match(lexer.THIS):
		return &ast.This{Loc: loc}
	case p.match(lexer.SUPER):
		p.consume(lexer.DOT, "Expected '.' after 'super'")
		method := p.consume(lexer.ID, "Expected superclass method name")
		return &ast.Super{Loc: loc, Method: method.Lexeme}
	case p.match(lexer.ID), tok.Type.IsTypeKeyword() && p.match(tok.Type):
		return &ast.Variable{Loc: loc, Name: tok.Lexeme}
	case p.match(lexer.LPAREN):
		expr := p.parseExpression()
		p.consume(lexer.RPAREN, "")
		return expr
	case p.match(lexer.LBRACE):
		return p.parseDictLiteral()
	case p.match(lexer.LSBRACE):
		return p.parseArrayLiteral()
	}

	p.addContextualError("expression")
	panic(bailout{})
}

func (p *Parser) parseNumber(tok lexer.Token) ast.Expr {
	loc := ast.Loc(tok.Line())

	if strings.ContainsAny(tok.Lexeme, ".eE") {
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			p.addErrorAt(tok, "Invalid number literal")
			panic(bailout{})
		}
		return &ast.FloatLit{Loc: loc, Value: f}
	}

	i, err := strconv.ParseInt(tok.Lexeme, 10, 64)
	if err != nil {
		p.addErrorAt(tok, "Integer literal out of range")
		panic(bailout{})
	}
	return &ast.IntLit{Loc: loc, Value: i}
}

func (p *Parser) parseArrayLiteral() ast.Expr {
	arr := &ast.ArrayLit{Loc: ast.Loc(p.previous().Line())}
	if !p.check(lexer.RSBRACE) {
		for {
			arr.Elems = append(arr.Elems, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RSBRACE, "")
	return arr
}

func (p *Parser) parseDictLiteral() ast.Expr {
	dict := &ast.DictLit{Loc: ast.Loc(p.previous().Line())}
	if !p.check(lexer.RBRACE) {
		for {
			key := p.consume(lexer.STR, "Expected string literal as dictionary key")
			p.consume(lexer.COLON, "")
			dict.Keys = append(dict.Keys, key.Literal)
			dict.Values = append(dict.Values, p.parseExpression())
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	p.consume(lexer.RBRACE, "")
	return dict
}

// nextToken advances to the next token, stopping at EOF
func (p *Parser) nextToken() {
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	p.currentToken = p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

// peekType returns the type of the token n positions ahead of the current one
func (p *Parser) peekType(n int) lexer.TokenType {
	if p.current+n >= len(p.tokens) {
		return lexer.EOF
	}
	return p.tokens[p.current+n].Type
}

func (p *Parser) isAtEnd() bool {
	return p.currentToken.Type == lexer.EOF
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.currentToken.Type == t
}

// match advances past the current token if it has one of the given types
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.nextToken()
			return true
		}
	}
	return false
}

// consume expects the current token to be of type t. On mismatch it reports
// msg, or a contextual message when msg is empty, and bails out.
func (p *Parser) consume(t lexer.TokenType, msg string) lexer.Token {
	if p.check(t) {
		tok := p.currentToken
		p.nextToken()
		return tok
	}

	if msg == "" || p.currentToken.Type == lexer.ILLEGAL {
		p.handleTerminalError(t)
	} else {
		p.addError(msg)
	}
	panic(bailout{})
}

// synchronize skips tokens until a likely statement boundary
func (p *Parser) synchronize() {
	p.nextToken()
	for !p.isAtEnd() {
		// stop in front of '}' so the enclosing block can close
		if p.previous().Type == lexer.SEMICOLON || p.check(lexer.RBRACE) {
			return
		}
		switch p.currentToken.Type {
		case lexer.CLASS, lexer.FUNC, lexer.VAR, lexer.IF, lexer.WHILE, lexer.FOR,
			lexer.RETURN, lexer.BREAK, lexer.CONTINUE, lexer.THROW, lexer.TRY:
			return
		}
		if p.isVarDeclStart() {
			return
		}
		p.nextToken()
	}
}
