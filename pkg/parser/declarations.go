package parser

import (
	"fmt"

	"github.com/Octa-Org/Rift/pkg/ast"
	"github.com/Octa-Org/Rift/pkg/token"
)

// declaration := 'var' var-decl | 'fun' func-decl | block | stmt-decl
func (p *Parser) declaration() (ast.Decl, error) {
	switch {
	case p.match(token.VAR):
		return p.declarationVariable()
	case p.match(token.FUN):
		return p.declarationFunction()
	case p.match(token.LEFT_BRACE):
		return p.block(nil)
	default:
		return p.declarationStatement()
	}
}

// var-decl := IDENT ('=' expression)? ';'
func (p *Parser) declarationVariable() (ast.Decl, error) {
	if !p.match(token.IDENTIFIER, token.C_IDENTIFIER) {
		return nil, p.errorAt(p.peek(), "declaration_variable", "Expected variable name")
	}
	idt := p.peekPrev(1)
	if p.declaredInCurrentScope(idt.Lexeme) {
		return nil, p.errorAt(idt, "declaration_variable",
			fmt.Sprintf("Variable '%s' already declared", idt.Lexeme))
	}

	var init ast.Expr
	if p.match(token.EQUAL) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		init = expr
	}
	if _, err := p.consume(token.SEMICOLON, "declaration_variable", "Expected ';' after variable assignment"); err != nil {
		return nil, err
	}
	p.declare(idt.Lexeme)
	return ast.NewDeclVar(idt, init), nil
}

// func-decl := IDENT '(' params? ')' block
func (p *Parser) declarationFunction() (ast.Decl, error) {
	name, err := p.consume(token.IDENTIFIER, "declaration_function", "Expected function name")
	if err != nil {
		return nil, err
	}
	if p.declaredInCurrentScope(name.Lexeme) {
		return nil, p.errorAt(name, "declaration_function",
			fmt.Sprintf("Function '%s' already declared", name.Lexeme))
	}
	p.declare(name.Lexeme)

	if _, err := p.consume(token.LEFT_PAREN, "declaration_function", "Expected '(' after function name"); err != nil {
		return nil, err
	}
	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			param, err := p.consume(token.IDENTIFIER, "declaration_function", "Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RIGHT_PAREN, "declaration_function", "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.LEFT_BRACE, "declaration_function", "Expected '{' before function body"); err != nil {
		return nil, err
	}

	seed := make([]string, 0, len(params))
	for _, param := range params {
		seed = append(seed, param.Lexeme)
	}
	body, err := p.block(seed)
	if err != nil {
		return nil, err
	}
	return ast.NewDeclFunc(name, params, body), nil
}

// stmt-decl := print | if | for | while | return | expr-stmt
func (p *Parser) declarationStatement() (ast.Decl, error) {
	var stmt ast.Stmt
	var err error
	switch {
	case p.match(token.PRINT):
		stmt, err = p.statementPrint()
	case p.match(token.IF):
		stmt, err = p.statementIf()
	case p.match(token.FOR):
		stmt, err = p.statementFor()
	case p.match(token.WHILE):
		stmt, err = p.statementWhile()
	case p.match(token.RETURN):
		stmt, err = p.statementReturn()
	default:
		stmt, err = p.statementExpression()
	}
	if err != nil {
		return nil, err
	}
	return ast.NewDeclStmt(stmt), nil
}

// expr-stmt := expression ';'
func (p *Parser) statementExpression() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "statement_expression", "Expected ';' after expression"); err != nil {
		return nil, err
	}
	return ast.NewStmtExpr(expr), nil
}

// print-stmt := 'print' '(' expression ')' ';'
func (p *Parser) statementPrint() (ast.Stmt, error) {
	if _, err := p.consume(token.LEFT_PAREN, "statement_print", "Expected '(' after print"); err != nil {
		return nil, err
	}
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "statement_print", "Expected ')' after print"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "statement_print", "Expected ';' after print statement"); err != nil {
		return nil, err
	}
	return ast.NewStmtPrint(expr), nil
}

// if := 'if' '(' expression ')' body ('elif' ...)* ('else' body)?
func (p *Parser) statementIf() (ast.Stmt, error) {
	ifArm, err := p.ifArm()
	if err != nil {
		return nil, err
	}
	var elifs []ast.IfArm
	for p.match(token.ELIF) {
		arm, err := p.ifArm()
		if err != nil {
			return nil, err
		}
		elifs = append(elifs, arm)
	}
	var elseArm *ast.ElseArm
	if p.match(token.ELSE) {
		blk, stmt, err := p.armBody()
		if err != nil {
			return nil, err
		}
		elseArm = &ast.ElseArm{Block: blk, Stmt: stmt}
	}
	return ast.NewStmtIf(ifArm, elifs, elseArm), nil
}

func (p *Parser) ifArm() (ast.IfArm, error) {
	if _, err := p.consume(token.LEFT_PAREN, "statement_if", "Expected '(' after condition keyword"); err != nil {
		return ast.IfArm{}, err
	}
	cond, err := p.expression()
	if err != nil {
		return ast.IfArm{}, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "statement_if", "Expected ')' after condition"); err != nil {
		return ast.IfArm{}, err
	}
	blk, stmt, err := p.armBody()
	if err != nil {
		return ast.IfArm{}, err
	}
	return ast.IfArm{Cond: cond, Block: blk, Stmt: stmt}, nil
}

// armBody parses either a braced block or a single declaration.
func (p *Parser) armBody() (*ast.Block, ast.Decl, error) {
	if p.match(token.LEFT_BRACE) {
		blk, err := p.block(nil)
		if err != nil {
			return nil, nil, err
		}
		return blk, nil, nil
	}
	stmt, err := p.declaration()
	if err != nil {
		return nil, nil, err
	}
	return nil, stmt, nil
}

// for := 'for' '(' (var-decl|expr-stmt|';') expression ';' step? ')' body
func (p *Parser) statementFor() (ast.Stmt, error) {
	if _, err := p.consume(token.LEFT_PAREN, "statement_for", "Expected '(' after for"); err != nil {
		return nil, err
	}

	// The loop variable scopes to the loop, not the surrounding block.
	p.beginScope()
	defer p.endScope()

	var init ast.Decl
	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		decl, err := p.declarationVariable()
		if err != nil {
			return nil, err
		}
		init = decl
	default:
		stmt, err := p.statementExpression()
		if err != nil {
			return nil, err
		}
		init = ast.NewDeclStmt(stmt)
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "statement_for", "Expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var step ast.Stmt
	if !p.check(token.RIGHT_PAREN) {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		step = ast.NewStmtExpr(expr)
	}
	if _, err := p.consume(token.RIGHT_PAREN, "statement_for", "Expected ')' after for clauses"); err != nil {
		return nil, err
	}

	blk, stmt, err := p.armBody()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(init, cond, step, blk, stmt), nil
}

// while := 'while' '(' expression ')' body — sugar for a step-less for.
func (p *Parser) statementWhile() (ast.Stmt, error) {
	if _, err := p.consume(token.LEFT_PAREN, "statement_while", "Expected '(' after while"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.RIGHT_PAREN, "statement_while", "Expected ')' after condition"); err != nil {
		return nil, err
	}
	blk, stmt, err := p.armBody()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(nil, cond, nil, blk, stmt), nil
}

// return := 'return' expression ';'
func (p *Parser) statementReturn() (ast.Stmt, error) {
	keyword := p.peekPrev(1)
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "statement_return", "Expected ';' after return value"); err != nil {
		return nil, err
	}
	return ast.NewStmtReturn(keyword, expr), nil
}

// block := '{' declaration* '}' — the opening brace is already consumed.
// seed names (function parameters) are declared into the new scope.
func (p *Parser) block(seed []string) (*ast.Block, error) {
	p.beginScope()
	defer p.endScope()
	for _, name := range seed {
		p.declare(name)
	}

	var decls []ast.Decl
	for !p.atEnd() && !p.check(token.RIGHT_BRACE) {
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	if !p.match(token.RIGHT_BRACE) {
		return nil, p.errorAt(p.peek(), "statement_block", "Expected '}' after block")
	}
	return ast.NewBlock(decls), nil
}
