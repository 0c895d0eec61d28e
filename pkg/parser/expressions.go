package parser

import (
	"fmt"

	"github.com/Octa-Org/Rift/pkg/ast"
	"github.com/Octa-Org/Rift/pkg/token"
)

// expression := assignment
func (p *Parser) expression() (ast.Expr, error) {
	return p.assignment()
}

// assignment := IDENT '=' assignment | ternary
//
// An assignment target must already be declared; the binding itself happens
// in the evaluator.
func (p *Parser) assignment() (ast.Expr, error) {
	if p.match(token.IDENTIFIER, token.C_IDENTIFIER) {
		if p.check(token.EQUAL) {
			idt := p.peekPrev(1)
			p.advance() // '='
			value, err := p.assignment()
			if err != nil {
				return nil, err
			}
			if !p.declaredAnywhere(idt.Lexeme) {
				return nil, p.errorAt(idt, "assignment",
					fmt.Sprintf("Undefined variable '%s'", idt.Lexeme))
			}
			return ast.NewAssign(idt, value), nil
		}
		// Not an assignment after all; rewind and parse the identifier as an
		// ordinary operand.
		p.prevance()
	}
	return p.ternary()
}

// ternary := nullish ('?' expression ':' expression)?
func (p *Parser) ternary() (ast.Expr, error) {
	cond, err := p.nullish()
	if err != nil {
		return nil, err
	}
	if !p.match(token.QUESTION) {
		return cond, nil
	}
	left, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON, "ternary", "Expected ':' in ternary expression"); err != nil {
		return nil, err
	}
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	return ast.NewTernary(cond, left, right), nil
}

// nullish := logic_or ('??' logic_or)*
func (p *Parser) nullish() (ast.Expr, error) {
	return p.binaryLevel(p.logicOr, token.NULLISH_COAL)
}

// logic_or := logic_and ('||' logic_and)*
func (p *Parser) logicOr() (ast.Expr, error) {
	return p.binaryLevel(p.logicAnd, token.LOG_OR)
}

// logic_and := equality ('&&' equality)*
func (p *Parser) logicAnd() (ast.Expr, error) {
	return p.binaryLevel(p.equality, token.LOG_AND)
}

// equality := comparison (('=='|'!=') comparison)*
func (p *Parser) equality() (ast.Expr, error) {
	return p.binaryLevel(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

// comparison := term (('<'|'<='|'>'|'>=') term)*
func (p *Parser) comparison() (ast.Expr, error) {
	return p.binaryLevel(p.term, token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL)
}

// term := factor (('+'|'-') factor)*
func (p *Parser) term() (ast.Expr, error) {
	return p.binaryLevel(p.factor, token.PLUS, token.MINUS)
}

// factor := unary (('*'|'/') unary)*
func (p *Parser) factor() (ast.Expr, error) {
	return p.binaryLevel(p.unary, token.STAR, token.SLASH)
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() (ast.Expr, error), ops ...token.Type) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.peekPrev(1)
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinary(expr, op, right)
	}
	return expr, nil
}

// unary := ('!'|'-') unary | call
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.peekPrev(1)
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnary(op, right), nil
	}
	return p.call()
}

// call := primary ('(' args? ')')*
func (p *Parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.LEFT_PAREN) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(token.RIGHT_PAREN, "call", "Expected ')' after arguments")
	if err != nil {
		return nil, err
	}
	return ast.NewCall(callee, paren, args), nil
}

// primary := NUMBER | STRING | IDENT | 'true' | 'false' | 'nil'
//          | '(' expression ')'
func (p *Parser) primary() (ast.Expr, error) {
	switch {
	case p.match(token.FALSE, token.TRUE, token.NIL, token.NUMERICLITERAL,
		token.STRINGLITERAL, token.IDENTIFIER, token.C_IDENTIFIER):
		return ast.NewLiteral(p.peekPrev(1)), nil
	case p.match(token.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHT_PAREN, "grouping", "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return ast.NewGrouping(expr), nil
	}
	return nil, p.errorAt(p.peek(), "primary", "Expected expression")
}
