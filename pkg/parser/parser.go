// Package parser turns the lexer's token stream into a Rift syntax tree by
// recursive descent with precedence climbing. Declaration checks that only
// need lexical information (assignment targets must exist, names are unique
// per scope) run at parse time against a scope stack mirroring the blocks
// being parsed.
package parser

import (
	"errors"

	"github.com/Octa-Org/Rift/pkg/ast"
	"github.com/Octa-Org/Rift/pkg/report"
	"github.com/Octa-Org/Rift/pkg/token"
)

// ErrParse is returned by Parse when any declaration failed; the individual
// diagnostics have already gone to the reporter.
var ErrParse = errors.New("parse failed")

// Parser consumes a token stream produced by the lexer.
type Parser struct {
	tokens   []token.Token
	current  int
	reporter *report.Reporter
	scopes   []map[string]bool
	hadError bool
}

// New returns a parser over tokens, reporting diagnostics to reporter
// (stderr when nil).
func New(tokens []token.Token, reporter *report.Reporter) *Parser {
	if reporter == nil {
		reporter = report.NewReporter(nil)
	}
	return &Parser{
		tokens:   tokens,
		reporter: reporter,
		scopes:   []map[string]bool{make(map[string]bool)},
	}
}

// DeclareGlobals seeds the parse-time global scope. The REPL uses this to
// keep declarations from earlier lines visible to later ones.
func (p *Parser) DeclareGlobals(names ...string) {
	for _, name := range names {
		p.scopes[0][name] = true
	}
}

// Parse consumes the whole stream. On error the program is nil; each failed
// declaration was reported and skipped via panic-mode recovery.
func (p *Parser) Parse() (*ast.Program, error) {
	var decls []ast.Decl
	for !p.atEnd() {
		decl, err := p.declaration()
		if err != nil {
			p.hadError = true
			p.reporter.Report(err)
			p.synchronize()
			continue
		}
		decls = append(decls, decl)
	}
	if p.hadError {
		return nil, ErrParse
	}
	return ast.NewProgram(decls), nil
}

// synchronize discards tokens until a statement boundary: just past a
// semicolon, or just before a keyword that can begin a declaration.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.peekPrev(1).Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR,
			token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// Cursor utilities.

func (p *Parser) atEnd() bool { return p.peek().Type == token.EOF }

func (p *Parser) peek() token.Token {
	if p.current >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) peekPrev(k int) token.Token {
	if p.current-k < 0 {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.current-k]
}

func (p *Parser) peekNext() token.Token {
	if p.current+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.current+1]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.atEnd() {
		p.current++
	}
	return tok
}

// prevance rewinds the cursor by one token.
func (p *Parser) prevance() {
	if p.current > 0 {
		p.current--
	}
}

func (p *Parser) check(types ...token.Type) bool {
	cur := p.peek().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

func (p *Parser) match(types ...token.Type) bool {
	if p.check(types...) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t token.Type, phase, message string) (token.Token, error) {
	if p.check(t) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAt(p.peek(), phase, message)
}

func (p *Parser) errorAt(tok token.Token, phase, message string) *report.ParseError {
	return &report.ParseError{Line: tok.Line, Phase: phase, Message: message, Token: tok}
}

// Parse-time scope tracking.

func (p *Parser) beginScope() {
	p.scopes = append(p.scopes, make(map[string]bool))
}

func (p *Parser) endScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) declare(name string) {
	p.scopes[len(p.scopes)-1][name] = true
}

func (p *Parser) declaredInCurrentScope(name string) bool {
	return p.scopes[len(p.scopes)-1][name]
}

func (p *Parser) declaredAnywhere(name string) bool {
	for i := len(p.scopes) - 1; i >= 0; i-- {
		if p.scopes[i][name] {
			return true
		}
	}
	return false
}
