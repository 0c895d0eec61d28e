package interpreter

import "github.com/Octa-Org/Rift/pkg/token"

// Token shorthands for tests that build trees by hand.

func identTok(name string) token.Token {
	return token.Token{Type: token.IDENTIFIER, Lexeme: name, Line: 1}
}

func intTok(n int64) token.Token {
	return token.Token{Type: token.NUMERICLITERAL, Literal: n, Line: 1}
}

var opTypes = map[string]token.Type{
	"+":  token.PLUS,
	"-":  token.MINUS,
	"*":  token.STAR,
	"/":  token.SLASH,
	"==": token.EQUAL_EQUAL,
	"!=": token.BANG_EQUAL,
	"<":  token.LESS,
	"<=": token.LESS_EQUAL,
	">":  token.GREATER,
	">=": token.GREATER_EQUAL,
	"&&": token.LOG_AND,
	"||": token.LOG_OR,
	"??": token.NULLISH_COAL,
}

func opTok(op string) token.Token {
	return token.Token{Type: opTypes[op], Lexeme: op, Line: 1}
}
