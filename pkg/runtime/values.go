// Package runtime holds the tagged value sum and the lexically scoped
// environment the evaluator reads and mutates.
package runtime

import (
	"fmt"

	"github.com/Octa-Org/Rift/pkg/ast"
	"github.com/Octa-Org/Rift/pkg/token"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// FunctionValue owns its body block: the declaration transfers the block into
// the value, so the function outlives its syntactic parent.
type FunctionValue struct {
	Name    string
	Params  []token.Token
	Body    *ast.Block
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// IsNumeric reports whether the value participates in arithmetic.
func IsNumeric(v Value) bool {
	switch v.Kind() {
	case KindInt, KindFloat:
		return true
	default:
		return false
	}
}
