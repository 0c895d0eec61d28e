package interpreter

import (
	"strconv"

	"github.com/Octa-Org/Rift/pkg/runtime"
)

// DisplayString is the REPL-facing form of a top-level result: "true",
// "false", "null", "undefined", a number, or a string.
func DisplayString(val runtime.Value) string {
	switch v := val.(type) {
	case nil:
		return "undefined"
	case runtime.NilValue:
		return "null"
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.IntValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.FloatValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	case runtime.StringValue:
		return v.Val
	default:
		return "undefined"
	}
}

// PrintString is the print statement's form: like DisplayString but with any
// surrounding quotes stripped from strings.
func PrintString(val runtime.Value) string {
	if s, ok := val.(runtime.StringValue); ok {
		return stripQuotes(s.Val)
	}
	return DisplayString(val)
}

// NumberString stringifies a numeric value for concatenation.
func NumberString(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.IntValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.FloatValue:
		return strconv.FormatFloat(v.Val, 'g', -1, 64)
	default:
		return DisplayString(val)
	}
}
