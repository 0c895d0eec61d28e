package interpreter

import (
	"strings"

	"github.com/Octa-Org/Rift/pkg/ast"
	"github.com/Octa-Org/Rift/pkg/report"
	"github.com/Octa-Org/Rift/pkg/runtime"
	"github.com/Octa-Org/Rift/pkg/token"
)

func (i *Interpreter) evaluateExpr(node ast.Expr, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return i.evaluateLiteral(n, env)
	case *ast.Grouping:
		return i.evaluateExpr(n.Expr, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Ternary:
		cond, err := i.evaluateExpr(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return i.evaluateExpr(n.Left, env)
		}
		return i.evaluateExpr(n.Right, env)
	case *ast.Assign:
		val, err := i.evaluateExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(n.Name.Lexeme, val); err != nil {
			return nil, report.Runtimef("%s", err.Error())
		}
		return val, nil
	case *ast.Call:
		return i.evaluateCall(n, env)
	default:
		return nil, report.Runtimef("unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateLiteral(lit *ast.Literal, env *runtime.Environment) (runtime.Value, error) {
	tok := lit.Value
	switch tok.Type {
	case token.NIL:
		return runtime.NilValue{}, nil
	case token.TRUE:
		return runtime.BoolValue{Val: true}, nil
	case token.FALSE:
		return runtime.BoolValue{Val: false}, nil
	case token.NUMERICLITERAL:
		switch v := tok.Literal.(type) {
		case int64:
			return runtime.IntValue{Val: v}, nil
		case float64:
			return runtime.FloatValue{Val: v}, nil
		}
		return nil, report.Runtimef("Unknown literal type")
	case token.STRINGLITERAL:
		return runtime.StringValue{Val: tok.Lexeme}, nil
	case token.IDENTIFIER, token.C_IDENTIFIER:
		val, ok := env.Get(tok.Lexeme)
		if !ok {
			return nil, report.Runtimef("Undefined variable '%s'", tok.Lexeme)
		}
		return val, nil
	default:
		return nil, report.Runtimef("Unknown literal type")
	}
}

func (i *Interpreter) evaluateUnary(expr *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpr(expr.Expr, env)
	if err != nil {
		return nil, err
	}
	switch expr.Op.Type {
	case token.MINUS:
		switch v := right.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -v.Val}, nil
		case runtime.FloatValue:
			return runtime.FloatValue{Val: -v.Val}, nil
		}
		return nil, report.Runtimef("Expected a number after '-' operator")
	case token.BANG:
		// `!` tests its operand directly: zero and the empty string negate
		// to true, unlike the general truthiness rule.
		switch v := right.(type) {
		case runtime.BoolValue:
			return runtime.BoolValue{Val: !v.Val}, nil
		case runtime.IntValue:
			return runtime.BoolValue{Val: v.Val == 0}, nil
		case runtime.FloatValue:
			return runtime.BoolValue{Val: v.Val == 0}, nil
		case runtime.StringValue:
			return runtime.BoolValue{Val: v.Val == ""}, nil
		case runtime.NilValue:
			return runtime.BoolValue{Val: true}, nil
		}
		return nil, report.Runtimef("Expected a number or string after '!' operator")
	default:
		return nil, report.Runtimef("Unknown operator for a unary expression")
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	// Short-circuit forms evaluate the right side only when needed.
	switch expr.Op.Type {
	case token.NULLISH_COAL:
		left, err := i.evaluateExpr(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if left.Kind() == runtime.KindNil {
			return i.evaluateExpr(expr.Right, env)
		}
		return left, nil
	case token.LOG_AND:
		left, err := i.evaluateExpr(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if !isTruthy(left) {
			return runtime.BoolValue{Val: false}, nil
		}
		right, err := i.evaluateExpr(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	case token.LOG_OR:
		left, err := i.evaluateExpr(expr.Left, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(left) {
			return runtime.BoolValue{Val: true}, nil
		}
		right, err := i.evaluateExpr(expr.Right, env)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: isTruthy(right)}, nil
	}

	left, err := i.evaluateExpr(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpr(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case token.PLUS:
		return addValues(left, right)
	case token.MINUS, token.STAR, token.SLASH:
		if !runtime.IsNumeric(left) || !runtime.IsNumeric(right) {
			return nil, report.Runtimef("Expected a number for '%s' operator", expr.Op.Lexeme)
		}
		return numericArithmetic(expr.Op.Type, left, right)
	case token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		return orderValues(expr.Op, left, right)
	case token.EQUAL_EQUAL:
		return runtime.BoolValue{Val: valuesEqual(left, right)}, nil
	case token.BANG_EQUAL:
		return runtime.BoolValue{Val: !valuesEqual(left, right)}, nil
	default:
		return nil, report.Runtimef("Unknown operator for a binary expression")
	}
}

// addValues implements `+`: numeric addition, string concatenation, and the
// mixed forms that stringify the numeric side.
func addValues(left, right runtime.Value) (runtime.Value, error) {
	if runtime.IsNumeric(left) && runtime.IsNumeric(right) {
		return numericArithmetic(token.PLUS, left, right)
	}
	ls, lok := left.(runtime.StringValue)
	rs, rok := right.(runtime.StringValue)
	switch {
	case lok && rok:
		return runtime.StringValue{Val: stripQuotes(ls.Val) + stripQuotes(rs.Val)}, nil
	case lok && runtime.IsNumeric(right):
		return runtime.StringValue{Val: stripQuotes(ls.Val) + NumberString(right)}, nil
	case rok && runtime.IsNumeric(left):
		return runtime.StringValue{Val: NumberString(left) + stripQuotes(rs.Val)}, nil
	}
	return nil, report.Runtimef("Expected a number or string for '+' operator")
}

// numericArithmetic dispatches on the operand pair: two ints stay integral,
// any float operand promotes both sides.
func numericArithmetic(op token.Type, left, right runtime.Value) (runtime.Value, error) {
	li, lInt := left.(runtime.IntValue)
	ri, rInt := right.(runtime.IntValue)
	if lInt && rInt {
		switch op {
		case token.PLUS:
			return runtime.IntValue{Val: li.Val + ri.Val}, nil
		case token.MINUS:
			return runtime.IntValue{Val: li.Val - ri.Val}, nil
		case token.STAR:
			return runtime.IntValue{Val: li.Val * ri.Val}, nil
		case token.SLASH:
			if ri.Val == 0 {
				return nil, report.Runtimef("Division by zero")
			}
			return runtime.IntValue{Val: li.Val / ri.Val}, nil
		}
		return nil, report.Runtimef("Unknown arithmetic operator")
	}

	lf, err := asFloat(left)
	if err != nil {
		return nil, err
	}
	rf, err := asFloat(right)
	if err != nil {
		return nil, err
	}
	switch op {
	case token.PLUS:
		return runtime.FloatValue{Val: lf + rf}, nil
	case token.MINUS:
		return runtime.FloatValue{Val: lf - rf}, nil
	case token.STAR:
		return runtime.FloatValue{Val: lf * rf}, nil
	case token.SLASH:
		if rf == 0 {
			return nil, report.Runtimef("Division by zero")
		}
		return runtime.FloatValue{Val: lf / rf}, nil
	}
	return nil, report.Runtimef("Unknown arithmetic operator")
}

// orderValues implements the ordering comparisons: numeric when both sides
// are numeric, lexicographic when both are strings.
func orderValues(op token.Token, left, right runtime.Value) (runtime.Value, error) {
	var cmp int
	switch {
	case runtime.IsNumeric(left) && runtime.IsNumeric(right):
		lf, err := asFloat(left)
		if err != nil {
			return nil, err
		}
		rf, err := asFloat(right)
		if err != nil {
			return nil, err
		}
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	default:
		ls, lok := left.(runtime.StringValue)
		rs, rok := right.(runtime.StringValue)
		if !lok || !rok {
			return nil, report.Runtimef("Expected a number or string for '%s' operator", op.Lexeme)
		}
		cmp = strings.Compare(ls.Val, rs.Val)
	}

	var res bool
	switch op.Type {
	case token.LESS:
		res = cmp < 0
	case token.LESS_EQUAL:
		res = cmp <= 0
	case token.GREATER:
		res = cmp > 0
	case token.GREATER_EQUAL:
		res = cmp >= 0
	}
	return runtime.BoolValue{Val: res}, nil
}

// valuesEqual compares tag and payload; mixed numeric kinds compare by
// numeric value, any other kind mismatch is unequal.
func valuesEqual(left, right runtime.Value) bool {
	if runtime.IsNumeric(left) && runtime.IsNumeric(right) {
		lf, _ := asFloat(left)
		rf, _ := asFloat(right)
		return lf == rf
	}
	switch l := left.(type) {
	case runtime.NilValue:
		_, ok := right.(runtime.NilValue)
		return ok
	case runtime.BoolValue:
		r, ok := right.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := right.(runtime.StringValue)
		return ok && l.Val == r.Val
	case *runtime.FunctionValue:
		r, ok := right.(*runtime.FunctionValue)
		return ok && l == r
	default:
		return false
	}
}

func asFloat(val runtime.Value) (float64, error) {
	switch v := val.(type) {
	case runtime.IntValue:
		return float64(v.Val), nil
	case runtime.FloatValue:
		return v.Val, nil
	default:
		return 0, report.Runtimef("Expected a number, got %s", val.Kind())
	}
}

func (i *Interpreter) evaluateCall(call *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpr(call.Callee, env)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*runtime.FunctionValue)
	if !ok {
		return nil, report.Runtimef("Can only call functions, got %s", callee.Kind())
	}

	args := make([]runtime.Value, 0, len(call.Args))
	for _, argExpr := range call.Args {
		val, err := i.evaluateExpr(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}
	if len(args) != len(fn.Params) {
		return nil, report.Runtimef("Function '%s' expects %d arguments, got %d",
			fn.Name, len(fn.Params), len(args))
	}

	// Parameters bind in a fresh frame on the function's defining scope.
	frame := fn.Closure.Push()
	for idx, param := range fn.Params {
		if err := frame.Define(param.Lexeme, args[idx], false); err != nil {
			return nil, report.Runtimef("%s", err.Error())
		}
	}

	if _, err := i.evaluateBlock(fn.Body, frame); err != nil {
		if ret, ok := err.(returnSignal); ok {
			if ret.value == nil {
				return runtime.NilValue{}, nil
			}
			return ret.value, nil
		}
		return nil, err
	}
	return runtime.NilValue{}, nil
}

// stripQuotes drops one pair of surrounding double quotes if present.
func stripQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
