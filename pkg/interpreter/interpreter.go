// Package interpreter walks the Rift syntax tree, producing values and side
// effects. The environment is threaded through every call; `return` unwinds
// through block scopes as an error-shaped signal until the nearest call
// converts it back into a value.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/Octa-Org/Rift/pkg/ast"
	"github.com/Octa-Org/Rift/pkg/report"
	"github.com/Octa-Org/Rift/pkg/runtime"
	"github.com/Octa-Org/Rift/pkg/token"
)

// Interpreter drives evaluation of Rift AST nodes.
type Interpreter struct {
	global   *runtime.Environment
	out      io.Writer
	reporter *report.Reporter
}

// New returns an interpreter with an empty global environment, printing to
// stdout and reporting to stderr.
func New() *Interpreter {
	return &Interpreter{
		global:   runtime.NewEnvironment(nil),
		out:      os.Stdout,
		reporter: report.NewReporter(nil),
	}
}

// SetOutput redirects the print statement's sink.
func (i *Interpreter) SetOutput(w io.Writer) { i.out = w }

// SetReporter redirects runtime diagnostics.
func (i *Interpreter) SetReporter(r *report.Reporter) { i.reporter = r }

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment { return i.global }

// Evaluate executes a program and returns the display form of every
// top-level result. A runtime error stops evaluation, is forwarded to the
// reporter, and is returned alongside the results collected so far. When
// interactive is set, each result is also echoed to the output writer.
func (i *Interpreter) Evaluate(program *ast.Program, interactive bool) ([]string, error) {
	var results []string
	for _, decl := range program.Decls {
		vals, err := i.evaluateDecl(decl, i.global)
		if err != nil {
			if _, ok := err.(returnSignal); ok {
				err = report.Runtimef("return outside function")
			}
			if rte, ok := err.(*report.RuntimeError); ok {
				i.reporter.Runtime(rte)
				return results, rte
			}
			return results, err
		}
		for _, val := range vals {
			display := DisplayString(val)
			results = append(results, display)
			if interactive {
				fmt.Fprintln(i.out, display)
			}
		}
	}
	return results, nil
}

// evaluateDecl returns one value per declaration so a REPL can display the
// result of every top-level form; blocks flatten their contents.
func (i *Interpreter) evaluateDecl(node ast.Decl, env *runtime.Environment) ([]runtime.Value, error) {
	switch n := node.(type) {
	case *ast.DeclStmt:
		val, err := i.evaluateStmt(n.Stmt, env)
		if err != nil {
			return nil, err
		}
		return []runtime.Value{val}, nil
	case *ast.DeclVar:
		var value runtime.Value = runtime.NilValue{}
		if n.Init != nil {
			val, err := i.evaluateExpr(n.Init, env)
			if err != nil {
				return nil, err
			}
			value = val
		}
		isConst := n.Name.Type == token.C_IDENTIFIER
		if err := env.Define(n.Name.Lexeme, value, isConst); err != nil {
			return nil, report.Runtimef("%s", err.Error())
		}
		return []runtime.Value{value}, nil
	case *ast.DeclFunc:
		// The body block moves into the value and outlives the declaration.
		fn := &runtime.FunctionValue{
			Name:    n.Name.Lexeme,
			Params:  n.Params,
			Body:    n.Body,
			Closure: env,
		}
		if err := env.Define(n.Name.Lexeme, fn, false); err != nil {
			return nil, report.Runtimef("Function '%s' already defined", n.Name.Lexeme)
		}
		return []runtime.Value{fn}, nil
	case *ast.Block:
		return i.evaluateBlock(n, env)
	default:
		return nil, report.Runtimef("unsupported declaration type: %s", n.NodeType())
	}
}

// evaluateBlock pushes a scope, evaluates each declaration in order, and
// lets the scope die with the call frame on every exit path, normal or not.
func (i *Interpreter) evaluateBlock(block *ast.Block, env *runtime.Environment) ([]runtime.Value, error) {
	scope := env.Push()
	var vals []runtime.Value
	for _, decl := range block.Decls {
		out, err := i.evaluateDecl(decl, scope)
		if err != nil {
			return nil, err
		}
		vals = append(vals, out...)
	}
	return vals, nil
}

func (i *Interpreter) evaluateStmt(node ast.Stmt, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.StmtExpr:
		return i.evaluateExpr(n.Expr, env)
	case *ast.StmtPrint:
		val, err := i.evaluateExpr(n.Expr, env)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.out, PrintString(val))
		return val, nil
	case *ast.StmtIf:
		return i.evaluateIf(n, env)
	case *ast.StmtReturn:
		val, err := i.evaluateExpr(n.Expr, env)
		if err != nil {
			return nil, err
		}
		return nil, returnSignal{value: val}
	case *ast.For:
		return i.evaluateFor(n, env)
	default:
		return nil, report.Runtimef("unsupported statement type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateIf(stmt *ast.StmtIf, env *runtime.Environment) (runtime.Value, error) {
	cond, err := i.evaluateExpr(stmt.If.Cond, env)
	if err != nil {
		return nil, err
	}
	if isTruthy(cond) {
		return runtime.NilValue{}, i.runArm(stmt.If.Block, stmt.If.Stmt, env)
	}
	for _, arm := range stmt.Elifs {
		cond, err := i.evaluateExpr(arm.Cond, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return runtime.NilValue{}, i.runArm(arm.Block, arm.Stmt, env)
		}
	}
	if stmt.Else != nil {
		return runtime.NilValue{}, i.runArm(stmt.Else.Block, stmt.Else.Stmt, env)
	}
	return runtime.NilValue{}, nil
}

// runArm executes an if arm's block or single statement.
func (i *Interpreter) runArm(block *ast.Block, stmt ast.Decl, env *runtime.Environment) error {
	switch {
	case block != nil:
		_, err := i.evaluateBlock(block, env)
		return err
	case stmt != nil:
		_, err := i.evaluateDecl(stmt, env)
		return err
	default:
		return report.Runtimef("If statement should have a statement or block")
	}
}

func (i *Interpreter) evaluateFor(loop *ast.For, env *runtime.Environment) (runtime.Value, error) {
	// The init declaration lives in a scope private to the loop.
	scope := env.Push()
	if loop.Init != nil {
		if _, err := i.evaluateDecl(loop.Init, scope); err != nil {
			return nil, err
		}
	}
	for {
		cond, err := i.evaluateExpr(loop.Cond, scope)
		if err != nil {
			return nil, err
		}
		if !isTruthy(cond) {
			break
		}
		switch {
		case loop.Block != nil:
			if _, err := i.evaluateBlock(loop.Block, scope); err != nil {
				return nil, err
			}
		case loop.Stmt != nil:
			if _, err := i.evaluateDecl(loop.Stmt, scope); err != nil {
				return nil, err
			}
		default:
			return nil, report.Runtimef("For statement should have a statement or block")
		}
		if loop.Step != nil {
			if _, err := i.evaluateStmt(loop.Step, scope); err != nil {
				return nil, err
			}
		}
	}
	return runtime.NilValue{}, nil
}

// isTruthy: false and nil are falsy, every other value is truthy.
func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.NilValue:
		return false
	default:
		return true
	}
}

// returnSignal is the non-local exit for `return`: an error in shape only,
// distinguishable from runtime errors at every unwinding site.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string { return "return" }
