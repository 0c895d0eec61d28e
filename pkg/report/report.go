// Package report is the diagnostic sink for the scanner, parser, and
// evaluator. It formats errors for humans on stderr and carries the error
// types the rest of the interpreter raises.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/Octa-Org/Rift/pkg/token"
)

// ParseError is raised by the parser when the token stream does not match
// the grammar, or when a parse-time declaration check fails.
type ParseError struct {
	Line    int
	Phase   string
	Message string
	Token   token.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] error in %s: %s", e.Line, e.Phase, e.Message)
}

// ScanError is raised by the lexer on malformed source text.
type ScanError struct {
	Line    int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] scan error: %s", e.Line, e.Message)
}

// RuntimeError is raised during evaluation: undefined variables, operator
// type mismatches, redefined functions, arity mismatches.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Runtimef builds a RuntimeError from a format string.
func Runtimef(format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}

// Reporter writes diagnostics to a sink and counts what it has seen, so a
// driver can decide on an exit code after a run.
type Reporter struct {
	out           io.Writer
	parseErrors   int
	runtimeErrors int

	errColor   *color.Color
	phaseColor *color.Color
}

// NewReporter returns a reporter writing to out; nil means stderr.
func NewReporter(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stderr
	}
	return &Reporter{
		out:        out,
		errColor:   color.New(color.FgRed, color.Bold),
		phaseColor: color.New(color.FgYellow),
	}
}

// Report records and prints a parse or scan diagnostic.
func (r *Reporter) Report(err error) {
	switch e := err.(type) {
	case *ParseError:
		r.parseErrors++
		r.errColor.Fprint(r.out, "error")
		fmt.Fprintf(r.out, " [line %d] in ", e.Line)
		r.phaseColor.Fprint(r.out, e.Phase)
		fmt.Fprintf(r.out, ": %s", e.Message)
		if e.Token.Lexeme != "" {
			fmt.Fprintf(r.out, " (at %q)", e.Token.Lexeme)
		}
		fmt.Fprintln(r.out)
	case *ScanError:
		r.parseErrors++
		r.errColor.Fprint(r.out, "error")
		fmt.Fprintf(r.out, " [line %d]: %s\n", e.Line, e.Message)
	default:
		r.parseErrors++
		r.errColor.Fprint(r.out, "error")
		fmt.Fprintf(r.out, ": %v\n", err)
	}
}

// Runtime records and prints a runtime diagnostic.
func (r *Reporter) Runtime(err *RuntimeError) {
	r.runtimeErrors++
	r.errColor.Fprint(r.out, "runtime error")
	fmt.Fprintf(r.out, ": %s\n", err.Message)
}

// HadParseError reports whether any scan or parse diagnostics were emitted.
func (r *Reporter) HadParseError() bool { return r.parseErrors > 0 }

// HadRuntimeError reports whether any runtime diagnostics were emitted.
func (r *Reporter) HadRuntimeError() bool { return r.runtimeErrors > 0 }

// Reset clears the error counters between REPL lines.
func (r *Reporter) Reset() {
	r.parseErrors = 0
	r.runtimeErrors = 0
}
