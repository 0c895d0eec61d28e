package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Octa-Org/Rift/pkg/token"
)

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Line: 3, Phase: "primary", Message: "Expected expression"}
	want := "[line 3] error in primary: Expected expression"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestReporterCountsAndPrints(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	r.Report(&ParseError{
		Line:    2,
		Phase:   "assignment",
		Message: "Undefined variable 'x'",
		Token:   token.Token{Type: token.IDENTIFIER, Lexeme: "x", Line: 2},
	})
	if !r.HadParseError() {
		t.Fatalf("reporter did not record the parse error")
	}
	out := buf.String()
	if !strings.Contains(out, "line 2") || !strings.Contains(out, "Undefined variable 'x'") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, `"x"`) {
		t.Fatalf("offending token missing from %q", out)
	}
}

func TestReporterRuntime(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Runtime(Runtimef("Undefined variable '%s'", "ghost"))
	if !r.HadRuntimeError() {
		t.Fatalf("reporter did not record the runtime error")
	}
	if !strings.Contains(buf.String(), "Undefined variable 'ghost'") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestReporterReset(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Report(&ScanError{Line: 1, Message: "unterminated string"})
	r.Runtime(&RuntimeError{Message: "boom"})
	r.Reset()
	if r.HadParseError() || r.HadRuntimeError() {
		t.Fatalf("Reset did not clear the counters")
	}
}
