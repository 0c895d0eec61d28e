package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/Octa-Org/Rift/pkg/interpreter"
	"github.com/Octa-Org/Rift/pkg/lexer"
	"github.com/Octa-Org/Rift/pkg/parser"
	"github.com/Octa-Org/Rift/pkg/report"
)

const (
	historyFile = ".rift_history"
	promptMain  = "rift> "
)

func runREPL() int {
	fmt.Fprintf(os.Stdout, "%s\nCtrl+C cancels input, Ctrl+D exits.\n", cliToolVersion)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFile)
		if f, err := os.Open(historyPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	reporter := report.NewReporter(os.Stderr)
	interp := interpreter.New()
	interp.SetReporter(reporter)

	for {
		src, err := line.Prompt(promptMain)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(os.Stdout)
				break
			}
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			break
		}
		if src == "" {
			continue
		}
		line.AppendHistory(src)
		evalLine(src, interp, reporter)
		reporter.Reset()
	}

	if historyPath != "" {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return exitOK
}

// evalLine runs one REPL line against the persistent interpreter. Earlier
// declarations stay visible to the parser's declared-name checks by seeding
// the parse-time globals from the runtime environment.
func evalLine(src string, interp *interpreter.Interpreter, reporter *report.Reporter) {
	lx := lexer.New(src)
	tokens, scanErr := lx.Scan()
	if scanErr != nil {
		for _, err := range lx.Errors() {
			reporter.Report(err)
		}
		return
	}

	p := parser.New(tokens, reporter)
	p.DeclareGlobals(interp.GlobalEnvironment().Keys()...)
	program, err := p.Parse()
	if err != nil {
		return
	}

	// Evaluate echoes each top-level result; errors were already reported.
	interp.Evaluate(program, true)
}
