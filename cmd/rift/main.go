package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Octa-Org/Rift/pkg/driver"
	"github.com/Octa-Org/Rift/pkg/interpreter"
	"github.com/Octa-Org/Rift/pkg/lexer"
	"github.com/Octa-Org/Rift/pkg/parser"
	"github.com/Octa-Org/Rift/pkg/report"
)

const cliToolVersion = "rift-cli 0.1.0-dev"

const (
	exitOK      = 0
	exitUsage   = 1
	exitParse   = 65
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		return runREPL()
	}
	switch args[0] {
	case "--help", "-h":
		printUsage()
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitOK
	case "run":
		return runEntry(args[1:])
	case "deps":
		return runDeps(args[1:])
	default:
		return runEntry(args)
	}
}

func runEntry(args []string) int {
	var path string
	switch len(args) {
	case 0:
		manifestPath, err := driver.FindManifest(".")
		if err != nil {
			fmt.Fprintln(os.Stderr, "rift run requires a script file (rift.yml not found)")
			return exitUsage
		}
		manifest, err := driver.LoadManifest(manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load manifest: %v\n", err)
			return exitUsage
		}
		path = manifest.EntryPath()
	case 1:
		path = args[0]
	default:
		fmt.Fprintf(os.Stderr, "rift run takes at most one script (received %s)\n", strings.Join(args, " "))
		return exitUsage
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return exitUsage
	}
	return runSource(string(src))
}

func runSource(src string) int {
	reporter := report.NewReporter(os.Stderr)

	lx := lexer.New(src)
	tokens, scanErr := lx.Scan()
	if scanErr != nil {
		for _, err := range lx.Errors() {
			reporter.Report(err)
		}
		return exitParse
	}

	program, err := parser.New(tokens, reporter).Parse()
	if err != nil {
		return exitParse
	}

	interp := interpreter.New()
	interp.SetReporter(reporter)
	if _, err := interp.Evaluate(program, false); err != nil {
		return exitRuntime
	}
	return exitOK
}

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "rift deps requires a subcommand (install, update)")
		return exitUsage
	}
	switch args[0] {
	case "install":
		if len(args) > 1 {
			fmt.Fprintf(os.Stderr, "rift deps install does not take arguments (received %s)\n", strings.Join(args[1:], " "))
			return exitUsage
		}
		return runDepsSync(nil, false)
	case "update":
		return runDepsSync(args[1:], true)
	default:
		fmt.Fprintf(os.Stderr, "unknown deps subcommand %q\n", args[0])
		return exitUsage
	}
}

func runDepsSync(targets []string, update bool) int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to determine working directory: %v\n", err)
		return exitUsage
	}
	manifestPath, err := driver.FindManifest(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to locate rift.yml: %v\n", err)
		return exitUsage
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read manifest: %v\n", err)
		return exitUsage
	}
	cacheDir, err := resolveRiftHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve RIFT_HOME: %v\n", err)
		return exitUsage
	}

	lockPath := filepath.Join(filepath.Dir(manifest.Path), driver.LockfileName)
	lock, err := driver.LoadLockfile(lockPath)
	lockCreated := false
	switch {
	case err == nil:
		if lock.Root != manifest.Name {
			fmt.Fprintf(os.Stderr, "lockfile root %q does not match manifest name %q\n", lock.Root, manifest.Name)
			return exitUsage
		}
	case errors.Is(err, os.ErrNotExist):
		lock = driver.NewLockfile(manifest.Name, cliToolVersion)
		lock.Path = lockPath
		lockCreated = true
	default:
		fmt.Fprintf(os.Stderr, "failed to read lockfile: %v\n", err)
		return exitUsage
	}
	lock.Tool = cliToolVersion

	installer := driver.NewInstaller(manifest, cacheDir)
	var changed bool
	var logs []string
	if update {
		changed, logs, err = installer.Update(lock, targets)
	} else {
		changed, logs, err = installer.Install(lock)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve dependencies: %v\n", err)
		return exitUsage
	}
	for _, line := range logs {
		fmt.Fprintln(os.Stdout, line)
	}

	if changed || lockCreated {
		action := "Updated"
		if lockCreated {
			action = "Created"
		}
		if err := driver.WriteLockfile(lock, lockPath); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write lockfile: %v\n", err)
			return exitUsage
		}
		fmt.Fprintf(os.Stdout, "%s %s: %s\n", action, driver.LockfileName, lockPath)
	} else {
		fmt.Fprintf(os.Stdout, "%s already up to date: %s\n", driver.LockfileName, lockPath)
	}
	return exitOK
}

func resolveRiftHome() (string, error) {
	if home := os.Getenv("RIFT_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".rift"), nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  rift                      start the REPL
  rift <script.rf>          run a script
  rift run [script.rf]      run a script (or the manifest entry)
  rift deps install         resolve manifest dependencies
  rift deps update [name]   refetch dependencies
  rift --version            print the tool version`)
}
