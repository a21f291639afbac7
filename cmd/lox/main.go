// Command lox is the Lox interpreter CLI: a REPL when run with no
// arguments, a script runner when given a single file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/keithagy/lox/pkg/diagnostics"
	"github.com/keithagy/lox/pkg/runtime"
)

const historyFile = ".lox_history"

func main() {
	switch len(os.Args) {
	case 1:
		os.Exit(runRepl())
	case 2:
		os.Exit(runFile(os.Args[1]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(64)
	}
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: cannot read %s: %s\n", path, err)
		return 1
	}

	s := runtime.New()
	runErr := s.Run(string(source))
	return exitCodeFor(runErr)
}

func runRepl() int {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	s := runtime.New()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		ln.AppendHistory(line)
		if err := s.Run(line); err != nil {
			reportError(err)
		}
	}

	return 0
}

func reportError(err error) {
	if diagErr, ok := err.(*runtime.DiagnosticError); ok {
		for _, d := range diagErr.Diagnostics {
			fmt.Fprintln(os.Stderr, diagnostics.FormatCompile(d))
		}
		return
	}
	if rtErr, ok := err.(*diagnostics.RuntimeError); ok {
		fmt.Fprintln(os.Stderr, diagnostics.FormatRuntime(rtErr))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

func exitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	if _, ok := err.(*runtime.DiagnosticError); ok {
		reportError(err)
		return 65
	}
	if _, ok := err.(*diagnostics.RuntimeError); ok {
		reportError(err)
		return 70
	}
	reportError(err)
	return 70
}
