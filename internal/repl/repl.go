// Package repl checks Aize declarations interactively, one line at a time.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/parser"
	"aize/internal/semantic"
)

const PROMPT = ">> "

// SessionFile is the path the accumulated declarations are analyzed under.
const SessionFile = "/repl/main.aize"

// Session accumulates top-level declarations and re-analyzes them after
// every accepted input. Input that fails to parse or analyze is discarded.
type Session struct {
	accepted []string
	strict   bool

	// source the last error positions refer to
	failed string
}

func NewSession(strict bool) *Session {
	return &Session{strict: strict}
}

// Eval adds one chunk of declarations and returns the mangled names of what
// it declared.
func (s *Session) Eval(input string) ([]string, error) {
	candidate := append(append([]string{}, s.accepted...), input)
	source := strings.Join(candidate, "\n")
	s.failed = input
	fresh, err := parser.ParseSource(SessionFile, input)
	if err != nil {
		return nil, err
	}
	s.failed = source

	loader := parser.NewLoader()
	loader.Overlay[SessionFile] = source
	program, err := loader.Load(SessionFile)
	if err != nil {
		return nil, err
	}

	before := len(program.Main.Tops)
	first := before - len(fresh.Tops)

	_, err = semantic.NewAnalyzer(semantic.WithStrictTyping(s.strict)).Analyze(program)
	if ce, ok := errors.As(err); ok && ce.Code == errors.ErrorMissingEntry && program.Entry == nil && !declaresEntry(program.Main) {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	s.accepted = candidate
	var names []string
	for _, top := range program.Main.Tops[first:before] {
		switch decl := top.(type) {
		case *ast.Function:
			names = append(names, decl.Name.Value+" => "+decl.Unique)
		case *ast.Class:
			names = append(names, decl.Name.Value+" => "+decl.Unique)
		}
	}
	return names, nil
}

// Source returns every accepted declaration.
func (s *Session) Source() string {
	return strings.Join(s.accepted, "\n")
}

func Start(in io.Reader, out io.Writer, strict bool) {
	scanner := bufio.NewScanner(in)
	session := NewSession(strict)

	for {
		fmt.Fprint(out, PROMPT)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		names, err := session.Eval(line)
		if err != nil {
			if ce, ok := errors.As(err); ok {
				reporter := errors.NewErrorReporter(SessionFile, session.failed)
				fmt.Fprint(out, reporter.FormatError(ce))
			} else {
				fmt.Fprintln(out, err)
			}
			continue
		}
		for _, name := range names {
			fmt.Fprintln(out, name)
		}
	}
}

func declaresEntry(file *ast.File) bool {
	for _, top := range file.Tops {
		if fn, ok := top.(*ast.Function); ok && fn.Name.Value == "main" {
			return true
		}
	}
	return false
}
