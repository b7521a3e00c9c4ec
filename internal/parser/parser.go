// Package parser turns Aize source text into syntax trees and loads whole
// programs by following imports.
package parser

import (
	"fmt"
	"os"

	"aize/grammar"
	"aize/internal/ast"
	"aize/internal/errors"

	"github.com/alecthomas/participle/v2"
)

func ParseFile(path string) (*ast.File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseSource(path, string(source))
}

// ParseSource parses one file. Syntax errors are returned as
// errors.CompilerError.
func ParseSource(path string, source string) (*ast.File, error) {
	tree, err := grammar.Parse(path, source)
	if err != nil {
		return nil, syntaxError(path, err)
	}

	c := &converter{}
	file := c.file(tree)
	if c.err != nil {
		return nil, c.err
	}
	file.Path = path
	file.Source = source
	return file, nil
}

func syntaxError(path string, err error) error {
	pe, ok := err.(participle.Error)
	if !ok {
		return errors.NewError(errors.ErrorSyntax, err.Error(), ast.Position{Filename: path}).Build()
	}
	pos := pe.Position()
	return errors.NewError(errors.ErrorSyntax, pe.Message(), ast.Position{
		Filename: pos.Filename,
		Offset:   pos.Offset,
		Line:     pos.Line,
		Column:   pos.Column,
	}).Build()
}
