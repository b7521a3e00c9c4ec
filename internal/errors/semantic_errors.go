package errors

import (
	"fmt"
	"strings"

	"aize/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic errors with suggestions
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a builder for an error located at node. The caret
// span covers the node when it sits on one line.
func NewSemanticError(code, message string, node ast.Node) *SemanticErrorBuilder {
	b := &SemanticErrorBuilder{
		err: CompilerError{
			Level:   Error,
			Code:    code,
			Message: message,
			Length:  1,
			Node:    node,
		},
	}
	if node != nil {
		b.err.Position = node.NodePos()
		b.err.EndPosition = node.NodeEndPos()
		b.err.Length = ast.Span(b.err.Position, b.err.EndPosition)
	}
	return b
}

// NewError creates a builder for an error that has a position but no node.
func NewError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// WithLength sets the length of the error span
func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithNote adds a note to the error
func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// NameNotFound reports a lookup that missed every namespace in the chain.
// kind is "name", "type" or "namespace".
func NameNotFound(kind, name string, node ast.Node, candidates []string) CompilerError {
	builder := NewSemanticError(ErrorNameNotFound, fmt.Sprintf("%s '%s' not found", capitalize(kind), name), node)

	similar := findSimilarNames(name, candidates)
	switch len(similar) {
	case 0:
		builder = builder.WithSuggestion(fmt.Sprintf("make sure the %s is declared or imported", kind))
	case 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	default:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	}

	return builder.Build()
}

// AlreadyDefined reports a second definition of name in the same namespace.
func AlreadyDefined(kind, name string, node, previous ast.Node) CompilerError {
	builder := NewSemanticError(ErrorAlreadyDefined, fmt.Sprintf("%s '%s' is already defined", capitalize(kind), name), node)
	if previous != nil {
		pos := previous.NodePos()
		if pos.Line > 0 {
			builder = builder.WithNote(fmt.Sprintf("previous definition at %s:%d:%d", pos.Filename, pos.Line, pos.Column))
		}
	}
	return builder.WithHelp("shadowing is only allowed in nested scopes").Build()
}

// TypeMismatch creates an error for type mismatches
func TypeMismatch(expected, actual string, node ast.Node) CompilerError {
	return NewSemanticError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), node).Build()
}

// NotCallable reports a call whose callee does not have a function type.
func NotCallable(actual string, node ast.Node) CompilerError {
	return NewSemanticError(ErrorTypeMismatch, fmt.Sprintf("cannot call a value of type %s", actual), node).
		WithNote("only functions, methods and constructors can be called").
		Build()
}

// InvalidOperands reports comparison operands outside the integer family.
func InvalidOperands(op, leftType, rightType string, node ast.Node) CompilerError {
	return NewSemanticError(ErrorTypeMismatch,
		fmt.Sprintf("operator '%s' cannot be applied to %s and %s", op, leftType, rightType), node).
		WithNote("comparisons require integer operands").
		Build()
}

// NotAnObject reports attribute access on a value that is not a class instance.
func NotAnObject(attr, actual string, node ast.Node) CompilerError {
	return NewSemanticError(ErrorTypeMismatch,
		fmt.Sprintf("cannot access attribute '%s' on a value of type %s", attr, actual), node).
		Build()
}

func InvalidArguments(functionName string, expected, actual int, node ast.Node) CompilerError {
	message := fmt.Sprintf("'%s' takes %d arguments but %d were given", functionName, expected, actual)
	return NewSemanticError(ErrorInvalidArguments, message, node).Build()
}

func UnknownModule(name string, node ast.Node, available []string) CompilerError {
	builder := NewSemanticError(ErrorUnknownModule, fmt.Sprintf("No standard library called %s", name), node)
	if len(available) > 0 {
		builder = builder.WithNote(fmt.Sprintf("available native modules: %s", strings.Join(available, ", ")))
	}
	return builder.Build()
}

func NoNamespaceFound(name string, node ast.Node, candidates []string) CompilerError {
	builder := NewSemanticError(ErrorNoNamespaceFound, fmt.Sprintf("No namespace found called '%s'", name), node)
	if similar := findSimilarNames(name, candidates); len(similar) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	}
	return builder.Build()
}

func MissingEntry(filename string, node ast.Node) CompilerError {
	return NewSemanticError(ErrorMissingEntry, fmt.Sprintf("%s does not define a main function", filename), node).
		WithHelp("add 'def main() -> int { ... }' to the main file").
		Build()
}

func BlockLimit(limit int, node ast.Node) CompilerError {
	return NewSemanticError(ErrorBlockLimit, fmt.Sprintf("a scope may contain at most %d blocks", limit), node).
		WithSuggestion("move some of the blocks into a separate function").
		Build()
}

func InvalidBase(name, actual string, node ast.Node) CompilerError {
	return NewSemanticError(ErrorInvalidBase, fmt.Sprintf("class '%s' cannot inherit from %s", name, actual), node).
		WithNote("a base must be a class").
		Build()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if candidate != target && levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
