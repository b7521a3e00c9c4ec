package errors

import (
	"fmt"
	"strings"

	"aize/internal/ast"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error ErrorLevel = "error"
	Note  ErrorLevel = "note"
	Help  ErrorLevel = "help"
)

// CompilerError is the single structured error produced by analysis. Every
// name and type failure is reported through it.
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0001
	Message     string       // Primary error message
	Position    ast.Position // Location in source
	EndPosition ast.Position
	Length      int      // Length of the problematic region
	Node        ast.Node // Offending node, when there is one
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message string
}

func (e CompilerError) Error() string {
	if e.Position.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Position.Filename, e.Position.Line, e.Position.Column, e.Message)
	}
	return e.Message
}

// As extracts a CompilerError from err.
func As(err error) (CompilerError, bool) {
	ce, ok := err.(CompilerError)
	if ok {
		return ce, true
	}
	if p, ok := err.(*CompilerError); ok && p != nil {
		return *p, true
	}
	return CompilerError{}, false
}

// ErrorReporter renders errors against the source text of one file
type ErrorReporter struct {
	filename string
	source   string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		source:   source,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders the file header, the message, the offending source
// line and a caret underline spanning the node:
//
//	In main.aize:
//	Analysis Error: name 'y' not found:
//	     3 |     return y;
//	                    ^
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	result.WriteString(fmt.Sprintf("In %s:\n", bold(er.filename)))

	header := "Analysis Error"
	if err.Code != "" {
		header = fmt.Sprintf("Analysis Error[%s]", err.Code)
	}
	result.WriteString(fmt.Sprintf("%s: %s:\n", levelColor(header), err.Message))

	if err.Position.Line > 0 && err.Position.Line <= len(er.lines) {
		lineContent := strings.TrimRight(er.lines[err.Position.Line-1], "\r")
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%6d", err.Position.Line)),
			dim("|"),
			lineContent))

		result.WriteString(strings.Repeat(" ", 9))
		result.WriteString(er.createMarker(err.Position.Column, err.Length, err.Level))
		result.WriteString("\n")
	}

	for i, suggestion := range err.Suggestions {
		suggestionColor := color.New(color.FgCyan).SprintFunc()
		if i == 0 {
			result.WriteString(fmt.Sprintf("%s: %s\n", suggestionColor("help"), suggestion.Message))
		} else {
			result.WriteString(fmt.Sprintf("      %s\n", suggestion.Message))
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s\n", noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s\n", helpColor("help:"), err.HelpText))
	}

	return result.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	markerColor := er.getLevelColor(level)
	return spaces + markerColor(strings.Repeat("^", length))
}
