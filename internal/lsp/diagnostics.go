package lsp

import (
	"strings"

	"aize/internal/errors"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertError turns an analysis or parse failure into a diagnostic and
// returns the path of the file it belongs to. Errors without a position are
// attached to the start of fallback.
func ConvertError(err error, fallback string) (string, protocol.Diagnostic) {
	ce, ok := errors.As(err)
	if !ok {
		return fallback, protocol.Diagnostic{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("aize"),
			Message:  err.Error(),
		}
	}

	file := ce.Position.Filename
	if file == "" {
		file = fallback
	}

	line := uint32(max(ce.Position.Line-1, 0))
	start := uint32(max(ce.Position.Column-1, 0))
	length := uint32(max(ce.Length, 1))

	return file, protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: start + length},
		},
		Severity: ptrSeverity(severity(ce.Level)),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString("aize"),
		Message:  message(ce),
	}
}

func severity(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	switch level {
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	case errors.Help:
		return protocol.DiagnosticSeverityHint
	}
	return protocol.DiagnosticSeverityError
}

func message(ce errors.CompilerError) string {
	var b strings.Builder
	b.WriteString(ce.Message)
	for _, s := range ce.Suggestions {
		b.WriteString("\nhelp: " + s.Message)
	}
	for _, n := range ce.Notes {
		b.WriteString("\nnote: " + n)
	}
	if ce.HelpText != "" {
		b.WriteString("\nhelp: " + ce.HelpText)
	}
	return b.String()
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
