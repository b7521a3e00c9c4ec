package semantic

import (
	stderrors "errors"

	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/symbols"
)

// convertLookupError turns a registry failure into a CompilerError located at
// node. kind names what was being looked up or defined.
func (a *Analyzer) convertLookupError(err error, node ast.Node, kind string) error {
	var lerr *symbols.LookupError
	if !stderrors.As(err, &lerr) {
		return err
	}

	switch lerr.Kind {
	case symbols.AlreadyDefined:
		var previous ast.Node
		if lerr.Existing != nil {
			previous = lerr.Existing.Node()
		}
		return errors.AlreadyDefined(kind, lerr.Name, node, previous)
	default:
		if lerr.Axis == symbols.NamespaceAxis {
			return errors.NoNamespaceFound(lerr.Name, node, lerr.Candidates)
		}
		return errors.NameNotFound(kind, lerr.Name, node, lerr.Candidates)
	}
}

// checkAssignable reports a mismatch when strict typing is on and actual
// cannot be used where expected is required.
func (a *Analyzer) checkAssignable(actual, expected symbols.TypeSymbol, node ast.Node) error {
	if !a.strict || actual == nil || expected == nil {
		return nil
	}
	if actual.IsSubtype(expected) {
		return nil
	}
	return errors.TypeMismatch(expected.String(), actual.String(), node)
}
