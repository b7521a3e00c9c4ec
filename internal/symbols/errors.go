package symbols

import "fmt"

type ErrorKind int

const (
	NameNotFound ErrorKind = iota
	AlreadyDefined
)

func (k ErrorKind) String() string {
	if k == AlreadyDefined {
		return "AlreadyDefined"
	}
	return "NameNotFound"
}

// LookupError is returned by failed lookups and conflicting definitions.
type LookupError struct {
	Kind      ErrorKind
	Axis      Axis
	Name      string
	Namespace *Namespace

	// Existing is the symbol already bound for AlreadyDefined.
	Existing Symbol
	// Candidates are the names visible on the searched axis.
	Candidates []string
}

func (e *LookupError) Error() string {
	if e.Kind == AlreadyDefined {
		return fmt.Sprintf("%s '%s' is already defined", e.Axis, e.Name)
	}
	return fmt.Sprintf("%s '%s' not found", e.Axis, e.Name)
}
