package symbols

import (
	"fmt"

	"aize/internal/ast"
)

// Table owns every namespace of one compilation plus the scope stack used
// while walking the program.
type Table struct {
	arena   []*Namespace
	stack   []*Namespace
	bodies  map[ast.Node]*Namespace
	defined map[ast.Node][]Symbol
}

// NewTable creates a table whose root is an empty builtin namespace. The
// root is current until something is entered.
func NewTable() *Table {
	t := &Table{
		bodies:  make(map[ast.Node]*Namespace),
		defined: make(map[ast.Node][]Symbol),
	}
	root := t.NewNamespace("", BuiltinNamespace, nil)
	t.stack = []*Namespace{root}
	return t
}

// NewNamespace allocates a detached namespace. It gets a parent once it is
// defined inside another namespace.
func (t *Table) NewNamespace(name string, kind NamespaceKind, node ast.Node) *Namespace {
	ns := &Namespace{
		symbolBase: newBase(name, node),
		Kind:       kind,
		id:         NamespaceID(len(t.arena)),
		values:     make(map[string]*VariableSymbol),
		types:      make(map[string]TypeSymbol),
		namespaces: make(map[string]*Namespace),
	}
	ns.table = t
	t.arena = append(t.arena, ns)
	return ns
}

func (t *Table) Root() *Namespace { return t.arena[0] }

func (t *Table) Current() *Namespace { return t.stack[len(t.stack)-1] }

// Enter makes ns current and returns the function that restores the previous
// namespace. Use it as defer t.Enter(ns)().
func (t *Table) Enter(ns *Namespace) func() {
	depth := len(t.stack)
	t.stack = append(t.stack, ns)
	return func() {
		if len(t.stack) != depth+1 || t.stack[depth] != ns {
			panic(fmt.Sprintf("symbols: unbalanced exit from namespace %q", ns.Name()))
		}
		t.stack = t.stack[:depth]
	}
}

// Within runs fn with ns as the current namespace.
func (t *Table) Within(ns *Namespace, fn func() error) error {
	defer t.Enter(ns)()
	return fn()
}

// Depth returns the height of the scope stack, root included.
func (t *Table) Depth() int { return len(t.stack) }

// Body returns the namespace registered as the body of node.
func (t *Table) Body(node ast.Node) (*Namespace, bool) {
	ns, ok := t.bodies[node]
	return ns, ok
}

// Defined returns every symbol defined for node, in definition order.
func (t *Table) Defined(node ast.Node) []Symbol {
	return t.defined[node]
}

func (t *Table) LookupValue(name string, opts ...LookupOption) (*VariableSymbol, error) {
	return t.Current().LookupValue(name, opts...)
}

func (t *Table) LookupType(name string, opts ...LookupOption) (TypeSymbol, error) {
	return t.Current().LookupType(name, opts...)
}

func (t *Table) LookupNamespace(name string, opts ...LookupOption) (*Namespace, error) {
	return t.Current().LookupNamespace(name, opts...)
}

func (t *Table) DefineValue(sym *VariableSymbol, opts ...DefineOption) error {
	return t.Current().DefineValue(sym, opts...)
}

func (t *Table) DefineType(sym TypeSymbol, opts ...DefineOption) error {
	return t.Current().DefineType(sym, opts...)
}

func (t *Table) DefineNamespace(sym *Namespace, opts ...DefineOption) error {
	return t.Current().DefineNamespace(sym, opts...)
}
