// Package symbols holds the declaration registry: every nameable thing in an
// Aize program, the namespaces that contain them and the subtype relation
// between types.
package symbols

import "aize/internal/ast"

// NamespaceID indexes a namespace in its table's arena.
type NamespaceID int

// NoNamespace marks a symbol that has not been defined anywhere yet.
const NoNamespace NamespaceID = -1

// Symbol is anything that can be bound to a name.
type Symbol interface {
	Name() string
	// Namespace returns the namespace the symbol was first defined in, or nil.
	Namespace() *Namespace
	Node() ast.Node
	base() *symbolBase
}

type symbolBase struct {
	name  string
	node  ast.Node
	owner NamespaceID
	table *Table
}

func newBase(name string, node ast.Node) symbolBase {
	return symbolBase{name: name, node: node, owner: NoNamespace}
}

func (s *symbolBase) Name() string      { return s.name }
func (s *symbolBase) Node() ast.Node    { return s.node }
func (s *symbolBase) base() *symbolBase { return s }

func (s *symbolBase) Namespace() *Namespace {
	if s.owner == NoNamespace || s.table == nil {
		return nil
	}
	return s.table.arena[s.owner]
}

// adopt records ns as the owner unless an owner was already set. Later
// definitions of the same symbol elsewhere are aliases.
func (s *symbolBase) adopt(ns *Namespace) {
	if s.owner != NoNamespace {
		return
	}
	s.owner = ns.id
	s.table = ns.table
}

// VariableSymbol is a parameter, local, attribute or function value.
type VariableSymbol struct {
	symbolBase
	Type TypeSymbol

	// Linkage is the fixed symbol name of builtins and natives, which have
	// no declaring node.
	Linkage string
}

func NewVariable(name string, typ TypeSymbol, node ast.Node) *VariableSymbol {
	return &VariableSymbol{symbolBase: newBase(name, node), Type: typ}
}

// Unique returns the mangled name carried by the defining node, if any.
func Unique(sym Symbol) string {
	switch n := sym.Node().(type) {
	case *ast.Function:
		return n.Unique
	case *ast.Method:
		return n.Unique
	case *ast.Class:
		return n.Unique
	case *ast.Attr:
		return n.Unique
	case *ast.Param:
		return n.Unique
	case *ast.VarDecl:
		return n.Unique
	}
	if ct, ok := sym.(*ClassType); ok {
		return ct.StructName
	}
	if v, ok := sym.(*VariableSymbol); ok {
		return v.Linkage
	}
	return ""
}
