package semantic

import (
	"aize/internal/ast"
	"aize/internal/symbols"
	"aize/internal/types"
)

// Info is what analysis hands to code generation: the resolved type and
// target of every expression plus the symbol of every declaration.
type Info struct {
	Table *symbols.Table
	Env   *types.Environment

	// Types records the result type of every analyzed expression.
	Types map[ast.Expr]symbols.TypeSymbol
	// Refs records the symbol a name, attribute or qualified name resolved to.
	Refs map[ast.Expr]symbols.Symbol
	// Namespaces records the namespace each qualified path resolved to.
	Namespaces map[*ast.GetNamespace]*symbols.Namespace
	// Decls maps declarations to their symbols: a ClassType for classes and a
	// VariableSymbol for everything else.
	Decls map[ast.Node]symbols.Symbol

	// Classes lists user classes in declaration order.
	Classes []*symbols.ClassType
	// Entry is the user-defined main function.
	Entry *ast.Function
}

func newInfo(table *symbols.Table, env *types.Environment) *Info {
	return &Info{
		Table:      table,
		Env:        env,
		Types:      make(map[ast.Expr]symbols.TypeSymbol),
		Refs:       make(map[ast.Expr]symbols.Symbol),
		Namespaces: make(map[*ast.GetNamespace]*symbols.Namespace),
		Decls:      make(map[ast.Node]symbols.Symbol),
	}
}

func (i *Info) TypeOf(e ast.Expr) symbols.TypeSymbol {
	return i.Types[e]
}

func (i *Info) RefOf(e ast.Expr) symbols.Symbol {
	return i.Refs[e]
}

// Variable returns the symbol of a function, method, parameter, attribute or
// local variable declaration.
func (i *Info) Variable(decl ast.Node) (*symbols.VariableSymbol, bool) {
	v, ok := i.Decls[decl].(*symbols.VariableSymbol)
	return v, ok
}

// FunctionType returns the signature of a function or method declaration.
func (i *Info) FunctionType(decl ast.Node) (*symbols.FunctionType, bool) {
	v, ok := i.Variable(decl)
	if !ok {
		return nil, false
	}
	ft, ok := v.Type.(*symbols.FunctionType)
	return ft, ok
}

func (i *Info) Class(decl *ast.Class) (*symbols.ClassType, bool) {
	ct, ok := i.Decls[decl].(*symbols.ClassType)
	return ct, ok
}

// Scope returns the namespace opened by a file, function, method, class or
// block declaration.
func (i *Info) Scope(node ast.Node) (*symbols.Namespace, bool) {
	return i.Table.Body(node)
}
