// Package types builds the builtin environment of a compilation: the
// primitive types and runtime classes visible from every file.
package types

import (
	"fmt"

	"aize/internal/builtins"
	"aize/internal/symbols"
)

// Environment holds the builtin types of one compilation. It is created once
// per analysis and passed to whatever needs a builtin.
type Environment struct {
	Int  *symbols.IntType
	Long *symbols.LongType
	Void *symbols.VoidType
	Bool *symbols.BoolType

	Object *symbols.ClassType
	List   *symbols.ClassType
}

// NewEnvironment creates the builtin types and defines them in the table's
// root namespace. List's static namespace is reachable as List with a
// constructor new: () -> List.
func NewEnvironment(table *symbols.Table) (*Environment, error) {
	env := &Environment{
		Int:  symbols.NewIntType(string(builtins.Int), builtins.IntBits),
		Long: symbols.NewLongType(string(builtins.Long)),
		Void: symbols.NewVoidType(string(builtins.Void)),
		Bool: symbols.NewBoolType(string(builtins.Bool)),
	}

	root := table.Root()

	env.Object = newRuntimeClass(table, string(builtins.Object), builtins.ObjectStruct, nil)
	env.List = newRuntimeClass(table, string(builtins.List), builtins.ListStruct, env.Object)

	listNew := symbols.NewVariable("new", symbols.NewFunctionType(nil, env.List), nil)
	listNew.Linkage = builtins.ListNew
	if err := env.List.StaticNS.DefineValue(listNew); err != nil {
		return nil, err
	}
	env.List.Constructor = listNew

	for _, typ := range []symbols.TypeSymbol{env.Int, env.Long, env.Void, env.Bool, env.Object, env.List} {
		if err := root.DefineType(typ); err != nil {
			return nil, fmt.Errorf("defining builtin %s: %w", typ.Name(), err)
		}
	}
	for _, cls := range []*symbols.ClassType{env.Object, env.List} {
		if err := root.DefineNamespace(cls.StaticNS); err != nil {
			return nil, fmt.Errorf("defining builtin namespace %s: %w", cls.Name(), err)
		}
		if err := cls.StaticNS.DefineNamespace(cls.InstanceNS, symbols.Hidden()); err != nil {
			return nil, err
		}
	}

	return env, nil
}

func newRuntimeClass(table *symbols.Table, name, structName string, base *symbols.ClassType) *symbols.ClassType {
	cls := symbols.NewClassType(name, nil)
	cls.Base = base
	cls.StructName = structName
	cls.StaticNS = table.NewNamespace(name, symbols.ClassNamespace, nil)
	cls.InstanceNS = table.NewNamespace(name, symbols.ObjectNamespace, nil)
	return cls
}

// Lookup returns the builtin type with the given name.
func (e *Environment) Lookup(name string) (symbols.TypeSymbol, bool) {
	switch builtins.BuiltinType(name) {
	case builtins.Int:
		return e.Int, true
	case builtins.Long:
		return e.Long, true
	case builtins.Void:
		return e.Void, true
	case builtins.Bool:
		return e.Bool, true
	case builtins.Object:
		return e.Object, true
	case builtins.List:
		return e.List, true
	}
	return nil, false
}
