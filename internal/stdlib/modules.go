package stdlib

import (
	"fmt"
	"sort"

	"aize/internal/builtins"
	"aize/internal/symbols"
)

// ModuleDefinition defines a native module implemented by the runtime
type ModuleDefinition struct {
	Name      string                        // Module name used by `import native`
	Functions map[string]FunctionDefinition // Available functions in this module
}

// FunctionDefinition defines a native function signature
type FunctionDefinition struct {
	Name       string                // Function name as seen from Aize
	Linkage    string                // Symbol name in the runtime library
	Parameters []ParameterDefinition // Function parameters
	ReturnType *TypeRef              // Return type (nil if void)
}

// ParameterDefinition defines a function parameter
type ParameterDefinition struct {
	Name string
	Type *TypeRef
}

// TypeRef names a builtin type
type TypeRef struct {
	Name string
}

func NewTypeRef(name string) *TypeRef {
	return &TypeRef{Name: name}
}

func IntType() *TypeRef {
	return &TypeRef{Name: string(builtins.Int)}
}

// NewFunction creates a function whose runtime symbol equals its name
func NewFunction(name string, returnType *TypeRef, params ...ParameterDefinition) FunctionDefinition {
	return FunctionDefinition{
		Name:       name,
		Linkage:    name,
		Parameters: params,
		ReturnType: returnType,
	}
}

func NewParam(name string, typeRef *TypeRef) ParameterDefinition {
	return ParameterDefinition{Name: name, Type: typeRef}
}

// GetNativeModules returns every native module by name
func GetNativeModules() map[string]*ModuleDefinition {
	return map[string]*ModuleDefinition{
		"aizeio": {
			Name: "aizeio",
			Functions: map[string]FunctionDefinition{
				"test": NewFunction("test", nil),
				"print_int": NewFunction("print_int", nil,
					NewParam("value", IntType()),
					NewParam("base", IntType()),
				),
				"print_space": NewFunction("print_space", nil),
				"get_time":    NewFunction("get_time", IntType()),
			},
		},
	}
}

// IsKnownModule checks if a native module exists
func IsKnownModule(name string) bool {
	_, ok := GetNativeModules()[name]
	return ok
}

// GetModuleDefinition returns the definition of a native module, or nil
func GetModuleDefinition(name string) *ModuleDefinition {
	return GetNativeModules()[name]
}

// ModuleNames returns the sorted names of all native modules
func ModuleNames() []string {
	var names []string
	for name := range GetNativeModules() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FunctionNames returns the module's function names in sorted order
func (m *ModuleDefinition) FunctionNames() []string {
	names := make([]string, 0, len(m.Functions))
	for name := range m.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Namespace creates the module's namespace in table, resolving builtin type
// names through resolve. The namespace is detached; the caller decides where
// to define it.
func (m *ModuleDefinition) Namespace(table *symbols.Table, resolve func(string) (symbols.TypeSymbol, bool)) (*symbols.Namespace, error) {
	ns := table.NewNamespace(m.Name, symbols.NativeNamespace, nil)

	typeOf := func(ref *TypeRef) (symbols.TypeSymbol, error) {
		name := string(builtins.Void)
		if ref != nil {
			name = ref.Name
		}
		typ, ok := resolve(name)
		if !ok {
			return nil, fmt.Errorf("native module %s: unknown type %s", m.Name, name)
		}
		return typ, nil
	}

	for _, name := range m.FunctionNames() {
		fn := m.Functions[name]
		params := make([]symbols.TypeSymbol, len(fn.Parameters))
		for i, p := range fn.Parameters {
			typ, err := typeOf(p.Type)
			if err != nil {
				return nil, err
			}
			params[i] = typ
		}
		ret, err := typeOf(fn.ReturnType)
		if err != nil {
			return nil, err
		}

		sym := symbols.NewVariable(fn.Name, symbols.NewFunctionType(params, ret), nil)
		sym.Linkage = fn.Linkage
		if err := ns.DefineValue(sym); err != nil {
			return nil, err
		}
	}

	return ns, nil
}
