package builtins

// BuiltinType represents the types every Aize file can name without importing
type BuiltinType string

const (
	Int  BuiltinType = "int"
	Long BuiltinType = "long"
	Void BuiltinType = "void"
	Bool BuiltinType = "bool"

	// Classes provided by the runtime
	Object BuiltinType = "Object"
	List   BuiltinType = "List"
)

// IntBits is the width of int.
const IntBits = 32

// Runtime struct names of the builtin classes
const (
	ObjectStruct = "AizeObject"
	ListStruct   = "AizeList"
	ListNew      = "AizeList_new"
)

// BuiltinTypes contains all valid built-in types
var BuiltinTypes = map[string]bool{
	string(Int):    true,
	string(Long):   true,
	string(Void):   true,
	string(Bool):   true,
	string(Object): true,
	string(List):   true,
}

// IsBuiltinType checks if a type name is a built-in type
func IsBuiltinType(typeName string) bool {
	return BuiltinTypes[typeName]
}
