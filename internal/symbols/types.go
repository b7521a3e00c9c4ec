package symbols

import (
	"fmt"
	"slices"
	"strings"

	"aize/internal/ast"
)

// TypeSymbol is anything usable as the type of a value. The set of variants
// is closed to this package.
type TypeSymbol interface {
	Symbol
	// IsSubtype reports whether a value of this type may be used where other
	// is expected.
	IsSubtype(other TypeSymbol) bool
	String() string
	isType()
}

func (*IntType) isType()      {}
func (*LongType) isType()     {}
func (*VoidType) isType()     {}
func (*BoolType) isType()     {}
func (*FunctionType) isType() {}
func (*ClassType) isType()    {}

// IntType is a signed integer of a fixed bit width.
type IntType struct {
	symbolBase
	BitWidth int
}

func NewIntType(name string, bitWidth int) *IntType {
	return &IntType{symbolBase: newBase(name, nil), BitWidth: bitWidth}
}

// IsSubtype holds when other is an integer no wider than t.
func (t *IntType) IsSubtype(other TypeSymbol) bool {
	w, ok := IntegerWidth(other)
	return ok && w <= t.BitWidth
}

func (t *IntType) String() string {
	if t.name != "" {
		return t.name
	}
	return fmt.Sprintf("i%d", t.BitWidth)
}

// LongWidth is the bit width of LongType.
const LongWidth = 64

// LongType is the fixed wide integer.
type LongType struct {
	symbolBase
}

func NewLongType(name string) *LongType {
	return &LongType{symbolBase: newBase(name, nil)}
}

func (t *LongType) IsSubtype(other TypeSymbol) bool {
	w, ok := IntegerWidth(other)
	return ok && w <= LongWidth
}

func (t *LongType) String() string { return t.name }

// IntegerWidth returns the bit width of an integer-family type.
func IntegerWidth(t TypeSymbol) (int, bool) {
	switch t := t.(type) {
	case *IntType:
		return t.BitWidth, true
	case *LongType:
		return LongWidth, true
	}
	return 0, false
}

// IsInteger reports whether t belongs to the integer family.
func IsInteger(t TypeSymbol) bool {
	_, ok := IntegerWidth(t)
	return ok
}

type VoidType struct {
	symbolBase
}

func NewVoidType(name string) *VoidType {
	return &VoidType{symbolBase: newBase(name, nil)}
}

func (t *VoidType) IsSubtype(other TypeSymbol) bool { return TypeSymbol(t) == other }
func (t *VoidType) String() string                  { return t.name }

type BoolType struct {
	symbolBase
}

func NewBoolType(name string) *BoolType {
	return &BoolType{symbolBase: newBase(name, nil)}
}

func (t *BoolType) IsSubtype(other TypeSymbol) bool { return TypeSymbol(t) == other }
func (t *BoolType) String() string                  { return t.name }

// FunctionType is the type of functions, methods, constructors and natives.
type FunctionType struct {
	symbolBase
	Params []TypeSymbol
	Ret    TypeSymbol
}

func NewFunctionType(params []TypeSymbol, ret TypeSymbol) *FunctionType {
	return &FunctionType{symbolBase: newBase("", nil), Params: params, Ret: ret}
}

// IsSubtype checks parameters contravariantly and the return type covariantly.
func (t *FunctionType) IsSubtype(other TypeSymbol) bool {
	o, ok := other.(*FunctionType)
	if !ok {
		return false
	}
	if len(t.Params) != len(o.Params) {
		return false
	}
	for i, p := range t.Params {
		if !o.Params[i].IsSubtype(p) {
			return false
		}
	}
	return t.Ret.IsSubtype(o.Ret)
}

func (t *FunctionType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Ret)
}

// ClassType is a user or builtin class. Its members live in two namespaces:
// StaticNS holds the constructor and is reached through the class name,
// InstanceNS holds attributes and methods and is reached through a value.
type ClassType struct {
	symbolBase

	Base *ClassType

	Attributes []*VariableSymbol
	Methods    map[string]*ast.Method
	// VTable lists method names in declaration order.
	VTable []string

	StaticNS   *Namespace
	InstanceNS *Namespace

	StructName  string
	Constructor *VariableSymbol
}

func NewClassType(name string, node ast.Node) *ClassType {
	return &ClassType{
		symbolBase: newBase(name, node),
		Methods:    make(map[string]*ast.Method),
	}
}

// IsSubtype holds for the class itself and for any of its ancestors.
func (t *ClassType) IsSubtype(other TypeSymbol) bool {
	for c := t; c != nil; c = c.Base {
		if TypeSymbol(c) == other {
			return true
		}
	}
	return false
}

func (t *ClassType) String() string { return t.name }

// Attribute returns the attribute named name declared directly on t.
func (t *ClassType) Attribute(name string) (*VariableSymbol, bool) {
	for _, a := range t.Attributes {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

// AttributeTypes returns the declared attribute types in order.
func (t *ClassType) AttributeTypes() []TypeSymbol {
	out := make([]TypeSymbol, len(t.Attributes))
	for i, a := range t.Attributes {
		out[i] = a.Type
	}
	return out
}

// Slot is one vtable entry: the method a class dispatches to and the class
// that declares it.
type Slot struct {
	Name   string
	Method *ast.Method
	Owner  *ClassType
}

// Slots returns the vtable of t. Inherited slots come first in the order the
// ancestors declare them; a method redefined by t replaces the inherited
// slot in place.
func (t *ClassType) Slots() []Slot {
	var slots []Slot
	if t.Base != nil {
		slots = t.Base.Slots()
	}
	for _, name := range t.VTable {
		slot := Slot{Name: name, Method: t.Methods[name], Owner: t}
		if i := slices.IndexFunc(slots, func(s Slot) bool { return s.Name == name }); i >= 0 {
			slots[i] = slot
		} else {
			slots = append(slots, slot)
		}
	}
	return slots
}
