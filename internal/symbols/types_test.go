package symbols

import (
	"testing"

	"aize/internal/ast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegerSubtyping(t *testing.T) {
	for _, w := range []int{8, 16, 32, 64} {
		assert.True(t, NewIntType("", w).IsSubtype(NewIntType("", w)), "width %d", w)
	}

	assert.True(t, NewIntType("", 64).IsSubtype(NewIntType("", 32)))
	assert.False(t, NewIntType("", 32).IsSubtype(NewIntType("", 64)))

	long := NewLongType("long")
	assert.True(t, long.IsSubtype(NewIntType("int", 32)))
	assert.True(t, long.IsSubtype(long))
	assert.False(t, NewIntType("int", 32).IsSubtype(long))
	assert.False(t, NewIntType("int", 32).IsSubtype(NewBoolType("bool")))
}

func TestUnitTypesAreIdentityOnly(t *testing.T) {
	void := NewVoidType("void")
	boolean := NewBoolType("bool")

	assert.True(t, void.IsSubtype(void))
	assert.False(t, void.IsSubtype(NewVoidType("void")))
	assert.True(t, boolean.IsSubtype(boolean))
	assert.False(t, boolean.IsSubtype(void))
}

func TestFunctionSubtyping(t *testing.T) {
	i32 := NewIntType("", 32)
	i64 := NewIntType("", 64)

	// parameters contravariant, return covariant
	assert.True(t, NewFunctionType([]TypeSymbol{i32}, i64).IsSubtype(NewFunctionType([]TypeSymbol{i64}, i32)))
	assert.False(t, NewFunctionType([]TypeSymbol{i64}, i64).IsSubtype(NewFunctionType([]TypeSymbol{i32}, i32)))
	assert.False(t, NewFunctionType([]TypeSymbol{i32}, i32).IsSubtype(NewFunctionType([]TypeSymbol{i32}, i64)))

	// the width rule is applied as is: i32 is not a subtype of i64, so the
	// covariant return fails even though the parameters are compatible
	assert.False(t, NewFunctionType([]TypeSymbol{i32}, i32).IsSubtype(NewFunctionType([]TypeSymbol{i64}, i64)))

	// arity must match
	assert.False(t, NewFunctionType(nil, i32).IsSubtype(NewFunctionType([]TypeSymbol{i32}, i32)))
	assert.False(t, NewFunctionType(nil, i32).IsSubtype(i32))
}

func TestClassSubtypingWalksBaseChain(t *testing.T) {
	object := NewClassType("Object", nil)
	shape := NewClassType("Shape", nil)
	shape.Base = object
	point := NewClassType("Point", nil)
	point.Base = shape
	other := NewClassType("Other", nil)
	other.Base = object

	assert.True(t, point.IsSubtype(point))
	assert.True(t, point.IsSubtype(shape))
	assert.True(t, point.IsSubtype(object))
	assert.False(t, shape.IsSubtype(point))
	assert.False(t, point.IsSubtype(other))
}

func TestTypeStrings(t *testing.T) {
	i32 := NewIntType("int", 32)
	fn := NewFunctionType([]TypeSymbol{i32, NewIntType("", 16)}, NewVoidType("void"))

	assert.Equal(t, "(int, i16) -> void", fn.String())
	assert.Equal(t, "Point", NewClassType("Point", nil).String())
}

func TestClassAttributes(t *testing.T) {
	i32 := NewIntType("int", 32)
	point := NewClassType("Point", nil)
	point.Attributes = []*VariableSymbol{NewVariable("x", i32, nil), NewVariable("y", i32, nil)}

	y, ok := point.Attribute("y")
	assert.True(t, ok)
	assert.Equal(t, "y", y.Name())
	_, ok = point.Attribute("z")
	assert.False(t, ok)
	assert.Equal(t, []TypeSymbol{i32, i32}, point.AttributeTypes())
}

func TestSlotsInheritAndOverride(t *testing.T) {
	area := &ast.Method{Name: ast.Ident{Value: "area"}}
	name := &ast.Method{Name: ast.Ident{Value: "name"}}
	squareArea := &ast.Method{Name: ast.Ident{Value: "area"}}
	side := &ast.Method{Name: ast.Ident{Value: "side"}}

	shape := NewClassType("Shape", nil)
	shape.Methods["area"], shape.Methods["name"] = area, name
	shape.VTable = []string{"area", "name"}

	square := NewClassType("Square", nil)
	square.Base = shape
	square.Methods["side"], square.Methods["area"] = side, squareArea
	square.VTable = []string{"side", "area"}

	slots := square.Slots()
	require.Len(t, slots, 3)
	assert.Equal(t, Slot{Name: "area", Method: squareArea, Owner: square}, slots[0])
	assert.Equal(t, Slot{Name: "name", Method: name, Owner: shape}, slots[1])
	assert.Equal(t, Slot{Name: "side", Method: side, Owner: square}, slots[2])

	assert.Len(t, shape.Slots(), 2)
}
