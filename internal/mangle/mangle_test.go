package mangle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePath(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		expected string
	}{
		{"main file", "/proj/main.aize", "F4main"},
		{"sibling", "/proj/point.aize", "F5point"},
		{"subdirectory", "/proj/shapes/geo/point.aize", "D6shapesD3geoF5point"},
		{"parent", "/util.aize", "BF4util"},
		{"parent subdirectory", "/other/lib/util.aize", "BD5otherD3libF4util"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FilePath("/proj/main.aize", tt.file))
		})
	}
}

func TestTopLevelNames(t *testing.T) {
	m := NewMangler("/proj/main.aize")
	m.SetFile("/proj/main.aize")

	assert.Equal(t, "AF4mainF3foo", m.Name(Function, "foo"))
	assert.Equal(t, "AF4mainC5Point", m.Name(Class, "Point"))
}

func TestNestedScopes(t *testing.T) {
	m := NewMangler("/proj/main.aize")
	m.SetFile("/proj/shapes.aize")

	exitClass := m.Enter(Class, "Point")
	assert.Equal(t, "AF6shapesC5PointA1x", m.Name(Attribute, "x"))
	assert.Equal(t, "AF6shapesC5PointS3new", m.Name(Constructor, "new"))

	exitMethod := m.Enter(Method, "sum")
	exitBlock, err := m.Block(3)
	require.NoError(t, err)
	assert.Equal(t, "AF6shapesC5PointM3sumB03V1t", m.Name(Variable, "t"))
	exitBlock()
	exitMethod()
	exitClass()

	assert.Equal(t, 0, m.Depth())
}

func TestNamesAreDeterministicAndDistinct(t *testing.T) {
	m := NewMangler("/proj/main.aize")
	m.SetFile("/proj/main.aize")
	exit := m.Enter(Function, "f")

	first := m.Name(Variable, "x")
	assert.Equal(t, first, m.Name(Variable, "x"))

	seen := map[string]bool{first: true}
	for i := 0; i < 2; i++ {
		exitBlock, err := m.Block(i)
		require.NoError(t, err)
		name := m.Name(Variable, "x")
		assert.False(t, seen[name], "duplicate %s", name)
		seen[name] = true
		exitBlock()
	}
	exit()

	m.SetFile("/proj/other.aize")
	exit = m.Enter(Function, "f")
	assert.False(t, seen[m.Name(Variable, "x")])
	exit()
}

func TestBlockLimit(t *testing.T) {
	m := NewMangler("/proj/main.aize")
	m.SetFile("/proj/main.aize")

	_, err := m.Block(MaxBlocks - 1)
	assert.NoError(t, err)
	m.Pop()

	_, err = m.Block(MaxBlocks)
	assert.ErrorIs(t, err, ErrBlockLimit)
	assert.Equal(t, 0, m.Depth())
}
