package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aize/internal/builtins"
	"aize/internal/symbols"
)

func TestNewEnvironmentPopulatesRoot(t *testing.T) {
	table := symbols.NewTable()
	env, err := NewEnvironment(table)
	require.NoError(t, err)

	for name := range builtins.BuiltinTypes {
		typ, err := table.Root().LookupType(name, symbols.Here())
		require.NoError(t, err, name)
		builtin, ok := env.Lookup(name)
		require.True(t, ok)
		assert.Same(t, builtin, typ)
	}

	assert.Equal(t, 32, env.Int.BitWidth)
	assert.Nil(t, env.Object.Base)
	assert.Same(t, env.Object, env.List.Base)
	assert.Equal(t, "AizeObject", env.Object.StructName)
	assert.Equal(t, "AizeList", env.List.StructName)
}

func TestListConstructor(t *testing.T) {
	table := symbols.NewTable()
	env, err := NewEnvironment(table)
	require.NoError(t, err)

	ns, err := table.Root().LookupNamespace("List")
	require.NoError(t, err)
	ctor, err := ns.LookupValue("new", symbols.Here())
	require.NoError(t, err)

	fn, ok := ctor.Type.(*symbols.FunctionType)
	require.True(t, ok)
	assert.Empty(t, fn.Params)
	assert.Same(t, env.List, fn.Ret)
	assert.Equal(t, "AizeList_new", symbols.Unique(ctor))
	assert.Same(t, table.Root(), ns.Parent())
	assert.Same(t, ns, env.List.InstanceNS.Parent())
}

func TestEnvironmentsAreIndependent(t *testing.T) {
	a, err := NewEnvironment(symbols.NewTable())
	require.NoError(t, err)
	b, err := NewEnvironment(symbols.NewTable())
	require.NoError(t, err)

	assert.NotSame(t, a.Int, b.Int)
	assert.False(t, a.Bool.IsSubtype(b.Bool))

	_, ok := a.Lookup("Point")
	assert.False(t, ok)
}
