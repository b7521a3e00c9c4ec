package parser

import (
	"os"
	"path/filepath"
	"testing"

	"aize/internal/ast"
	"aize/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, source string) *ast.File {
	t.Helper()
	file, err := ParseSource("test.aize", source)
	require.NoError(t, err)
	require.NotNil(t, file)
	return file
}

func TestParseImports(t *testing.T) {
	file := parse(t, `
import native aizeio;
import "lib/shapes.aize" as shapes;
from "util.aize" import helper, Counter;
`)
	require.Len(t, file.Tops, 3)

	native, ok := file.Tops[0].(*ast.NativeImport)
	require.True(t, ok)
	assert.Equal(t, "aizeio", native.Name.Value)

	imp, ok := file.Tops[1].(*ast.Import)
	require.True(t, ok)
	assert.Equal(t, "lib/shapes.aize", imp.Path)
	assert.Equal(t, "shapes", imp.Alias.Value)

	from, ok := file.Tops[2].(*ast.FromImport)
	require.True(t, ok)
	assert.Equal(t, "util.aize", from.Path)
	require.Len(t, from.Names, 2)
	assert.Equal(t, "helper", from.Names[0].Value)
	assert.Equal(t, "Counter", from.Names[1].Value)
}

func TestParseClass(t *testing.T) {
	file := parse(t, `
class Point(Shape) {
    x: int;
    y: int;
    def sum(self: Point) -> int {
        return self.x + self.y;
    }
}`)
	require.Len(t, file.Tops, 1)
	cls, ok := file.Tops[0].(*ast.Class)
	require.True(t, ok)

	assert.Equal(t, "Point", cls.Name.Value)
	require.NotNil(t, cls.Base)
	assert.Equal(t, "Shape", cls.Base.Name())
	require.Len(t, cls.Attrs, 2)
	assert.Equal(t, "x", cls.Attrs[0].Name.Value)
	assert.Equal(t, "int", cls.Attrs[1].Type.Name())

	require.Len(t, cls.Methods, 1)
	m := cls.Methods[0]
	assert.Equal(t, "sum", m.Name.Value)
	require.Len(t, m.Params, 1)
	assert.Equal(t, "Point", m.Params[0].Type.Name())
	assert.Equal(t, "int", m.Ret.Name())

	ret := m.Body[0].(*ast.Return)
	bin, ok := ret.Value.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)
	left, ok := bin.Left.(*ast.GetAttr)
	require.True(t, ok)
	assert.Equal(t, "x", left.Attr.Value)
	assert.Equal(t, "self", left.Left.(*ast.GetVar).Name.Value)
}

func TestParseStatements(t *testing.T) {
	file := parse(t, `
def main() -> int {
    var x: int = 1;
    x = x + 2;
    while x < 10 {
        x = x * 2;
    }
    if x == 16 {
        return 1;
    } else if x > 16 {
        return 2;
    } else {
        { return 3; }
    }
    return;
}`)
	fn := file.Tops[0].(*ast.Function)
	require.Len(t, fn.Body, 5)

	decl, ok := fn.Body[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name.Value)
	assert.Equal(t, int64(1), decl.Value.(*ast.Num).Value)

	assign := fn.Body[1].(*ast.ExprStmt)
	set, ok := assign.Expr.(*ast.SetVar)
	require.True(t, ok)
	assert.Equal(t, "x", set.Name.Value)
	assert.IsType(t, &ast.BinaryExpr{}, set.Value)

	loop, ok := fn.Body[2].(*ast.While)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, loop.Cond.(*ast.BinaryExpr).Op)
	assert.Len(t, loop.Body.Stmts, 1)

	cond, ok := fn.Body[3].(*ast.If)
	require.True(t, ok)
	elif, ok := cond.Else.(*ast.If)
	require.True(t, ok)
	last, ok := elif.Else.(*ast.Block)
	require.True(t, ok)
	assert.IsType(t, &ast.Block{}, last.Stmts[0])

	ret := fn.Body[4].(*ast.Return)
	assert.Nil(t, ret.Value)
}

func TestParseIfWithoutElse(t *testing.T) {
	file := parse(t, `def f() { if true { } }`)
	fn := file.Tops[0].(*ast.Function)
	cond := fn.Body[0].(*ast.If)
	assert.Nil(t, cond.Else)
	assert.Nil(t, fn.Ret)
}

func TestParseExpressions(t *testing.T) {
	file := parse(t, `
def f() {
    a - b - c;
    1 + 2 * 3;
    shapes::Point::new(1, 2).sum();
    p.x = false;
}`)
	fn := file.Tops[0].(*ast.Function)

	// left associative
	sub := fn.Body[0].(*ast.ExprStmt).Expr.(*ast.BinaryExpr)
	assert.Equal(t, "((a - b) - c)", sub.String())

	prec := fn.Body[1].(*ast.ExprStmt).Expr.(*ast.BinaryExpr)
	assert.Equal(t, "(1 + (2 * 3))", prec.String())

	outer := fn.Body[2].(*ast.ExprStmt).Expr.(*ast.Call)
	attr := outer.Callee.(*ast.GetAttr)
	assert.Equal(t, "sum", attr.Attr.Value)
	inner := attr.Left.(*ast.Call)
	require.Len(t, inner.Args, 2)
	name := inner.Callee.(*ast.GetNamespaceName)
	assert.Equal(t, "new", name.Attr.Value)
	require.Len(t, name.Namespace.Path, 2)
	assert.Equal(t, "shapes", name.Namespace.Path[0].Value)
	assert.Equal(t, "Point", name.Namespace.Path[1].Value)

	set := fn.Body[3].(*ast.ExprStmt).Expr.(*ast.SetAttr)
	assert.Equal(t, "x", set.Attr.Value)
	assert.Equal(t, false, set.Value.(*ast.BoolLit).Value)
}

func TestParsePositions(t *testing.T) {
	file := parse(t, "def f() -> int {\n    return y;\n}")
	fn := file.Tops[0].(*ast.Function)
	ret := fn.Body[0].(*ast.Return)
	v := ret.Value.(*ast.GetVar)

	assert.Equal(t, "test.aize", v.Pos.Filename)
	assert.Equal(t, 2, v.Pos.Line)
	assert.Equal(t, 12, v.Pos.Column)
	assert.Equal(t, 2, ret.Pos.Line)
	assert.Equal(t, 5, ret.Pos.Column)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := ParseSource("bad.aize", "def f( {")
	require.Error(t, err)

	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorSyntax, ce.Code)
	assert.Equal(t, "bad.aize", ce.Position.Filename)
	assert.Equal(t, 1, ce.Position.Line)
}

func TestParseInvalidAssignment(t *testing.T) {
	_, err := ParseSource("bad.aize", "def f() { f() = 1; }")
	require.Error(t, err)

	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorSyntax, ce.Code)
	assert.Contains(t, ce.Message, "cannot assign")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadProgram(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.aize"), `
import "lib/shapes.aize" as shapes;
from "util.aize" import helper;
def main() -> int { return helper(); }
`)
	writeFile(t, filepath.Join(dir, "util.aize"), `
import "lib/shapes.aize" as shapes;
def helper() -> int { return 1; }
`)
	writeFile(t, filepath.Join(dir, "lib", "shapes.aize"), `
class Point { x: int; }
`)

	program, err := LoadProgram(filepath.Join(dir, "main.aize"))
	require.NoError(t, err)
	require.Len(t, program.Files, 3)

	require.NotNil(t, program.Main)
	assert.True(t, program.Main.IsMain)
	assert.Equal(t, filepath.Join(dir, "main.aize"), program.Main.Path)
	assert.False(t, program.Files[1].IsMain)
	assert.False(t, program.Files[2].IsMain)

	imp := program.Main.Tops[0].(*ast.Import)
	assert.Equal(t, filepath.Join(dir, "lib", "shapes.aize"), imp.ResolvedPath)
	from := program.Main.Tops[1].(*ast.FromImport)
	assert.Equal(t, filepath.Join(dir, "util.aize"), from.ResolvedPath)
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "main.aize")

	loader := NewLoader()
	loader.Overlay[main] = `import "a.aize" as a; def main() -> int { return 0; }`
	loader.Overlay[filepath.Join(dir, "a.aize")] = `def a() {}`

	program, err := loader.Load(main)
	require.NoError(t, err)
	assert.Len(t, program.Files, 2)
}

func TestLoadMissingImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.aize"), `import "missing.aize" as m;`)

	_, err := LoadProgram(filepath.Join(dir, "main.aize"))
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorImportFailed, ce.Code)
	assert.Equal(t, 1, ce.Position.Line)
}
