package semantic

import (
	"path/filepath"
	"strings"
	"testing"

	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/parser"
	"aize/internal/symbols"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const projectDir = "/proj"

// load builds a program from in-memory files keyed by their path relative to
// the project directory. main.aize is the entry file.
func load(t *testing.T, files map[string]string) *ast.Program {
	t.Helper()
	loader := parser.NewLoader()
	for name, source := range files {
		loader.Overlay[filepath.Join(projectDir, name)] = source
	}
	program, err := loader.Load(filepath.Join(projectDir, "main.aize"))
	require.NoError(t, err)
	return program
}

func analyze(t *testing.T, files map[string]string, opts ...Option) (*ast.Program, *Info) {
	t.Helper()
	program := load(t, files)
	info, err := NewAnalyzer(opts...).Analyze(program)
	require.NoError(t, err)
	return program, info
}

func analyzeErr(t *testing.T, files map[string]string, opts ...Option) errors.CompilerError {
	t.Helper()
	program := load(t, files)
	_, err := NewAnalyzer(opts...).Analyze(program)
	require.Error(t, err)
	ce, ok := errors.As(err)
	require.True(t, ok, "expected a compiler error, got %v", err)
	return ce
}

func function(file *ast.File, name string) *ast.Function {
	for _, top := range file.Tops {
		if fn, ok := top.(*ast.Function); ok && fn.Name.Value == name && !fn.Synthesized {
			return fn
		}
	}
	return nil
}

func class(file *ast.File, name string) *ast.Class {
	for _, top := range file.Tops {
		if cls, ok := top.(*ast.Class); ok && cls.Name.Value == name {
			return cls
		}
	}
	return nil
}

func TestConstructorAcrossFiles(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
import "shapes.aize" as shapes;
def main() -> int {
    var p: shapes::Point = shapes::Point::new(1, 2);
    return p.x;
}`,
		"shapes.aize": `class Point { x: int; y: int; }`,
	})

	shapes := program.Files[1]
	cls := class(shapes, "Point")
	require.NotNil(t, cls)
	assert.Equal(t, "AF6shapesC5Point", cls.Unique)

	point, ok := info.Class(cls)
	require.True(t, ok)
	assert.Same(t, info.Env.Object, point.Base)
	require.Len(t, point.Attributes, 2)
	assert.Equal(t, "AF6shapesC5PointA1x", cls.Attrs[0].Unique)
	require.NotNil(t, point.Constructor)
	assert.Equal(t, "AF6shapesC5PointS3new", point.Constructor.Linkage)

	decl := function(program.Main, "main").Body[0].(*ast.VarDecl)
	call := decl.Value.(*ast.Call)
	assert.Same(t, point, info.TypeOf(call))
	assert.False(t, call.IsMethodCall)

	ctor, ok := info.TypeOf(call.Callee).(*symbols.FunctionType)
	require.True(t, ok)
	require.Len(t, ctor.Params, 2)
	assert.Same(t, info.Env.Int, ctor.Params[0])
	assert.Same(t, info.Env.Int, ctor.Params[1])
	assert.Same(t, point, ctor.Ret)
	assert.Same(t, point.Constructor, info.RefOf(call.Callee))

	v, ok := info.Variable(decl)
	require.True(t, ok)
	assert.Same(t, point, v.Type)
	assert.Equal(t, "AF4mainF4mainV1p", decl.Unique)
}

func TestNameNotFound(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": "def main() -> int {\n    return y;\n}",
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
	assert.Equal(t, "Name 'y' not found", ce.Message)
	assert.Equal(t, 2, ce.Position.Line)
	assert.Equal(t, 12, ce.Position.Column)
	assert.Equal(t, filepath.Join(projectDir, "main.aize"), ce.Position.Filename)
}

func TestNameNotFoundSuggestion(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `
def counter() -> int { return 1; }
def main() -> int { return countr(); }`,
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
	require.NotEmpty(t, ce.Suggestions)
	assert.Contains(t, ce.Suggestions[0].Message, "counter")
}

func TestAlreadyDefined(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": "def foo() {}\ndef foo() {}\ndef main() -> int { return 0; }",
	})
	assert.Equal(t, errors.ErrorAlreadyDefined, ce.Code)
	assert.Contains(t, ce.Message, "'foo'")
	assert.Equal(t, 2, ce.Position.Line)
	require.NotEmpty(t, ce.Notes)
	assert.Contains(t, ce.Notes[0], ":1:1")
}

func TestShadowingInNestedBlock(t *testing.T) {
	_, _ = analyze(t, map[string]string{
		"main.aize": `
def main() -> int {
    var x: int = 1;
    { var x: int = 2; }
    return x;
}`,
	})

	ce := analyzeErr(t, map[string]string{
		"main.aize": `
def main() -> int {
    var x: int = 1;
    var x: int = 2;
    return x;
}`,
	})
	assert.Equal(t, errors.ErrorAlreadyDefined, ce.Code)
}

func TestBlockIndices(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
def main() -> int {
    { var a: int = 1; }
    {
        { var b: int = 2; }
    }
    return 0;
}`,
	})

	main := function(program.Main, "main")
	first := main.Body[0].(*ast.Block)
	second := main.Body[1].(*ast.Block)
	nested := second.Stmts[0].(*ast.Block)

	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, 0, nested.Index)

	assert.Equal(t, "AF4mainF4mainB00V1a", first.Stmts[0].(*ast.VarDecl).Unique)
	assert.Equal(t, "AF4mainF4mainB01B00V1b", nested.Stmts[0].(*ast.VarDecl).Unique)

	ns, ok := info.Scope(nested)
	require.True(t, ok)
	assert.Equal(t, symbols.BlockNamespace, ns.Kind)
	outer, ok := info.Scope(second)
	require.True(t, ok)
	assert.Same(t, outer, ns.Parent())
}

func TestBlockLimit(t *testing.T) {
	body := strings.Repeat("    {}\n", 101)
	ce := analyzeErr(t, map[string]string{
		"main.aize": "def main() -> int {\n" + body + "    return 0;\n}",
	})
	assert.Equal(t, errors.ErrorBlockLimit, ce.Code)
	assert.Equal(t, 102, ce.Position.Line)
}

func TestMethodCallTemporaries(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
class Counter {
    n: int;
    def get(self: Counter) -> int { return self.n; }
}
def main() -> int {
    var c: Counter = Counter::new(1);
    var x: int = c.get() + c.get();
    c.get();
    return x;
}`,
	})

	cls := class(program.Main, "Counter")
	method := cls.Methods[0]
	assert.Equal(t, "AF4mainC7CounterM3get", method.Unique)
	assert.Equal(t, "AF4mainC7CounterM3getV4self", method.Params[0].Unique)
	assert.Equal(t, 0, method.TempCount)

	counter, _ := info.Class(cls)
	assert.Equal(t, []string{"get"}, counter.VTable)
	assert.Same(t, method, counter.Methods["get"])

	main := function(program.Main, "main")
	assert.Equal(t, 2, main.TempCount)

	sum := main.Body[1].(*ast.VarDecl).Value.(*ast.BinaryExpr)
	left := sum.Left.(*ast.Call)
	right := sum.Right.(*ast.Call)
	assert.True(t, left.IsMethodCall)
	assert.True(t, right.IsMethodCall)
	assert.Equal(t, 0, left.TempIndex)
	assert.Equal(t, 1, right.TempIndex)
	assert.Same(t, info.Env.Int, info.TypeOf(left))

	single := main.Body[2].(*ast.ExprStmt).Expr.(*ast.Call)
	assert.True(t, single.IsMethodCall)
	assert.Equal(t, 0, single.TempIndex)
}

func TestParameterMangling(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
def add(a: int, b: int) -> int { return a + b; }
def main() -> int { return add(1, 2); }`,
	})

	add := function(program.Main, "add")
	assert.Equal(t, "AF4mainF3add", add.Unique)
	assert.Equal(t, "AF4mainF3addV1a", add.Params[0].Unique)
	assert.Equal(t, "AF4mainF3addV1b", add.Params[1].Unique)

	ft, ok := info.FunctionType(add)
	require.True(t, ok)
	assert.Equal(t, "(int, int) -> int", ft.String())

	ns, ok := info.Scope(add)
	require.True(t, ok)
	assert.Equal(t, symbols.FunctionNamespace, ns.Kind)
	fileNS, _ := info.Scope(program.Main)
	assert.Same(t, fileNS, ns.Parent())
}

func TestEntrySynthesis(t *testing.T) {
	files := map[string]string{
		"main.aize": `def main() -> int { return 0; }`,
	}
	program := load(t, files)
	analyzer := NewAnalyzer()

	info, err := analyzer.Analyze(program)
	require.NoError(t, err)

	user := function(program.Main, "main")
	assert.Same(t, user, info.Entry)
	assert.Equal(t, "AF4mainF4main", user.Unique)

	entry := program.Entry
	require.NotNil(t, entry)
	assert.True(t, entry.Synthesized)
	assert.Equal(t, "main", entry.Unique)
	assert.Same(t, entry, program.Main.Tops[len(program.Main.Tops)-1])

	ret := entry.Body[0].(*ast.Return)
	call := ret.Value.(*ast.Call)
	callee := call.Callee.(*ast.GetVar)
	assert.Equal(t, user.Unique, callee.Name.Value)
	assert.Same(t, info.Env.Int, info.TypeOf(call))

	ft, ok := info.FunctionType(entry)
	require.True(t, ok)
	assert.Empty(t, ft.Params)

	// analyzing again replaces the entry instead of adding a second one
	tops := len(program.Main.Tops)
	_, err = analyzer.Analyze(program)
	require.NoError(t, err)
	assert.Len(t, program.Main.Tops, tops)
}

func TestMissingEntry(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `def helper() -> int { return 0; }`,
	})
	assert.Equal(t, errors.ErrorMissingEntry, ce.Code)
}

func TestMainOutsideMainFile(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `import "other.aize" as other;`,
		"other.aize": `def main() -> int { return 0; }`,
	})
	assert.Equal(t, errors.ErrorMissingEntry, ce.Code)
}

func TestNativeImport(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
import native aizeio;
def main() -> int {
    aizeio::print_int(42, 10);
    aizeio::print_space();
    return aizeio::get_time();
}`,
	})
	assert.Equal(t, []string{"builtins", "aizeio"}, program.NeededStd)

	main := function(program.Main, "main")
	call := main.Body[0].(*ast.ExprStmt).Expr.(*ast.Call)
	ref, ok := info.RefOf(call.Callee).(*symbols.VariableSymbol)
	require.True(t, ok)
	assert.Equal(t, "print_int", ref.Linkage)
	assert.Equal(t, "print_int", symbols.Unique(ref))

	ret := main.Body[2].(*ast.Return)
	assert.Same(t, info.Env.Int, info.TypeOf(ret.Value))
}

func TestNativeImportSharedAcrossFiles(t *testing.T) {
	program, _ := analyze(t, map[string]string{
		"main.aize": `
import native aizeio;
import "util.aize" as util;
def main() -> int { aizeio::test(); return 0; }`,
		"util.aize": `
import native aizeio;
def helper() { aizeio::print_space(); }`,
	})
	assert.Equal(t, []string{"builtins", "aizeio"}, program.NeededStd)
}

func TestUnknownModule(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `import native nope; def main() -> int { return 0; }`,
	})
	assert.Equal(t, errors.ErrorUnknownModule, ce.Code)
	assert.Equal(t, "No standard library called nope", ce.Message)
}

func TestFromImport(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
from "lib/util.aize" import helper, Counter;
def main() -> int {
    var c: Counter = Counter::new(2);
    return helper() + c.n;
}`,
		"lib/util.aize": `
class Counter { n: int; }
def helper() -> int { return 1; }`,
	})

	util := program.Files[1]
	helper := function(util, "helper")
	assert.Equal(t, "AD3libF4utilF6helper", helper.Unique)

	ret := function(program.Main, "main").Body[1].(*ast.Return)
	sum := ret.Value.(*ast.BinaryExpr)
	call := sum.Left.(*ast.Call)
	assert.Equal(t, helper.Unique, symbols.Unique(info.RefOf(call.Callee)))
}

func TestFromImportReexportedNames(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
from "b.aize" import Point, origin;
def main() -> int {
    var p: Point = origin();
    var q: Point = Point::new(1, 2);
    return p.x + q.y;
}`,
		"b.aize": `from "c.aize" import Point, origin;`,
		"c.aize": `
class Point { x: int; y: int; }
def origin() -> Point { return Point::new(0, 0); }`,
	})

	c := program.Files[2]
	point, _ := info.Class(class(c, "Point"))
	p := function(program.Main, "main").Body[0].(*ast.VarDecl)
	sym, ok := info.Variable(p)
	require.True(t, ok)
	assert.Same(t, point, sym.Type)
	assert.Equal(t, "AF1cF6origin", function(c, "origin").Unique)
}

func TestFromImportMissingName(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `from "util.aize" import nothing; def main() -> int { return 0; }`,
		"util.aize": `def helper() {}`,
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
	assert.Contains(t, ce.Message, "nothing")

	// reported at the import, not where a signature uses the name
	ce = analyzeErr(t, map[string]string{
		"main.aize": `
from "util.aize" import Thing;
def use(t: Thing) -> int { return 0; }
def main() -> int { return 0; }`,
		"util.aize": `def helper() {}`,
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
	assert.Equal(t, 2, ce.Position.Line)
	assert.Equal(t, 25, ce.Position.Column)
}

func TestNoNamespaceFound(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `def main() -> int { return nope::value(); }`,
	})
	assert.Equal(t, errors.ErrorNoNamespaceFound, ce.Code)
	assert.Equal(t, "No namespace found called 'nope'", ce.Message)
}

func TestClassInheritance(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
class Shape { id: int; }
class Square(Shape) { side: int; }
def area(s: Square) -> int { return s.side * s.side; }
def main() -> int { return area(Square::new(3)); }`,
	})

	shape, _ := info.Class(class(program.Main, "Shape"))
	square, _ := info.Class(class(program.Main, "Square"))
	assert.Same(t, shape, square.Base)
	assert.True(t, square.IsSubtype(shape))
	assert.False(t, shape.IsSubtype(square))
	assert.True(t, square.IsSubtype(info.Env.Object))
	assert.Len(t, info.Classes, 2)
}

func TestInheritedMembers(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `
class Shape {
    id: int;
    def get(self: Shape) -> int { return self.id; }
    def size(self: Shape) -> int { return 0; }
}
class Square(Shape) {
    side: int;
    def size(self: Square) -> int { return self.side; }
}
def main() -> int {
    var s: Square = Square::new(3);
    s.id = 7;
    return s.get() + s.size();
}`,
	}, WithStrictTyping(true))

	shape := class(program.Main, "Shape")
	square := class(program.Main, "Square")
	body := function(program.Main, "main").Body

	set := body[1].(*ast.ExprStmt).Expr.(*ast.SetAttr)
	id, _ := info.Variable(shape.Attrs[0])
	assert.Same(t, id, info.RefOf(set))

	sum := body[2].(*ast.Return).Value.(*ast.BinaryExpr)
	get := sum.Left.(*ast.Call)
	assert.True(t, get.IsMethodCall)
	assert.Equal(t, shape.Methods[0].Unique, symbols.Unique(info.RefOf(get.Callee)))

	size := sum.Right.(*ast.Call)
	assert.Equal(t, square.Methods[0].Unique, symbols.Unique(info.RefOf(size.Callee)))
}

func TestInheritedMemberNotFound(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `
class Shape { id: int; }
class Square(Shape) { side: int; }
def main() -> int { var s: Square = Square::new(1); return s.depth; }`,
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
	assert.Contains(t, ce.Message, "depth")
}

func TestInvalidBase(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `class A(int) {} def main() -> int { return 0; }`,
	})
	assert.Equal(t, errors.ErrorInvalidBase, ce.Code)

	ce = analyzeErr(t, map[string]string{
		"main.aize": `class A(B) {} class B(A) {} def main() -> int { return 0; }`,
	})
	assert.Equal(t, errors.ErrorInvalidBase, ce.Code)
	assert.Contains(t, ce.Message, "itself")
}

func TestAttributeErrors(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `def main() -> int { var x: int = 1; return x.y; }`,
	})
	assert.Equal(t, errors.ErrorTypeMismatch, ce.Code)

	ce = analyzeErr(t, map[string]string{
		"main.aize": `
class P { x: int; }
def main() -> int { var p: P = P::new(1); return p.z; }`,
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
	assert.Contains(t, ce.Message, "'z'")
}

func TestComparisonOperands(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `def main() -> int { if true < 1 { } return 0; }`,
	})
	assert.Equal(t, errors.ErrorTypeMismatch, ce.Code)

	program, info := analyze(t, map[string]string{
		"main.aize": `def main() -> int { var b: bool = 1 < 2; return 0; }`,
	})
	decl := function(program.Main, "main").Body[0].(*ast.VarDecl)
	assert.Same(t, info.Env.Bool, info.TypeOf(decl.Value))
}

func TestInitializerCannotSeeItself(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `def main() -> int { var x: int = x; return x; }`,
	})
	assert.Equal(t, errors.ErrorNameNotFound, ce.Code)
}

func TestStrictTyping(t *testing.T) {
	mismatch := map[string]string{
		"main.aize": `def main() -> int { var b: bool = 1; return 0; }`,
	}
	analyze(t, mismatch)
	ce := analyzeErr(t, mismatch, WithStrictTyping(true))
	assert.Equal(t, errors.ErrorTypeMismatch, ce.Code)

	arity := map[string]string{
		"main.aize": `
def f(a: int) -> int { return a; }
def main() -> int { return f(); }`,
	}
	analyze(t, arity)
	ce = analyzeErr(t, arity, WithStrictTyping(true))
	assert.Equal(t, errors.ErrorInvalidArguments, ce.Code)

	subclass := map[string]string{
		"main.aize": `
class Shape { id: int; }
class Square(Shape) { side: int; }
def id(s: Shape) -> int { return s.id; }
def main() -> int { return id(Square::new(1)); }`,
	}
	analyze(t, subclass, WithStrictTyping(true))

	ret := map[string]string{
		"main.aize": `def main() -> int { return true; }`,
	}
	ce = analyzeErr(t, ret, WithStrictTyping(true))
	assert.Equal(t, errors.ErrorTypeMismatch, ce.Code)
}

func TestNotCallable(t *testing.T) {
	ce := analyzeErr(t, map[string]string{
		"main.aize": `def main() -> int { var x: int = 1; return x(); }`,
	})
	assert.Equal(t, errors.ErrorTypeMismatch, ce.Code)
	assert.Contains(t, ce.Message, "cannot call")
}

func TestBuiltinList(t *testing.T) {
	program, info := analyze(t, map[string]string{
		"main.aize": `def main() -> int { var l: List = List::new(); return 0; }`,
	})
	decl := function(program.Main, "main").Body[0].(*ast.VarDecl)
	assert.Same(t, info.Env.List, info.TypeOf(decl.Value))

	ctor := info.RefOf(decl.Value.(*ast.Call).Callee)
	assert.Equal(t, "AizeList_new", symbols.Unique(ctor))
}
