package semantic

import (
	"fmt"
	"slices"

	"aize/internal/ast"
	"aize/internal/mangle"
	"aize/internal/symbols"
	"aize/internal/types"

	"github.com/tliron/commonlog"
)

// Analyzer resolves names and types of a whole program. Analysis runs in
// strictly ordered passes and stops at the first error.
type Analyzer struct {
	program *ast.Program
	table   *symbols.Table
	env     *types.Environment
	mangler *mangle.Mangler
	info    *Info
	log     commonlog.Logger
	strict  bool

	files    map[string]*ast.File
	mainFile *ast.File
	file     *ast.File
	fileNS   *symbols.Namespace
	classes  []classDecl
	natives  map[string]*symbols.Namespace
	entry    *ast.Function

	// call temporaries of the statement being analyzed
	currTemps int
	maxTemps  int
	ret       symbols.TypeSymbol
}

type classDecl struct {
	file  *ast.File
	class *ast.Class
	typ   *symbols.ClassType
}

type Option func(*Analyzer)

// WithStrictTyping enables subtype checks on call arguments, variable
// initializers, assignments and returns.
func WithStrictTyping(strict bool) Option {
	return func(a *Analyzer) { a.strict = strict }
}

func WithLogger(log commonlog.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		log: commonlog.GetLogger("aize.semantic"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze annotates program in place and returns the resolution tables.
// Any returned error other than a plain Go error is an errors.CompilerError.
func (a *Analyzer) Analyze(program *ast.Program) (*Info, error) {
	if err := a.reset(program); err != nil {
		return nil, err
	}

	passes := []struct {
		name string
		run  func() error
	}{
		{"register files", a.registerFiles},
		{"predeclare classes", a.predeclareClasses},
		{"bind namespace imports", a.bindNamespaceImports},
		{"declare functions", a.declareFunctions},
		{"bind value imports", a.bindValueImports},
		{"resolve classes", a.resolveClasses},
		{"resolve bodies", a.resolveBodies},
		{"synthesize entry", a.synthesizeEntry},
	}
	for _, pass := range passes {
		a.log.Debugf("pass: %s", pass.name)
		if err := pass.run(); err != nil {
			return nil, err
		}
		if depth := a.table.Depth(); depth != 1 {
			return nil, fmt.Errorf("pass %q left %d scopes open", pass.name, depth-1)
		}
	}

	a.log.Debugf("analyzed %d files, %d classes, entry %s", len(program.Files), len(a.classes), program.Entry.Unique)
	return a.info, nil
}

func (a *Analyzer) reset(program *ast.Program) error {
	a.program = program
	a.table = symbols.NewTable()
	env, err := types.NewEnvironment(a.table)
	if err != nil {
		return err
	}
	a.env = env
	a.info = newInfo(a.table, env)
	a.files = make(map[string]*ast.File)
	a.natives = make(map[string]*symbols.Namespace)
	a.mainFile, a.file, a.fileNS, a.entry = nil, nil, nil, nil
	a.classes = nil
	a.currTemps, a.maxTemps = 0, 0

	program.NeededStd = []string{"builtins"}
	program.Entry = nil
	for _, file := range program.Files {
		file.Tops = slices.DeleteFunc(file.Tops, func(top ast.TopLevel) bool {
			fn, isFunc := top.(*ast.Function)
			return isFunc && fn.Synthesized
		})
	}
	return nil
}

// inFile makes file current for both the scope stack and the mangler.
func (a *Analyzer) inFile(file *ast.File, fn func() error) error {
	ns, ok := a.table.Body(file)
	if !ok {
		return fmt.Errorf("file %s was not registered", file.Path)
	}
	a.file, a.fileNS = file, ns
	a.mangler.SetFile(file.Path)
	defer func() { a.file, a.fileNS = nil, nil }()
	return a.table.Within(ns, fn)
}

func (a *Analyzer) eachFile(fn func(*ast.File) error) error {
	for _, file := range a.program.Files {
		if err := a.inFile(file, func() error { return fn(file) }); err != nil {
			return err
		}
	}
	return nil
}
