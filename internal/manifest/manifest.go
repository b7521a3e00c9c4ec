// Package manifest describes an analyzed program for code generation: every
// declaration under its mangled name together with its type, temporary count
// and class layout.
package manifest

import (
	"fmt"
	"path/filepath"

	"aize/internal/ast"
	"aize/internal/semantic"
	"aize/internal/symbols"

	"gopkg.in/yaml.v3"
)

type Manifest struct {
	// Entry is the link name of the synthesized entry and Wraps the unique
	// name of the user main it calls.
	Entry     string   `yaml:"entry"`
	Wraps     string   `yaml:"wraps"`
	NeededStd []string `yaml:"needed_std"`
	Files     []File   `yaml:"files"`
}

type File struct {
	// Path is relative to the directory of the main file.
	Path      string     `yaml:"path"`
	Main      bool       `yaml:"main,omitempty"`
	Imports   []string   `yaml:"imports,omitempty"`
	Classes   []Class    `yaml:"classes,omitempty"`
	Functions []Function `yaml:"functions,omitempty"`
}

type Class struct {
	Name        string     `yaml:"name"`
	Struct      string     `yaml:"struct"`
	Base        string     `yaml:"base"`
	Attributes  []Symbol   `yaml:"attributes,omitempty"`
	VTable      []Function `yaml:"vtable,omitempty"`
	Constructor Symbol     `yaml:"constructor"`
}

type Function struct {
	Name        string   `yaml:"name"`
	Unique      string   `yaml:"unique"`
	Type        string   `yaml:"type"`
	Params      []Symbol `yaml:"params,omitempty"`
	Locals      []Symbol `yaml:"locals,omitempty"`
	Temps       int      `yaml:"temps"`
	Synthesized bool     `yaml:"synthesized,omitempty"`
}

// Symbol is a named, typed declaration.
type Symbol struct {
	Name   string `yaml:"name"`
	Unique string `yaml:"unique"`
	Type   string `yaml:"type"`
}

// Build collects the manifest of a program that analyzed without errors.
func Build(program *ast.Program, info *semantic.Info) (*Manifest, error) {
	if program.Main == nil || program.Entry == nil {
		return nil, fmt.Errorf("program has not been analyzed")
	}

	m := &Manifest{
		Entry:     program.Entry.Unique,
		NeededStd: program.NeededStd,
	}
	if info.Entry != nil {
		m.Wraps = info.Entry.Unique
	}

	root := filepath.Dir(program.Main.Path)
	for _, file := range program.Files {
		f, err := buildFile(root, file, info)
		if err != nil {
			return nil, err
		}
		m.Files = append(m.Files, f)
	}
	return m, nil
}

// Marshal encodes the manifest as YAML.
func Marshal(m *Manifest) ([]byte, error) {
	return yaml.Marshal(m)
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func buildFile(root string, file *ast.File, info *semantic.Info) (File, error) {
	f := File{Path: relative(root, file.Path), Main: file.IsMain}

	for _, top := range file.Tops {
		switch decl := top.(type) {
		case *ast.NativeImport:
			f.Imports = append(f.Imports, decl.Name.Value)
		case *ast.Import:
			f.Imports = append(f.Imports, relative(root, decl.ResolvedPath))
		case *ast.FromImport:
			f.Imports = append(f.Imports, relative(root, decl.ResolvedPath))
		case *ast.Class:
			c, err := buildClass(decl, info)
			if err != nil {
				return File{}, err
			}
			f.Classes = append(f.Classes, c)
		case *ast.Function:
			fn, err := buildFunction(decl, decl.Name.Value, decl.Unique, decl.Params, decl.Body, decl.TempCount, info)
			if err != nil {
				return File{}, err
			}
			fn.Synthesized = decl.Synthesized
			f.Functions = append(f.Functions, fn)
		}
	}
	return f, nil
}

func buildClass(decl *ast.Class, info *semantic.Info) (Class, error) {
	ct, ok := info.Class(decl)
	if !ok {
		return Class{}, fmt.Errorf("class %s was not analyzed", decl.Name.Value)
	}

	c := Class{
		Name:   ct.Name(),
		Struct: ct.StructName,
	}
	if ct.Base != nil {
		c.Base = ct.Base.StructName
	}
	for _, attr := range ct.Attributes {
		c.Attributes = append(c.Attributes, symbol(attr))
	}
	for _, slot := range ct.Slots() {
		m := slot.Method
		fn, err := buildFunction(m, slot.Name, m.Unique, m.Params, m.Body, m.TempCount, info)
		if err != nil {
			return Class{}, err
		}
		c.VTable = append(c.VTable, fn)
	}
	if ct.Constructor != nil {
		c.Constructor = symbol(ct.Constructor)
	}
	return c, nil
}

func buildFunction(decl ast.Node, name, unique string, params []*ast.Param, body []ast.Stmt, temps int, info *semantic.Info) (Function, error) {
	ft, ok := info.FunctionType(decl)
	if !ok {
		return Function{}, fmt.Errorf("%s has no signature", name)
	}

	fn := Function{
		Name:   name,
		Unique: unique,
		Type:   ft.String(),
		Temps:  temps,
	}
	for _, p := range params {
		if v, ok := info.Variable(p); ok {
			fn.Params = append(fn.Params, symbol(v))
		}
	}
	for _, stmt := range body {
		ast.Inspect(stmt, func(n ast.Node) bool {
			if decl, isVar := n.(*ast.VarDecl); isVar {
				if v, ok := info.Variable(decl); ok {
					fn.Locals = append(fn.Locals, symbol(v))
				}
			}
			return true
		})
	}
	return fn, nil
}

func symbol(v *symbols.VariableSymbol) Symbol {
	s := Symbol{Name: v.Name(), Unique: symbols.Unique(v)}
	if v.Type != nil {
		s.Type = v.Type.String()
	}
	return s
}
