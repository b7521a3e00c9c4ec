package semantic

import (
	"fmt"

	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/mangle"
	"aize/internal/symbols"
)

const entryName = "main"

// registerFiles gives every file its namespace and finds the main file.
func (a *Analyzer) registerFiles() error {
	root := a.table.Root()
	for _, file := range a.program.Files {
		if _, dup := a.files[file.Path]; dup {
			return fmt.Errorf("file %s is part of the program twice", file.Path)
		}
		a.files[file.Path] = file

		ns := a.table.NewNamespace(file.Path, symbols.FileNamespace, file)
		if err := root.DefineNamespace(ns, symbols.Hidden(), symbols.AsBody(file)); err != nil {
			return err
		}

		if file.IsMain {
			if a.mainFile != nil {
				return fmt.Errorf("both %s and %s are marked as the main file", a.mainFile.Path, file.Path)
			}
			a.mainFile = file
		}
	}
	if a.mainFile == nil {
		return errors.MissingEntry("program", nil)
	}

	a.program.Main = a.mainFile
	a.mangler = mangle.NewMangler(a.mainFile.Path)
	a.log.Debugf("registered %d files, main file %s", len(a.program.Files), a.mainFile.Path)
	return nil
}

// predeclareClasses creates the shell of every class so that any signature
// in any file can refer to it.
func (a *Analyzer) predeclareClasses() error {
	return a.eachFile(func(file *ast.File) error {
		for _, top := range file.Tops {
			cls, ok := top.(*ast.Class)
			if !ok {
				continue
			}
			name := cls.Name.Value

			ct := symbols.NewClassType(name, cls)
			if err := a.fileNS.DefineType(ct); err != nil {
				return a.convertLookupError(err, cls, "type")
			}

			ct.StaticNS = a.table.NewNamespace(name, symbols.ClassNamespace, cls)
			if err := a.fileNS.DefineNamespace(ct.StaticNS); err != nil {
				return a.convertLookupError(err, cls, "namespace")
			}
			ct.InstanceNS = a.table.NewNamespace(name, symbols.ObjectNamespace, cls)
			if err := ct.StaticNS.DefineNamespace(ct.InstanceNS, symbols.Hidden(), symbols.AsBody(cls)); err != nil {
				return err
			}

			cls.Unique = a.mangler.Name(mangle.Class, name)
			ct.StructName = cls.Unique

			a.info.Decls[cls] = ct
			a.info.Classes = append(a.info.Classes, ct)
			a.classes = append(a.classes, classDecl{file: file, class: cls, typ: ct})
		}
		return nil
	})
}

// declareFunctions registers every top-level function signature and finds
// the user entry point.
func (a *Analyzer) declareFunctions() error {
	return a.eachFile(func(file *ast.File) error {
		for _, top := range file.Tops {
			fn, ok := top.(*ast.Function)
			if !ok {
				continue
			}
			name := fn.Name.Value

			sym := symbols.NewVariable(name, nil, fn)
			if err := a.fileNS.DefineValue(sym); err != nil {
				return a.convertLookupError(err, fn, "name")
			}
			fn.Unique = a.mangler.Name(mangle.Function, name)

			ns := a.table.NewNamespace(name, symbols.FunctionNamespace, fn)
			if err := a.fileNS.DefineNamespace(ns, symbols.Hidden(), symbols.AsBody(fn)); err != nil {
				return err
			}

			exit := a.mangler.Enter(mangle.Function, name)
			ft, err := a.declareSignature(ns, fn.Params, fn.Ret)
			exit()
			if err != nil {
				return err
			}
			sym.Type = ft
			a.info.Decls[fn] = sym

			if file.IsMain && name == entryName {
				a.entry = fn
				a.info.Entry = fn
			}
		}
		return nil
	})
}

// declareSignature resolves parameter and return types in the current scope
// and defines the parameters in ns. The caller has pushed the function's
// mangling scope.
func (a *Analyzer) declareSignature(ns *symbols.Namespace, params []*ast.Param, ret *ast.TypeRef) (*symbols.FunctionType, error) {
	paramTypes := make([]symbols.TypeSymbol, 0, len(params))
	for _, p := range params {
		typ, err := a.resolveType(p.Type)
		if err != nil {
			return nil, err
		}
		p.Unique = a.mangler.Name(mangle.Variable, p.Name.Value)

		sym := symbols.NewVariable(p.Name.Value, typ, p)
		if err := ns.DefineValue(sym); err != nil {
			return nil, a.convertLookupError(err, p, "parameter")
		}
		a.info.Decls[p] = sym
		paramTypes = append(paramTypes, typ)
	}

	retType, err := a.resolveType(ret)
	if err != nil {
		return nil, err
	}
	return symbols.NewFunctionType(paramTypes, retType), nil
}

// resolveClasses fills in bases, attributes, methods and constructors.
func (a *Analyzer) resolveClasses() error {
	for _, decl := range a.classes {
		err := a.inFile(decl.file, func() error {
			return a.resolveClass(decl.class, decl.typ)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) resolveClass(cls *ast.Class, ct *symbols.ClassType) error {
	if err := a.resolveBase(cls, ct); err != nil {
		return err
	}

	defer a.mangler.Enter(mangle.Class, cls.Name.Value)()

	for _, attr := range cls.Attrs {
		typ, err := a.resolveType(attr.Type)
		if err != nil {
			return err
		}
		attr.Unique = a.mangler.Name(mangle.Attribute, attr.Name.Value)

		sym := symbols.NewVariable(attr.Name.Value, typ, attr)
		if err := ct.InstanceNS.DefineValue(sym); err != nil {
			return a.convertLookupError(err, attr, "attribute")
		}
		ct.Attributes = append(ct.Attributes, sym)
		a.info.Decls[attr] = sym
	}

	for _, m := range cls.Methods {
		name := m.Name.Value
		m.Unique = a.mangler.Name(mangle.Method, name)

		ns := a.table.NewNamespace(name, symbols.MethodNamespace, m)
		if err := a.fileNS.DefineNamespace(ns, symbols.Hidden(), symbols.AsBody(m)); err != nil {
			return err
		}

		exit := a.mangler.Enter(mangle.Method, name)
		ft, err := a.declareSignature(ns, m.Params, m.Ret)
		exit()
		if err != nil {
			return err
		}

		sym := symbols.NewVariable(name, ft, m)
		if err := ct.InstanceNS.DefineValue(sym); err != nil {
			return a.convertLookupError(err, m, "method")
		}
		ct.Methods[name] = m
		ct.VTable = append(ct.VTable, name)
		a.info.Decls[m] = sym
	}

	ctor := symbols.NewVariable("new", symbols.NewFunctionType(ct.AttributeTypes(), ct), nil)
	ctor.Linkage = a.mangler.Name(mangle.Constructor, "new")
	if err := ct.StaticNS.DefineValue(ctor); err != nil {
		return a.convertLookupError(err, cls, "name")
	}
	ct.Constructor = ctor

	a.log.Debugf("class %s: %d attributes, %d methods", ct.Name(), len(ct.Attributes), len(ct.VTable))
	return nil
}

func (a *Analyzer) resolveBase(cls *ast.Class, ct *symbols.ClassType) error {
	if cls.Base == nil {
		ct.Base = a.env.Object
		return nil
	}

	typ, err := a.resolveType(cls.Base)
	if err != nil {
		return err
	}
	base, ok := typ.(*symbols.ClassType)
	if !ok {
		return errors.InvalidBase(ct.Name(), typ.String(), cls.Base)
	}
	if base.IsSubtype(ct) {
		return errors.InvalidBase(ct.Name(), "itself", cls.Base)
	}
	ct.Base = base
	return nil
}
