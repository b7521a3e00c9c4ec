package semantic

import (
	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/stdlib"
	"aize/internal/symbols"
)

// bindNamespaceImports binds native modules, aliased files and the type and
// namespace halves of from-imports. It runs before any signature is resolved
// so signatures may name imported classes.
func (a *Analyzer) bindNamespaceImports() error {
	err := a.eachFile(func(file *ast.File) error {
		for _, top := range file.Tops {
			var err error
			switch imp := top.(type) {
			case *ast.NativeImport:
				err = a.bindNative(imp)
			case *ast.Import:
				err = a.bindFile(imp)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return a.eachFromImport(func(imp *ast.FromImport) error {
		if err := a.bindFrom(imp, symbols.TypeAxis, symbols.NamespaceAxis); err != nil {
			return err
		}
		return a.checkFromNames(imp)
	})
}

// bindValueImports binds the value half of from-imports once every function
// has a signature.
func (a *Analyzer) bindValueImports() error {
	return a.eachFromImport(func(imp *ast.FromImport) error {
		return a.bindFrom(imp, symbols.ValueAxis)
	})
}

// eachFromImport visits the from-imports of every file, a file only after
// the files it imports from, so names a file re-exports through its own
// from-imports are bound before anyone imports them.
func (a *Analyzer) eachFromImport(fn func(*ast.FromImport) error) error {
	for _, file := range a.fromOrder() {
		err := a.inFile(file, func() error {
			for _, top := range file.Tops {
				if imp, ok := top.(*ast.FromImport); ok {
					if err := fn(imp); err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// fromOrder sorts the program's files so every file comes after the files it
// from-imports. Files on a cycle keep their loader order.
func (a *Analyzer) fromOrder() []*ast.File {
	order := make([]*ast.File, 0, len(a.program.Files))
	visited := make(map[*ast.File]bool, len(a.program.Files))

	var visit func(file *ast.File)
	visit = func(file *ast.File) {
		if visited[file] {
			return
		}
		visited[file] = true
		for _, top := range file.Tops {
			imp, ok := top.(*ast.FromImport)
			if !ok {
				continue
			}
			path := imp.ResolvedPath
			if path == "" {
				path = imp.Path
			}
			if dep, ok := a.files[path]; ok {
				visit(dep)
			}
		}
		order = append(order, file)
	}

	for _, file := range a.program.Files {
		visit(file)
	}
	return order
}

func (a *Analyzer) bindNative(imp *ast.NativeImport) error {
	name := imp.Name.Value
	module := stdlib.GetModuleDefinition(name)
	if module == nil {
		return errors.UnknownModule(name, imp, stdlib.ModuleNames())
	}

	ns, ok := a.natives[name]
	if !ok {
		var err error
		ns, err = module.Namespace(a.table, a.env.Lookup)
		if err != nil {
			return err
		}
		if err := a.table.Root().DefineNamespace(ns, symbols.Hidden()); err != nil {
			return err
		}
		a.natives[name] = ns
		a.program.NeededStd = append(a.program.NeededStd, name)
	}

	if err := a.fileNS.DefineNamespace(ns); err != nil {
		return a.convertLookupError(err, imp, "namespace")
	}
	return nil
}

func (a *Analyzer) importedNamespace(path, resolved string, node ast.Node) (*symbols.Namespace, error) {
	if resolved == "" {
		resolved = path
	}
	file, ok := a.files[resolved]
	if !ok {
		return nil, errors.NoNamespaceFound(path, node, nil)
	}
	ns, _ := a.table.Body(file)
	return ns, nil
}

func (a *Analyzer) bindFile(imp *ast.Import) error {
	ns, err := a.importedNamespace(imp.Path, imp.ResolvedPath, imp)
	if err != nil {
		return err
	}
	if err := a.fileNS.DefineNamespace(ns, symbols.As(imp.Alias.Value)); err != nil {
		return a.convertLookupError(err, &imp.Alias, "namespace")
	}
	return nil
}

// bindFrom binds each imported name on the given axes where the imported
// file defines it.
func (a *Analyzer) bindFrom(imp *ast.FromImport, axes ...symbols.Axis) error {
	source, err := a.importedNamespace(imp.Path, imp.ResolvedPath, imp)
	if err != nil {
		return err
	}

	for i := range imp.Names {
		ident := &imp.Names[i]
		name := ident.Value
		for _, axis := range axes {
			var err error
			switch axis {
			case symbols.ValueAxis:
				if v, lerr := source.LookupValue(name, symbols.Here()); lerr == nil {
					err = a.fileNS.DefineValue(v)
				}
			case symbols.TypeAxis:
				if t, lerr := source.LookupType(name, symbols.Here()); lerr == nil {
					err = a.fileNS.DefineType(t)
				}
			case symbols.NamespaceAxis:
				if ns, lerr := source.LookupNamespace(name, symbols.Here()); lerr == nil {
					err = a.fileNS.DefineNamespace(ns)
				}
			}
			if err != nil {
				return a.convertLookupError(err, ident, axis.String())
			}
		}
	}
	return nil
}

// checkFromNames reports from-imported names the source file does not
// define on any axis. It runs before function signatures exist, so a value
// counts when the source file declares a function of that name or
// from-imports the name itself.
func (a *Analyzer) checkFromNames(imp *ast.FromImport) error {
	source, err := a.importedNamespace(imp.Path, imp.ResolvedPath, imp)
	if err != nil {
		return err
	}
	file := a.files[imp.ResolvedPath]
	if file == nil {
		file = a.files[imp.Path]
	}
	for i := range imp.Names {
		ident := &imp.Names[i]
		_, terr := source.LookupType(ident.Value, symbols.Here())
		_, nerr := source.LookupNamespace(ident.Value, symbols.Here())
		if terr != nil && nerr != nil && !declaresValue(file, ident.Value) {
			return a.convertLookupError(terr, ident, "name")
		}
	}
	return nil
}

func declaresValue(file *ast.File, name string) bool {
	for _, top := range file.Tops {
		switch decl := top.(type) {
		case *ast.Function:
			if decl.Name.Value == name {
				return true
			}
		case *ast.FromImport:
			for _, imported := range decl.Names {
				if imported.Value == name {
					return true
				}
			}
		}
	}
	return false
}
