package semantic

import (
	"aize/internal/ast"
	"aize/internal/builtins"
	"aize/internal/errors"
	"aize/internal/symbols"
)

// synthesizeEntry appends to the main file a function with the fixed link
// name main that calls the user entry and returns its result.
func (a *Analyzer) synthesizeEntry() error {
	if a.entry == nil {
		return errors.MissingEntry(a.mainFile.Path, a.mainFile)
	}
	entrySym, found := a.info.Variable(a.entry)
	if !found {
		return errors.MissingEntry(a.mainFile.Path, a.entry)
	}
	entryType := entrySym.Type.(*symbols.FunctionType)

	pos := a.entry.Pos
	callee := &ast.GetVar{Pos: pos, EndPos: pos, Name: ast.Ident{Pos: pos, EndPos: pos, Value: a.entry.Unique}}
	call := &ast.Call{Pos: pos, EndPos: pos, Callee: callee}
	fn := &ast.Function{
		Pos:    pos,
		EndPos: pos,
		Name:   ast.Ident{Pos: pos, EndPos: pos, Value: entryName},
		Ret: &ast.TypeRef{Pos: pos, EndPos: pos, Path: []ast.Ident{
			{Pos: pos, EndPos: pos, Value: string(builtins.Int)},
		}},
		Body:        []ast.Stmt{&ast.Return{Pos: pos, EndPos: pos, Value: call}},
		Unique:      entryName,
		Synthesized: true,
	}

	a.info.Refs[callee] = entrySym
	a.info.Types[callee] = entryType
	a.info.Types[call] = entryType.Ret
	a.info.Decls[fn] = symbols.NewVariable(entryName, symbols.NewFunctionType(nil, a.env.Int), fn)

	a.mainFile.Tops = append(a.mainFile.Tops, fn)
	a.program.Entry = fn
	a.log.Debugf("entry %s wraps %s", fn.Unique, a.entry.Unique)
	return nil
}
