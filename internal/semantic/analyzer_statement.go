package semantic

import (
	"fmt"

	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/mangle"
	"aize/internal/symbols"
)

// resolveBodies walks every function and method body.
func (a *Analyzer) resolveBodies() error {
	return a.eachFile(func(file *ast.File) error {
		for _, top := range file.Tops {
			switch decl := top.(type) {
			case *ast.Function:
				temps, err := a.resolveBody(decl, mangle.Function, decl.Name.Value, decl.Body)
				if err != nil {
					return err
				}
				decl.TempCount = temps
			case *ast.Class:
				if err := a.resolveMethods(decl); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (a *Analyzer) resolveMethods(cls *ast.Class) error {
	defer a.mangler.Enter(mangle.Class, cls.Name.Value)()
	for _, m := range cls.Methods {
		temps, err := a.resolveBody(m, mangle.Method, m.Name.Value, m.Body)
		if err != nil {
			return err
		}
		m.TempCount = temps
	}
	return nil
}

// resolveBody analyzes body inside the namespace of decl and returns the
// largest number of call temporaries any single statement needs.
func (a *Analyzer) resolveBody(decl ast.Node, kind mangle.Kind, name string, body []ast.Stmt) (int, error) {
	ns, ok := a.table.Body(decl)
	if !ok {
		return 0, fmt.Errorf("%s %s has no scope", kind.String(), name)
	}
	ft, ok := a.info.FunctionType(decl)
	if !ok {
		return 0, fmt.Errorf("%s %s has no signature", kind.String(), name)
	}

	defer a.mangler.Enter(kind, name)()
	a.ret = ft.Ret
	a.currTemps, a.maxTemps = 0, 0

	err := a.table.Within(ns, func() error {
		return a.stmts(body)
	})
	if err != nil {
		return 0, err
	}

	temps := a.maxTemps
	a.currTemps, a.maxTemps = 0, 0
	return temps, nil
}

func (a *Analyzer) stmts(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := a.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// stmt analyzes one statement and closes its temporary accounting.
func (a *Analyzer) stmt(s ast.Stmt) error {
	err := ast.VisitStmt[error](stmtVisitor{a}, s)
	a.maxTemps = max(a.maxTemps, a.currTemps)
	a.currTemps = 0
	return err
}

type stmtVisitor struct {
	*Analyzer
}

func (v stmtVisitor) VisitBlock(b *ast.Block) error {
	parent := v.table.Current()
	b.Index = parent.NextBlock()

	exit, err := v.mangler.Block(b.Index)
	if err != nil {
		return errors.BlockLimit(mangle.MaxBlocks, b)
	}
	defer exit()

	ns := v.table.NewNamespace("", symbols.BlockNamespace, b)
	if err := parent.DefineNamespace(ns, symbols.Hidden(), symbols.AsBody(b)); err != nil {
		return err
	}
	return v.table.Within(ns, func() error {
		return v.stmts(b.Stmts)
	})
}

func (v stmtVisitor) VisitIf(s *ast.If) error {
	cond, err := v.expr(s.Cond)
	if err != nil {
		return err
	}
	if err := v.checkAssignable(cond, v.env.Bool, s.Cond); err != nil {
		return err
	}
	if err := v.stmt(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		return v.stmt(s.Else)
	}
	return nil
}

func (v stmtVisitor) VisitWhile(s *ast.While) error {
	cond, err := v.expr(s.Cond)
	if err != nil {
		return err
	}
	if err := v.checkAssignable(cond, v.env.Bool, s.Cond); err != nil {
		return err
	}
	return v.stmt(s.Body)
}

func (v stmtVisitor) VisitReturn(s *ast.Return) error {
	if s.Value == nil {
		return v.checkAssignable(v.env.Void, v.ret, s)
	}
	typ, err := v.expr(s.Value)
	if err != nil {
		return err
	}
	return v.checkAssignable(typ, v.ret, s.Value)
}

// VisitVarDecl analyzes the initializer before the variable is defined, so
// the initializer cannot refer to the variable it initializes.
func (v stmtVisitor) VisitVarDecl(s *ast.VarDecl) error {
	typ, err := v.resolveType(s.Type)
	if err != nil {
		return err
	}
	if s.Value != nil {
		valueType, err := v.expr(s.Value)
		if err != nil {
			return err
		}
		if err := v.checkAssignable(valueType, typ, s.Value); err != nil {
			return err
		}
	}

	s.Unique = v.mangler.Name(mangle.Variable, s.Name.Value)
	sym := symbols.NewVariable(s.Name.Value, typ, s)
	if err := v.table.DefineValue(sym); err != nil {
		return v.convertLookupError(err, s, "variable")
	}
	v.info.Decls[s] = sym
	return nil
}

func (v stmtVisitor) VisitExprStmt(s *ast.ExprStmt) error {
	_, err := v.expr(s.Expr)
	return err
}
