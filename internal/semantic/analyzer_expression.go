package semantic

import (
	"aize/internal/ast"
	"aize/internal/errors"
	"aize/internal/symbols"
)

// typed is the outcome of analyzing one expression.
type typed struct {
	typ symbols.TypeSymbol
	err error
}

func result(t symbols.TypeSymbol) typed { return typed{typ: t} }
func fail(err error) typed              { return typed{err: err} }

// expr computes and records the type of e.
func (a *Analyzer) expr(e ast.Expr) (symbols.TypeSymbol, error) {
	r := ast.VisitExpr[typed](exprVisitor{a}, e)
	if r.err != nil {
		return nil, r.err
	}
	a.info.Types[e] = r.typ
	return r.typ, nil
}

type exprVisitor struct {
	*Analyzer
}

func (v exprVisitor) VisitNum(*ast.Num) typed {
	return result(v.env.Int)
}

func (v exprVisitor) VisitBool(*ast.BoolLit) typed {
	return result(v.env.Bool)
}

func (v exprVisitor) VisitGetVar(e *ast.GetVar) typed {
	sym, err := v.table.LookupValue(e.Name.Value)
	if err != nil {
		return fail(v.convertLookupError(err, e, "name"))
	}
	v.info.Refs[e] = sym
	return result(sym.Type)
}

func (v exprVisitor) VisitSetVar(e *ast.SetVar) typed {
	sym, err := v.table.LookupValue(e.Name.Value)
	if err != nil {
		return fail(v.convertLookupError(err, e, "name"))
	}
	v.info.Refs[e] = sym

	value, err := v.expr(e.Value)
	if err != nil {
		return fail(err)
	}
	if err := v.checkAssignable(value, sym.Type, e.Value); err != nil {
		return fail(err)
	}
	return result(sym.Type)
}

// member resolves an attribute or method in the instance namespace of the
// class that left evaluates to, then in those of its ancestors.
func (v exprVisitor) member(left ast.Expr, attr *ast.Ident, node ast.Expr) (*symbols.VariableSymbol, error) {
	lt, err := v.expr(left)
	if err != nil {
		return nil, err
	}
	cls, isClass := lt.(*symbols.ClassType)
	if !isClass {
		return nil, errors.NotAnObject(attr.Value, lt.String(), node)
	}
	sym, err := cls.InstanceNS.LookupValue(attr.Value, symbols.Here())
	for base := cls.Base; err != nil && base != nil; base = base.Base {
		if inherited, berr := base.InstanceNS.LookupValue(attr.Value, symbols.Here()); berr == nil {
			sym, err = inherited, nil
		}
	}
	if err != nil {
		return nil, v.convertLookupError(err, attr, "attribute")
	}
	v.info.Refs[node] = sym
	return sym, nil
}

func (v exprVisitor) VisitGetAttr(e *ast.GetAttr) typed {
	sym, err := v.member(e.Left, &e.Attr, e)
	if err != nil {
		return fail(err)
	}
	return result(sym.Type)
}

func (v exprVisitor) VisitSetAttr(e *ast.SetAttr) typed {
	sym, err := v.member(e.Left, &e.Attr, e)
	if err != nil {
		return fail(err)
	}
	value, err := v.expr(e.Value)
	if err != nil {
		return fail(err)
	}
	if err := v.checkAssignable(value, sym.Type, e.Value); err != nil {
		return fail(err)
	}
	return result(sym.Type)
}

func (v exprVisitor) namespace(e *ast.GetNamespace) (*symbols.Namespace, error) {
	ns, err := v.resolvePath(e.Path)
	if err != nil {
		return nil, err
	}
	v.info.Namespaces[e] = ns
	return ns, nil
}

// VisitGetNamespace handles a bare namespace path in value position.
func (v exprVisitor) VisitGetNamespace(e *ast.GetNamespace) typed {
	ns, err := v.namespace(e)
	if err != nil {
		return fail(err)
	}
	return fail(errors.NewSemanticError(errors.ErrorTypeMismatch,
		"namespace '"+ns.Name()+"' cannot be used as a value", e).
		WithSuggestion("select a member with '::'").
		Build())
}

func (v exprVisitor) VisitGetNamespaceName(e *ast.GetNamespaceName) typed {
	ns, err := v.namespace(e.Namespace)
	if err != nil {
		return fail(err)
	}
	sym, err := ns.LookupValue(e.Attr.Value, symbols.Here())
	if err != nil {
		return fail(v.convertLookupError(err, &e.Attr, "name"))
	}
	v.info.Refs[e] = sym
	return result(sym.Type)
}

// VisitCall types a call by its callee's return type. A call through an
// attribute that names a method passes the receiver as the first argument
// and takes a temporary slot for it.
func (v exprVisitor) VisitCall(e *ast.Call) typed {
	callee, err := v.expr(e.Callee)
	if err != nil {
		return fail(err)
	}
	fn, isFunc := callee.(*symbols.FunctionType)
	if !isFunc {
		return fail(errors.NotCallable(callee.String(), e.Callee))
	}

	var args []symbols.TypeSymbol
	if attr, isAttr := e.Callee.(*ast.GetAttr); isAttr {
		if _, isMethod := v.info.Refs[attr].Node().(*ast.Method); isMethod {
			e.IsMethodCall = true
			e.TempIndex = v.currTemps
			v.currTemps++
			args = append(args, v.info.Types[attr.Left])
		}
	}

	for _, arg := range e.Args {
		typ, err := v.expr(arg)
		if err != nil {
			return fail(err)
		}
		args = append(args, typ)
	}

	if err := v.checkArguments(e, fn, args); err != nil {
		return fail(err)
	}
	return result(fn.Ret)
}

func (v exprVisitor) checkArguments(e *ast.Call, fn *symbols.FunctionType, args []symbols.TypeSymbol) error {
	if !v.strict {
		return nil
	}
	if len(args) != len(fn.Params) {
		return errors.InvalidArguments(e.Callee.String(), len(fn.Params), len(args), e)
	}
	// the receiver has no argument node of its own
	offset := len(args) - len(e.Args)
	for i, param := range fn.Params {
		var node ast.Node = e
		if i >= offset {
			node = e.Args[i-offset]
		}
		if err := v.checkAssignable(args[i], param, node); err != nil {
			return err
		}
	}
	return nil
}

// VisitBinary applies the integer typing rules: arithmetic yields int and
// comparisons need integer operands and yield bool.
func (v exprVisitor) VisitBinary(e *ast.BinaryExpr) typed {
	left, err := v.expr(e.Left)
	if err != nil {
		return fail(err)
	}
	right, err := v.expr(e.Right)
	if err != nil {
		return fail(err)
	}

	if !e.Op.IsComparison() {
		return result(v.env.Int)
	}
	if !symbols.IsInteger(left) || !symbols.IsInteger(right) {
		return fail(errors.InvalidOperands(e.Op.String(), left.String(), right.String(), e))
	}
	return result(v.env.Bool)
}
