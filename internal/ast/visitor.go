package ast

import "fmt"

// ExprVisitor has one method per expression kind. Adding a kind breaks every
// implementation until it is handled.
type ExprVisitor[R any] interface {
	VisitNum(*Num) R
	VisitBool(*BoolLit) R
	VisitGetVar(*GetVar) R
	VisitSetVar(*SetVar) R
	VisitGetAttr(*GetAttr) R
	VisitSetAttr(*SetAttr) R
	VisitGetNamespace(*GetNamespace) R
	VisitGetNamespaceName(*GetNamespaceName) R
	VisitCall(*Call) R
	VisitBinary(*BinaryExpr) R
}

type StmtVisitor[R any] interface {
	VisitBlock(*Block) R
	VisitIf(*If) R
	VisitWhile(*While) R
	VisitReturn(*Return) R
	VisitVarDecl(*VarDecl) R
	VisitExprStmt(*ExprStmt) R
}

func VisitExpr[R any](v ExprVisitor[R], e Expr) R {
	switch e := e.(type) {
	case *Num:
		return v.VisitNum(e)
	case *BoolLit:
		return v.VisitBool(e)
	case *GetVar:
		return v.VisitGetVar(e)
	case *SetVar:
		return v.VisitSetVar(e)
	case *GetAttr:
		return v.VisitGetAttr(e)
	case *SetAttr:
		return v.VisitSetAttr(e)
	case *GetNamespace:
		return v.VisitGetNamespace(e)
	case *GetNamespaceName:
		return v.VisitGetNamespaceName(e)
	case *Call:
		return v.VisitCall(e)
	case *BinaryExpr:
		return v.VisitBinary(e)
	}
	panic(fmt.Sprintf("ast: unhandled expression %T", e))
}

func VisitStmt[R any](v StmtVisitor[R], s Stmt) R {
	switch s := s.(type) {
	case *Block:
		return v.VisitBlock(s)
	case *If:
		return v.VisitIf(s)
	case *While:
		return v.VisitWhile(s)
	case *Return:
		return v.VisitReturn(s)
	case *VarDecl:
		return v.VisitVarDecl(s)
	case *ExprStmt:
		return v.VisitExprStmt(s)
	}
	panic(fmt.Sprintf("ast: unhandled statement %T", s))
}

// Inspect walks the tree rooted at n in depth-first order, calling fn for
// every node. Children are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, f := range n.Files {
			Inspect(f, fn)
		}
	case *File:
		for _, top := range n.Tops {
			Inspect(top, fn)
		}
	case *Function:
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		inspectStmts(n.Body, fn)
	case *Class:
		for _, a := range n.Attrs {
			Inspect(a, fn)
		}
		for _, m := range n.Methods {
			Inspect(m, fn)
		}
	case *Method:
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		inspectStmts(n.Body, fn)
	case *Block:
		inspectStmts(n.Stmts, fn)
	case *If:
		Inspect(n.Cond, fn)
		Inspect(n.Then, fn)
		if n.Else != nil {
			Inspect(n.Else, fn)
		}
	case *While:
		Inspect(n.Cond, fn)
		Inspect(n.Body, fn)
	case *Return:
		if n.Value != nil {
			Inspect(n.Value, fn)
		}
	case *VarDecl:
		Inspect(n.Value, fn)
	case *ExprStmt:
		Inspect(n.Expr, fn)
	case *SetVar:
		Inspect(n.Value, fn)
	case *GetAttr:
		Inspect(n.Left, fn)
	case *SetAttr:
		Inspect(n.Left, fn)
		Inspect(n.Value, fn)
	case *GetNamespaceName:
		Inspect(n.Namespace, fn)
	case *Call:
		Inspect(n.Callee, fn)
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	case *BinaryExpr:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	}
}

func inspectStmts(stmts []Stmt, fn func(Node) bool) {
	for _, s := range stmts {
		Inspect(s, fn)
	}
}
