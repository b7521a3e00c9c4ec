package parser

import (
	"aize/grammar"
	"aize/internal/ast"
	"aize/internal/errors"

	"github.com/alecthomas/participle/v2/lexer"
)

// converter builds ast nodes from the grammar tree. It records the first
// error it meets and keeps going.
type converter struct {
	err error
}

func position(p lexer.Position) ast.Position {
	return ast.Position{
		Filename: p.Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}

func (c *converter) fail(message string, node ast.Node) {
	if c.err == nil {
		c.err = errors.NewSemanticError(errors.ErrorSyntax, message, node).Build()
	}
}

func (c *converter) file(f *grammar.File) *ast.File {
	file := &ast.File{Pos: position(f.Pos), EndPos: position(f.EndPos)}
	for _, top := range f.Tops {
		switch {
		case top.Import != nil && top.Import.Native != nil:
			file.Tops = append(file.Tops, &ast.NativeImport{
				Pos:    position(top.Import.Pos),
				EndPos: position(top.Import.EndPos),
				Name:   ident(top.Import.Native),
			})
		case top.Import != nil:
			file.Tops = append(file.Tops, &ast.Import{
				Pos:    position(top.Import.Pos),
				EndPos: position(top.Import.EndPos),
				Path:   *top.Import.Path,
				Alias:  ident(top.Import.Alias),
			})
		case top.FromImport != nil:
			imp := &ast.FromImport{
				Pos:    position(top.FromImport.Pos),
				EndPos: position(top.FromImport.EndPos),
				Path:   top.FromImport.Path,
			}
			for _, n := range top.FromImport.Names {
				imp.Names = append(imp.Names, ident(n))
			}
			file.Tops = append(file.Tops, imp)
		case top.Class != nil:
			file.Tops = append(file.Tops, c.class(top.Class))
		case top.Function != nil:
			file.Tops = append(file.Tops, c.function(top.Function))
		}
	}
	return file
}

func ident(p *grammar.PosIdent) ast.Ident {
	return ast.Ident{Pos: position(p.Pos), EndPos: position(p.EndPos), Value: p.Value}
}

func typeRef(t *grammar.TypeRef) *ast.TypeRef {
	if t == nil {
		return nil
	}
	ref := &ast.TypeRef{Pos: position(t.Pos), EndPos: position(t.EndPos)}
	for _, part := range t.Parts {
		ref.Path = append(ref.Path, ident(part))
	}
	return ref
}

func (c *converter) class(g *grammar.Class) *ast.Class {
	cls := &ast.Class{
		Pos:    position(g.Pos),
		EndPos: position(g.EndPos),
		Name:   ident(g.Name),
		Base:   typeRef(g.Base),
	}
	for _, m := range g.Members {
		switch {
		case m.Attr != nil:
			cls.Attrs = append(cls.Attrs, &ast.Attr{
				Pos:    position(m.Attr.Pos),
				EndPos: position(m.Attr.EndPos),
				Name:   ident(m.Attr.Name),
				Type:   typeRef(m.Attr.Type),
			})
		case m.Method != nil:
			fn := c.function(m.Method)
			cls.Methods = append(cls.Methods, &ast.Method{
				Pos:    fn.Pos,
				EndPos: fn.EndPos,
				Name:   fn.Name,
				Params: fn.Params,
				Ret:    fn.Ret,
				Body:   fn.Body,
			})
		}
	}
	return cls
}

func (c *converter) function(g *grammar.Function) *ast.Function {
	fn := &ast.Function{
		Pos:    position(g.Pos),
		EndPos: position(g.EndPos),
		Name:   ident(g.Name),
		Ret:    typeRef(g.Ret),
		Body:   c.stmts(g.Body.Stmts),
	}
	for _, p := range g.Params {
		fn.Params = append(fn.Params, &ast.Param{
			Pos:    position(p.Pos),
			EndPos: position(p.EndPos),
			Name:   ident(p.Name),
			Type:   typeRef(p.Type),
		})
	}
	return fn
}

func (c *converter) stmts(stmts []*grammar.Stmt) []ast.Stmt {
	out := make([]ast.Stmt, 0, len(stmts))
	for _, s := range stmts {
		if stmt := c.stmt(s); stmt != nil {
			out = append(out, stmt)
		}
	}
	return out
}

func (c *converter) block(b *grammar.Block) *ast.Block {
	return &ast.Block{
		Pos:    position(b.Pos),
		EndPos: position(b.EndPos),
		Stmts:  c.stmts(b.Stmts),
	}
}

func (c *converter) stmt(s *grammar.Stmt) ast.Stmt {
	switch {
	case s.If != nil:
		return c.ifStmt(s.If)
	case s.While != nil:
		return &ast.While{
			Pos:    position(s.While.Pos),
			EndPos: position(s.While.EndPos),
			Cond:   c.expr(s.While.Cond),
			Body:   c.block(s.While.Body),
		}
	case s.Return != nil:
		ret := &ast.Return{Pos: position(s.Return.Pos), EndPos: position(s.Return.EndPos)}
		if s.Return.Value != nil {
			ret.Value = c.expr(s.Return.Value)
		}
		return ret
	case s.Var != nil:
		return &ast.VarDecl{
			Pos:    position(s.Var.Pos),
			EndPos: position(s.Var.EndPos),
			Name:   ident(s.Var.Name),
			Type:   typeRef(s.Var.Type),
			Value:  c.expr(s.Var.Value),
		}
	case s.Block != nil:
		return c.block(s.Block)
	case s.Simple != nil:
		return c.simple(s.Simple)
	}
	return nil
}

func (c *converter) ifStmt(g *grammar.If) *ast.If {
	stmt := &ast.If{
		Pos:    position(g.Pos),
		EndPos: position(g.EndPos),
		Cond:   c.expr(g.Cond),
		Then:   c.block(g.Then),
	}
	if g.Else != nil {
		if g.Else.If != nil {
			stmt.Else = c.ifStmt(g.Else.If)
		} else {
			stmt.Else = c.block(g.Else.Block)
		}
	}
	return stmt
}

func (c *converter) simple(g *grammar.SimpleStmt) ast.Stmt {
	pos, end := position(g.Pos), position(g.EndPos)
	target := c.expr(g.Target)
	if g.Value == nil {
		return &ast.ExprStmt{Pos: pos, EndPos: end, Expr: target}
	}

	value := c.expr(g.Value)
	var assign ast.Expr
	switch t := target.(type) {
	case *ast.GetVar:
		assign = &ast.SetVar{Pos: t.Pos, EndPos: value.NodeEndPos(), Name: t.Name, Value: value}
	case *ast.GetAttr:
		assign = &ast.SetAttr{Pos: t.Pos, EndPos: value.NodeEndPos(), Left: t.Left, Attr: t.Attr, Value: value}
	default:
		c.fail("cannot assign to "+target.String(), target)
		assign = target
	}
	return &ast.ExprStmt{Pos: pos, EndPos: end, Expr: assign}
}

func (c *converter) expr(g *grammar.Expr) ast.Expr {
	left := c.additive(g.Left)
	if g.Op == "" {
		return left
	}
	return c.binary(g.Op, left, c.additive(g.Right))
}

func (c *converter) binary(op string, left, right ast.Expr) ast.Expr {
	bop, ok := ast.ParseBinaryOp(op)
	if !ok {
		c.fail("unknown operator "+op, left)
	}
	return &ast.BinaryExpr{
		Pos:    left.NodePos(),
		EndPos: right.NodeEndPos(),
		Op:     bop,
		Left:   left,
		Right:  right,
	}
}

func (c *converter) additive(g *grammar.Additive) ast.Expr {
	left := c.term(g.Left)
	for _, op := range g.Ops {
		left = c.binary(op.Op, left, c.term(op.Right))
	}
	return left
}

func (c *converter) term(g *grammar.Term) ast.Expr {
	left := c.postfix(g.Left)
	for _, op := range g.Ops {
		left = c.binary(op.Op, left, c.postfix(op.Right))
	}
	return left
}

func (c *converter) postfix(g *grammar.Postfix) ast.Expr {
	expr := c.primary(g.Primary)
	for _, s := range g.Suffixes {
		end := position(s.EndPos)
		switch {
		case s.Attr != nil:
			expr = &ast.GetAttr{Pos: expr.NodePos(), EndPos: end, Left: expr, Attr: ident(s.Attr)}
		case s.Call != nil:
			call := &ast.Call{Pos: expr.NodePos(), EndPos: end, Callee: expr}
			for _, arg := range s.Call.Args {
				call.Args = append(call.Args, c.expr(arg))
			}
			expr = call
		}
	}
	return expr
}

func (c *converter) primary(g *grammar.Primary) ast.Expr {
	pos, end := position(g.Pos), position(g.EndPos)
	switch {
	case g.Number != nil:
		return &ast.Num{Pos: pos, EndPos: end, Value: *g.Number}
	case g.True:
		return &ast.BoolLit{Pos: pos, EndPos: end, Value: true}
	case g.False:
		return &ast.BoolLit{Pos: pos, EndPos: end, Value: false}
	case len(g.Path) == 1:
		return &ast.GetVar{Pos: pos, EndPos: end, Name: ident(g.Path[0])}
	case len(g.Path) > 1:
		ns := &ast.GetNamespace{Pos: pos, EndPos: position(g.Path[len(g.Path)-2].EndPos)}
		for _, part := range g.Path[:len(g.Path)-1] {
			ns.Path = append(ns.Path, ident(part))
		}
		return &ast.GetNamespaceName{Pos: pos, EndPos: end, Namespace: ns, Attr: ident(g.Path[len(g.Path)-1])}
	default:
		return c.expr(g.Paren)
	}
}
