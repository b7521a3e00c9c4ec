package ast

import (
	"fmt"
	"strings"
)

func (p *Program) String() string {
	var b strings.Builder
	for i, f := range p.Files {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.String())
	}
	return b.String()
}

func (f *File) String() string {
	var b strings.Builder
	for _, top := range f.Tops {
		b.WriteString(top.String())
		b.WriteString("\n")
	}
	return b.String()
}

func (i *Ident) String() string {
	return i.Value
}

func (t *TypeRef) String() string {
	return joinIdents(t.Path)
}

func (n *NativeImport) String() string {
	return fmt.Sprintf("import native %s;", n.Name.Value)
}

func (i *Import) String() string {
	return fmt.Sprintf("import %q as %s;", i.Path, i.Alias.Value)
}

func (f *FromImport) String() string {
	names := make([]string, len(f.Names))
	for i, n := range f.Names {
		names[i] = n.Value
	}
	return fmt.Sprintf("from %q import %s;", f.Path, strings.Join(names, ", "))
}

func (f *Function) String() string {
	return "def " + signature(f.Name, f.Params, f.Ret) + " " + blockString(f.Body)
}

func (c *Class) String() string {
	var b strings.Builder
	b.WriteString("class " + c.Name.Value)
	if c.Base != nil {
		b.WriteString("(" + c.Base.String() + ")")
	}
	b.WriteString(" {\n")
	for _, a := range c.Attrs {
		b.WriteString("  " + a.String() + "\n")
	}
	for _, m := range c.Methods {
		b.WriteString("  " + strings.ReplaceAll(m.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (a *Attr) String() string {
	return fmt.Sprintf("%s: %s;", a.Name.Value, a.Type)
}

func (m *Method) String() string {
	return "def " + signature(m.Name, m.Params, m.Ret) + " " + blockString(m.Body)
}

func (p *Param) String() string {
	return fmt.Sprintf("%s: %s", p.Name.Value, p.Type)
}

func (b *Block) String() string {
	return blockString(b.Stmts)
}

func (i *If) String() string {
	s := fmt.Sprintf("if %s %s", i.Cond, i.Then)
	if i.Else != nil {
		s += " else " + i.Else.String()
	}
	return s
}

func (w *While) String() string {
	return fmt.Sprintf("while %s %s", w.Cond, w.Body)
}

func (r *Return) String() string {
	if r.Value == nil {
		return "return;"
	}
	return fmt.Sprintf("return %s;", r.Value)
}

func (v *VarDecl) String() string {
	return fmt.Sprintf("var %s: %s = %s;", v.Name.Value, v.Type, v.Value)
}

func (e *ExprStmt) String() string {
	return e.Expr.String() + ";"
}

func (n *Num) String() string {
	return fmt.Sprintf("%d", n.Value)
}

func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (g *GetVar) String() string {
	return g.Name.Value
}

func (s *SetVar) String() string {
	return fmt.Sprintf("%s = %s", s.Name.Value, s.Value)
}

func (g *GetAttr) String() string {
	return fmt.Sprintf("%s.%s", g.Left, g.Attr.Value)
}

func (s *SetAttr) String() string {
	return fmt.Sprintf("%s.%s = %s", s.Left, s.Attr.Value, s.Value)
}

func (g *GetNamespace) String() string {
	return joinIdents(g.Path)
}

func (g *GetNamespaceName) String() string {
	return fmt.Sprintf("%s::%s", g.Namespace, g.Attr.Value)
}

func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(args, ", "))
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

func signature(name Ident, params []*Param, ret *TypeRef) string {
	ps := make([]string, len(params))
	for i, p := range params {
		ps[i] = p.String()
	}
	s := fmt.Sprintf("%s(%s)", name.Value, strings.Join(ps, ", "))
	if ret != nil {
		s += " -> " + ret.String()
	}
	return s
}

func blockString(stmts []Stmt) string {
	if len(stmts) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{\n")
	for _, s := range stmts {
		b.WriteString("  " + strings.ReplaceAll(s.String(), "\n", "\n  ") + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func joinIdents(ids []Ident) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.Value
	}
	return strings.Join(parts, "::")
}
