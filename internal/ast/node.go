package ast

// Node is implemented by every syntax tree element.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Span returns the number of columns covered between start and end when both
// sit on the same line, and 1 otherwise.
func Span(start, end Position) int {
	if start.Line != end.Line || end.Column <= start.Column {
		return 1
	}
	return end.Column - start.Column
}

func (p *Program) NodePos() Position    { return Position{} }
func (p *Program) NodeEndPos() Position { return Position{} }
func (*Program) NodeType() NodeType     { return PROGRAM }

func (f *File) NodePos() Position    { return f.Pos }
func (f *File) NodeEndPos() Position { return f.EndPos }
func (*File) NodeType() NodeType     { return FILE }

func (i *Ident) NodePos() Position    { return i.Pos }
func (i *Ident) NodeEndPos() Position { return i.EndPos }
func (*Ident) NodeType() NodeType     { return IDENT }

func (t *TypeRef) NodePos() Position    { return t.Pos }
func (t *TypeRef) NodeEndPos() Position { return t.EndPos }
func (*TypeRef) NodeType() NodeType     { return TYPE_REF }

func (n *NativeImport) NodePos() Position    { return n.Pos }
func (n *NativeImport) NodeEndPos() Position { return n.EndPos }
func (*NativeImport) NodeType() NodeType     { return NATIVE_IMPORT }

func (i *Import) NodePos() Position    { return i.Pos }
func (i *Import) NodeEndPos() Position { return i.EndPos }
func (*Import) NodeType() NodeType     { return IMPORT }

func (f *FromImport) NodePos() Position    { return f.Pos }
func (f *FromImport) NodeEndPos() Position { return f.EndPos }
func (*FromImport) NodeType() NodeType     { return FROM_IMPORT }

func (f *Function) NodePos() Position    { return f.Pos }
func (f *Function) NodeEndPos() Position { return f.EndPos }
func (*Function) NodeType() NodeType     { return FUNCTION }

func (c *Class) NodePos() Position    { return c.Pos }
func (c *Class) NodeEndPos() Position { return c.EndPos }
func (*Class) NodeType() NodeType     { return CLASS }

func (a *Attr) NodePos() Position    { return a.Pos }
func (a *Attr) NodeEndPos() Position { return a.EndPos }
func (*Attr) NodeType() NodeType     { return ATTR }

func (m *Method) NodePos() Position    { return m.Pos }
func (m *Method) NodeEndPos() Position { return m.EndPos }
func (*Method) NodeType() NodeType     { return METHOD }

func (p *Param) NodePos() Position    { return p.Pos }
func (p *Param) NodeEndPos() Position { return p.EndPos }
func (*Param) NodeType() NodeType     { return PARAM }

func (b *Block) NodePos() Position    { return b.Pos }
func (b *Block) NodeEndPos() Position { return b.EndPos }
func (*Block) NodeType() NodeType     { return BLOCK }

func (i *If) NodePos() Position    { return i.Pos }
func (i *If) NodeEndPos() Position { return i.EndPos }
func (*If) NodeType() NodeType     { return IF_STMT }

func (w *While) NodePos() Position    { return w.Pos }
func (w *While) NodeEndPos() Position { return w.EndPos }
func (*While) NodeType() NodeType     { return WHILE_STMT }

func (r *Return) NodePos() Position    { return r.Pos }
func (r *Return) NodeEndPos() Position { return r.EndPos }
func (*Return) NodeType() NodeType     { return RETURN_STMT }

func (v *VarDecl) NodePos() Position    { return v.Pos }
func (v *VarDecl) NodeEndPos() Position { return v.EndPos }
func (*VarDecl) NodeType() NodeType     { return VAR_DECL }

func (e *ExprStmt) NodePos() Position    { return e.Pos }
func (e *ExprStmt) NodeEndPos() Position { return e.EndPos }
func (*ExprStmt) NodeType() NodeType     { return EXPR_STMT }

func (n *Num) NodePos() Position    { return n.Pos }
func (n *Num) NodeEndPos() Position { return n.EndPos }
func (*Num) NodeType() NodeType     { return NUM_EXPR }

func (b *BoolLit) NodePos() Position    { return b.Pos }
func (b *BoolLit) NodeEndPos() Position { return b.EndPos }
func (*BoolLit) NodeType() NodeType     { return BOOL_EXPR }

func (g *GetVar) NodePos() Position    { return g.Pos }
func (g *GetVar) NodeEndPos() Position { return g.EndPos }
func (*GetVar) NodeType() NodeType     { return GET_VAR_EXPR }

func (s *SetVar) NodePos() Position    { return s.Pos }
func (s *SetVar) NodeEndPos() Position { return s.EndPos }
func (*SetVar) NodeType() NodeType     { return SET_VAR_EXPR }

func (g *GetAttr) NodePos() Position    { return g.Pos }
func (g *GetAttr) NodeEndPos() Position { return g.EndPos }
func (*GetAttr) NodeType() NodeType     { return GET_ATTR_EXPR }

func (s *SetAttr) NodePos() Position    { return s.Pos }
func (s *SetAttr) NodeEndPos() Position { return s.EndPos }
func (*SetAttr) NodeType() NodeType     { return SET_ATTR_EXPR }

func (g *GetNamespace) NodePos() Position    { return g.Pos }
func (g *GetNamespace) NodeEndPos() Position { return g.EndPos }
func (*GetNamespace) NodeType() NodeType     { return GET_NAMESPACE_EXPR }

func (g *GetNamespaceName) NodePos() Position    { return g.Pos }
func (g *GetNamespaceName) NodeEndPos() Position { return g.EndPos }
func (*GetNamespaceName) NodeType() NodeType     { return GET_NAMESPACE_NAME_EXPR }

func (c *Call) NodePos() Position    { return c.Pos }
func (c *Call) NodeEndPos() Position { return c.EndPos }
func (*Call) NodeType() NodeType     { return CALL_EXPR }

func (b *BinaryExpr) NodePos() Position    { return b.Pos }
func (b *BinaryExpr) NodeEndPos() Position { return b.EndPos }
func (*BinaryExpr) NodeType() NodeType     { return BINARY_EXPR }
