package ast

type Stmt interface {
	Node
	isStmt()
}

func (*Block) isStmt()    {}
func (*If) isStmt()       {}
func (*While) isStmt()    {}
func (*Return) isStmt()   {}
func (*VarDecl) isStmt()  {}
func (*ExprStmt) isStmt() {}

// Block is a braced statement list. Index is its position among the sibling
// blocks of the enclosing scope, assigned during analysis.
type Block struct {
	Pos    Position
	EndPos Position

	Stmts []Stmt
	Index int
}

type If struct {
	Pos    Position
	EndPos Position

	Cond Expr
	Then *Block
	Else Stmt // *Block, *If or nil
}

type While struct {
	Pos    Position
	EndPos Position

	Cond Expr
	Body *Block
}

type Return struct {
	Pos    Position
	EndPos Position

	Value Expr // nil for a bare return
}

type VarDecl struct {
	Pos    Position
	EndPos Position

	Name  Ident
	Type  *TypeRef
	Value Expr

	Unique string
}

type ExprStmt struct {
	Pos    Position
	EndPos Position

	Expr Expr
}
