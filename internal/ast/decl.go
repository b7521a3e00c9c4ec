package ast

type Function struct {
	Pos    Position
	EndPos Position

	Name   Ident
	Params []*Param
	Ret    *TypeRef // nil means void
	Body   []Stmt

	// Filled during analysis
	Unique      string
	TempCount   int
	Synthesized bool
}

type Class struct {
	Pos    Position
	EndPos Position

	Name    Ident
	Base    *TypeRef
	Attrs   []*Attr
	Methods []*Method

	Unique string
}

type Attr struct {
	Pos    Position
	EndPos Position

	Name Ident
	Type *TypeRef

	Unique string
}

type Method struct {
	Pos    Position
	EndPos Position

	Name   Ident
	Params []*Param
	Ret    *TypeRef
	Body   []Stmt

	Unique    string
	TempCount int
}

type Param struct {
	Pos    Position
	EndPos Position

	Name Ident
	Type *TypeRef

	Unique string
}
