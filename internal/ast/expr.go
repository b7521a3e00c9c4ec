package ast

type Expr interface {
	Node
	isExpr()
}

func (*Num) isExpr()              {}
func (*BoolLit) isExpr()          {}
func (*GetVar) isExpr()           {}
func (*SetVar) isExpr()           {}
func (*GetAttr) isExpr()          {}
func (*SetAttr) isExpr()          {}
func (*GetNamespace) isExpr()     {}
func (*GetNamespaceName) isExpr() {}
func (*Call) isExpr()             {}
func (*BinaryExpr) isExpr()       {}

type Num struct {
	Pos    Position
	EndPos Position
	Value  int64
}

type BoolLit struct {
	Pos    Position
	EndPos Position
	Value  bool
}

type GetVar struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

type SetVar struct {
	Pos    Position
	EndPos Position
	Name   Ident
	Value  Expr
}

type GetAttr struct {
	Pos    Position
	EndPos Position
	Left   Expr
	Attr   Ident
}

type SetAttr struct {
	Pos    Position
	EndPos Position
	Left   Expr
	Attr   Ident
	Value  Expr
}

// GetNamespace resolves a path of namespace names, e.g. shapes::Point.
type GetNamespace struct {
	Pos    Position
	EndPos Position
	Path   []Ident
}

// GetNamespaceName resolves a value inside a namespace, e.g. Point::new.
type GetNamespaceName struct {
	Pos       Position
	EndPos    Position
	Namespace *GetNamespace
	Attr      Ident
}

type Call struct {
	Pos    Position
	EndPos Position

	Callee Expr
	Args   []Expr

	// Set for calls through a method attribute. TempIndex is the temporary
	// slot that holds the receiver.
	IsMethodCall bool
	TempIndex    int
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

var binaryOpSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpLt:  "<",
	OpLe:  "<=",
	OpGt:  ">",
	OpGe:  ">=",
	OpEq:  "==",
	OpNe:  "!=",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryOpSymbols) {
		return binaryOpSymbols[op]
	}
	return "?"
}

// IsComparison reports whether op yields a boolean.
func (op BinaryOp) IsComparison() bool {
	return op >= OpLt
}

// ParseBinaryOp maps an operator token to its BinaryOp.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	for i, sym := range binaryOpSymbols {
		if sym == s {
			return BinaryOp(i), true
		}
	}
	return 0, false
}

type BinaryExpr struct {
	Pos    Position
	EndPos Position

	Op    BinaryOp
	Left  Expr
	Right Expr
}
