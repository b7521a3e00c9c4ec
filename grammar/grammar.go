package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

type File struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Tops   []*TopLevel `@@*`
}

type TopLevel struct {
	Import     *Import     `  @@`
	FromImport *FromImport `| @@`
	Class      *Class      `| @@`
	Function   *Function   `| @@`
}

type PosIdent struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  string `@Ident`
}

// Import is either `import native <name>;` or `import "<path>" as <alias>;`.
type Import struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Native *PosIdent `"import" ( "native" @@`
	Path   *string   `          | @String`
	Alias  *PosIdent `            "as" @@ ) ";"`
}

type FromImport struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Path   string      `"from" @String "import"`
	Names  []*PosIdent `@@ { "," @@ } ";"`
}

type Class struct {
	Pos     lexer.Position
	EndPos  lexer.Position
	Name    *PosIdent `"class" @@`
	Base    *TypeRef  `[ "(" @@ ")" ]`
	Members []*Member `"{" @@* "}"`
}

type Member struct {
	Method *Function `  @@`
	Attr   *Attr     `| @@`
}

type Attr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `@@ ":"`
	Type   *TypeRef  `@@ ";"`
}

type Function struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `"def" @@ "("`
	Params []*Param  `[ @@ { "," @@ } ] ")"`
	Ret    *TypeRef  `[ "->" @@ ]`
	Body   *Block    `@@`
}

type Param struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `@@ ":"`
	Type   *TypeRef  `@@`
}

type TypeRef struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Parts  []*PosIdent `@@ { "::" @@ }`
}

type Block struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Stmts  []*Stmt `"{" @@* "}"`
}

type Stmt struct {
	If     *If         `  @@`
	While  *While      `| @@`
	Return *Return     `| @@`
	Var    *VarDecl    `| @@`
	Block  *Block      `| @@`
	Simple *SimpleStmt `| @@`
}

type If struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr  `"if" @@`
	Then   *Block `@@`
	Else   *Else  `[ "else" @@ ]`
}

type Else struct {
	If    *If    `  @@`
	Block *Block `| @@`
}

type While struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Cond   *Expr  `"while" @@`
	Body   *Block `@@`
}

type Return struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Value  *Expr `"return" [ @@ ] ";"`
}

type VarDecl struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Name   *PosIdent `"var" @@ ":"`
	Type   *TypeRef  `@@ "="`
	Value  *Expr     `@@ ";"`
}

// SimpleStmt is an expression statement or, with "=", an assignment.
type SimpleStmt struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Target *Expr `@@`
	Value  *Expr `[ "=" @@ ] ";"`
}

type Expr struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Additive `@@`
	Op     string    `[ @("<=" | ">=" | "==" | "!=" | "<" | ">")`
	Right  *Additive `  @@ ]`
}

type Additive struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Term    `@@`
	Ops    []*AddOp `@@*`
}

type AddOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string `@("+" | "-")`
	Right  *Term  `@@`
}

type Term struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Left   *Postfix `@@`
	Ops    []*MulOp `@@*`
}

type MulOp struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Op     string   `@("*" | "/")`
	Right  *Postfix `@@`
}

type Postfix struct {
	Pos      lexer.Position
	EndPos   lexer.Position
	Primary  *Primary  `@@`
	Suffixes []*Suffix `@@*`
}

type Suffix struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Attr   *PosIdent `  "." @@`
	Call   *CallArgs `| @@`
}

type CallArgs struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Args   []*Expr `"(" [ @@ { "," @@ } ] ")"`
}

type Primary struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Number *int64      `  @Int`
	True   bool        `| @"true"`
	False  bool        `| @"false"`
	Path   []*PosIdent `| @@ { "::" @@ }`
	Paren  *Expr       `| "(" @@ ")"`
}
