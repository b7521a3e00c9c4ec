package ast

// Program is the root of a whole compilation: every loaded source file plus
// the entry synthesized once analysis succeeds.
type Program struct {
	Files []*File
	Main  *File

	// Entry is the synthesized "main" wrapper appended to Main; nil until
	// analysis finishes.
	Entry *Function

	// NeededStd lists the native modules the program links against.
	NeededStd []string
}

type File struct {
	Pos    Position
	EndPos Position

	Path   string
	IsMain bool
	Source string

	Tops []TopLevel
}

// TopLevel is a declaration that may appear directly inside a file.
type TopLevel interface {
	Node
	isTopLevel()
}

func (*NativeImport) isTopLevel() {}
func (*Import) isTopLevel()       {}
func (*FromImport) isTopLevel()   {}
func (*Function) isTopLevel()     {}
func (*Class) isTopLevel()        {}

type Ident struct {
	Pos    Position
	EndPos Position
	Value  string
}

// TypeRef names a type, optionally through namespaces (shapes::Point).
type TypeRef struct {
	Pos    Position
	EndPos Position
	Path   []Ident
}

// Name returns the last segment of the path.
func (t *TypeRef) Name() string {
	if len(t.Path) == 0 {
		return ""
	}
	return t.Path[len(t.Path)-1].Value
}

// NativeImport pulls a built-in native module, such as aizeio, into a file.
type NativeImport struct {
	Pos    Position
	EndPos Position
	Name   Ident
}

// Import binds another source file under an alias.
type Import struct {
	Pos    Position
	EndPos Position

	Path  string
	Alias Ident

	ResolvedPath string
}

// FromImport binds selected top-level names of another source file.
type FromImport struct {
	Pos    Position
	EndPos Position

	Path  string
	Names []Ident

	ResolvedPath string
}
