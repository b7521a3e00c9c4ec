// Package mangle derives link-safe unique names from the file an entity is
// declared in and the scopes enclosing it.
//
// A name has the shape
//
//	A <path> <scopes> <kind><len><name>
//
// where <path> is the declaring file relative to the main file's directory
// (one B per parent directory climbed, D<len><dir> per directory, then
// F<len><stem>), and <scopes> is the stack of enclosing class, function,
// method and block markers.
package mangle

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

type Kind byte

const (
	Function    Kind = 'F'
	Method      Kind = 'M'
	Class       Kind = 'C'
	Block       Kind = 'B'
	Attribute   Kind = 'A'
	Constructor Kind = 'S'
	Variable    Kind = 'V'
)

func (k Kind) String() string {
	switch k {
	case Function:
		return "function"
	case Method:
		return "method"
	case Class:
		return "class"
	case Block:
		return "block"
	case Attribute:
		return "attribute"
	case Constructor:
		return "constructor"
	case Variable:
		return "variable"
	}
	return string(k)
}

// MaxBlocks is the number of sibling blocks a scope may contain.
const MaxBlocks = 100

var ErrBlockLimit = errors.New("too many blocks in one scope")

// FilePath encodes file relative to the directory holding mainFile.
func FilePath(mainFile, file string) string {
	rel, err := filepath.Rel(filepath.Dir(mainFile), file)
	if err != nil {
		rel = file
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")

	var b strings.Builder
	for len(parts) > 1 && parts[0] == ".." {
		b.WriteByte('B')
		parts = parts[1:]
	}
	for _, dir := range parts[:len(parts)-1] {
		if dir == "." || dir == "" {
			continue
		}
		b.WriteString(segment('D', dir))
	}
	stem := parts[len(parts)-1]
	stem = strings.TrimSuffix(stem, filepath.Ext(stem))
	b.WriteString(segment('F', stem))
	return b.String()
}

func segment(kind Kind, name string) string {
	return fmt.Sprintf("%c%d%s", kind, len(name), name)
}

// Mangler tracks the current file and the stack of enclosing scopes.
type Mangler struct {
	mainFile string
	path     string
	scopes   []string
}

func NewMangler(mainFile string) *Mangler {
	return &Mangler{mainFile: mainFile}
}

// SetFile switches to the file whose declarations are being named. The
// scope stack must be empty.
func (m *Mangler) SetFile(file string) {
	m.path = FilePath(m.mainFile, file)
	m.scopes = m.scopes[:0]
}

// Path returns the encoded path of the current file.
func (m *Mangler) Path() string { return m.path }

// Push adds a scope marker. Prefer Enter, which pairs it with the pop.
func (m *Mangler) Push(kind Kind, name string) {
	m.scopes = append(m.scopes, segment(kind, name))
}

func (m *Mangler) Pop() {
	m.scopes = m.scopes[:len(m.scopes)-1]
}

// Enter pushes a scope marker and returns the function that removes it.
func (m *Mangler) Enter(kind Kind, name string) func() {
	m.Push(kind, name)
	return m.Pop
}

// Block pushes the marker of the block with the given sibling index.
func (m *Mangler) Block(index int) (func(), error) {
	if index < 0 || index >= MaxBlocks {
		return nil, fmt.Errorf("%w: block %d", ErrBlockLimit, index)
	}
	m.scopes = append(m.scopes, fmt.Sprintf("B%02d", index))
	return m.Pop, nil
}

// Depth returns the number of scope markers on the stack.
func (m *Mangler) Depth() int { return len(m.scopes) }

// Name returns the unique name of an entity declared in the current scope.
func (m *Mangler) Name(kind Kind, name string) string {
	return "A" + m.path + strings.Join(m.scopes, "") + segment(kind, name)
}
