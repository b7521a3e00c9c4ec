package parser

import (
	"fmt"
	"os"
	"path/filepath"

	"aize/internal/ast"
	"aize/internal/errors"

	"github.com/tliron/commonlog"
)

// Loader reads the entry file and every file reachable through its imports.
// Overlay maps absolute paths to in-memory contents that take precedence over
// the file system.
type Loader struct {
	Overlay map[string]string
	log     commonlog.Logger
}

func NewLoader() *Loader {
	return &Loader{
		Overlay: map[string]string{},
		log:     commonlog.GetLogger("aize.parser"),
	}
}

// LoadProgram loads the program rooted at entry from disk.
func LoadProgram(entry string) (*ast.Program, error) {
	return NewLoader().Load(entry)
}

func (l *Loader) read(path string) (string, error) {
	if source, ok := l.Overlay[path]; ok {
		return source, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Load parses entry and, breadth first, every file it imports. Import paths
// are resolved against the directory of the importing file.
func (l *Loader) Load(entry string) (*ast.Program, error) {
	if l.log == nil {
		l.log = commonlog.GetLogger("aize.parser")
	}

	root, err := filepath.Abs(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", entry, err)
	}

	source, err := l.read(root)
	if err != nil {
		return nil, errors.NewError(errors.ErrorImportFailed,
			fmt.Sprintf("cannot read entry file %s: %v", entry, err),
			ast.Position{Filename: entry}).Build()
	}

	program := &ast.Program{}
	seen := map[string]bool{root: true}
	queue := []struct {
		path   string
		source string
	}{{root, source}}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		l.log.Debugf("parsing %s", next.path)
		file, err := ParseSource(next.path, next.source)
		if err != nil {
			return nil, err
		}
		if next.path == root {
			file.IsMain = true
			program.Main = file
		}
		program.Files = append(program.Files, file)

		for _, top := range file.Tops {
			var rel string
			var node ast.Node
			switch imp := top.(type) {
			case *ast.Import:
				imp.ResolvedPath = resolve(next.path, imp.Path)
				rel, node = imp.ResolvedPath, imp
			case *ast.FromImport:
				imp.ResolvedPath = resolve(next.path, imp.Path)
				rel, node = imp.ResolvedPath, imp
			default:
				continue
			}
			if seen[rel] {
				continue
			}
			seen[rel] = true

			src, err := l.read(rel)
			if err != nil {
				return nil, errors.NewSemanticError(errors.ErrorImportFailed,
					fmt.Sprintf("cannot import %s", rel), node).
					WithNote(err.Error()).
					Build()
			}
			queue = append(queue, struct {
				path   string
				source string
			}{rel, src})
		}
	}

	l.log.Infof("loaded %d file(s) from %s", len(program.Files), root)
	return program, nil
}

func resolve(from, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(filepath.Dir(from), path)
}
