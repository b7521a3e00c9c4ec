package lsp

import (
	"sort"
	"strconv"

	"aize/internal/ast"
	"aize/internal/builtins"
)

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into SemanticTokenTypes
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

const (
	reference      = 0
	declaration    = 1 << 0
	defaultLibrary = 1 << 1
)

// collectSemanticTokens returns the tokens of file sorted by position.
func collectSemanticTokens(file *ast.File) []SemanticToken {
	var tokens []SemanticToken
	if file == nil {
		return tokens
	}

	add := func(id *ast.Ident, tokenType string, modifier int) {
		tokens = append(tokens, makeToken(id.Pos, id.EndPos, id.Value, tokenType, modifier)...)
	}
	addType := func(ref *ast.TypeRef) {
		if ref == nil {
			return
		}
		if len(ref.Path) == 1 && builtins.IsBuiltinType(ref.Path[0].Value) {
			add(&ref.Path[0], "type", defaultLibrary)
			return
		}
		for i := range ref.Path {
			kind := "namespace"
			if i == len(ref.Path)-1 {
				kind = "type"
			}
			add(&ref.Path[i], kind, reference)
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.NativeImport:
			add(&n.Name, "namespace", reference)
		case *ast.Import:
			add(&n.Alias, "namespace", declaration)
		case *ast.FromImport:
			for i := range n.Names {
				add(&n.Names[i], "variable", reference)
			}
		case *ast.Class:
			add(&n.Name, "type", declaration)
			addType(n.Base)
		case *ast.Attr:
			add(&n.Name, "property", declaration)
			addType(n.Type)
		case *ast.Function:
			if n.Synthesized {
				return false
			}
			add(&n.Name, "function", declaration)
			addType(n.Ret)
		case *ast.Method:
			add(&n.Name, "function", declaration)
			addType(n.Ret)
		case *ast.Param:
			add(&n.Name, "parameter", declaration)
			addType(n.Type)
		case *ast.VarDecl:
			add(&n.Name, "variable", declaration)
			addType(n.Type)
		case *ast.GetVar:
			add(&n.Name, "variable", reference)
		case *ast.SetVar:
			add(&n.Name, "variable", reference)
		case *ast.GetAttr:
			add(&n.Attr, "property", reference)
		case *ast.SetAttr:
			add(&n.Attr, "property", reference)
		case *ast.GetNamespace:
			for i := range n.Path {
				add(&n.Path[i], "namespace", reference)
			}
		case *ast.GetNamespaceName:
			add(&n.Attr, "function", reference)
		case *ast.Num:
			tokens = append(tokens, makeToken(n.Pos, n.EndPos, strconv.FormatInt(n.Value, 10), "number", reference)...)
		}
		return true
	})

	sort.SliceStable(tokens, func(i, j int) bool {
		if tokens[i].Line != tokens[j].Line {
			return tokens[i].Line < tokens[j].Line
		}
		return tokens[i].StartChar < tokens[j].StartChar
	})
	return tokens
}

// encodeTokens packs tokens into the LSP wire format of delta-line,
// delta-start, length, type and modifier quintuples.
func encodeTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}
	return data
}

func makeToken(pos, endPos ast.Position, value, tokenType string, modifiers int) []SemanticToken {
	if value == "" || pos.Line == 0 {
		return nil
	}

	length := endPos.Column - pos.Column
	if endPos.Line != pos.Line || length <= 0 {
		length = len(value)
	}

	return []SemanticToken{{
		Line:           uint32(pos.Line - 1),   // LSP uses 0-based line numbers
		StartChar:      uint32(pos.Column - 1), // LSP uses 0-based column numbers
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: modifiers,
	}}
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
