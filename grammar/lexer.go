package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var AizeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{"Comment", `//[^\n]*`, nil},

		// String literals (import paths)
		{"String", `"(\\.|[^"\\\n])*"`, nil},

		// Integer literals
		{"Int", `[0-9]+`, nil},

		// Keywords and Identifiers
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},

		// Operators and punctuation, longest first
		{"Punct", `::|->|<=|>=|==|!=|[-+*/<>=(){}.,;:]`, nil},

		// Whitespace
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
