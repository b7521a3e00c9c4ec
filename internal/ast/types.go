package ast

type NodeType int

const (
	ILLEGAL NodeType = iota

	// Program structure
	PROGRAM
	FILE
	IDENT
	TYPE_REF

	// Imports
	NATIVE_IMPORT
	IMPORT
	FROM_IMPORT

	// Declarations
	FUNCTION
	CLASS
	ATTR
	METHOD
	PARAM

	// Statements
	BLOCK
	IF_STMT
	WHILE_STMT
	RETURN_STMT
	VAR_DECL
	EXPR_STMT

	// Expressions
	NUM_EXPR
	BOOL_EXPR
	GET_VAR_EXPR
	SET_VAR_EXPR
	GET_ATTR_EXPR
	SET_ATTR_EXPR
	GET_NAMESPACE_EXPR
	GET_NAMESPACE_NAME_EXPR
	CALL_EXPR
	BINARY_EXPR
)

var nodeTypeNames = [...]string{
	ILLEGAL:                 "ILLEGAL",
	PROGRAM:                 "PROGRAM",
	FILE:                    "FILE",
	IDENT:                   "IDENT",
	TYPE_REF:                "TYPE_REF",
	NATIVE_IMPORT:           "NATIVE_IMPORT",
	IMPORT:                  "IMPORT",
	FROM_IMPORT:             "FROM_IMPORT",
	FUNCTION:                "FUNCTION",
	CLASS:                   "CLASS",
	ATTR:                    "ATTR",
	METHOD:                  "METHOD",
	PARAM:                   "PARAM",
	BLOCK:                   "BLOCK",
	IF_STMT:                 "IF_STMT",
	WHILE_STMT:              "WHILE_STMT",
	RETURN_STMT:             "RETURN_STMT",
	VAR_DECL:                "VAR_DECL",
	EXPR_STMT:               "EXPR_STMT",
	NUM_EXPR:                "NUM_EXPR",
	BOOL_EXPR:               "BOOL_EXPR",
	GET_VAR_EXPR:            "GET_VAR_EXPR",
	SET_VAR_EXPR:            "SET_VAR_EXPR",
	GET_ATTR_EXPR:           "GET_ATTR_EXPR",
	SET_ATTR_EXPR:           "SET_ATTR_EXPR",
	GET_NAMESPACE_EXPR:      "GET_NAMESPACE_EXPR",
	GET_NAMESPACE_NAME_EXPR: "GET_NAMESPACE_NAME_EXPR",
	CALL_EXPR:               "CALL_EXPR",
	BINARY_EXPR:             "BINARY_EXPR",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) && nodeTypeNames[t] != "" {
		return nodeTypeNames[t]
	}
	return "ILLEGAL"
}
