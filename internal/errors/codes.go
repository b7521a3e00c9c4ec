package errors

// Error codes for the Aize compiler.
//
// Error code ranges:
// E0001-E0099: Semantic analysis errors
// E0100-E0199: Parser errors
// E0300-E0399: Import/module errors
// E0900-E0999: Tooling errors

const (
	// E0001: Name resolution failed in the whole scope chain
	ErrorNameNotFound = "E0001"

	// E0003: Type compatibility errors, including non-callable callees and
	// non-integer comparison operands
	ErrorTypeMismatch = "E0003"

	// E0009: Name already bound in the same namespace
	ErrorAlreadyDefined = "E0009"

	// E0013: Call argument errors (strict typing)
	ErrorInvalidArguments = "E0013"

	// E0021: Unknown native module
	ErrorUnknownModule = "E0021"

	// E0022: Qualified path does not name a namespace
	ErrorNoNamespaceFound = "E0022"

	// E0023: The entry file has no main function
	ErrorMissingEntry = "E0023"

	// E0024: Too many sibling blocks for the block numbering scheme
	ErrorBlockLimit = "E0024"

	// E0025: A class base is not a class
	ErrorInvalidBase = "E0025"

	// E0100: Source could not be parsed
	ErrorSyntax = "E0100"

	// E0300: Imported file could not be loaded
	ErrorImportFailed = "E0300"

	// E0900: Configuration errors
	ErrorConfig = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorNameNotFound:
		return "Name is used but not defined in any enclosing scope"
	case ErrorTypeMismatch:
		return "Expression type does not match expected type"
	case ErrorAlreadyDefined:
		return "Name is already defined in this scope"
	case ErrorInvalidArguments:
		return "Function call has invalid arguments"
	case ErrorUnknownModule:
		return "Native module does not exist"
	case ErrorNoNamespaceFound:
		return "Qualified path does not name a namespace"
	case ErrorMissingEntry:
		return "Main file does not define a main function"
	case ErrorBlockLimit:
		return "Scope contains more blocks than can be numbered"
	case ErrorInvalidBase:
		return "Class base is not a class"
	case ErrorSyntax:
		return "Source could not be parsed"
	case ErrorImportFailed:
		return "Imported file could not be loaded"
	case ErrorConfig:
		return "Project configuration is invalid"
	default:
		return "Unknown error code"
	}
}

// GetErrorCategory returns the category of the error based on its code
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "Semantic Analysis"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0300" && code < "E0400":
		return "Import/Module"
	case code >= "E0900" && code < "E1000":
		return "Tooling"
	default:
		return "Unknown"
	}
}
