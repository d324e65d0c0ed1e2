package errors

// Catalogue codes.
const (
	CodeDuplicateName   = "VT001"
	CodeInvalidOptions  = "VT002"
	CodeUnknownProperty = "VT003"
	CodeUnknownEvent    = "VT004"
	CodeChainTarget     = "VT005"
	CodeReadonly        = "VT006"
	CodeDisposed        = "VT007"

	CodeConfigRead    = "VT100"
	CodeConfigInvalid = "VT101"

	CodeUnknownScenario = "VT200"
	CodeServe           = "VT201"
	CodeCommand         = "VT202"
	CodeConfigExists    = "VT203"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Tracker Errors (VT001-VT099)
	// ============================================

	CodeDuplicateName: {
		Category:   CategoryDeclaration,
		Message:    "Duplicate property or event name",
		Detail:     "A property or event with this name is already declared on the object.",
		Suggestion: "Property and event names share one namespace per object. Pick a different name.",
	},
	CodeInvalidOptions: {
		Category:   CategoryDeclaration,
		Message:    "Contradictory property options",
		Detail:     "A property backed by a source is always readonly and cannot have an initial value or allow cache invalidation.",
		Suggestion: "Drop Readonly(false), Initial or CacheInvalidation from the sourced property, or declare a standalone property instead.",
	},
	CodeUnknownProperty: {
		Category:   CategoryLookup,
		Message:    "Unknown property",
		Detail:     "No property with this name was declared on the object.",
		Suggestion: "Declare the property before looking it up or combining it.",
	},
	CodeUnknownEvent: {
		Category:   CategoryLookup,
		Message:    "Unknown event",
		Detail:     "No event with this name was declared on the object.",
		Suggestion: "Declare the event, or keep DeriveEvent enabled on the property of the same name.",
	},
	CodeChainTarget: {
		Category:   CategoryChain,
		Message:    "Chained link is not a trackable object",
		Detail:     "A dotted path resolved an intermediate property to a value that does not expose P and E.",
		Suggestion: "Only properties that hold trackable objects (or nil) can appear before a '.' or '?.' in a path.",
	},
	CodeReadonly: {
		Category:   CategoryWrite,
		Message:    "Readonly stream",
		Detail:     "The property or event cannot be written through this handle.",
		Suggestion: "Use PSubject for privileged writes to standalone properties, or declare the property with Readonly(false).",
	},
	CodeDisposed: {
		Category: CategoryLifecycle,
		Message:  "Tracker disposed",
		Detail:   "The object's streams have been torn down; no further declarations are accepted.",
	},

	// ============================================
	// Configuration Errors (VT100-VT199)
	// ============================================

	CodeConfigRead: {
		Category:   CategoryConfig,
		Message:    "Cannot read configuration",
		Detail:     "The configuration file could not be read or parsed.",
		Suggestion: "Check that valuetrack.json exists and is valid JSON.",
	},
	CodeConfigInvalid: {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file contains an invalid value.",
	},

	// ============================================
	// CLI Errors (VT200-VT299)
	// ============================================

	CodeUnknownScenario: {
		Category:   CategoryCLI,
		Message:    "Unknown demo scenario",
		Suggestion: "Run `valuetrack demo --help` to list the scenarios.",
	},
	CodeServe: {
		Category: CategoryCLI,
		Message:  "Inspector server failed",
	},
	CodeConfigExists: {
		Category:   CategoryCLI,
		Message:    "Configuration already exists",
		Suggestion: "Pass --force to fill in missing settings and rewrite the file.",
	},
	CodeCommand: {
		Category:   CategoryCLI,
		Message:    "Command failed",
		Suggestion: "Run `valuetrack --help` for usage.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
