package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldError       = "error"
	FieldKind        = "kind"
	FieldAmountPesos = "amount_pesos"
	FieldTranscript  = "transcript"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentConsole = "console"
)
