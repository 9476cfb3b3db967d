package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldCommand    = "command"
	FieldExternalID = "external_id"
	FieldUserID     = "user_id"
	FieldEntryID    = "entry_id"
	FieldValue      = "value"
	FieldCurrency   = "currency"
	FieldTags       = "tags"
	FieldEventID    = "event_id"
	FieldEventKind  = "event_kind"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentBot     = "bot"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentReport  = "report"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
)

// Operations defines standard operation names
const (
	OpRegister = "register"
	OpHelp     = "help"
	OpAdd      = "add"
	OpRevert   = "revert"
	OpReport   = "report"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
