package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldUserID      = "user_id"
	FieldChatID      = "chat_id"
	FieldMessageID   = "message_id"
	FieldStep        = "step"
	FieldCallback    = "callback"
	FieldCommand     = "command"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldTxID        = "tx_id"
	FieldMonth       = "month"
	FieldYear        = "year"
	FieldError       = "error"
	FieldOperation   = "operation"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentBot     = "bot"
	ComponentSession = "session"
	ComponentStorage = "storage"
	ComponentStatus  = "status"
)
