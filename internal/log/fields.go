package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldService     = "service"
	FieldVersion     = "version"
	FieldEnvironment = "environment"
	FieldComponent   = "component"
	FieldRequestID   = "request_id"

	// HTTP fields
	FieldMethod     = "method"
	FieldRoute      = "route"
	FieldStatus     = "status"
	FieldRemoteIP   = "remote_ip"
	FieldDurationMS = "duration_ms"
	FieldBytes      = "bytes"

	// Codec fields
	FieldOp       = "op"
	FieldOutcome  = "outcome"
	FieldDocBytes = "doc_bytes"
	FieldSchema   = "schema"
	FieldSchemas  = "schemas"
	FieldPath     = "path"
	FieldDir      = "dir"

	// Event field for lifecycle markers
	FieldEvent = "event"
)
