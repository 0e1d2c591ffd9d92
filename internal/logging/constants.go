package logging

// Standardized field names for structured logging.
// These constants keep log output consistent across loaders, commands and
// the AI narrator so that logs can be filtered by field.
const (
	FieldFile          = "file_path"
	FieldSource        = "source"
	FieldTransactionID = "transaction_id"
	FieldCategory      = "category"
	FieldMonth         = "month"
	FieldMode          = "mode"
	FieldReason        = "reason"
	FieldOperation     = "operation"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldCount         = "count"
	FieldScore         = "score"
	FieldDelimiter     = "delimiter"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
)
