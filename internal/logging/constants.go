package logging

// Standardized field names for structured logging. These constants keep
// log output consistent across packages so it is easy to filter.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldCount      = "count"
	FieldYear       = "year"
	FieldAccount    = "account"
	FieldMode       = "mode"
	FieldLine       = "line"
	FieldEncoding   = "encoding"
	FieldDelimiter  = "delimiter"
	FieldTable      = "table"
	FieldOperation  = "operation"
	FieldDuration   = "duration_ms"
)
