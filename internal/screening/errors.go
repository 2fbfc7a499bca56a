package screening

// ValidationError rejects a screening request before any record is created.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	ErrNoJob   = &ValidationError{Field: "job", Message: "no job selected"}
	ErrNoFiles = &ValidationError{Field: "files", Message: "no files selected"}
)
