package store

// ErrorCode defines error types for store operations
type ErrorCode string

const (
	// InvalidInput is returned when a payload does not have the expected shape
	InvalidInput ErrorCode = "InvalidInput"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
