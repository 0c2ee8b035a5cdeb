package cli

// ErrorCode defines error types for CLI operations
type ErrorCode string

const (
	InvalidPort ErrorCode = "InvalidPort"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
