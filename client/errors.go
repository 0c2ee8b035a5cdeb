package client

// ErrorCode defines error types for surface client operations
type ErrorCode string

const (
	UnexpectedStatus ErrorCode = "UnexpectedStatus"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
