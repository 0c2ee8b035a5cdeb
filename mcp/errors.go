package mcp

// ErrorCode defines error types for tool calls
type ErrorCode string

const (
	// UnknownOperation is returned when no tool has the requested name
	UnknownOperation ErrorCode = "UnknownOperation"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
