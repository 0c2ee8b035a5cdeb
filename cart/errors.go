package cart

// ErrorCode defines error types for cart operations
type ErrorCode string

const (
	ProductNotFound ErrorCode = "ProductNotFound"
	EmptyCart       ErrorCode = "EmptyCart"
)

func (c ErrorCode) ErrorCode() string {
	return string(c)
}
