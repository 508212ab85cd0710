package errors

// ErrorCode identifies a failure class. Codes are stable strings and
// show up as the error_code field in logs.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Message returns the default human-readable text for the code
func (c ErrorCode) Message() string {
	return GetErrorMessage(c)
}

// Error is a coded error. WithMessage and WithData return copies.
type Error interface {
	error
	Code() ErrorCode
	WithMessage(msg string) Error
	WithData(data any) Error
	GetData() any
	Unwrap() error
}

// Factory builds coded errors
type Factory interface {
	New(code ErrorCode) Error
	Wrap(code ErrorCode, err error) Error
	WithMessage(code ErrorCode, msg string) Error
	WithData(code ErrorCode, data any) Error
}
