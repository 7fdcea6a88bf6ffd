package model

import "errors"

var (
	ErrItemNotFound       = errors.New("catalog item not found")
	ErrServiceUnavailable = errors.New("catalog service unavailable")
	ErrRateLimited        = errors.New("rate limit exceeded")
	ErrTimeout            = errors.New("request timeout")
)

type ValidationError struct {
	Field   string
	Message string
	Code    string
}

type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	return v.Errors[0].Message
}

func (v *ValidationErrors) Add(field, message, code string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}
