package email

import "fmt"

// EmailError is a coded error for mail failures. Codes match the domain
// error codes so the handler layer can map them, without this package
// importing domain.
type EmailError struct {
	Code    string
	Message string
}

func (e *EmailError) Error() string {
	return e.Message
}

// ErrorCode returns the code for HTTP status mapping.
func (e *EmailError) ErrorCode() string {
	return e.Code
}

// ErrorMessage returns the user-facing message.
func (e *EmailError) ErrorMessage() string {
	return e.Message
}

// ErrTemplateNotFound means the named template is not in the embedded
// template set.
func ErrTemplateNotFound(templateName string) error {
	return &EmailError{
		Code:    "not_found",
		Message: fmt.Sprintf("Email template %s not found", templateName),
	}
}
