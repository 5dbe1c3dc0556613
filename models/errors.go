package models

// ApiError is a domain failure with an explicit HTTP status. Handlers raise it
// for not-found, unauthorized, forbidden and bad-request cases; the responder
// maps everything else to 500.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string) *ApiError {
	return &ApiError{Status: status, Message: message}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the field-level detail list for a 400 response.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

func NewValidationError(details ...FieldError) *ValidationError {
	return &ValidationError{Details: details}
}
