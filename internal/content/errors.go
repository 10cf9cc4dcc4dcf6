package content

import (
	"errors"
	"fmt"
)

// Sentinel errors for the content service layer.
var (
	ErrTemplateNotFound = errors.New("template not found")
)

// ValidationError reports a malformed template draft or request. It is a
// local, recoverable error; the HTTP layer maps it to a 400.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MissingRequiredVariableError is returned when a required variable has no
// resolvable value at generation time. The HTTP layer maps it to a 422.
type MissingRequiredVariableError struct {
	Variable string `json:"variable"`
}

func (e *MissingRequiredVariableError) Error() string {
	return fmt.Sprintf("required variable %q has no resolvable value", e.Variable)
}
