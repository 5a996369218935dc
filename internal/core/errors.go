package core

import "fmt"

// ErrInvalidInput indicates a domain-level input validation failure,
// keeping the core package free of transport error types.
type ErrInvalidInput struct {
	Field   string
	Message string
}

func (e *ErrInvalidInput) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}
