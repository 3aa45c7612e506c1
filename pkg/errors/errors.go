package errors

import "fmt"

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrDuplicate indicates a unique constraint was violated
type ErrDuplicate struct {
	Resource string
	Key      string
}

func (e *ErrDuplicate) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Key)
}

// ErrUnauthorized indicates a failed authentication attempt
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrValidation is a user-correctable input error. Code is the short,
// stable identifier surfaced to the client ("missing information",
// "invalid email", "empty cart").
type ErrValidation struct {
	Code    string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Code
}

// ErrInvalidStateTransition indicates an order status change that the
// lifecycle does not allow
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}
