package leads

import "errors"

var (
	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")

	// ErrInvalidStatus is returned when a status value is not one of
	// new, contacted or qualified
	ErrInvalidStatus = errors.New("invalid lead status")
)
