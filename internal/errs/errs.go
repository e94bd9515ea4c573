// Package errs defines the error taxonomy shared by the catalog, customer,
// and billing services. Handlers map these to HTTP statuses; services return
// them instead of sentinel values.
package errs

import (
	"errors"
	"fmt"
)

// NotFoundError reports a missing variant, product, customer, or invoice.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func NotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// InsufficientStockError reports a requested quantity exceeding the live
// stock of a variant at commit time.
type InsufficientStockError struct {
	VariantID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d: requested %d, available %d",
		e.VariantID, e.Requested, e.Available)
}

// ValidationError reports malformed caller input, rejected before any
// storage mutation.
type ValidationError struct {
	Violations map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Violations)
}

// Invalid builds a single-field ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Violations: map[string]string{field: reason}}
}
