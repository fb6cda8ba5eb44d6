package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when no product exists with the requested ID.
var ErrNotFound = errors.New("product not found")

// ValidationError reports required fields missing or malformed on create.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// StoreError wraps an I/O failure in a persistent store implementation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Validate checks that every required field of a draft is present and in range.
func (d Draft) Validate() error {
	var missing []string
	if d.Name == "" {
		missing = append(missing, "name")
	}
	if d.Category == "" {
		missing = append(missing, "category")
	}
	if d.Status == "" {
		missing = append(missing, "status")
	}
	if d.Price < 0 {
		missing = append(missing, "price")
	}
	if d.Quantity < 0 {
		missing = append(missing, "quantity")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
