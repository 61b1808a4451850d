package service

import (
	"errors"
	"strings"
)

var (
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrEmptyCart       = errors.New("cart must contain at least one item")
)

// ValidationError carries the notices that block a checkout submission.
type ValidationError struct {
	Notices []string
}

func (e *ValidationError) Error() string {
	return "checkout validation failed: " + strings.Join(e.Notices, "; ")
}

// IsValidation reports whether err was caused by rejected shopper input.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
