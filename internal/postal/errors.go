package postal

import (
	"errors"
	"fmt"
)

// Category is the normalized failure taxonomy for lookups. Backends classify their own
// failures into these so the fill flow never inspects raw messages.
type Category string

const (
	// CategoryNotFound means the service answered and has no such code.
	CategoryNotFound Category = "not_found"
	// CategoryInvalidCode means the code was rejected before or by the service.
	CategoryInvalidCode Category = "invalid_code"
	// CategoryTransport covers network failures and unexpected status codes.
	CategoryTransport Category = "transport"
	// CategoryTimeout means the caller's deadline passed.
	CategoryTimeout Category = "timeout"
	// CategoryBadData means the payload could not be decoded.
	CategoryBadData Category = "bad_data"
)

// LookupError wraps a failed lookup.
type LookupError struct {
	Category   Category
	Backend    string
	PostalCode string
	Message    string
	Underlying error
}

func (e *LookupError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("postal lookup %s [%s] %s: %s: %v", e.Backend, e.Category, e.PostalCode, e.Message, e.Underlying)
	}
	return fmt.Sprintf("postal lookup %s [%s] %s: %s", e.Backend, e.Category, e.PostalCode, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Underlying
}

// NewLookupError builds a categorized lookup failure.
func NewLookupError(category Category, backend, code, message string, underlying error) *LookupError {
	return &LookupError{
		Category:   category,
		Backend:    backend,
		PostalCode: code,
		Message:    message,
		Underlying: underlying,
	}
}

// GetCategory extracts the category of err. Errors that are not LookupErrors count as
// transport failures.
func GetCategory(err error) Category {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return CategoryTransport
}

// IsNotFound reports whether err says the code does not exist.
func IsNotFound(err error) bool {
	return err != nil && GetCategory(err) == CategoryNotFound
}
