package form

import "context"

// FieldID identifies an input element on the page, e.g. "id_cpf".
type FieldID string

// EventKind is a UI notification the form reacts to.
type EventKind string

const (
	// TextChanged fires after every edit of a field's text.
	TextChanged EventKind = "textChanged"
	// FocusLost fires when a field loses focus.
	FocusLost EventKind = "focusLost"
)

// Handler reacts to an event on field id. Handlers run on the caller's goroutine and must
// return promptly; the postal lookup hands its network call to another goroutine.
type Handler func(ctx context.Context, id FieldID)

// Fields reads and writes the current text of page inputs.
type Fields interface {
	// Value returns the field's text and whether the field exists.
	Value(id FieldID) (string, bool)
	// SetValue replaces the field's whole text. It reports false when the field does not
	// exist.
	SetValue(id FieldID, value string) bool
}

// EventSource delivers UI notifications to registered handlers.
type EventSource interface {
	Listen(id FieldID, kind EventKind, h Handler) error
}
