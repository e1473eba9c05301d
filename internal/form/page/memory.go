// Package page provides an in-memory stand-in for a browser page: named text fields plus
// the events the form listens to.
package page

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"cadastro/internal/form"
)

// Memory implements form.Fields and form.EventSource. Field writes are serialized, so
// concurrent postal lookups may finish in any order without corrupting values.
type Memory struct {
	mu        sync.RWMutex
	values    map[form.FieldID]string
	listeners map[form.Binding][]form.Handler
}

// NewMemory creates a page holding the given fields, all empty.
func NewMemory(ids ...form.FieldID) *Memory {
	m := &Memory{
		values:    make(map[form.FieldID]string, len(ids)),
		listeners: make(map[form.Binding][]form.Handler),
	}
	for _, id := range ids {
		m.values[id] = ""
	}
	return m
}

// NewRegistrationForm creates a page with every field of form.DefaultLayout.
func NewRegistrationForm() *Memory {
	l := form.DefaultLayout()
	return NewMemory(l.Name, l.CPF, l.Phone, l.BirthDate, l.CEP, l.Street, l.Neighborhood, l.City, l.State)
}

// AddField adds an empty field if it is not already present.
func (m *Memory) AddField(id form.FieldID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[id]; !ok {
		m.values[id] = ""
	}
}

func (m *Memory) Value(id form.FieldID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[id]
	return v, ok
}

func (m *Memory) SetValue(id form.FieldID, value string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[id]; !ok {
		return false
	}
	m.values[id] = value
	return true
}

// Listen adds h to the handlers of kind on field id. The field must exist.
func (m *Memory) Listen(id form.FieldID, kind form.EventKind, h form.Handler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[id]; !ok {
		return fmt.Errorf("no field %s on page", id)
	}
	b := form.Binding{Field: id, Kind: kind}
	m.listeners[b] = append(m.listeners[b], h)
	return nil
}

// Type replaces the field's text, as a user edit would, then fires TextChanged.
func (m *Memory) Type(ctx context.Context, id form.FieldID, text string) error {
	if !m.SetValue(id, text) {
		return fmt.Errorf("no field %s on page", id)
	}
	m.Fire(ctx, id, form.TextChanged)
	return nil
}

// Blur fires FocusLost on the field.
func (m *Memory) Blur(ctx context.Context, id form.FieldID) error {
	if _, ok := m.Value(id); !ok {
		return fmt.Errorf("no field %s on page", id)
	}
	m.Fire(ctx, id, form.FocusLost)
	return nil
}

// Fire runs the handlers registered for kind on id, in registration order, on the calling
// goroutine.
func (m *Memory) Fire(ctx context.Context, id form.FieldID, kind form.EventKind) {
	m.mu.RLock()
	handlers := append([]form.Handler(nil), m.listeners[form.Binding{Field: id, Kind: kind}]...)
	m.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, id)
	}
}

// Snapshot copies every field value.
func (m *Memory) Snapshot() map[form.FieldID]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.values)
}

var (
	_ form.Fields      = (*Memory)(nil)
	_ form.EventSource = (*Memory)(nil)
)
