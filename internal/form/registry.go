package form

import (
	"context"
	"fmt"
	"sort"
)

// Binding is a (field, event) pair with one registered handler.
type Binding struct {
	Field FieldID
	Kind  EventKind
}

// Registry owns the handlers Init creates. Hosts attach it to a real event source with Bind;
// tests can call Dispatch directly without a page.
type Registry struct {
	handlers map[Binding]Handler
}

func newRegistry() *Registry {
	return &Registry{handlers: make(map[Binding]Handler)}
}

func (r *Registry) register(id FieldID, kind EventKind, h Handler) error {
	b := Binding{Field: id, Kind: kind}
	if _, exists := r.handlers[b]; exists {
		return fmt.Errorf("handler for %s on %s already registered", kind, id)
	}
	r.handlers[b] = h
	return nil
}

// Handler returns the handler for kind on field id.
func (r *Registry) Handler(id FieldID, kind EventKind) (Handler, bool) {
	h, ok := r.handlers[Binding{Field: id, Kind: kind}]
	return h, ok
}

// Dispatch invokes the handler for kind on field id and reports whether one exists.
func (r *Registry) Dispatch(ctx context.Context, id FieldID, kind EventKind) bool {
	h, ok := r.Handler(id, kind)
	if !ok {
		return false
	}
	h(ctx, id)
	return true
}

// Bindings lists every registered pair ordered by field then event kind.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.handlers))
	for b := range r.handlers {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

// Bind registers every handler with src.
func (r *Registry) Bind(src EventSource) error {
	for _, b := range r.Bindings() {
		if err := src.Listen(b.Field, b.Kind, r.handlers[b]); err != nil {
			return fmt.Errorf("listening for %s on %s: %w", b.Kind, b.Field, err)
		}
	}
	return nil
}
