// Package tracer is a small tracing seam for the form flows.
//
// Callers depend on the Tracer and Span interfaces here instead of OpenTelemetry directly.
// NewOTel adapts the global OpenTelemetry provider; NewNoop is for tests and hosts that do
// not export traces.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span. A non-nil err marks it failed.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanFillFlow     = "form.postal_fill"
	SpanPostalLookup = "postal.lookup"
)

// Attribute keys.
const (
	AttrLookupID    = "lookup.id"
	AttrPostalCode  = "postal.code"
	AttrOutcome     = "fill.outcome"
	AttrCategory    = "lookup.error_category"
	AttrFieldsWrote = "fill.fields_written"
	AttrHTTPStatus  = "http.status_code"
)

// Event names.
const (
	EventFieldsWritten = "fields.written"
)
