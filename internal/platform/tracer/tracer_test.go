package tracer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestToOTelAttributes(t *testing.T) {
	got := toOTelAttributes([]Attribute{
		String(AttrPostalCode, "01310100"),
		Bool("found", true),
		Int(AttrFieldsWrote, 4),
		Duration("elapsed", 1500*time.Millisecond),
		{Key: "ignored", Value: struct{}{}},
	})

	assert.Equal(t, []attribute.KeyValue{
		attribute.String(AttrPostalCode, "01310100"),
		attribute.Bool("found", true),
		attribute.Int(AttrFieldsWrote, 4),
		attribute.Int64("elapsed", 1500),
	}, got)
	assert.Nil(t, toOTelAttributes(nil))
}

func TestTracers(t *testing.T) {
	ctx := context.Background()

	for name, tr := range map[string]Tracer{
		"noop": NewNoop(),
		"otel": NewOTel(WithOTelTracer(noop.NewTracerProvider().Tracer("test"))),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, span := tr.Start(ctx, SpanFillFlow, String(AttrLookupID, "abc"))
				span.SetAttributes(String(AttrOutcome, "filled"))
				span.AddEvent(EventFieldsWritten, Int(AttrFieldsWrote, 4))
				span.End(errors.New("boom"))
			})
		})
	}
}
