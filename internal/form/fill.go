package form

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"cadastro/internal/form/metrics"
	"cadastro/internal/platform/tracer"
	"cadastro/internal/postal"
)

// Outcome is how one run of the postal fill flow ended:
//
//	Idle -> Validating -> Idle                       skipped: not exactly 8 digits
//	Idle -> Validating -> Fetching -> Filled         -> Idle
//	                               -> NotFound       -> Idle
//	                               -> TransportError -> Idle
//
// Intermediate states are never observable; a run reports only its Outcome.
type Outcome string

const (
	OutcomeSkipped        Outcome = "skipped"
	OutcomeFilled         Outcome = "filled"
	OutcomeNotFound       Outcome = "not_found"
	OutcomeTransportError Outcome = "transport_error"
)

// Result describes one run of the fill flow.
type Result struct {
	Outcome    Outcome
	LookupID   string    // empty when skipped
	PostalCode string    // digits read from the postal field
	Written    []FieldID // dependent fields that were replaced
	Err        error     // the lookup failure behind NotFound and TransportError
}

// Filler runs the postal fill flow. Runs are independent: there is no cache, no
// de-duplication and no cancellation. Concurrent runs race and the last write wins.
type Filler struct {
	fields  Fields
	lookup  AddressLookup
	layout  Layout
	logger  *slog.Logger
	tracer  tracer.Tracer
	metrics *metrics.Metrics
	onDone  func(Result)

	inflight sync.WaitGroup
}

// Run executes the flow on the calling goroutine and returns once the lookup answers.
// The dependent fields are only written when the service reports the address found.
func (f *Filler) Run(ctx context.Context) Result {
	raw, ok := f.fields.Value(f.layout.CEP)
	if !ok {
		return f.finish(Result{Outcome: OutcomeSkipped})
	}
	code, ok := postal.NormalizeCode(raw)
	if !ok {
		f.logger.DebugContext(ctx, "postal fill skipped", "field", f.layout.CEP, "digits", len(code))
		return f.finish(Result{Outcome: OutcomeSkipped, PostalCode: code})
	}

	res := Result{LookupID: uuid.NewString(), PostalCode: code}
	ctx, span := f.tracer.Start(ctx, tracer.SpanFillFlow,
		tracer.String(tracer.AttrLookupID, res.LookupID),
		tracer.String(tracer.AttrPostalCode, code),
	)

	f.metrics.LookupStarted()
	start := time.Now()
	addr, err := f.lookup.Lookup(ctx, code)
	elapsed := time.Since(start)
	f.metrics.LookupFinished()
	f.metrics.ObserveLookupDuration(elapsed.Seconds())

	switch {
	case err != nil && postal.IsNotFound(err):
		res.Outcome, res.Err = OutcomeNotFound, err
	case err != nil:
		res.Outcome, res.Err = OutcomeTransportError, err
		span.SetAttributes(tracer.String(tracer.AttrCategory, string(postal.GetCategory(err))))
	case addr == nil:
		res.Outcome = OutcomeTransportError
		res.Err = postal.NewLookupError(postal.CategoryBadData, "", code, "lookup returned no address", nil)
	default:
		res.Outcome = OutcomeFilled
		res.Written = f.write(addr)
		span.AddEvent(tracer.EventFieldsWritten, tracer.Int(tracer.AttrFieldsWrote, len(res.Written)))
	}

	span.SetAttributes(tracer.String(tracer.AttrOutcome, string(res.Outcome)))
	span.End(spanError(res))

	attrs := []any{
		"lookup_id", res.LookupID,
		"cep", code,
		"outcome", res.Outcome,
		"fields_written", len(res.Written),
		"duration_ms", elapsed.Milliseconds(),
	}
	if res.Err != nil {
		attrs = append(attrs, "error", res.Err)
	}
	f.logger.InfoContext(ctx, "postal fill finished", attrs...)
	return f.finish(res)
}

// Trigger starts Run on a new goroutine and returns immediately. The run is detached from
// ctx's cancellation: once started it finishes or waits on the service forever.
func (f *Filler) Trigger(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	f.inflight.Add(1)
	go func() {
		defer f.inflight.Done()
		f.Run(ctx)
	}()
}

// Wait blocks until every triggered run has finished.
func (f *Filler) Wait() {
	f.inflight.Wait()
}

func (f *Filler) write(addr *postal.Address) []FieldID {
	var written []FieldID
	for _, t := range f.layout.addressTargets(addr) {
		if t.id == "" {
			continue
		}
		if f.fields.SetValue(t.id, t.value) {
			written = append(written, t.id)
		}
	}
	return written
}

func (f *Filler) finish(res Result) Result {
	f.metrics.RecordOutcome(string(res.Outcome))
	if f.onDone != nil {
		f.onDone(res)
	}
	return res
}

// spanError marks transport failures on the span. Not-found answers are a normal result.
func spanError(res Result) error {
	if res.Outcome == OutcomeTransportError {
		return res.Err
	}
	return nil
}
