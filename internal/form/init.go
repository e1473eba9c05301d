// Package form wires the field masks and the postal fill flow to a page.
//
// The page itself stays behind three collaborators: Fields (read and replace field text),
// EventSource (deliver textChanged and focusLost) and AddressLookup (the postal service).
// Init builds one handler per (field, event) pair into a Registry and binds it to the
// event source, so a host calls Init once and tests can dispatch handlers directly.
package form

import (
	"context"
	"io"
	"log/slog"

	"cadastro/internal/form/metrics"
	"cadastro/internal/platform/tracer"
	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/mask"
)

// Collaborators is what the host page provides.
type Collaborators struct {
	Fields Fields
	Events EventSource
	// Lookup is required when the layout's postal field is on the page.
	Lookup AddressLookup
	Logger *slog.Logger
}

type settings struct {
	layout            Layout
	lookupOnKeystroke bool
	tracer            tracer.Tracer
	metrics           *metrics.Metrics
	onResult          func(Result)
}

// Option customizes Init.
type Option func(*settings)

// WithLayout replaces DefaultLayout.
func WithLayout(l Layout) Option {
	return func(s *settings) {
		s.layout = l
	}
}

// WithLookupOnKeystroke also runs the postal fill flow from the postal field's
// textChanged handler, after masking. Focus loss still triggers it too.
func WithLookupOnKeystroke() Option {
	return func(s *settings) {
		s.lookupOnKeystroke = true
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *settings) {
		s.tracer = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithResultHook is called with the Result of every fill flow run, on the goroutine that
// ran it.
func WithResultHook(fn func(Result)) Option {
	return func(s *settings) {
		s.onResult = fn
	}
}

// Form is an initialized page.
type Form struct {
	registry *Registry
	filler   *Filler
	fields   Fields
	layout   Layout
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Init registers the handlers for every layout field present on the page and binds them to
// c.Events. Money fields holding a stored decimal are rendered in the money format
// straight away.
func Init(c Collaborators, opts ...Option) (*Form, error) {
	s := settings{layout: DefaultLayout()}
	for _, opt := range opts {
		opt(&s)
	}
	if s.tracer == nil {
		s.tracer = tracer.NewNoop()
	}
	if c.Fields == nil || c.Events == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "form needs both fields and events")
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f := &Form{
		registry: newRegistry(),
		fields:   c.Fields,
		layout:   s.layout,
		metrics:  s.metrics,
		logger:   logger,
	}

	_, hasCEP := f.present(s.layout.CEP)
	if hasCEP {
		if c.Lookup == nil {
			return nil, dErrors.Newf(dErrors.CodeInvalidInput, "field %s needs a postal lookup", s.layout.CEP)
		}
		f.filler = &Filler{
			fields:  c.Fields,
			lookup:  c.Lookup,
			layout:  s.layout,
			logger:  logger,
			tracer:  s.tracer,
			metrics: s.metrics,
			onDone:  s.onResult,
		}
	}

	for _, mf := range s.layout.maskedFields() {
		current, ok := f.present(mf.id)
		if !ok {
			continue
		}
		if mf.kind == mask.KindMoney {
			if initial := mask.MoneyFromDecimal(current); initial != current {
				c.Fields.SetValue(mf.id, initial)
			}
		}

		h := f.maskHandler(mf.kind)
		if mf.id == s.layout.CEP && s.lookupOnKeystroke {
			h = f.maskThenFill(h)
		}
		if err := f.registry.register(mf.id, TextChanged, h); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, err.Error())
		}
	}

	if hasCEP {
		if err := f.registry.register(s.layout.CEP, FocusLost, f.fillHandler); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, err.Error())
		}
	}

	if err := f.registry.Bind(c.Events); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "binding form handlers")
	}

	logger.Debug("form initialized", "bindings", len(f.registry.handlers), "postal_lookup", hasCEP)
	return f, nil
}

// Registry exposes the handlers Init registered.
func (f *Form) Registry() *Registry {
	return f.registry
}

// Filler returns the postal fill flow, or nil when the page has no postal field.
func (f *Form) Filler() *Filler {
	return f.filler
}

// Wait blocks until every postal lookup started so far has finished.
func (f *Form) Wait() {
	if f.filler != nil {
		f.filler.Wait()
	}
}

// Submission snapshots the current field values for a format check.
func (f *Form) Submission() Submission {
	return Collect(f.fields, f.layout)
}

func (f *Form) present(id FieldID) (string, bool) {
	if id == "" {
		return "", false
	}
	return f.fields.Value(id)
}

// maskHandler rewrites the field with its masked text. Re-running it on its own output
// changes nothing, so duplicate events are harmless.
func (f *Form) maskHandler(kind mask.Kind) Handler {
	return func(_ context.Context, id FieldID) {
		current, ok := f.fields.Value(id)
		if !ok {
			return
		}
		if masked := mask.Apply(kind, current); masked != current {
			f.fields.SetValue(id, masked)
			f.metrics.RecordMaskRewrite(string(kind))
		}
	}
}

func (f *Form) maskThenFill(maskFn Handler) Handler {
	return func(ctx context.Context, id FieldID) {
		maskFn(ctx, id)
		f.fillHandler(ctx, id)
	}
}

func (f *Form) fillHandler(ctx context.Context, _ FieldID) {
	f.filler.Trigger(ctx)
}
