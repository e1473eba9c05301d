package e2e

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"strings"
	"sync"

	"cadastro/internal/form"
	"cadastro/internal/form/page"
	"cadastro/internal/platform/logger"
	"cadastro/internal/postal/viacep"
	"cadastro/internal/postal/viacep/fake"
)

// TestContext holds state between test steps
type TestContext struct {
	Service *fake.Server
	Server  *httptest.Server
	Page    *page.Memory
	Form    *form.Form
	Layout  form.Layout
	Logger  *slog.Logger

	mu      sync.Mutex
	results []form.Result
	initErr error
}

// NewTestContext starts a fresh fake ViaCEP service and an empty registration page. The
// form is initialized by a step so scenarios can shape the page first.
func NewTestContext() *TestContext {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if os.Getenv("E2E_VERBOSE") != "" {
		log = logger.NewWithWriter(os.Stdout, slog.LevelDebug)
	}
	svc := fake.New(log)
	return &TestContext{
		Service: svc,
		Server:  httptest.NewServer(svc.Router()),
		Page:    page.NewRegistrationForm(),
		Layout:  form.DefaultLayout(),
		Logger:  log,
	}
}

// Close stops the fake service after any pending lookups.
func (tc *TestContext) Close() {
	if tc == nil || tc.Server == nil {
		return
	}
	if tc.Form != nil {
		tc.Form.Wait()
	}
	tc.Server.Close()
	tc.Server = nil
}

func (tc *TestContext) initForm(opts ...form.Option) error {
	opts = append(opts, form.WithResultHook(tc.recordResult))
	tc.Form, tc.initErr = form.Init(form.Collaborators{
		Fields: tc.Page,
		Events: tc.Page,
		Lookup: viacep.New(tc.Server.URL),
		Logger: tc.Logger,
	}, opts...)
	return tc.initErr
}

func (tc *TestContext) recordResult(r form.Result) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.results = append(tc.results, r)
}

func (tc *TestContext) lastResult() (form.Result, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	if len(tc.results) == 0 {
		return form.Result{}, fmt.Errorf("no postal lookup has finished")
	}
	return tc.results[len(tc.results)-1], nil
}

func (tc *TestContext) value(name string) (string, error) {
	id := fieldID(name)
	v, ok := tc.Page.Value(id)
	if !ok {
		return "", fmt.Errorf("no field %s on page", id)
	}
	return v, nil
}

func (tc *TestContext) wait(ctx context.Context) error {
	if tc.Form == nil {
		return fmt.Errorf("form not initialized")
	}
	done := make(chan struct{})
	go func() {
		tc.Form.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func fieldID(name string) form.FieldID {
	return form.FieldID("id_" + name)
}

func newPage(ids ...form.FieldID) *page.Memory {
	return page.NewMemory(ids...)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
