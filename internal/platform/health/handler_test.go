package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestStatus(t *testing.T) {
	lookups := 0
	h := New("viacep-fake", WithStats(func() map[string]int {
		lookups++
		return map[string]int{"records": 4, "lookups": lookups}
	}))

	rec := serve(h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var st Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "viacep-fake", st.Service)
	assert.Equal(t, map[string]int{"records": 4, "lookups": 1}, st.Stats)

	rec = serve(h, "/health")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Stats["lookups"])
}

func TestStatus_WithoutStats(t *testing.T) {
	rec := serve(New("svc"), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "stats")
}

func TestLive(t *testing.T) {
	assert.Equal(t, http.StatusNoContent, serve(New("svc"), "/health/live").Code)
}

func TestReady(t *testing.T) {
	h := New("viacep-fake")
	h.RegisterCheck("records", func() error { return nil })

	rec := serve(h, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ready":true,"checks":{"records":"ok"}}`, rec.Body.String())

	h.RegisterCheck("records", func() error { return errors.New("no addresses loaded") })
	h.RegisterCheck("disk", func() error { return nil })
	rec = serve(h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"ready":false,"checks":{"disk":"ok","records":"no addresses loaded"}}`, rec.Body.String())
}
