package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadastro/internal/form"
	"cadastro/internal/form/page"
	"cadastro/internal/postal/viacep"
	"cadastro/internal/postal/viacep/fake"
)

func newSession(t *testing.T) (*page.Memory, *form.Form, *bytes.Buffer, *console) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := fake.New(logger)
	for _, a := range fake.SampleAddresses() {
		svc.Add(a)
	}
	ts := httptest.NewServer(svc.Router())
	t.Cleanup(ts.Close)

	buf := &bytes.Buffer{}
	out := newConsole(buf)
	p := page.NewRegistrationForm()
	f, err := form.Init(form.Collaborators{
		Fields: p,
		Events: p,
		Lookup: viacep.New(ts.URL),
		Logger: logger,
	}, form.WithResultHook(out.printResult))
	require.NoError(t, err)
	return p, f, buf, out
}

func TestRunCommands(t *testing.T) {
	p, f, buf, out := newSession(t)

	script := strings.Join([]string{
		"set nome_completo Maria da Silva",
		"type cpf 12345678901",
		"type telefone 11912345678",
		"type cep 01310100",
		"blur cep",
		"wait",
		"check",
		"show",
		"quit",
		"type cpf 999",
	}, "\n")

	require.NoError(t, runCommands(context.Background(), strings.NewReader(script), out, p, f))
	f.Wait()

	v, _ := p.Value("id_cpf")
	assert.Equal(t, "123.456.789-01", v)
	v, _ = p.Value("id_logradouro")
	assert.Equal(t, "Avenida Paulista", v)

	printed := buf.String()
	assert.Contains(t, printed, "outcome=filled")
	assert.Contains(t, printed, "ok\n")
	assert.Contains(t, printed, `id_uf                "SP"`)
}

func TestRunCommands_Errors(t *testing.T) {
	p, f, buf, out := newSession(t)

	script := "type nope 1\nblur nope\nbogus\ncheck\n"
	require.NoError(t, runCommands(context.Background(), strings.NewReader(script), out, p, f))

	printed := buf.String()
	assert.Contains(t, printed, "error: no field id_nope on page")
	assert.Contains(t, printed, "error: nome_completo: is required")
}

func TestRunCommands_StopsOnCancel(t *testing.T) {
	p, f, _, out := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()
	assert.NoError(t, runCommands(ctx, r, out, p, f))
}

func TestFieldID(t *testing.T) {
	assert.Equal(t, form.FieldID("id_cep"), fieldID("cep"))
	assert.Equal(t, form.FieldID("id_cep"), fieldID("id_cep"))
	assert.Equal(t, form.FieldID(""), fieldID(""))
}
