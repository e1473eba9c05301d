// Package viacep looks postal codes up on ViaCEP (https://viacep.com.br) or any service
// speaking the same GET /ws/{cep}/json/ protocol.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cadastro/internal/postal"
)

// Backend names this client in lookup errors.
const Backend = "viacep"

const (
	userAgent    = "cadastro-viacep/1.0"
	maxBodyBytes = 64 * 1024
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs ViaCEP lookups. It never retries and keeps no cache: every call issues
// exactly one request.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient HTTPDoer
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (for testing).
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout bounds each lookup. The default of zero waits for the service indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	return c
}

// response is the ViaCEP payload. Unknown codes come back as {"erro": true}; some
// deployments send the flag as the string "true".
type response struct {
	CEP         string   `json:"cep"`
	Logradouro  string   `json:"logradouro"`
	Complemento string   `json:"complemento"`
	Bairro      string   `json:"bairro"`
	Localidade  string   `json:"localidade"`
	UF          string   `json:"uf"`
	IBGE        string   `json:"ibge"`
	DDD         string   `json:"ddd"`
	Erro        flexBool `json:"erro"`
}

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "true":
		*b = true
	case "false", "null", "":
		*b = false
	default:
		return fmt.Errorf("erro flag %s is not a boolean", data)
	}
	return nil
}

// Lookup resolves code, which may carry punctuation, to an address.
//
// Failures are *postal.LookupError values: CategoryInvalidCode when code does not hold
// exactly eight digits (no request is sent), CategoryNotFound when the service reports the
// code unknown, CategoryTimeout, CategoryTransport or CategoryBadData otherwise.
func (c *Client) Lookup(ctx context.Context, code string) (*postal.Address, error) {
	digits, ok := postal.NormalizeCode(code)
	if !ok {
		return nil, postal.NewLookupError(postal.CategoryInvalidCode, Backend, digits,
			"postal code must have 8 digits", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, postal.NewLookupError(postal.CategoryTransport, Backend, digits,
			"failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, postal.NewLookupError(postal.CategoryTimeout, Backend, digits,
				"request timeout", err)
		}
		return nil, postal.NewLookupError(postal.CategoryTransport, Backend, digits,
			"failed to execute request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, postal.NewLookupError(postal.CategoryTransport, Backend, digits,
			"failed to read response body", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, postal.NewLookupError(postal.CategoryInvalidCode, Backend, digits,
			"service rejected postal code", nil)
	case http.StatusNotFound:
		return nil, postal.NewLookupError(postal.CategoryNotFound, Backend, digits,
			"postal code not found", nil)
	default:
		return nil, postal.NewLookupError(postal.CategoryTransport, Backend, digits,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var payload *response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, postal.NewLookupError(postal.CategoryBadData, Backend, digits,
			"failed to parse response", err)
	}
	if payload == nil {
		return nil, postal.NewLookupError(postal.CategoryBadData, Backend, digits,
			"empty response payload", nil)
	}
	if payload.Erro {
		return nil, postal.NewLookupError(postal.CategoryNotFound, Backend, digits,
			"postal code not found", nil)
	}

	return &postal.Address{
		PostalCode:   payload.CEP,
		Street:       payload.Logradouro,
		Complement:   payload.Complemento,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
		IBGE:         payload.IBGE,
		AreaCode:     payload.DDD,
	}, nil
}
