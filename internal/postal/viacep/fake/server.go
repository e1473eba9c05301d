// Package fake is an in-process ViaCEP stand-in for local development and end-to-end tests.
//
// It speaks the same GET /ws/{cep}/json/ protocol as the real service: known codes return
// the address payload, unknown codes return {"erro": true} with status 200, and anything
// that is not exactly eight digits gets a 400.
package fake

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"cadastro/internal/platform/health"
	"cadastro/internal/platform/httputil"
	"cadastro/internal/platform/middleware"
	"cadastro/internal/postal"
	dErrors "cadastro/pkg/domain-errors"
	"cadastro/pkg/mask"
)

// Server holds the fake's records and counts the lookups it receives.
type Server struct {
	mu       sync.RWMutex
	records  map[string]postal.Address
	statuses map[string]int
	hits     map[string]int
	total    int
	delay    time.Duration
	logger   *slog.Logger
}

// New creates an empty fake.
func New(logger *slog.Logger) *Server {
	return &Server{
		records:  make(map[string]postal.Address),
		statuses: make(map[string]int),
		hits:     make(map[string]int),
		logger:   logger,
	}
}

// Add registers an address under the digits of its PostalCode.
func (s *Server) Add(a postal.Address) {
	code := mask.Digits(a.PostalCode)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[code] = a
}

// FailWith makes lookups of code answer with the given HTTP status and no body.
func (s *Server) FailWith(code string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[mask.Digits(code)] = status
}

// SetDelay holds every response for d before answering.
func (s *Server) SetDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = d
}

// Requests reports how many lookups the fake has received.
func (s *Server) Requests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}

// RequestsFor reports how many lookups named code.
func (s *Server) RequestsFor(code string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[mask.Digits(code)]
}

// Router exposes the fake over chi.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))

	h := health.New("viacep-fake", health.WithStats(s.stats))
	h.RegisterCheck("records", s.checkRecords)
	h.Register(r)

	r.Get("/ws/{cep}/json", s.handleLookup)
	r.Get("/ws/{cep}/json/", s.handleLookup)
	return r
}

type payload struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	IBGE        string `json:"ibge"`
	DDD         string `json:"ddd"`
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	cep := chi.URLParam(r, "cep")

	s.mu.Lock()
	s.total++
	s.hits[cep]++
	status, failing := s.statuses[cep]
	record, found := s.records[cep]
	delay := s.delay
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if len(cep) != mask.CEPDigits || mask.Digits(cep) != cep {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "postal code must have 8 digits"))
		return
	}
	if failing {
		w.WriteHeader(status)
		return
	}
	if !found {
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"erro": true})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, payload{
		CEP:         mask.CEP(cep),
		Logradouro:  record.Street,
		Complemento: record.Complement,
		Bairro:      record.Neighborhood,
		Localidade:  record.City,
		UF:          record.State,
		IBGE:        record.IBGE,
		DDD:         record.AreaCode,
	})
}

func (s *Server) stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"records":        len(s.records),
		"failing_codes":  len(s.statuses),
		"lookups":        s.total,
		"distinct_codes": len(s.hits),
	}
}

func (s *Server) checkRecords() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.records) == 0 {
		return errors.New("no addresses loaded")
	}
	return nil
}

// SampleAddresses are the records the standalone fake starts with.
func SampleAddresses() []postal.Address {
	return []postal.Address{
		{PostalCode: "01310-100", Street: "Avenida Paulista", Complement: "de 612 a 1510 - lado par",
			Neighborhood: "Bela Vista", City: "São Paulo", State: "SP", IBGE: "3550308", AreaCode: "11"},
		{PostalCode: "20040-020", Street: "Praça Pio X", Neighborhood: "Centro",
			City: "Rio de Janeiro", State: "RJ", IBGE: "3304557", AreaCode: "21"},
		{PostalCode: "70040-010", Street: "Esplanada dos Ministérios", Neighborhood: "Zona Cívico-Administrativa",
			City: "Brasília", State: "DF", IBGE: "5300108", AreaCode: "61"},
		// Single-code towns have no street or neighborhood.
		{PostalCode: "78175-000", City: "Poconé", State: "MT", IBGE: "5106505", AreaCode: "65"},
	}
}
