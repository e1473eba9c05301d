package form

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks AddressLookup

import (
	"context"

	"cadastro/internal/postal"
)

// AddressLookup resolves an 8-digit postal code. Failures should be *postal.LookupError
// values; anything else is treated as a transport failure.
type AddressLookup interface {
	Lookup(ctx context.Context, code string) (*postal.Address, error)
}
