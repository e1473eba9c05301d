// Package postal holds the address record produced by postal-code lookups and the
// normalized errors every lookup backend reports.
package postal

import "cadastro/pkg/mask"

// Address is a found lookup result. Fields the service left out are empty strings.
type Address struct {
	PostalCode   string
	Street       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	IBGE         string // municipality code
	AreaCode     string // phone DDD
}

// NormalizeCode reduces input to the digits of a postal code and reports whether it has
// exactly eight of them. Excess digits are not truncated: "012345678" is not a code.
func NormalizeCode(input string) (string, bool) {
	d := mask.Digits(input)
	return d, len(d) == mask.CEPDigits
}
