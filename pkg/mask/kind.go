package mask

import (
	"fmt"
	"regexp"
)

// Kind names one of the supported field formats.
type Kind string

const (
	KindCPF   Kind = "cpf"
	KindCEP   Kind = "cep"
	KindPhone Kind = "phone"
	KindDate  Kind = "date"
	KindMoney Kind = "money"
)

type format struct {
	apply     func(string) string
	maxDigits int
	complete  *regexp.Regexp
}

var formats = map[Kind]format{
	KindCPF:   {apply: CPF, maxDigits: CPFDigits, complete: regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)},
	KindCEP:   {apply: CEP, maxDigits: CEPDigits, complete: regexp.MustCompile(`^\d{5}-\d{3}$`)},
	KindPhone: {apply: Phone, maxDigits: PhoneDigits, complete: regexp.MustCompile(`^\(\d{2}\)\s\d\s\d{4}-\d{4}$`)},
	KindDate:  {apply: Date, maxDigits: DateDigits, complete: regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)},
	KindMoney: {apply: Money, maxDigits: MoneyDigits, complete: regexp.MustCompile(`^R\$ \d{1,3}(\.\d{3})*,\d{2}$`)},
}

// ParseKind resolves a format name such as "cpf" or "phone".
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if _, ok := formats[k]; !ok {
		return "", fmt.Errorf("unknown mask kind %q", s)
	}
	return k, nil
}

// Apply runs the mask for k over raw. Unknown kinds return raw unchanged.
func Apply(k Kind, raw string) string {
	f, ok := formats[k]
	if !ok {
		return raw
	}
	return f.apply(raw)
}

// MaxDigits reports how many digits the format for k holds, or 0 for unknown kinds.
func MaxDigits(k Kind) int {
	return formats[k].maxDigits
}

// Complete reports whether s is the fully punctuated final form for k.
func Complete(k Kind, s string) bool {
	f, ok := formats[k]
	if !ok {
		return false
	}
	return f.complete.MatchString(s)
}
