package mask

import (
	"strconv"
	"strings"
)

// MoneyDigits caps money entry at the precision of the monetary columns (12 digits, two of
// them cents).
const MoneyDigits = 12

// MoneyPrefix precedes every rendered amount.
const MoneyPrefix = "R$ "

// Money renders raw as an amount in reais, reading the digits as cents the way a cash
// machine keypad does: "1234" becomes "R$ 12,34" and "100000" becomes "R$ 1.000,00".
// Input without digits renders as the empty string.
func Money(raw string) string {
	d := digitsUpTo(raw, MoneyDigits)
	if d == "" {
		return ""
	}

	d = strings.TrimLeft(d, "0")
	if len(d) < 3 {
		d = strings.Repeat("0", 3-len(d)) + d
	}
	whole, cents := d[:len(d)-2], d[len(d)-2:]

	return MoneyPrefix + groupThousands(whole) + "," + cents
}

// MoneyFromDecimal renders a stored decimal amount such as "150.00" or "150" as
// "R$ 150,00". Values that already carry the currency prefix are returned unchanged, and
// values that do not parse as a number are treated as keypad input.
func MoneyFromDecimal(value string) string {
	v := strings.TrimSpace(value)
	if v == "" || strings.Contains(v, strings.TrimSpace(MoneyPrefix)) {
		return value
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Money(v)
	}
	fixed := strconv.FormatFloat(f, 'f', 2, 64)
	return Money(strings.Replace(fixed, ".", "", 1))
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
