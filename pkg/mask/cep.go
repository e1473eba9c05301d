package mask

// CEPDigits is the number of digits in a postal code.
const CEPDigits = 8

// CEP renders raw as a postal code in the 00000-000 layout. Five digits or fewer are
// returned without the hyphen.
func CEP(raw string) string {
	d := digitsUpTo(raw, CEPDigits)
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}
