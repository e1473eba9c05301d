package mask

// DateDigits is the number of digits in a dd/mm/aaaa date.
const DateDigits = 8

// Date renders raw as a dd/mm/aaaa date. It does not check that the day or month exist;
// the form parses the final value on submission.
func Date(raw string) string {
	d := digitsUpTo(raw, DateDigits)
	switch n := len(d); {
	case n <= 2:
		return d
	case n <= 4:
		return d[:2] + "/" + d[2:]
	default:
		return d[:2] + "/" + d[2:4] + "/" + d[4:]
	}
}
