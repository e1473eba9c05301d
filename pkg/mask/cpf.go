package mask

// CPFDigits is the number of digits in a CPF.
const CPFDigits = 11

// CPF renders raw as a CPF in the 000.000.000-00 layout.
//
// Up to three digits are returned bare. A period follows the third and sixth digits once
// the next group has started, and the hyphen precedes the check digits once more than nine
// digits are present.
func CPF(raw string) string {
	d := digitsUpTo(raw, CPFDigits)
	switch n := len(d); {
	case n <= 3:
		return d
	case n <= 6:
		return d[:3] + "." + d[3:]
	case n <= 9:
		return d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
}
