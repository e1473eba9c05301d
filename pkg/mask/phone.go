package mask

import "strings"

// PhoneDigits is the number of digits in a mobile phone number including the area code.
const PhoneDigits = 11

// Phone renders raw as (AA) M MMMM-EEEE, growing with the number of digits typed:
//
//	"1"           -> "1"
//	"11"          -> "(11)"
//	"119"         -> "(11) 9"
//	"1191234"     -> "(11) 9 1234"
//	"11912345678" -> "(11) 9 1234-5678"
//
// The third digit is always rendered as the leading mobile digit, followed by a block of up
// to four digits and, once started, the final block of up to four digits.
func Phone(raw string) string {
	d := digitsUpTo(raw, PhoneDigits)
	if len(d) < 2 {
		return d
	}

	var b strings.Builder
	b.Grow(len("(00) 0 0000-0000"))
	b.WriteString("(")
	b.WriteString(d[:2])
	b.WriteString(")")
	if len(d) > 2 {
		b.WriteString(" ")
		b.WriteByte(d[2])
	}
	if len(d) > 3 {
		b.WriteString(" ")
		b.WriteString(d[3:min(len(d), 7)])
	}
	if len(d) > 7 {
		b.WriteString("-")
		b.WriteString(d[7:])
	}
	return b.String()
}
