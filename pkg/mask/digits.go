// Package mask converts raw keystroke text into the punctuated display formats used by the
// registration form: CPF, CEP, phone, birth date and money.
//
// Every function here is total over arbitrary strings. Characters outside 0-9 are ignored,
// digits beyond a format's capacity are silently dropped, and punctuation is only emitted for
// segments the user has already started typing. Applying a mask to its own output returns
// the same output.
package mask

import "strings"

// Digits returns s with every character outside '0'-'9' removed.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// digitsUpTo extracts the digits of s and keeps at most n of them.
func digitsUpTo(s string, n int) string {
	d := Digits(s)
	if len(d) > n {
		return d[:n]
	}
	return d
}
