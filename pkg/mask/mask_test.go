package mask

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// awkward covers input shapes keystrokes and paste events actually produce.
var awkward = []string{
	"",
	"   ",
	"abc",
	"12a34b56",
	"123.456.789-01",
	"(11) 9 1234-5678",
	"R$ 1.234,56",
	"٣٤٥", // Arabic-Indic digits are not 0-9
	"１２３", // fullwidth digits are not 0-9
	"São Paulo 01310-100",
	"\x00\xff12",
	"99999999999999999999999",
}

func TestDigits(t *testing.T) {
	t.Run("keeps only ASCII digits", func(t *testing.T) {
		assert.Equal(t, "", Digits(""))
		assert.Equal(t, "123456", Digits("12a34b56"))
		assert.Equal(t, "12345678901", Digits("123.456.789-01"))
		assert.Equal(t, "", Digits("٣٤٥"))
		assert.Equal(t, "", Digits("１２３"))
		assert.Equal(t, "12", Digits("\x00\xff12"))
	})

	t.Run("is idempotent and never grows", func(t *testing.T) {
		property := func(s string) bool {
			d := Digits(s)
			return Digits(d) == d && len(d) <= len(s)
		}
		require.NoError(t, quick.Check(property, nil))
		for _, s := range awkward {
			assert.True(t, property(s), "input %q", s)
		}
	})

	t.Run("output holds digits only", func(t *testing.T) {
		property := func(s string) bool {
			for _, c := range Digits(s) {
				if c < '0' || c > '9' {
					return false
				}
			}
			return true
		}
		require.NoError(t, quick.Check(property, nil))
	})
}

func TestCPF(t *testing.T) {
	t.Run("progressive rendering by digit count", func(t *testing.T) {
		want := []string{
			"",
			"1",
			"12",
			"123",
			"123.4",
			"123.45",
			"123.456",
			"123.456.7",
			"123.456.78",
			"123.456.789",
			"123.456.789-0",
			"123.456.789-01",
		}
		full := "12345678901"
		for n := 0; n <= len(full); n++ {
			assert.Equal(t, want[n], CPF(full[:n]), "digits %q", full[:n])
		}
	})

	t.Run("drops digits beyond eleven", func(t *testing.T) {
		assert.Equal(t, "123.456.789-01", CPF("123456789012345"))
	})

	t.Run("ignores existing punctuation", func(t *testing.T) {
		assert.Equal(t, "123.456.789-01", CPF("123.456.789-01"))
		assert.Equal(t, "123.456.7", CPF("123-45.67"))
	})
}

func TestCEP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0", "0"},
		{"12345", "12345"},
		{"123456", "12345-6"},
		{"12345678", "12345-678"},
		{"123456789", "12345-678"},
		{"01310100", "01310-100"},
		{"01310-100", "01310-100"},
		{"cep: 01310 100", "01310-100"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CEP(tt.in))
		})
	}
}

func TestPhone(t *testing.T) {
	t.Run("progressive rendering for every digit count", func(t *testing.T) {
		want := []string{
			"",
			"1",
			"(11)",
			"(11) 9",
			"(11) 9 1",
			"(11) 9 12",
			"(11) 9 123",
			"(11) 9 1234",
			"(11) 9 1234-5",
			"(11) 9 1234-56",
			"(11) 9 1234-567",
			"(11) 9 1234-5678",
		}
		full := "11912345678"
		for n := 0; n <= len(full); n++ {
			assert.Equal(t, want[n], Phone(full[:n]), "digits %q", full[:n])
		}
	})

	t.Run("drops digits beyond eleven", func(t *testing.T) {
		assert.Equal(t, "(11) 9 1234-5678", Phone("119123456789999"))
	})

	t.Run("never renders empty punctuation", func(t *testing.T) {
		for n := 0; n <= PhoneDigits; n++ {
			out := Phone("11912345678"[:n])
			assert.NotContains(t, out, "()")
			assert.NotContains(t, out, "  ")
			assert.NotRegexp(t, `[ -]$`, out)
		}
	})

	t.Run("reformats already masked text", func(t *testing.T) {
		assert.Equal(t, "(21) 9 8765-4321", Phone("(21) 9 8765-4321"))
		assert.Equal(t, "(21) 9 8765", Phone("(21) 98765"))
	})
}

func TestDate(t *testing.T) {
	want := []string{"", "1", "12", "12/0", "12/03", "12/03/1", "12/03/19", "12/03/199", "12/03/1990"}
	full := "12031990"
	for n := 0; n <= len(full); n++ {
		assert.Equal(t, want[n], Date(full[:n]), "digits %q", full[:n])
	}
	assert.Equal(t, "12/03/1990", Date("12/03/19901"))
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"R$ ", ""},
		{"0", "R$ 0,00"},
		{"5", "R$ 0,05"},
		{"50", "R$ 0,50"},
		{"1234", "R$ 12,34"},
		{"100000", "R$ 1.000,00"},
		{"00012345", "R$ 123,45"},
		{"123456789012", "R$ 1.234.567.890,12"},
		{"1234567890123", "R$ 1.234.567.890,12"},
		{"R$ 1.000,00", "R$ 1.000,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.in))
		})
	}
}

func TestMoneyFromDecimal(t *testing.T) {
	assert.Equal(t, "R$ 150,00", MoneyFromDecimal("150.00"))
	assert.Equal(t, "R$ 150,00", MoneyFromDecimal("150"))
	assert.Equal(t, "R$ 1.234,50", MoneyFromDecimal("1234.5"))
	assert.Equal(t, "R$ 10,00", MoneyFromDecimal("R$ 10,00"))
	assert.Equal(t, "", MoneyFromDecimal(""))
	assert.Equal(t, "R$ 0,12", MoneyFromDecimal("abc12"))
}

func TestMasks_RoundTrip(t *testing.T) {
	for _, k := range []Kind{KindCPF, KindCEP, KindPhone, KindDate} {
		t.Run(string(k), func(t *testing.T) {
			property := func(s string) bool {
				return Digits(Apply(k, s)) == digitsUpTo(s, MaxDigits(k))
			}
			require.NoError(t, quick.Check(property, nil))
			for _, s := range awkward {
				assert.True(t, property(s), "input %q", s)
			}
		})
	}
}

func TestMasks_Idempotent(t *testing.T) {
	for _, k := range []Kind{KindCPF, KindCEP, KindPhone, KindDate, KindMoney} {
		t.Run(string(k), func(t *testing.T) {
			property := func(s string) bool {
				once := Apply(k, s)
				return Apply(k, once) == once
			}
			require.NoError(t, quick.Check(property, nil))
			for _, s := range awkward {
				assert.True(t, property(s), "input %q", s)
			}
		})
	}
}

func TestKind(t *testing.T) {
	t.Run("parses known kinds", func(t *testing.T) {
		k, err := ParseKind("phone")
		require.NoError(t, err)
		assert.Equal(t, KindPhone, k)
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		_, err := ParseKind("iban")
		require.Error(t, err)
		assert.Equal(t, "raw", Apply(Kind("iban"), "raw"))
		assert.Zero(t, MaxDigits(Kind("iban")))
		assert.False(t, Complete(Kind("iban"), "raw"))
	})

	t.Run("complete only for the final layout", func(t *testing.T) {
		assert.True(t, Complete(KindCPF, CPF("12345678901")))
		assert.False(t, Complete(KindCPF, CPF("1234567890")))
		assert.True(t, Complete(KindCEP, CEP("01310100")))
		assert.False(t, Complete(KindCEP, CEP("0131010")))
		assert.True(t, Complete(KindPhone, Phone("11912345678")))
		assert.False(t, Complete(KindPhone, Phone("1191234567")))
		assert.True(t, Complete(KindDate, Date("12031990")))
		assert.True(t, Complete(KindMoney, Money("100000")))
		assert.False(t, Complete(KindMoney, "R$ 1000,00"))
	})
}

func FuzzMasks(f *testing.F) {
	for _, s := range awkward {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		for _, k := range []Kind{KindCPF, KindCEP, KindPhone, KindDate} {
			out := Apply(k, s)
			if got, want := Digits(out), digitsUpTo(s, MaxDigits(k)); got != want {
				t.Fatalf("%s(%q) = %q loses digits: got %q want %q", k, s, out, got, want)
			}
			if again := Apply(k, out); again != out {
				t.Fatalf("%s not idempotent on %q: %q then %q", k, s, out, again)
			}
		}
	})
}
