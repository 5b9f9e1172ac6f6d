// Package document normalizes, masks and validates the Brazilian personal
// documents stored on a user: the CPF taxpayer number and the phone number.
package document

import "strings"

const cpfLength = 11

// blacklisted CPFs pass the checksum but are never issued.
var blacklistedCPFs = map[string]struct{}{
	"00000000000": {},
	"11111111111": {},
	"22222222222": {},
	"33333333333": {},
	"44444444444": {},
	"55555555555": {},
	"66666666666": {},
	"77777777777": {},
	"88888888888": {},
	"99999999999": {},
	"12345678909": {},
}

// onlyDigits drops every rune that is not an ASCII digit.
func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCPF returns the digits of a CPF, e.g. "165.432.190-76" -> "16543219076".
func NormalizeCPF(raw string) string {
	return onlyDigits(raw)
}

// FormatCPF masks a CPF as DDD.DDD.DDD-DD. Partial input yields a partial
// mask so it can be applied while the value is typed; digits past the
// eleventh are dropped.
func FormatCPF(raw string) string {
	d := onlyDigits(raw)
	if len(d) > cpfLength {
		d = d[:cpfLength]
	}

	var b strings.Builder
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// ValidateCPF reports whether value is a well-formed CPF with correct check digits.
// Punctuation is ignored.
func ValidateCPF(value string) bool {
	d := onlyDigits(value)
	if len(d) != cpfLength {
		return false
	}
	if _, bad := blacklistedCPFs[d]; bad {
		return false
	}
	if checkDigit(d[:9]) != d[9] {
		return false
	}
	return checkDigit(d[:10]) == d[10]
}

// checkDigit computes the mod-11 verifier for the given digit prefix.
func checkDigit(prefix string) byte {
	weight := len(prefix) + 1
	sum := 0
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	mod := sum % 11
	if mod < 2 {
		return '0'
	}
	return byte('0' + 11 - mod)
}
