package document

import "strings"

// NormalizePhone returns the digits of a phone number, e.g. "(47) 3533-333" -> "473533333".
func NormalizePhone(raw string) string {
	return onlyDigits(raw)
}

// FormatPhone masks a phone number as the user types it:
//
//	"4"           -> "(4"
//	"4735"        -> "(47) 35"
//	"473533333"   -> "(47) 3533-333"
//	"47999991234" -> "(47) 99999-1234"
//
// A single leading zero (trunk prefix) is dropped before masking and
// digits past the eleventh are discarded. NormalizePhone(FormatPhone(x))
// therefore returns x only for 1 to 11 digits that do not start with 0.
func FormatPhone(raw string) string {
	d := strings.TrimPrefix(onlyDigits(raw), "0")

	switch n := len(d); {
	case n > 10:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:11]
	case n > 5:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	case n > 2:
		return "(" + d[:2] + ") " + d[2:]
	case n > 0:
		return "(" + d
	default:
		return ""
	}
}
