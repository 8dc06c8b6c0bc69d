// Package format turns raw keystroke input into the canonical display form
// of Brazilian phone numbers and CPF tax ids. Every function is total and
// idempotent on its own output.
package format

import "regexp"

// MaxDigits is the digit capacity of both a mobile phone number (DDD plus
// nine digits) and a CPF.
const MaxDigits = 11

var nonDigitRegex = regexp.MustCompile(`\D`)

// Digits strips everything but ASCII digits and keeps at most MaxDigits.
func Digits(raw string) string {
	d := nonDigitRegex.ReplaceAllString(raw, "")
	if len(d) > MaxDigits {
		d = d[:MaxDigits]
	}
	return d
}

// Phone formats raw input as "(DD) DDDDD-DDDD", producing the partial shape
// that matches the number of digits typed so far:
//
//	1-2 digits   (DD
//	3-6 digits   (DD) DDDD
//	7-10 digits  (DD) DDDD-DDDD
//	11 digits    (DD) DDDDD-DDDD
func Phone(raw string) string {
	d := Digits(raw)
	switch n := len(d); {
	case n == 0:
		return ""
	case n <= 2:
		return "(" + d
	case n <= 6:
		return "(" + d[:2] + ") " + d[2:]
	case n <= 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	}
}

// TaxID formats raw input as a CPF, "DDD.DDD.DDD-DD", adding separators as
// the digit count crosses 3, 6 and 9.
func TaxID(raw string) string {
	d := Digits(raw)
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
