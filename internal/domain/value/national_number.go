package value

import (
	"errors"
	"strings"
)

// NationalNumber is a telephone number reduced to the UK domestic dialing
// form: digits only, international prefixes stripped, the national access
// digit restored. It is the only shape the classifier accepts.
type NationalNumber string

const (
	countryCode       = "44"
	internationalExit = "00" + countryCode // written form of +44
	accessDigit       = '0'
	// Short-code and service ranges (1XX access codes, 116XXX, 118XXX) are
	// dialled without the leading zero.
	shortCodeDigit = '1'
)

var ErrNotNational = errors.New("not a national number")

// ParseNationalNumber normalizes a raw, loosely formatted input into a
// NationalNumber. It never fails for any reason other than the input not
// belonging to the national plan: whitespace, punctuation and '+' are simply
// discarded before the plan rules apply.
func ParseNationalNumber(raw string) (NationalNumber, error) {
	digits := stripNonDigits(raw)
	if digits == "" {
		return "", ErrNotNational
	}

	switch {
	case strings.HasPrefix(digits, internationalExit):
		return restoreAccessDigit(digits[len(internationalExit):])
	case strings.HasPrefix(digits, countryCode):
		return restoreAccessDigit(digits[len(countryCode):])
	case digits[0] == shortCodeDigit:
		return NationalNumber(digits), nil
	case digits[0] == accessDigit:
		return NationalNumber(digits), nil
	default:
		return "", ErrNotNational
	}
}

func (n NationalNumber) String() string {
	return string(n)
}

func restoreAccessDigit(rest string) (NationalNumber, error) {
	if rest == "" {
		return "", ErrNotNational
	}

	if rest[0] != accessDigit {
		rest = string(accessDigit) + rest
	}

	return NationalNumber(rest), nil
}

func stripNonDigits(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}

	return b.String()
}
