// Package isbn validates and canonicalizes ISBN strings. The catalog keys
// every book by the hyphenated ISBN-13 form produced here; equality checks
// elsewhere use the hyphen-stripped form from Strip.
package isbn

import (
	"errors"
	"strings"
)

// ErrUnparseable is returned when a string is not a valid ISBN-10 or ISBN-13.
var ErrUnparseable = errors.New("unparseable isbn")

// Strip removes hyphens and whitespace without validating anything. Two ISBN
// strings refer to the same book when their stripped forms match, valid or not.
func Strip(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

// Normalize parses an ISBN-10 or ISBN-13, validates its check digit, and
// returns the hyphenated ISBN-13 form. Normalize applied to its own output
// returns the same string.
func Normalize(raw string) (string, error) {
	digits := Strip(raw)
	switch len(digits) {
	case 10:
		if !validISBN10(digits) {
			return "", ErrUnparseable
		}
		digits = upgradeToISBN13(digits)
	case 13:
		if !validISBN13(digits) {
			return "", ErrUnparseable
		}
	default:
		return "", ErrUnparseable
	}
	return hyphenate(digits), nil
}

func validISBN10(s string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		c := s[i]
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case (c == 'X' || c == 'x') && i == 9:
			v = 10
		default:
			return false
		}
		sum += (10 - i) * v
	}
	return sum%11 == 0
}

func validISBN13(s string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		v := int(c - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}

// upgradeToISBN13 prefixes the ISBN-10 body with 978 and recomputes the check
// digit. Only called with a checksum-valid ISBN-10.
func upgradeToISBN13(s string) string {
	body := "978" + s[:9]
	return body + string(rune('0'+checkDigit13(body)))
}

func checkDigit13(body string) int {
	sum := 0
	for i := 0; i < 12; i++ {
		v := int(body[i] - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return (10 - sum%10) % 10
}

// hyphenate splits a valid 13-digit ISBN into prefix, registration group,
// registrant block, and check digit. Splitting the registrant block further
// into registrant and publication parts needs the full ISBN RangeMessage
// data, which we do not carry; the block stays undivided.
func hyphenate(digits string) string {
	prefix := digits[:3]
	body := digits[3:12]
	check := digits[12:]

	g := groupLength(prefix, body)
	if g == 0 {
		return prefix + "-" + body + "-" + check
	}
	return prefix + "-" + body[:g] + "-" + body[g:] + "-" + check
}

// groupLength returns the length of the registration group for the most
// common ranges, or 0 when the group is unknown.
func groupLength(prefix, body string) int {
	if prefix == "979" {
		switch body[0] {
		case '8':
			return 1
		case '1':
			return 2
		}
		return 0
	}
	switch body[0] {
	case '0', '1', '2', '3', '4', '5', '7':
		return 1
	case '6':
		three := 600 + (int(body[1]-'0') * 10) + int(body[2]-'0')
		if three <= 649 {
			return 3
		}
		return 0
	case '8', '9':
		two := (int(body[0]-'0') * 10) + int(body[1]-'0')
		if two >= 80 && two <= 94 {
			return 2
		}
		three := two*10 + int(body[2]-'0')
		if three >= 950 && three <= 989 {
			return 3
		}
		four := three*10 + int(body[3]-'0')
		if four >= 9900 && four <= 9989 {
			return 4
		}
		return 5
	}
	return 0
}
