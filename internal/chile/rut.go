// Package chile holds the national ID and phone number rules for customers.
package chile

import (
	"strconv"
	"strings"
)

func cleanRUT(rut string) string {
	rut = strings.NewReplacer(".", "", "-", "", " ", "").Replace(rut)
	return strings.ToUpper(rut)
}

// ValidRUT reports whether rut carries a correct mod 11 check digit.
// Dots and the dash are optional.
func ValidRUT(rut string) bool {
	rut = cleanRUT(rut)
	if len(rut) < 8 || len(rut) > 9 {
		return false
	}

	body, dv := rut[:len(rut)-1], rut[len(rut)-1:]

	for _, r := range body {
		if r < '0' || r > '9' {
			return false
		}
	}

	return dv == checkDigit(body)
}

func checkDigit(body string) string {
	sum, multiplier := 0, 2

	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * multiplier

		if multiplier == 7 {
			multiplier = 2
		} else {
			multiplier++
		}
	}

	switch d := 11 - sum%11; d {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.Itoa(d)
	}
}

// FormatRUT renders rut as 12.345.678-K. Input of the wrong length is
// returned cleaned but otherwise untouched.
func FormatRUT(rut string) string {
	rut = cleanRUT(rut)
	if len(rut) < 8 || len(rut) > 9 {
		return rut
	}

	body, dv := rut[:len(rut)-1], rut[len(rut)-1:]

	var sb strings.Builder

	for i, r := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			sb.WriteByte('.')
		}

		sb.WriteRune(r)
	}

	return sb.String() + "-" + dv
}
