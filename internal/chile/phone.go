package chile

import (
	"regexp"
	"strings"
)

var mobilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+569\d{8}$`),
	regexp.MustCompile(`^569\d{8}$`),
	regexp.MustCompile(`^9\d{8}$`),
	regexp.MustCompile(`^\d{8}$`),
}

var phoneNoise = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// ValidMobile accepts +569XXXXXXXX, 569XXXXXXXX, 9XXXXXXXX and XXXXXXXX,
// ignoring spaces, dashes and parentheses.
func ValidMobile(phone string) bool {
	cleaned := phoneNoise.Replace(phone)

	for _, p := range mobilePatterns {
		if p.MatchString(cleaned) {
			return true
		}
	}

	return false
}

// FormatMobile renders a valid mobile number as "+56 9 XXXX XXXX".
// Invalid input is returned unchanged.
func FormatMobile(phone string) string {
	if !ValidMobile(phone) {
		return phone
	}

	cleaned := phoneNoise.Replace(phone)
	cleaned = strings.TrimPrefix(cleaned, "+")

	if len(cleaned) == 11 {
		cleaned = cleaned[2:]
	}

	if len(cleaned) == 8 {
		cleaned = "9" + cleaned
	}

	return "+56 " + cleaned[:1] + " " + cleaned[1:5] + " " + cleaned[5:]
}
