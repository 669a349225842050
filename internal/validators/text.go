package validators

import "unicode"

// HasControlChars reports control characters other than line breaks and
// tabs, which free-text form fields may legitimately carry.
func HasControlChars(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
