package validation

import (
	"bytes"
	"regexp"
)

// Terminated reports whether a fixed-size string field holds a NUL within its bounds.
func Terminated(field []byte) bool {
	return bytes.IndexByte(field, 0) >= 0
}

// ValidStringField reports whether a fixed-size string field is NUL terminated and everything before the
// terminator is printable ASCII.
func ValidStringField(field []byte) bool {
	n := bytes.IndexByte(field, 0)
	if n < 0 {
		return false
	}
	return validatePrintableRune(field[:n])
}

// validatePrintableRune checks each byte against the printable ASCII range.
func validatePrintableRune(s []byte) bool {
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

var printableRegexp = regexp.MustCompile(`^[\x20-\x7e]*$`)

// validatePrintableRegex uses a regular expression to validate the field content.
func validatePrintableRegex(s []byte) bool {
	return printableRegexp.Match(s)
}
