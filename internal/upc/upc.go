package upc

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat reports a code with the wrong length, non-digit
	// characters, or an unsupported number system.
	ErrInvalidFormat = errors.New("invalid upc format")
	// ErrChecksumMismatch reports a well-formed code whose check digit does
	// not match its body.
	ErrChecksumMismatch = errors.New("upc checksum mismatch")
)

const (
	upcALength = 12
	upcELength = 8
)

// ValidateUPCA reports whether code is a 12-digit UPC-A with a correct check
// digit. Malformed input returns false.
func ValidateUPCA(code string) bool {
	if len(code) != upcALength || !allDigits(code) {
		return false
	}

	var oddSum, evenSum int
	for i := 0; i < upcALength-1; i++ {
		d := int(code[i] - '0')
		if i%2 == 0 {
			oddSum += d
		} else {
			evenSum += d
		}
	}
	check := int(code[upcALength-1] - '0')

	remainder := (oddSum*3 + evenSum) % 10
	if remainder == 0 && check == 0 {
		return true
	}
	return 10-remainder == check
}

// ConvertUPCE expands an 8-digit zero-suppressed UPC-E code into its 12-digit
// UPC-A form. Only number systems 0 and 1 are accepted.
func ConvertUPCE(code string) (string, error) {
	if len(code) != upcELength || !allDigits(code) {
		return "", fmt.Errorf("%w: upc-e must be %d digits, got %q", ErrInvalidFormat, upcELength, code)
	}
	if code[0] != '0' && code[0] != '1' {
		return "", fmt.Errorf("%w: upc-e number system must be 0 or 1, got %q", ErrInvalidFormat, code[0])
	}

	d := code
	var expanded string
	switch d[6] {
	case '0', '1', '2':
		expanded = d[0:3] + d[6:7] + "0000" + d[3:6] + d[7:8]
	case '3':
		expanded = d[0:4] + "00000" + d[4:6] + d[7:8]
	case '4':
		expanded = d[0:5] + "00000" + d[5:6] + d[7:8]
	default:
		expanded = d[0:6] + "0000" + d[6:7] + d[7:8]
	}

	if !ValidateUPCA(expanded) {
		return "", fmt.Errorf("%w: %s expands to %s", ErrChecksumMismatch, code, expanded)
	}
	return expanded, nil
}

// Normalize turns a scanned code into a validated UPC-A. Surrounding
// whitespace is ignored and 8-digit UPC-E codes are expanded.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	switch len(trimmed) {
	case upcALength:
		if !allDigits(trimmed) {
			return "", fmt.Errorf("%w: %q is not numeric", ErrInvalidFormat, trimmed)
		}
		if !ValidateUPCA(trimmed) {
			return "", fmt.Errorf("%w: %s", ErrChecksumMismatch, trimmed)
		}
		return trimmed, nil
	case upcELength:
		return ConvertUPCE(trimmed)
	default:
		return "", fmt.Errorf("%w: expected %d or %d digits, got %d", ErrInvalidFormat, upcALength, upcELength, len(trimmed))
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
