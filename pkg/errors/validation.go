package errors

import (
	"strings"
	"unicode"
)

// Limits enforced on user input.
const (
	// MaxXrefLength is the GEDCOM limit on a cross-reference id, @ included.
	MaxXrefLength  = 22
	MaxGenerations = 12
)

// ValidateXref validates a GEDCOM cross-reference id such as "@I42@".
//
// Validation rules:
//   - Not empty, at most MaxXrefLength characters
//   - Enclosed in @ with at least one character in between
//   - No further @, no spaces or control characters
func ValidateXref(xref string) error {
	if xref == "" {
		return New(ErrCodeInvalidXref, "individual id cannot be empty")
	}
	if len(xref) > MaxXrefLength {
		return New(ErrCodeInvalidXref, "individual id too long (max %d characters)", MaxXrefLength)
	}
	if len(xref) < 3 || !strings.HasPrefix(xref, "@") || !strings.HasSuffix(xref, "@") {
		return New(ErrCodeInvalidXref, "individual id must look like @I1@, got %q", xref)
	}
	for _, r := range xref[1 : len(xref)-1] {
		if r == '@' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidXref, "individual id contains invalid characters: %q", xref)
		}
	}
	return nil
}

// ValidateGenerations checks a generation limit.
func ValidateGenerations(n int) error {
	if n < 1 || n > MaxGenerations {
		return New(ErrCodeInvalidConfig, "generations must be between 1 and %d, got %d", MaxGenerations, n)
	}
	return nil
}

// ValidateFanAngle checks a fan angle in degrees.
func ValidateFanAngle(deg int) error {
	if deg <= 0 || deg > 360 {
		return New(ErrCodeInvalidConfig, "fan angle must be in (0, 360] degrees, got %d", deg)
	}
	return nil
}

// ValidateWeights checks band weights: every weight must be positive.
func ValidateWeights(weights []float64) error {
	for i, w := range weights {
		if !(w > 0) {
			return New(ErrCodeInvalidConfig, "weight of band %d must be positive, got %v", i+1, w)
		}
	}
	return nil
}

// ValidateSize rejects payloads larger than max bytes.
func ValidateSize(size, max int64) error {
	if size > max {
		return New(ErrCodeTooLarge, "input of %d bytes exceeds the %d byte limit", size, max)
	}
	return nil
}
