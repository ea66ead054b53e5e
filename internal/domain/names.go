package domain

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength bounds category, activity, task and notes fields.
const MaxNameLength = 100

// NormalizeName trims and NFC-normalises a required name field so that the
// same activity typed on different keyboards matches the same open session.
func NormalizeName(field, value string) (string, error) {
	v := norm.NFC.String(strings.TrimSpace(value))
	if v == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if err := checkText(field, v); err != nil {
		return "", err
	}
	return v, nil
}

// NormalizeNotes is NormalizeName for optional free-form fields.
func NormalizeNotes(value string) (string, error) {
	v := norm.NFC.String(strings.TrimSpace(value))
	if v == "" {
		return "", nil
	}
	if err := checkText("notes", v); err != nil {
		return "", err
	}
	return v, nil
}

func checkText(field, v string) error {
	if n := utf8.RuneCountInString(v); n > MaxNameLength {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("exceeds maximum length of %d characters (got %d)", MaxNameLength, n)}
	}
	for _, r := range v {
		if unicode.IsControl(r) {
			return &ValidationError{Field: field, Reason: "must not contain control characters"}
		}
	}
	return nil
}
