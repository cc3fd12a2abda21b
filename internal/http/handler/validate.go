package handler

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"portfolio-api/internal/apperr"
)

// fieldErrors accumulates per-field violations; nil means the input passed.
type fieldErrors []apperr.FieldError

func (v *fieldErrors) add(field, message string) {
	*v = append(*v, apperr.FieldError{Field: field, Message: message})
}

func (v *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, field+" is required")
	}
}

func (v *fieldErrors) maxLen(field, value string, max int) {
	if len(value) > max {
		v.add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
	}
}

func (v *fieldErrors) email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "must be a valid email address")
	}
}

func (v *fieldErrors) httpURL(field, value string) {
	if value == "" {
		return
	}
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.add(field, "must be a valid http(s) URL")
	}
}

func (v *fieldErrors) intRange(field string, value, min, max int) {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("%s must be between %d and %d", field, min, max))
	}
}

func (v *fieldErrors) oneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(field, field+" must be one of: "+strings.Join(allowed, ", "))
}

// password enforces the credential policy: at least 8 characters with at
// least one letter and one digit.
func (v *fieldErrors) password(field, value string) {
	if len(value) < 8 {
		v.add(field, field+" must be at least 8 characters")
		return
	}
	var hasLetter, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		v.add(field, field+" must contain at least one letter and one number")
	}
}

// err returns the normalized validation error, or nil when clean.
func (v fieldErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return apperr.Validation(v)
}
