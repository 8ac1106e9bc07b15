package model

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// ValidationError indicates that a user-entered field failed a
// client-side rule. It is always recovered at the boundary where it
// occurs and surfaced as a descriptive message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err (or any error in its chain)
// is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateUsername checks the rule applied to the login form: the
// trimmed display name must be at least 2 characters.
func ValidateUsername(username string) error {
	if utf8.RuneCountInString(strings.TrimSpace(username)) < 2 {
		return &ValidationError{
			Field:   "username",
			Message: "must be at least 2 characters",
		}
	}
	return nil
}

// ValidateDeadline checks the study-deadline form rules: the date is
// required and must not be in the past (relative to the start of
// today), and the comment must be at least 5 characters.
func ValidateDeadline(d Deadline, now time.Time) error {
	if d.Date == "" {
		return &ValidationError{Field: "date", Message: "date is required"}
	}

	date, err := time.Parse(DateFormat, d.Date)
	if err != nil {
		return &ValidationError{
			Field:   "date",
			Message: fmt.Sprintf("not a calendar date: %q", d.Date),
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return &ValidationError{Field: "date", Message: "date cannot be in the past"}
	}

	if utf8.RuneCountInString(strings.TrimSpace(d.Comment)) < 5 {
		return &ValidationError{
			Field:   "comment",
			Message: "comment must be at least 5 characters",
		}
	}

	return nil
}

// ValidateImportURL checks that rawURL is an absolute http(s) URL
// before the import pipeline attempts to fetch it.
func ValidateImportURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("not an absolute http(s) URL: %q", rawURL),
		}
	}
	return nil
}
