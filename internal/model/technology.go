package model

import "time"

// Technology status constants.
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// DateFormat is the calendar-date layout used for CreatedAt and
// deadline dates.
const DateFormat = "2006-01-02"

// Technology is a single tracked item in a user's catalog.
type Technology struct {
	// ID is unique within one identity's catalog and allocated
	// sequentially (max existing id + 1).
	ID int `json:"id"`

	// Title is the human-readable name. Never empty on a stored record.
	Title string `json:"title"`

	// Description is an optional summary of the technology.
	Description string `json:"description"`

	// Category is a free-form tag (e.g. "frontend", "language").
	// The store does not constrain it.
	Category string `json:"category"`

	// Status is the learning status (use Status* constants).
	Status string `json:"status"`

	// Source is the provenance URL of the record, or empty for
	// manually created entries.
	Source string `json:"source"`

	// Notes is user-editable free text.
	Notes string `json:"notes"`

	// CreatedAt is the ISO calendar date the record was created.
	// Immutable after creation.
	CreatedAt string `json:"createdAt"`

	// Deadline is an optional study deadline set by the user.
	Deadline *Deadline `json:"deadline,omitempty"`
}

// Deadline is a user-set target date for finishing a technology.
type Deadline struct {
	Date    string `json:"date"`
	Comment string `json:"comment"`
}

// ValidStatus reports whether s is one of the known status constants.
func ValidStatus(s string) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// NewTechnology builds a stored record from a partially filled draft,
// assigning the given id and filling omitted fields with defaults.
func NewTechnology(id int, draft Technology, now time.Time) Technology {
	t := draft
	t.ID = id
	if t.Status == "" {
		t.Status = StatusNotStarted
	}
	if t.CreatedAt == "" {
		t.CreatedAt = now.Format(DateFormat)
	}
	return t
}

// DefaultCatalog returns the seed list shown to identities that have
// no stored catalog yet.
func DefaultCatalog() []Technology {
	return []Technology{
		{
			ID:          1,
			Title:       "React",
			Description: "A library for building user interfaces",
			Category:    "frontend",
			Status:      StatusNotStarted,
			CreatedAt:   "2025-01-01",
		},
		{
			ID:          2,
			Title:       "JavaScript",
			Description: "The programming language of the web",
			Category:    "language",
			Status:      StatusNotStarted,
			CreatedAt:   "2025-01-02",
		},
		{
			ID:          3,
			Title:       "Node.js",
			Description: "JavaScript runtime for the server",
			Category:    "backend",
			Status:      StatusNotStarted,
			CreatedAt:   "2025-01-03",
		},
	}
}
