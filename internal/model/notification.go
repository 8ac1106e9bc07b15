package model

import "time"

// NotificationType classifies a notification for display purposes.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// ValidNotificationType reports whether t is one of the known types.
func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	}
	return false
}

// Notification is a durable history entry surfaced to the user about
// activity in their own catalog.
type Notification struct {
	// ID is derived from the creation timestamp (milliseconds) and is
	// unique within the identity's history.
	ID int64 `json:"id"`

	// Title is the short notification headline.
	Title string `json:"title"`

	// Description is the optional detail text.
	Description string `json:"description"`

	// Type classifies the notification (use Notification* constants).
	Type NotificationType `json:"type"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"createdAt"`

	// Read indicates whether the user has seen this notification.
	// It transitions false -> true exactly once and never reverts.
	Read bool `json:"read"`
}

// Toast is the ephemeral counterpart of a Notification. It lives only
// in memory and is removed after a fixed delay or on dismissal; the
// underlying history entry outlives it.
type Toast struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type"`
}
