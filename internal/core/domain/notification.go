package domain

import "time"

// NotificationKind classifies a notification for display.
type NotificationKind string

const (
	NotificationKindInfo    NotificationKind = "info"
	NotificationKindSuccess NotificationKind = "success"
	NotificationKindWarning NotificationKind = "warning"
	NotificationKindError   NotificationKind = "error"
)

// MaxNotifications bounds the per-user notification list. Appending past
// the cap evicts the oldest entry.
const MaxNotifications = 50

// NotificationRecord is a single entry in a user's notification feed.
// Records are created by the reconciliation engine when it detects a
// material balance change; the only mutation afterwards is a bulk
// mark-all-read.
type NotificationRecord struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Kind      NotificationKind `json:"kind"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}
