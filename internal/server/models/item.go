package models

import "time"

// Item is a user-owned text record. UserID is set at creation and never
// changes; only Title and Description are mutable. AttachmentKey holds the
// object-storage key of the optional binary attachment, empty if none.
type Item struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	AttachmentKey string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
