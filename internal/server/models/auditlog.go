package models

import "time"

// AuditLog is one immutable record of who did what to which entity and
// when. Rows are append-only: never updated, never deleted.
type AuditLog struct {
	ID           int64
	EventStamp   time.Time
	UserID       int64
	Action       string
	Entity       string
	EntityID     int64
	Details      string
	ComputerName string
}
