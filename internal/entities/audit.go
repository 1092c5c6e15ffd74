package entities

import "time"

type AuditEventType string

const (
	AuditEventAuth     AuditEventType = "auth"
	AuditEventSelect   AuditEventType = "select"
	AuditEventDeselect AuditEventType = "deselect"
	AuditEventMark     AuditEventType = "mark"
	AuditEventComment  AuditEventType = "comment"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventID     string         `gorm:"uniqueIndex;size:36" json:"event_id"` // UUID, correlates with log lines
	CourierID   uint           `gorm:"index" json:"courier_id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "login", "book_select"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	TaskKey     string         `gorm:"size:200" json:"task_key,omitempty"`
	IPAddress   string         `gorm:"size:45" json:"ip_address,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
