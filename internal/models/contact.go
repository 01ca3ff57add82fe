// Package models contains data models for the booking service.
package models

import "time"

// ContactStatus tracks the handling state of a contact message.
type ContactStatus string

const (
	ContactPending    ContactStatus = "pending"
	ContactInProgress ContactStatus = "in_progress"
	ContactAnswered   ContactStatus = "answered"
	ContactResolved   ContactStatus = "resolved"
)

// Valid reports whether s is one of the known contact statuses.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactPending, ContactInProgress, ContactAnswered, ContactResolved:
		return true
	}
	return false
}

// ContactMessage is a message a user sends to the staff inbox. The sender's
// name and email are denormalized at creation time so the inbox stays
// readable even if the account changes later.
type ContactMessage struct {
	ID         int64         `json:"id" gorm:"primaryKey"`
	UserID     int64         `json:"user_id" gorm:"not null;index"`
	UserName   string        `json:"user_name"`
	UserEmail  string        `json:"user_email"`
	Subject    string        `json:"subject" gorm:"not null"`
	Body       string        `json:"body" gorm:"type:text;not null"`
	Category   string        `json:"category" gorm:"not null;default:general"`
	Status     ContactStatus `json:"status" gorm:"type:varchar(16);not null;default:pending;index"`
	AdminReply *string       `json:"admin_reply,omitempty"`
	AnsweredAt *time.Time    `json:"answered_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// TableName returns the database table name for the ContactMessage model.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
