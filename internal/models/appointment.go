// Package models contains data models for the booking service.
package models

import "time"

// AppointmentStatus is the closed set of states an appointment moves through.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// IsTerminal reports whether no further transitions are accepted from s.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment represents a booked slot. A slot is the (date, time) pair;
// no two non-cancelled appointments may occupy the same slot.
type Appointment struct {
	ID        int64             `json:"id" gorm:"primaryKey"`
	UserID    int64             `json:"user_id" gorm:"not null;index"`
	ServiceID int64             `json:"service_id" gorm:"not null"`
	Date      string            `json:"date" gorm:"type:varchar(10);not null"`
	Time      string            `json:"time" gorm:"type:varchar(5);not null"`
	Status    AppointmentStatus `json:"status" gorm:"type:varchar(16);not null;default:scheduled;index"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// TableName returns the database table name for the Appointment model.
func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentDetail is an appointment joined with service and owner summaries
// for the admin listing.
type AppointmentDetail struct {
	Appointment
	ServiceName string `json:"service_name"`
	UserName    string `json:"user_name"`
	UserEmail   string `json:"user_email"`
}
