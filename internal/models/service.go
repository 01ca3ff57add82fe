// Package models contains data models for the booking service.
package models

import "time"

// Service represents an offering in the catalog that appointments reference.
// Only admins create, edit or delete services.
type Service struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Service model.
func (Service) TableName() string {
	return "services"
}
