// Package service contains the business logic of the booking service.
package service

import (
	"errors"

	"github.com/fredson0/Agendamento-Amado/internal/models"
)

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes; anything unrecognized is treated as an internal error.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access denied")
	ErrSlotTaken          = errors.New("slot already booked")
	ErrServiceNotFound    = errors.New("service not found")
	ErrTerminalStatus     = errors.New("appointment is in a terminal status")
	ErrValidation         = errors.New("invalid input")
)

// Identity is the decoded credential attached to each authenticated request.
type Identity struct {
	ID    int64
	Email string
	Role  string
}

// IsAdmin reports whether the identity holds the admin role.
func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// CanAccess is the single authorization predicate for per-resource
// operations: admins may touch any row, everyone else only their own.
func (id Identity) CanAccess(ownerID int64) bool {
	return id.IsAdmin() || id.ID == ownerID
}
