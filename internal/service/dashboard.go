package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
)

const (
	upcomingLimit = 5
	recentLimit   = 3
)

// DashboardSummary is the read-only projection served at /dashboard.
type DashboardSummary struct {
	User struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	TotalAppointments int64                                    `json:"total_appointments"`
	StatusCounts      map[models.AppointmentStatus]int64       `json:"status_counts"`
	Upcoming          []models.Appointment                     `json:"upcoming"`
	Recent            []models.Appointment                     `json:"recent"`
	ContactStats      *repository.ContactStats                 `json:"contact_stats,omitempty"`
}

// DashboardService derives summary counts over the booking data. It is a
// thin projection; all writes go through the booking core.
type DashboardService interface {
	Summary(ctx context.Context, requester Identity) (*DashboardSummary, error)
}

type dashboardService struct {
	apts     repository.AppointmentRepository
	users    repository.UserRepository
	messages repository.ContactRepository
}

// NewDashboardService creates a new DashboardService instance.
func NewDashboardService(apts repository.AppointmentRepository, users repository.UserRepository, messages repository.ContactRepository) DashboardService {
	return &dashboardService{apts: apts, users: users, messages: messages}
}

func (s *dashboardService) Summary(ctx context.Context, requester Identity) (*DashboardSummary, error) {
	user, err := s.users.FindByID(ctx, requester.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Admins see the whole system; everyone else their own slice.
	scope := requester.ID
	if requester.IsAdmin() {
		scope = 0
	}

	counts, err := s.apts.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range counts {
		total += n
	}

	today := time.Now().UTC().Format(dateLayout)
	upcoming, err := s.apts.Upcoming(ctx, scope, today, upcomingLimit)
	if err != nil {
		return nil, err
	}
	recent, err := s.apts.Recent(ctx, scope, recentLimit)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalAppointments: total,
		StatusCounts:      counts,
		Upcoming:          upcoming,
		Recent:            recent,
	}
	summary.User.Name = user.Name
	summary.User.Email = user.Email

	if requester.IsAdmin() {
		stats, err := s.messages.Stats(ctx)
		if err != nil {
			return nil, err
		}
		summary.ContactStats = stats
	}

	return summary, nil
}
