package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fredson0/Agendamento-Amado/internal/config"
	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
)

func setupDashboard(t *testing.T) (BookingService, ContactService, DashboardService) {
	t.Helper()

	db, booking := setupBookingDB(t, config.SlotPolicyGlobal)
	contact := NewContactService(
		repository.NewContactRepository(db),
		repository.NewUserRepository(db),
	)
	dashboard := NewDashboardService(
		repository.NewAppointmentRepository(db),
		repository.NewUserRepository(db),
		repository.NewContactRepository(db),
	)
	return booking, contact, dashboard
}

func futureDate(t *testing.T, days int) string {
	t.Helper()
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestDashboardSummary(t *testing.T) {
	booking, _, dashboard := setupDashboard(t)
	ctx := context.Background()

	a1 := mustBook(t, booking, alice, 1, futureDate(t, 1), "14:00")
	mustBook(t, booking, alice, 1, futureDate(t, 2), "10:00")
	bobApt := mustBook(t, booking, bob, 1, futureDate(t, 3), "09:00")

	if _, err := booking.Cancel(ctx, alice, a1.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	summary, err := dashboard.Summary(ctx, alice)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if summary.User.Name != "Alice" || summary.User.Email != "alice@example.com" {
		t.Errorf("User = %+v, want Alice/alice@example.com", summary.User)
	}
	if summary.TotalAppointments != 2 {
		t.Errorf("TotalAppointments = %d, want 2", summary.TotalAppointments)
	}
	if summary.StatusCounts[models.StatusScheduled] != 1 || summary.StatusCounts[models.StatusCancelled] != 1 {
		t.Errorf("StatusCounts = %v, want scheduled:1 cancelled:1", summary.StatusCounts)
	}

	// Bob's rows never show up in Alice's lists.
	for _, apt := range append(summary.Upcoming, summary.Recent...) {
		if apt.ID == bobApt.ID {
			t.Error("Summary() leaked another user's appointment")
		}
	}

	// Non-admins get no inbox stats.
	if summary.ContactStats != nil {
		t.Error("ContactStats should be nil for regular users")
	}
}

func TestDashboardSummary_Admin(t *testing.T) {
	booking, contact, dashboard := setupDashboard(t)
	ctx := context.Background()

	mustBook(t, booking, alice, 1, futureDate(t, 1), "14:00")
	mustBook(t, booking, bob, 1, futureDate(t, 1), "15:00")
	mustSend(t, contact, alice, "Subject", "Body", "support")

	summary, err := dashboard.Summary(ctx, adminIdent)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	// Admin scope covers all users' appointments.
	if summary.TotalAppointments != 2 {
		t.Errorf("TotalAppointments = %d, want 2", summary.TotalAppointments)
	}
	if summary.ContactStats == nil {
		t.Fatal("ContactStats should be set for admins")
	}
	if summary.ContactStats.Total != 1 {
		t.Errorf("ContactStats.Total = %d, want 1", summary.ContactStats.Total)
	}
}

func TestDashboardSummary_UpcomingLimit(t *testing.T) {
	booking, _, dashboard := setupDashboard(t)
	ctx := context.Background()

	for i := 1; i <= upcomingLimit+2; i++ {
		mustBook(t, booking, alice, 1, futureDate(t, i), "14:00")
	}

	summary, err := dashboard.Summary(ctx, alice)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}

	if len(summary.Upcoming) != upcomingLimit {
		t.Errorf("Upcoming has %d entries, want %d", len(summary.Upcoming), upcomingLimit)
	}
	if len(summary.Recent) != recentLimit {
		t.Errorf("Recent has %d entries, want %d", len(summary.Recent), recentLimit)
	}

	// Upcoming is ordered soonest first.
	for i := 1; i < len(summary.Upcoming); i++ {
		if summary.Upcoming[i-1].Date > summary.Upcoming[i].Date {
			t.Errorf("Upcoming out of order: %s after %s", summary.Upcoming[i-1].Date, summary.Upcoming[i].Date)
		}
	}
}

func TestDashboardSummary_UnknownUser(t *testing.T) {
	_, _, dashboard := setupDashboard(t)

	ghost := Identity{ID: 999, Email: "ghost@example.com", Role: models.RoleUser}
	if _, err := dashboard.Summary(context.Background(), ghost); !errors.Is(err, ErrNotFound) {
		t.Errorf("Summary() error = %v, want ErrNotFound", err)
	}
}
