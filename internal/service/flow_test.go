package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fredson0/Agendamento-Amado/internal/config"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
)

// TestBookingFlow walks the whole user journey against real repositories:
// register, login, book, conflicting book, cancel, rebook.
func TestBookingFlow(t *testing.T) {
	db, booking := setupBookingDB(t, config.SlotPolicyGlobal)
	redisClient, _ := setupTestRedis(t)
	jwtService := NewJWTService(testSecret, testAccessExpiry, testRefreshExpiry)
	auth := NewAuthService(repository.NewUserRepository(db), jwtService, redisClient)
	ctx := context.Background()

	carol, err := auth.Register(ctx, RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// The unique index on email rejects a second registration.
	if _, err := auth.Register(ctx, RegisterInput{Name: "Imposter", Email: "carol@example.com", Password: "other-pass"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("Register() duplicate error = %v, want ErrEmailTaken", err)
	}

	login, err := auth.Login(ctx, "carol@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := jwtService.ValidateToken(login.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	ident := claims.Identity()
	if ident.ID != carol.ID {
		t.Fatalf("Identity.ID = %d, want %d", ident.ID, carol.ID)
	}

	apt, err := booking.Create(ctx, ident, CreateAppointmentInput{ServiceID: 1, Date: "2026-09-20", Time: "11:00"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Another user cannot take the same slot.
	if _, err := booking.Create(ctx, bob, CreateAppointmentInput{ServiceID: 1, Date: "2026-09-20", Time: "11:00"}); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("Create() conflict error = %v, want ErrSlotTaken", err)
	}

	if _, err := booking.Cancel(ctx, ident, apt.ID); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	// The cancelled slot is free for anyone again.
	if _, err := booking.Create(ctx, bob, CreateAppointmentInput{ServiceID: 1, Date: "2026-09-20", Time: "11:00"}); err != nil {
		t.Fatalf("Create() after cancel error = %v", err)
	}

	mine, err := booking.ListMine(ctx, ident)
	if err != nil {
		t.Fatalf("ListMine() error = %v", err)
	}
	if len(mine) != 1 || mine[0].ID != apt.ID {
		t.Fatalf("ListMine() = %+v, want only the cancelled appointment", mine)
	}
}
