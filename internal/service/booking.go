package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/config"
	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// CreateAppointmentInput carries the fields for booking a slot. Status is
// optional and may only be "pending" or "scheduled"; it defaults to
// "scheduled".
type CreateAppointmentInput struct {
	ServiceID int64
	Date      string
	Time      string
	Status    models.AppointmentStatus
}

// AppointmentPatch holds partial-update fields; nil means "keep the current
// value".
type AppointmentPatch struct {
	ServiceID *int64
	Date      *string
	Time      *string
	Status    *models.AppointmentStatus
}

// BookingService is the appointment core: it validates input, enforces slot
// exclusivity and ownership, and drives the status state machine.
type BookingService interface {
	Create(ctx context.Context, requester Identity, input CreateAppointmentInput) (*models.Appointment, error)
	Get(ctx context.Context, requester Identity, id int64) (*models.Appointment, error)
	ListMine(ctx context.Context, requester Identity) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.AppointmentDetail, error)
	Update(ctx context.Context, requester Identity, id int64, patch AppointmentPatch) (*models.Appointment, error)
	Cancel(ctx context.Context, requester Identity, id int64) (*models.Appointment, error)
	Delete(ctx context.Context, requester Identity, id int64) error
}

type bookingService struct {
	apts       repository.AppointmentRepository
	services   repository.ServiceRepository
	slotPolicy string
}

// NewBookingService creates a new BookingService instance. slotPolicy is one
// of the config.SlotPolicy values and decides whether slot exclusivity is
// global or scoped per service.
func NewBookingService(apts repository.AppointmentRepository, services repository.ServiceRepository, slotPolicy string) BookingService {
	return &bookingService{
		apts:       apts,
		services:   services,
		slotPolicy: slotPolicy,
	}
}

func (s *bookingService) Create(ctx context.Context, requester Identity, input CreateAppointmentInput) (*models.Appointment, error) {
	if err := validateSlot(input.Date, input.Time); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = models.StatusScheduled
	}
	if status != models.StatusPending && status != models.StatusScheduled {
		return nil, fmt.Errorf("%w: status must be pending or scheduled", ErrValidation)
	}

	exists, err := s.services.Exists(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrServiceNotFound
	}

	// Advisory pre-check for a friendly error. The partial unique index on
	// the slot remains the authority and catches concurrent inserts below.
	taken, err := s.apts.SlotTaken(ctx, s.slotFilter(input.ServiceID, input.Date, input.Time, 0))
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	apt := &models.Appointment{
		UserID:    requester.ID,
		ServiceID: input.ServiceID,
		Date:      input.Date,
		Time:      input.Time,
		Status:    status,
	}
	if err := s.apts.Create(ctx, apt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return apt, nil
}

func (s *bookingService) Get(ctx context.Context, requester Identity, id int64) (*models.Appointment, error) {
	return s.authorize(ctx, requester, id)
}

func (s *bookingService) ListMine(ctx context.Context, requester Identity) ([]models.Appointment, error) {
	// Non-admin listings are always scoped to the requester, regardless of
	// what the caller asks for.
	return s.apts.ListByUser(ctx, requester.ID)
}

func (s *bookingService) ListAll(ctx context.Context) ([]models.AppointmentDetail, error) {
	return s.apts.ListAll(ctx)
}

func (s *bookingService) Update(ctx context.Context, requester Identity, id int64, patch AppointmentPatch) (*models.Appointment, error) {
	apt, err := s.authorize(ctx, requester, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}

	slotChanged := false

	if patch.ServiceID != nil && *patch.ServiceID != apt.ServiceID {
		exists, err := s.services.Exists(ctx, *patch.ServiceID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrServiceNotFound
		}
		apt.ServiceID = *patch.ServiceID
		if s.slotPolicy == config.SlotPolicyPerService {
			slotChanged = true
		}
	}

	if patch.Date != nil && *patch.Date != apt.Date {
		apt.Date = *patch.Date
		slotChanged = true
	}
	if patch.Time != nil && *patch.Time != apt.Time {
		apt.Time = *patch.Time
		slotChanged = true
	}
	if slotChanged {
		if err := validateSlot(apt.Date, apt.Time); err != nil {
			return nil, err
		}
	}

	if patch.Status != nil && *patch.Status != apt.Status {
		if !patch.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
		}
		// Marking an appointment completed is an admin action.
		if *patch.Status == models.StatusCompleted && !requester.IsAdmin() {
			return nil, ErrForbidden
		}
		apt.Status = *patch.Status
	}

	if slotChanged && apt.Status != models.StatusCancelled {
		taken, err := s.apts.SlotTaken(ctx, s.slotFilter(apt.ServiceID, apt.Date, apt.Time, apt.ID))
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}
	}

	if err := s.apts.Save(ctx, apt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	return apt, nil
}

func (s *bookingService) Cancel(ctx context.Context, requester Identity, id int64) (*models.Appointment, error) {
	apt, err := s.authorize(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	// Cancelling twice is a no-op, not an error.
	if apt.Status == models.StatusCancelled {
		return apt, nil
	}
	if apt.Status == models.StatusCompleted {
		return nil, ErrTerminalStatus
	}

	apt.Status = models.StatusCancelled
	if err := s.apts.Save(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *bookingService) Delete(ctx context.Context, requester Identity, id int64) error {
	if _, err := s.authorize(ctx, requester, id); err != nil {
		return err
	}
	if err := s.apts.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// authorize loads the appointment and applies the ownership predicate.
func (s *bookingService) authorize(ctx context.Context, requester Identity, id int64) (*models.Appointment, error) {
	apt, err := s.apts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !requester.CanAccess(apt.UserID) {
		return nil, ErrForbidden
	}
	return apt, nil
}

func (s *bookingService) slotFilter(serviceID int64, date, tm string, excludeID int64) repository.SlotFilter {
	f := repository.SlotFilter{Date: date, Time: tm, ExcludeID: excludeID}
	if s.slotPolicy == config.SlotPolicyPerService {
		f.ServiceID = serviceID
	}
	return f
}

func validateSlot(date, tm string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}
	if _, err := time.Parse(timeLayout, tm); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", ErrValidation)
	}
	return nil
}
