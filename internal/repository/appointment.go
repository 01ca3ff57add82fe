package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/models"
)

// SlotFilter identifies a slot for the availability pre-check. ServiceID is
// zero when the exclusivity policy is global; ExcludeID is non-zero when
// re-checking during an update so the appointment's own row is ignored.
type SlotFilter struct {
	Date      string
	Time      string
	ServiceID int64
	ExcludeID int64
}

// AppointmentRepository defines the interface for appointment data operations.
type AppointmentRepository interface {
	Create(ctx context.Context, apt *models.Appointment) error
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	Save(ctx context.Context, apt *models.Appointment) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.AppointmentDetail, error)
	SlotTaken(ctx context.Context, f SlotFilter) (bool, error)
	CountByStatus(ctx context.Context, userID int64) (map[models.AppointmentStatus]int64, error)
	Upcoming(ctx context.Context, userID int64, fromDate string, limit int) ([]models.Appointment, error)
	Recent(ctx context.Context, userID int64, limit int) ([]models.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new AppointmentRepository instance.
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create inserts the appointment. A unique-index violation on the slot index
// surfaces as gorm.ErrDuplicatedKey; callers translate it into a conflict.
func (r *appointmentRepository) Create(ctx context.Context, apt *models.Appointment) error {
	if err := r.db.WithContext(ctx).Create(apt).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var apt models.Appointment
	if err := r.db.WithContext(ctx).First(&apt, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find appointment %d: %w", id, err)
	}
	return &apt, nil
}

// Save writes the full row. Moving a non-cancelled appointment onto an
// occupied slot trips the same unique index as Create.
func (r *appointmentRepository) Save(ctx context.Context, apt *models.Appointment) error {
	if err := r.db.WithContext(ctx).Save(apt).Error; err != nil {
		return fmt.Errorf("failed to update appointment %d: %w", apt.ID, err)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete appointment %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	var apts []models.Appointment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, time ASC").
		Find(&apts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for user %d: %w", userID, err)
	}
	return apts, nil
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]models.AppointmentDetail, error) {
	var details []models.AppointmentDetail
	err := r.db.WithContext(ctx).
		Table("appointments").
		Select("appointments.*, services.name AS service_name, users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Joins("LEFT JOIN users ON users.id = appointments.user_id").
		Order("appointments.date ASC, appointments.time ASC").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return details, nil
}

func (r *appointmentRepository) SlotTaken(ctx context.Context, f SlotFilter) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date = ? AND time = ?", f.Date, f.Time).
		Where("status <> ?", models.StatusCancelled)

	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.ExcludeID != 0 {
		q = q.Where("id <> ?", f.ExcludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slot %s %s: %w", f.Date, f.Time, err)
	}
	return count > 0, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, userID int64) (map[models.AppointmentStatus]int64, error) {
	type row struct {
		Status models.AppointmentStatus
		Count  int64
	}

	var rows []row
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count appointments by status: %w", err)
	}

	counts := make(map[models.AppointmentStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *appointmentRepository) Upcoming(ctx context.Context, userID int64, fromDate string, limit int) ([]models.Appointment, error) {
	var apts []models.Appointment
	q := r.db.WithContext(ctx).
		Where("date >= ?", fromDate).
		Order("date ASC, time ASC").
		Limit(limit)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&apts).Error; err != nil {
		return nil, fmt.Errorf("failed to list upcoming appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.Appointment, error) {
	var apts []models.Appointment
	q := r.db.WithContext(ctx).
		Order("date DESC, time DESC").
		Limit(limit)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&apts).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent appointments: %w", err)
	}
	return apts, nil
}
