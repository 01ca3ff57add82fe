package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/models"
)

// ContactListFilter narrows the admin inbox listing. Zero values mean "any".
type ContactListFilter struct {
	Status   models.ContactStatus
	Category string
	Limit    int
}

// ContactStats summarizes the inbox for the admin stats endpoint.
type ContactStats struct {
	Total      int64            `json:"total"`
	Pending    int64            `json:"pending"`
	Resolved   int64            `json:"resolved"`
	RecentWeek int64            `json:"recent_week"`
	Categories map[string]int64 `json:"categories"`
}

// ContactRepository defines the interface for contact message data operations.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	FindByID(ctx context.Context, id int64) (*models.ContactMessage, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ContactMessage, error)
	ListAll(ctx context.Context, filter ContactListFilter) ([]models.ContactMessage, error)
	Save(ctx context.Context, msg *models.ContactMessage) error
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*ContactStats, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository instance.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *contactRepository) FindByID(ctx context.Context, id int64) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find contact message %d: %w", id, err)
	}
	return &msg, nil
}

func (r *contactRepository) ListByUser(ctx context.Context, userID int64) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages for user %d: %w", userID, err)
	}
	return msgs, nil
}

func (r *contactRepository) ListAll(ctx context.Context, filter ContactListFilter) ([]models.ContactMessage, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var msgs []models.ContactMessage
	if err := q.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

func (r *contactRepository) Save(ctx context.Context, msg *models.ContactMessage) error {
	if err := r.db.WithContext(ctx).Save(msg).Error; err != nil {
		return fmt.Errorf("failed to update contact message %d: %w", msg.ID, err)
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete contact message %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete contact message %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *contactRepository) Stats(ctx context.Context) (*ContactStats, error) {
	stats := &ContactStats{Categories: make(map[string]int64)}

	model := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if err := model.Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count contact messages: %w", err)
	}

	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("status = ?", models.ContactPending).
		Count(&stats.Pending).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pending messages: %w", err)
	}
	stats.Resolved = stats.Total - stats.Pending

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	err = r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("created_at >= ?", weekAgo).
		Count(&stats.RecentWeek).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recent messages: %w", err)
	}

	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err = r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count messages by category: %w", err)
	}
	for _, r := range rows {
		stats.Categories[r.Category] = r.Count
	}

	return stats, nil
}
