package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/models"
)

// ServiceRepository defines the interface for catalog data operations.
type ServiceRepository interface {
	List(ctx context.Context) ([]models.Service, error)
	FindByID(ctx context.Context, id int64) (*models.Service, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id int64) error
}

type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new ServiceRepository instance.
func NewServiceRepository(db *gorm.DB) ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) List(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find service %d: %w", id, err)
	}
	return &service, nil
}

func (r *serviceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check service %d: %w", id, err)
	}
	return count > 0, nil
}

func (r *serviceRepository) Create(ctx context.Context, service *models.Service) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, service *models.Service) error {
	if err := r.db.WithContext(ctx).Save(service).Error; err != nil {
		return fmt.Errorf("failed to update service %d: %w", service.ID, err)
	}
	return nil
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Service{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete service %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete service %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
