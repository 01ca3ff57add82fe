package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
)

// ServicePatch holds partial-update fields for a catalog entry.
type ServicePatch struct {
	Name        *string
	Description *string
}

// CatalogService manages the service catalog. Listing is public; every
// mutation is admin-only and gated at the routing layer.
type CatalogService interface {
	List(ctx context.Context) ([]models.Service, error)
	Get(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, name, description string) (*models.Service, error)
	Update(ctx context.Context, id int64, patch ServicePatch) (*models.Service, error)
	Delete(ctx context.Context, id int64) error
}

type catalogService struct {
	services repository.ServiceRepository
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(services repository.ServiceRepository) CatalogService {
	return &catalogService{services: services}
}

func (s *catalogService) List(ctx context.Context) ([]models.Service, error) {
	return s.services.List(ctx)
}

func (s *catalogService) Get(ctx context.Context, id int64) (*models.Service, error) {
	svc, err := s.services.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Create(ctx context.Context, name, description string) (*models.Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	svc := &models.Service{Name: name, Description: description}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Update(ctx context.Context, id int64, patch ServicePatch) (*models.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		svc.Name = name
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalogService) Delete(ctx context.Context, id int64) error {
	// Appointments keep their service_id; admin listings tolerate the
	// dangling reference through a LEFT JOIN.
	if err := s.services.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
