package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/fredson0/Agendamento-Amado/internal/models"
	"github.com/fredson0/Agendamento-Amado/internal/repository"
)

// ContactInput carries the fields of a new contact message.
type ContactInput struct {
	Subject  string
	Body     string
	Category string
}

// ContactService manages the contact-message inbox. Users create and read
// their own messages; status changes, replies and deletion are admin-only.
type ContactService interface {
	Create(ctx context.Context, requester Identity, input ContactInput) (*models.ContactMessage, error)
	Get(ctx context.Context, requester Identity, id int64) (*models.ContactMessage, error)
	ListMine(ctx context.Context, requester Identity) ([]models.ContactMessage, error)
	ListAll(ctx context.Context, filter repository.ContactListFilter) ([]models.ContactMessage, error)
	SetStatus(ctx context.Context, id int64, status models.ContactStatus, reply string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*repository.ContactStats, error)
}

type contactService struct {
	messages repository.ContactRepository
	users    repository.UserRepository
}

// NewContactService creates a new ContactService instance.
func NewContactService(messages repository.ContactRepository, users repository.UserRepository) ContactService {
	return &contactService{messages: messages, users: users}
}

func (s *contactService) Create(ctx context.Context, requester Identity, input ContactInput) (*models.ContactMessage, error) {
	subject := strings.TrimSpace(input.Subject)
	body := strings.TrimSpace(input.Body)
	if subject == "" || body == "" {
		return nil, fmt.Errorf("%w: subject and body are required", ErrValidation)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = "general"
	}

	// Denormalize the sender's current name and email into the message.
	user, err := s.users.FindByID(ctx, requester.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msg := &models.ContactMessage{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Subject:   subject,
		Body:      body,
		Category:  category,
		Status:    models.ContactPending,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *contactService) Get(ctx context.Context, requester Identity, id int64) (*models.ContactMessage, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !requester.CanAccess(msg.UserID) {
		return nil, ErrForbidden
	}
	return msg, nil
}

func (s *contactService) ListMine(ctx context.Context, requester Identity) ([]models.ContactMessage, error) {
	return s.messages.ListByUser(ctx, requester.ID)
}

func (s *contactService) ListAll(ctx context.Context, filter repository.ContactListFilter) ([]models.ContactMessage, error) {
	return s.messages.ListAll(ctx, filter)
}

func (s *contactService) SetStatus(ctx context.Context, id int64, status models.ContactStatus, reply string) (*models.ContactMessage, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msg.Status = status
	now := time.Now().UTC()
	msg.AnsweredAt = &now
	if reply != "" {
		msg.AdminReply = &reply
	}

	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	if err := s.messages.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *contactService) Stats(ctx context.Context) (*repository.ContactStats, error) {
	return s.messages.Stats(ctx)
}
