package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
)

// ContactInput describes contact creation payload.
type ContactInput struct {
	ID        string
	Name      string
	Email     *string
	Phone     *string
	Title     *string
	AccountID *string
}

// ContactPatch holds the fields to change.
type ContactPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	Title     *string
	AccountID *string
}

// ContactService coordinates contact workflows.
type ContactService struct {
	contacts repository.ContactRepository
	events   publisher
}

// NewContactService constructs the service.
func NewContactService(contacts repository.ContactRepository, dispatcher Publisher, logger *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, events: publisher{dispatcher, logger}}
}

func (s *ContactService) Create(ctx context.Context, scope Scope, input ContactInput) (*domain.Contact, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	now := domain.NowMillis()
	contact := &domain.Contact{
		ID:        id,
		TenantID:  scope.TenantID,
		Name:      name,
		Email:     optional(input.Email),
		Phone:     optional(input.Phone),
		Title:     optional(input.Title),
		AccountID: optional(input.AccountID),
		CreatedBy: &scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	s.events.publish(ctx, scope, events.EventContactCreated, contact.ID, nil)
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, scope Scope, id string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, notFound(err, "contact")
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context, scope Scope, filter repository.ListFilter) ([]domain.Contact, error) {
	return s.contacts.List(ctx, scope.TenantID, filter)
}

func (s *ContactService) Update(ctx context.Context, scope Scope, id string, patch ContactPatch) error {
	contact, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := patchRequired("name", &contact.Name, patch.Name); err != nil {
		return err
	}
	patchOptional(&contact.Email, patch.Email)
	patchOptional(&contact.Phone, patch.Phone)
	patchOptional(&contact.Title, patch.Title)
	patchOptional(&contact.AccountID, patch.AccountID)
	contact.UpdatedAt = domain.NowMillis()
	return notFound(s.contacts.Update(ctx, contact), "contact")
}

func (s *ContactService) Delete(ctx context.Context, scope Scope, id string) error {
	return deleteErr(s.contacts.Delete(ctx, scope.TenantID, id), "contact")
}
