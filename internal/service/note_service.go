package service

import (
	"context"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/repository"
)

// NoteInput describes note creation payload.
type NoteInput struct {
	ID        string
	Body      string
	AccountID *string
	ContactID *string
	DealID    *string
	LeadID    *string
}

// NotePatch holds the fields to change.
type NotePatch struct {
	Body      *string
	AccountID *string
	ContactID *string
	DealID    *string
	LeadID    *string
}

// NoteService manages notes.
type NoteService struct {
	notes repository.NoteRepository
}

// NewNoteService constructs the service.
func NewNoteService(notes repository.NoteRepository) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) Create(ctx context.Context, scope Scope, input NoteInput) (*domain.Note, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	body, err := required("body", input.Body)
	if err != nil {
		return nil, err
	}
	now := domain.NowMillis()
	note := &domain.Note{
		ID:        id,
		TenantID:  scope.TenantID,
		Body:      body,
		AccountID: optional(input.AccountID),
		ContactID: optional(input.ContactID),
		DealID:    optional(input.DealID),
		LeadID:    optional(input.LeadID),
		CreatedBy: &scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Get(ctx context.Context, scope Scope, id string) (*domain.Note, error) {
	note, err := s.notes.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, notFound(err, "note")
	}
	return note, nil
}

func (s *NoteService) List(ctx context.Context, scope Scope, filter repository.ListFilter) ([]domain.Note, error) {
	return s.notes.List(ctx, scope.TenantID, filter)
}

func (s *NoteService) Update(ctx context.Context, scope Scope, id string, patch NotePatch) error {
	note, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := patchRequired("body", &note.Body, patch.Body); err != nil {
		return err
	}
	patchOptional(&note.AccountID, patch.AccountID)
	patchOptional(&note.ContactID, patch.ContactID)
	patchOptional(&note.DealID, patch.DealID)
	patchOptional(&note.LeadID, patch.LeadID)
	note.UpdatedAt = domain.NowMillis()
	return notFound(s.notes.Update(ctx, note), "note")
}

func (s *NoteService) Delete(ctx context.Context, scope Scope, id string) error {
	return deleteErr(s.notes.Delete(ctx, scope.TenantID, id), "note")
}
