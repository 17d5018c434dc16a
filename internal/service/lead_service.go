package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// LeadInput describes lead creation payload.
type LeadInput struct {
	ID      string
	Name    string
	Email   *string
	Phone   *string
	Company *string
	Source  *string
	Status  domain.LeadStatus
}

// LeadPatch holds the fields to change.
type LeadPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	Source  *string
	Status  *domain.LeadStatus
}

// LeadConversion reports the records created from a lead.
type LeadConversion struct {
	AccountID *string
	ContactID string
}

// LeadService coordinates lead workflows.
type LeadService struct {
	leads    repository.LeadRepository
	accounts repository.AccountRepository
	contacts repository.ContactRepository
	tx       repository.Transactor
	events   publisher
}

// LeadDependencies bundles repositories for the lead service.
type LeadDependencies struct {
	LeadRepo    repository.LeadRepository
	AccountRepo repository.AccountRepository
	ContactRepo repository.ContactRepository
	Transactor  repository.Transactor
	Dispatcher  Publisher
	Logger      *zap.Logger
}

// NewLeadService constructs the service.
func NewLeadService(deps LeadDependencies) *LeadService {
	return &LeadService{
		leads:    deps.LeadRepo,
		accounts: deps.AccountRepo,
		contacts: deps.ContactRepo,
		tx:       deps.Transactor,
		events:   publisher{deps.Dispatcher, deps.Logger},
	}
}

func (s *LeadService) Create(ctx context.Context, scope Scope, input LeadInput) (*domain.Lead, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	status := input.Status
	if status == "" {
		status = domain.LeadStatusNew
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown lead status " + string(status))
	}
	now := domain.NowMillis()
	lead := &domain.Lead{
		ID:        id,
		TenantID:  scope.TenantID,
		Name:      name,
		Email:     optional(input.Email),
		Phone:     optional(input.Phone),
		Company:   optional(input.Company),
		Source:    optional(input.Source),
		Status:    status,
		CreatedBy: &scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *LeadService) Get(ctx context.Context, scope Scope, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, notFound(err, "lead")
	}
	return lead, nil
}

func (s *LeadService) List(ctx context.Context, scope Scope, filter repository.ListFilter) ([]domain.Lead, error) {
	return s.leads.List(ctx, scope.TenantID, filter)
}

func (s *LeadService) Update(ctx context.Context, scope Scope, id string, patch LeadPatch) error {
	lead, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := patchRequired("name", &lead.Name, patch.Name); err != nil {
		return err
	}
	patchOptional(&lead.Email, patch.Email)
	patchOptional(&lead.Phone, patch.Phone)
	patchOptional(&lead.Company, patch.Company)
	patchOptional(&lead.Source, patch.Source)
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return apperrors.NewValidationError("unknown lead status " + string(*patch.Status))
		}
		lead.Status = *patch.Status
	}
	lead.UpdatedAt = domain.NowMillis()
	return notFound(s.leads.Update(ctx, lead), "lead")
}

func (s *LeadService) Delete(ctx context.Context, scope Scope, id string) error {
	return deleteErr(s.leads.Delete(ctx, scope.TenantID, id), "lead")
}

// Convert turns a lead into a contact, plus an account when the lead names a
// company, and marks the lead qualified. All writes share one transaction.
func (s *LeadService) Convert(ctx context.Context, scope Scope, id string) (*LeadConversion, error) {
	var result LeadConversion
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		lead, err := s.Get(ctx, scope, id)
		if err != nil {
			return err
		}
		if lead.Status == domain.LeadStatusDiscarded {
			return apperrors.NewConflict(apperrors.CodeConflict, "discarded leads cannot be converted")
		}

		now := domain.NowMillis()
		if lead.Company != nil {
			account := &domain.Account{
				ID:        NewID(),
				TenantID:  scope.TenantID,
				Name:      *lead.Company,
				Phone:     lead.Phone,
				CreatedBy: &scope.UserID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.accounts.Create(ctx, account); err != nil {
				return err
			}
			result.AccountID = &account.ID
		}

		contact := &domain.Contact{
			ID:        NewID(),
			TenantID:  scope.TenantID,
			Name:      lead.Name,
			Email:     lead.Email,
			Phone:     lead.Phone,
			AccountID: result.AccountID,
			CreatedBy: &scope.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.contacts.Create(ctx, contact); err != nil {
			return err
		}
		result.ContactID = contact.ID

		lead.Status = domain.LeadStatusQualified
		lead.UpdatedAt = now
		return s.leads.Update(ctx, lead)
	})
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, scope, events.EventLeadConverted, id,
		events.LeadConvertedPayload{AccountID: result.AccountID, ContactID: result.ContactID})
	return &result, nil
}
