package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// AccountInput describes account creation payload.
type AccountInput struct {
	ID      string
	Name    string
	Website *string
	Phone   *string
}

// AccountPatch holds the fields to change; nil leaves a field untouched.
type AccountPatch struct {
	Name    *string
	Website *string
	Phone   *string
}

// AccountService coordinates account workflows.
type AccountService struct {
	accounts repository.AccountRepository
	contacts repository.ContactRepository
	events   publisher
}

// NewAccountService constructs the service.
func NewAccountService(accounts repository.AccountRepository, contacts repository.ContactRepository, dispatcher Publisher, logger *zap.Logger) *AccountService {
	return &AccountService{accounts: accounts, contacts: contacts, events: publisher{dispatcher, logger}}
}

// Create stores a new account in the scope's tenant.
func (s *AccountService) Create(ctx context.Context, scope Scope, input AccountInput) (*domain.Account, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	now := domain.NowMillis()
	account := &domain.Account{
		ID:        id,
		TenantID:  scope.TenantID,
		Name:      name,
		Website:   optional(input.Website),
		Phone:     optional(input.Phone),
		CreatedBy: &scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	s.events.publish(ctx, scope, events.EventAccountCreated, account.ID, nil)
	return account, nil
}

// Get returns one account.
func (s *AccountService) Get(ctx context.Context, scope Scope, id string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, notFound(err, "account")
	}
	return account, nil
}

// List returns accounts matching the filter.
func (s *AccountService) List(ctx context.Context, scope Scope, filter repository.ListFilter) ([]domain.Account, error) {
	return s.accounts.List(ctx, scope.TenantID, filter)
}

// Update applies a patch to an account.
func (s *AccountService) Update(ctx context.Context, scope Scope, id string, patch AccountPatch) error {
	account, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := patchRequired("name", &account.Name, patch.Name); err != nil {
		return err
	}
	patchOptional(&account.Website, patch.Website)
	patchOptional(&account.Phone, patch.Phone)
	account.UpdatedAt = domain.NowMillis()
	return notFound(s.accounts.Update(ctx, account), "account")
}

// Delete removes an account that no contact references.
func (s *AccountService) Delete(ctx context.Context, scope Scope, id string) error {
	linked, err := s.contacts.CountByAccount(ctx, scope.TenantID, id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return apperrors.NewConflict(apperrors.CodeAccountContacts, "account has linked contacts")
	}
	return deleteErr(s.accounts.Delete(ctx, scope.TenantID, id), "account")
}
