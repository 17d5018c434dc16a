package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// DealInput describes deal creation payload.
type DealInput struct {
	ID        string
	Title     string
	Amount    *float64
	Currency  *string
	Stage     domain.DealStage
	CloseDate *int64
	AccountID *string
	ContactID *string
}

// DealPatch holds the fields to change.
type DealPatch struct {
	Title     *string
	Amount    *float64
	Currency  *string
	Stage     *domain.DealStage
	CloseDate *int64
	AccountID *string
	ContactID *string
}

// DealService coordinates the sales pipeline.
type DealService struct {
	deals  repository.DealRepository
	events publisher
}

// NewDealService constructs the service.
func NewDealService(deals repository.DealRepository, dispatcher Publisher, logger *zap.Logger) *DealService {
	return &DealService{deals: deals, events: publisher{dispatcher, logger}}
}

func (s *DealService) Create(ctx context.Context, scope Scope, input DealInput) (*domain.Deal, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	title, err := required("title", input.Title)
	if err != nil {
		return nil, err
	}
	stage := input.Stage
	if stage == "" {
		stage = domain.DealStageNew
	}
	if !stage.Valid() {
		return nil, apperrors.NewValidationError("unknown deal stage " + string(stage))
	}
	if input.Amount != nil && *input.Amount < 0 {
		return nil, apperrors.NewValidationError("amount must not be negative")
	}
	now := domain.NowMillis()
	deal := &domain.Deal{
		ID:        id,
		TenantID:  scope.TenantID,
		Title:     title,
		Amount:    input.Amount,
		Currency:  optional(input.Currency),
		Stage:     stage,
		CloseDate: input.CloseDate,
		AccountID: optional(input.AccountID),
		ContactID: optional(input.ContactID),
		CreatedBy: &scope.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deals.Create(ctx, deal); err != nil {
		return nil, err
	}
	return deal, nil
}

func (s *DealService) Get(ctx context.Context, scope Scope, id string) (*domain.Deal, error) {
	deal, err := s.deals.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, notFound(err, "deal")
	}
	return deal, nil
}

func (s *DealService) List(ctx context.Context, scope Scope, filter repository.ListFilter) ([]domain.Deal, error) {
	return s.deals.List(ctx, scope.TenantID, filter)
}

// Update applies a patch and publishes a stage change event when the stage moves.
func (s *DealService) Update(ctx context.Context, scope Scope, id string, patch DealPatch) error {
	deal, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := patchRequired("title", &deal.Title, patch.Title); err != nil {
		return err
	}
	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return apperrors.NewValidationError("amount must not be negative")
		}
		deal.Amount = patch.Amount
	}
	patchOptional(&deal.Currency, patch.Currency)
	patchOptional(&deal.AccountID, patch.AccountID)
	patchOptional(&deal.ContactID, patch.ContactID)
	if patch.CloseDate != nil {
		deal.CloseDate = patch.CloseDate
	}

	oldStage := deal.Stage
	if patch.Stage != nil {
		if !patch.Stage.Valid() {
			return apperrors.NewValidationError("unknown deal stage " + string(*patch.Stage))
		}
		deal.Stage = *patch.Stage
	}
	deal.UpdatedAt = domain.NowMillis()
	if err := s.deals.Update(ctx, deal); err != nil {
		return notFound(err, "deal")
	}
	if deal.Stage != oldStage {
		s.events.publish(ctx, scope, events.EventDealStageChanged, deal.ID,
			events.DealStageChangedPayload{OldStage: oldStage, NewStage: deal.Stage})
	}
	return nil
}

func (s *DealService) Delete(ctx context.Context, scope Scope, id string) error {
	return deleteErr(s.deals.Delete(ctx, scope.TenantID, id), "deal")
}
