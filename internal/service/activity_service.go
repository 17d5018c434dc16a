package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

// ActivityInput describes activity creation payload.
type ActivityInput struct {
	ID                  string
	Type                domain.ActivityType
	Title               string
	Status              domain.ActivityStatus
	DueDate             *int64
	RemindBeforeMinutes *int
	Notes               *string
	AccountID           *string
	ContactID           *string
	DealID              *string
	LeadID              *string
}

// ActivityPatch holds the fields to change.
type ActivityPatch struct {
	Type                *domain.ActivityType
	Title               *string
	Status              *domain.ActivityStatus
	DueDate             *int64
	RemindBeforeMinutes *int
	Notes               *string
	AccountID           *string
	ContactID           *string
	DealID              *string
	LeadID              *string
}

// ActivityService coordinates activities and their reminder events.
type ActivityService struct {
	activities repository.ActivityRepository
	events     publisher
}

// NewActivityService constructs the service.
func NewActivityService(activities repository.ActivityRepository, dispatcher Publisher, logger *zap.Logger) *ActivityService {
	return &ActivityService{activities: activities, events: publisher{dispatcher, logger}}
}

func (s *ActivityService) Create(ctx context.Context, scope Scope, input ActivityInput) (*domain.Activity, error) {
	id, err := resolveID(input.ID)
	if err != nil {
		return nil, err
	}
	title, err := required("title", input.Title)
	if err != nil {
		return nil, err
	}
	activity := &domain.Activity{
		ID:                  id,
		TenantID:            scope.TenantID,
		Type:                input.Type,
		Title:               title,
		Status:              input.Status,
		DueDate:             input.DueDate,
		RemindBeforeMinutes: input.RemindBeforeMinutes,
		Notes:               optional(input.Notes),
		AccountID:           optional(input.AccountID),
		ContactID:           optional(input.ContactID),
		DealID:              optional(input.DealID),
		LeadID:              optional(input.LeadID),
		CreatedBy:           &scope.UserID,
	}
	if activity.Type == "" {
		activity.Type = domain.ActivityTypeTask
	}
	if activity.Status == "" {
		activity.Status = domain.ActivityStatusPending
	}
	if err := validateActivity(activity); err != nil {
		return nil, err
	}
	now := domain.NowMillis()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	s.publishSchedule(ctx, scope, activity)
	return activity, nil
}

func (s *ActivityService) Get(ctx context.Context, scope Scope, id string) (*domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, scope.TenantID, id)
	if err != nil {
		return nil, notFound(err, "activity")
	}
	return activity, nil
}

func (s *ActivityService) List(ctx context.Context, scope Scope, filter repository.ListFilter) ([]domain.Activity, error) {
	return s.activities.List(ctx, scope.TenantID, filter)
}

func (s *ActivityService) Update(ctx context.Context, scope Scope, id string, patch ActivityPatch) error {
	activity, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	before := *activity

	if err := patchRequired("title", &activity.Title, patch.Title); err != nil {
		return err
	}
	if patch.Type != nil {
		activity.Type = *patch.Type
	}
	if patch.Status != nil {
		activity.Status = *patch.Status
	}
	if patch.DueDate != nil {
		activity.DueDate = patch.DueDate
	}
	if patch.RemindBeforeMinutes != nil {
		activity.RemindBeforeMinutes = patch.RemindBeforeMinutes
	}
	patchOptional(&activity.Notes, patch.Notes)
	patchOptional(&activity.AccountID, patch.AccountID)
	patchOptional(&activity.ContactID, patch.ContactID)
	patchOptional(&activity.DealID, patch.DealID)
	patchOptional(&activity.LeadID, patch.LeadID)
	if err := validateActivity(activity); err != nil {
		return err
	}

	activity.UpdatedAt = domain.NowMillis()
	if err := s.activities.Update(ctx, activity); err != nil {
		return notFound(err, "activity")
	}

	switch {
	case before.Status != domain.ActivityStatusDone && activity.Status == domain.ActivityStatusDone:
		s.events.publish(ctx, scope, events.EventActivityCompleted, activity.ID, nil)
	case !sameInt64(before.DueDate, activity.DueDate) || !sameInt(before.RemindBeforeMinutes, activity.RemindBeforeMinutes):
		s.publishSchedule(ctx, scope, activity)
	}
	return nil
}

func (s *ActivityService) Delete(ctx context.Context, scope Scope, id string) error {
	return deleteErr(s.activities.Delete(ctx, scope.TenantID, id), "activity")
}

func (s *ActivityService) publishSchedule(ctx context.Context, scope Scope, a *domain.Activity) {
	if a.DueDate == nil || a.Status == domain.ActivityStatusDone {
		return
	}
	remind := domain.DefaultRemindBeforeMinutes
	if a.RemindBeforeMinutes != nil {
		remind = *a.RemindBeforeMinutes
	}
	s.events.publish(ctx, scope, events.EventActivityScheduled, a.ID, events.ActivityScheduledPayload{
		Title:               a.Title,
		DueDate:             *a.DueDate,
		RemindBeforeMinutes: remind,
	})
}

func validateActivity(a *domain.Activity) error {
	if !a.Type.Valid() {
		return apperrors.NewValidationError("unknown activity type " + string(a.Type))
	}
	if !a.Status.Valid() {
		return apperrors.NewValidationError("unknown activity status " + string(a.Status))
	}
	if a.RemindBeforeMinutes != nil {
		if *a.RemindBeforeMinutes < 0 {
			return apperrors.NewValidationError("remind_before_minutes must not be negative")
		}
		if *a.RemindBeforeMinutes > domain.MaxRemindBeforeMinutes {
			return apperrors.NewValidationError(fmt.Sprintf("remind_before_minutes must be at most %d", domain.MaxRemindBeforeMinutes))
		}
	}
	return nil
}

func sameInt64(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
