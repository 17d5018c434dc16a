package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/events"
	apperrors "github.com/spec-kit/crm-service/pkg/util/errorutil"
)

const maxIDLength = 64

// Scope identifies who is acting and on which tenant. Every CRM operation
// receives one explicitly.
type Scope struct {
	TenantID string
	UserID   string
}

// Publisher is the subset of events.Dispatcher services need.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisher struct {
	dispatcher Publisher
	logger     *zap.Logger
}

func (p publisher) publish(ctx context.Context, scope Scope, eventType events.EventType, entityID string, payload interface{}) {
	if p.dispatcher == nil {
		return
	}
	event := events.New(eventType, scope.TenantID, scope.UserID, entityID, payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}

// NewID returns a time ordered unique identifier.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// resolveID keeps a caller supplied id or assigns a new one.
func resolveID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return NewID(), nil
	}
	if len(id) > maxIDLength || strings.ContainsAny(id, " \t\r\n/") {
		return "", apperrors.NewValidationError("id must be at most 64 characters without spaces or slashes")
	}
	return id, nil
}

// required trims v and reports a "<field>_required" error when it is empty.
func required(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", apperrors.NewRequiredField(field)
	}
	return v, nil
}

// optional trims v and maps blank values to nil.
func optional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// patchOptional applies a patch value when present; a blank value clears the field.
func patchOptional(dst **string, patch *string) {
	if patch != nil {
		*dst = optional(patch)
	}
}

// patchRequired applies a patch value when present, rejecting blanks.
func patchRequired(field string, dst *string, patch *string) error {
	if patch == nil {
		return nil
	}
	v, err := required(field, *patch)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func notFound(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource)
	}
	return err
}

func deleteErr(err error, resource string) error {
	if apperrors.IsForeignKeyViolation(err) {
		return apperrors.NewConflict(apperrors.CodeRecordInUse, resource+" is referenced by other records")
	}
	return notFound(err, resource)
}
