package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountCreated    EventType = "account.created"
	EventContactCreated    EventType = "contact.created"
	EventDealStageChanged  EventType = "deal.stage_changed"
	EventLeadConverted     EventType = "lead.converted"
	EventActivityScheduled EventType = "activity.scheduled"
	EventActivityCompleted EventType = "activity.completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TenantID  string      `json:"tenant_id"`
	ActorID   string      `json:"actor_id"`
	EntityID  string      `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// New stamps an event with an id and the current time.
func New(eventType EventType, tenantID, actorID, entityID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TenantID:  tenantID,
		ActorID:   actorID,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// DealStageChangedPayload payload.
type DealStageChangedPayload struct {
	OldStage domain.DealStage `json:"old_stage"`
	NewStage domain.DealStage `json:"new_stage"`
}

// LeadConvertedPayload payload.
type LeadConvertedPayload struct {
	AccountID *string `json:"account_id,omitempty"`
	ContactID string  `json:"contact_id"`
}

// ActivityScheduledPayload payload.
type ActivityScheduledPayload struct {
	Title               string `json:"title"`
	DueDate             int64  `json:"due_date"`
	RemindBeforeMinutes int    `json:"remind_before_minutes"`
}
