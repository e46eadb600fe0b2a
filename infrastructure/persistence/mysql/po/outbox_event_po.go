package po

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"shopcore/domain/shared"
)

// Outbox event statuses.
const (
	OutboxStatusPending    = "PENDING"
	OutboxStatusProcessing = "PROCESSING"
	OutboxStatusPublished  = "PUBLISHED"
	OutboxStatusFailed     = "FAILED"
)

// OutboxEventPO transactional outbox row. Events are written in the
// same transaction as the aggregate change and relayed asynchronously.
type OutboxEventPO struct {
	ID          string     `gorm:"primaryKey;size:64"`
	EventName   string     `gorm:"size:100;not null;index"`
	AggregateID string     `gorm:"size:64;not null;index"`
	Payload     string     `gorm:"type:json;not null"`
	Status      string     `gorm:"size:16;not null;default:PENDING;index"`
	RetryCount  int        `gorm:"not null;default:0"`
	OccurredOn  time.Time  `gorm:"not null"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	PublishedAt *time.Time `gorm:""`
	LastError   string     `gorm:"size:512"`
}

// TableName table name.
func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// eventEnvelope is the serialized payload shape. Domain events keep
// their fields private, so the envelope carries the interface data plus
// whatever detail the event chooses to expose via Payload().
type eventEnvelope struct {
	EventName   string         `json:"event_name"`
	AggregateID string         `json:"aggregate_id"`
	OccurredOn  time.Time      `json:"occurred_on"`
	Detail      map[string]any `json:"detail,omitempty"`
}

// payloadCarrier is implemented by events that expose structured detail
// for downstream consumers.
type payloadCarrier interface {
	Payload() map[string]any
}

// FromDomainEvent converts a domain event into an outbox row.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	envelope := eventEnvelope{
		EventName:   event.EventName(),
		AggregateID: event.GetAggregateID(),
		OccurredOn:  event.OccurredOn(),
	}
	if carrier, ok := event.(payloadCarrier); ok {
		envelope.Detail = carrier.Payload()
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}

	return &OutboxEventPO{
		ID:          uuid.New().String(),
		EventName:   event.EventName(),
		AggregateID: event.GetAggregateID(),
		Payload:     string(payload),
		Status:      OutboxStatusPending,
		OccurredOn:  event.OccurredOn(),
	}, nil
}
