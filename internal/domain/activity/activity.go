package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	CVCreated             EventType = "cv.created"
	CVUpdated             EventType = "cv.updated"
	CVDeleted             EventType = "cv.deleted"
	RecommendationCreated EventType = "recommendation.created"
	RecommendationDeleted EventType = "recommendation.deleted"
)

// Event records a completed write on a CV or a recommendation.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"event_type"`
	ResourceID uuid.UUID `json:"resource_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	CVID       uuid.UUID `json:"cv_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(t EventType, resourceID, actorID, cvID uuid.UUID) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		ResourceID: resourceID,
		ActorID:    actorID,
		CVID:       cvID,
		OccurredAt: time.Now().UTC(),
	}
}

func (t EventType) IsRecommendation() bool {
	return t == RecommendationCreated || t == RecommendationDeleted
}

func (t EventType) Known() bool {
	switch t {
	case CVCreated, CVUpdated, CVDeleted, RecommendationCreated, RecommendationDeleted:
		return true
	}
	return false
}

// Repository is the append-only audit trail fed by the worker.
type Repository interface {
	Append(ctx context.Context, e Event) (bool, error)
	ListByCV(ctx context.Context, cvID uuid.UUID, limit int) ([]Event, error)
}
