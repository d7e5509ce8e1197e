package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Author is a point-in-time copy of the writer's identity. It is never
// refreshed when the writer later changes their own profile.
type Author struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
}

type Recommendation struct {
	ID          uuid.UUID
	Author      Author
	CVID        uuid.UUID
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func New(author Author, cvID uuid.UUID, description string, now time.Time) *Recommendation {
	return &Recommendation{
		ID:          uuid.New(),
		Author:      author,
		CVID:        cvID,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *Recommendation) IsWrittenBy(userID uuid.UUID) bool {
	return r.Author.ID == userID
}

type Repository interface {
	Save(ctx context.Context, r *Recommendation) error
	FindByID(ctx context.Context, id uuid.UUID) (*Recommendation, error)
	ListByCV(ctx context.Context, cvID uuid.UUID) ([]*Recommendation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
