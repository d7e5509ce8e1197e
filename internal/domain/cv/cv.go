package cv

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Diploma struct {
	Title  string `json:"title"`
	School string `json:"school"`
	Year   int    `json:"year"`
}

type Certification struct {
	Name     string `json:"name"`
	IssuedBy string `json:"issuedBy,omitempty"`
	Year     int    `json:"year"`
}

type Formation struct {
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Year        int    `json:"year"`
}

type Job struct {
	Title     string   `json:"title"`
	StartYear float64  `json:"startYear"`
	EndYear   *float64 `json:"endYear,omitempty"`
}

type Mission struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Company struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Industry string `json:"industry,omitempty"`
}

// Draft is the caller-owned content of a CV, replaced wholesale on update.
type Draft struct {
	FirstName      string          `json:"firstname"`
	LastName       string          `json:"lastname"`
	Description    string          `json:"description"`
	Visible        bool            `json:"visible"`
	Diplomas       []Diploma       `json:"diplomas"`
	Certifications []Certification `json:"certifications"`
	Formations     []Formation     `json:"formations"`
	Jobs           []Job           `json:"jobs"`
	Missions       []Mission       `json:"missions"`
	Companies      []Company       `json:"companies"`
}

// CV is the aggregate root. Nested records have no identity of their own.
type CV struct {
	ID      uuid.UUID
	OwnerID *uuid.UUID
	Draft
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(ownerID uuid.UUID, d Draft, now time.Time) *CV {
	return &CV{
		ID:        uuid.New(),
		OwnerID:   &ownerID,
		Draft:     d.Normalized(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Replace swaps every mutable field for the content of d.
func (c *CV) Replace(d Draft, now time.Time) {
	c.Draft = d.Normalized()
	c.UpdatedAt = now
}

func (c *CV) IsOwnedBy(userID uuid.UUID) bool {
	return c.OwnerID != nil && *c.OwnerID == userID
}

// Normalized returns d with nil sections replaced by empty ones.
func (d Draft) Normalized() Draft {
	if d.Diplomas == nil {
		d.Diplomas = []Diploma{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Formations == nil {
		d.Formations = []Formation{}
	}
	if d.Jobs == nil {
		d.Jobs = []Job{}
	}
	if d.Missions == nil {
		d.Missions = []Mission{}
	}
	if d.Companies == nil {
		d.Companies = []Company{}
	}
	return d
}

type Repository interface {
	Save(ctx context.Context, cv *CV) error
	Update(ctx context.Context, cv *CV) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*CV, error)
	ListVisible(ctx context.Context) ([]*CV, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, visibleOnly bool) ([]*CV, error)
	SearchVisibleByName(ctx context.Context, fragment string) ([]*CV, error)
}
