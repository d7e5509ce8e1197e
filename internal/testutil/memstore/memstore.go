// Package memstore holds in-memory repositories for tests that need storage
// semantics without a database.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/internal/domain/user"
	"github.com/khoahotran/cvhub/pkg/apperror"
)

type CVRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]cv.CV
}

func NewCVRepo() *CVRepo {
	return &CVRepo{items: make(map[uuid.UUID]cv.CV)}
}

var _ cv.Repository = (*CVRepo)(nil)

func (r *CVRepo) Save(_ context.Context, c *cv.CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = *c
	return nil
}

func (r *CVRepo) Update(_ context.Context, c *cv.CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return apperror.NewNotFound("cv", c.ID.String())
	}
	r.items[c.ID] = *c
	return nil
}

func (r *CVRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("cv", id.String())
	}
	delete(r.items, id)
	return nil
}

func (r *CVRepo) FindByID(_ context.Context, id uuid.UUID) (*cv.CV, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("cv", id.String())
	}
	return &c, nil
}

func (r *CVRepo) ListVisible(_ context.Context) ([]*cv.CV, error) {
	return r.filter(func(c cv.CV) bool { return c.Visible }), nil
}

func (r *CVRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, visibleOnly bool) ([]*cv.CV, error) {
	return r.filter(func(c cv.CV) bool {
		return c.IsOwnedBy(ownerID) && (c.Visible || !visibleOnly)
	}), nil
}

func (r *CVRepo) SearchVisibleByName(_ context.Context, fragment string) ([]*cv.CV, error) {
	needle := strings.ToLower(fragment)
	return r.filter(func(c cv.CV) bool {
		return c.Visible && (strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle))
	}), nil
}

func (r *CVRepo) filter(keep func(cv.CV) bool) []*cv.CV {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*cv.CV, 0)
	for _, c := range r.items {
		if keep(c) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type RecommendationRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]recommendation.Recommendation
}

func NewRecommendationRepo() *RecommendationRepo {
	return &RecommendationRepo{items: make(map[uuid.UUID]recommendation.Recommendation)}
}

var _ recommendation.Repository = (*RecommendationRepo)(nil)

func (r *RecommendationRepo) Save(_ context.Context, rec *recommendation.Recommendation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rec.ID] = *rec
	return nil
}

func (r *RecommendationRepo) FindByID(_ context.Context, id uuid.UUID) (*recommendation.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("recommendation", id.String())
	}
	return &rec, nil
}

func (r *RecommendationRepo) ListByCV(_ context.Context, cvID uuid.UUID) ([]*recommendation.Recommendation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*recommendation.Recommendation, 0)
	for _, rec := range r.items {
		if rec.CVID == cvID {
			out = append(out, &rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *RecommendationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperror.NewNotFound("recommendation", id.String())
	}
	delete(r.items, id)
	return nil
}

type UserRepo struct {
	mu    sync.RWMutex
	items map[uuid.UUID]user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{items: make(map[uuid.UUID]user.User)}
}

var _ user.Repository = (*UserRepo)(nil)

func (r *UserRepo) Save(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(u.Email, u.ID) {
		return apperror.NewConflict("user", "email", u.Email)
	}
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) Update(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[u.ID]; !ok {
		return apperror.NewNotFound("user", u.ID.String())
	}
	if r.emailTaken(u.Email, u.ID) {
		return apperror.NewConflict("user", "email", u.Email)
	}
	r.items[u.ID] = *u
	return nil
}

func (r *UserRepo) emailTaken(email string, except uuid.UUID) bool {
	for id, existing := range r.items {
		if id != except && existing.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.items[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id.String())
	}
	return &u, nil
}

type ActivityRepo struct {
	mu     sync.Mutex
	events []activity.Event
}

func NewActivityRepo() *ActivityRepo {
	return &ActivityRepo{}
}

var _ activity.Repository = (*ActivityRepo)(nil)

func (r *ActivityRepo) Append(_ context.Context, e activity.Event) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.events {
		if existing.ID == e.ID {
			return false, nil
		}
	}
	r.events = append(r.events, e)
	return true, nil
}

func (r *ActivityRepo) ListByCV(_ context.Context, cvID uuid.UUID, limit int) ([]activity.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]activity.Event, 0)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		if r.events[i].CVID == cvID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}

// Publisher records published events in memory.
type Publisher struct {
	mu     sync.Mutex
	Events []activity.Event
}

func (p *Publisher) Publish(_ context.Context, e activity.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, e)
	return nil
}

func (p *Publisher) Types() []activity.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]activity.EventType, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.Type
	}
	return out
}
