package cv

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
)

type MockCVRepo struct {
	mock.Mock
}

func (m *MockCVRepo) Save(ctx context.Context, c *cv.CV) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCVRepo) Update(ctx context.Context, c *cv.CV) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCVRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCVRepo) FindByID(ctx context.Context, id uuid.UUID) (*cv.CV, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cv.CV), args.Error(1)
}

func (m *MockCVRepo) ListVisible(ctx context.Context) ([]*cv.CV, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cv.CV), args.Error(1)
}

func (m *MockCVRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, visibleOnly bool) ([]*cv.CV, error) {
	args := m.Called(ctx, ownerID, visibleOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cv.CV), args.Error(1)
}

func (m *MockCVRepo) SearchVisibleByName(ctx context.Context, fragment string) ([]*cv.CV, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cv.CV), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e activity.Event) error {
	return m.Called(ctx, e).Error(0)
}
