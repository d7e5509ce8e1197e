package cv

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/domain/cv"
)

type ListVisibleCVsUseCase struct {
	cvRepo cv.Repository
}

func NewListVisibleCVsUseCase(repo cv.Repository) *ListVisibleCVsUseCase {
	return &ListVisibleCVsUseCase{cvRepo: repo}
}

func (uc *ListVisibleCVsUseCase) Execute(ctx context.Context) ([]*cv.CV, error) {
	ctx, span := tracer.Start(ctx, "ListVisibleCVs")
	defer span.End()

	return uc.cvRepo.ListVisible(ctx)
}

type ListOwnerCVsUseCase struct {
	cvRepo cv.Repository
}

func NewListOwnerCVsUseCase(repo cv.Repository) *ListOwnerCVsUseCase {
	return &ListOwnerCVsUseCase{cvRepo: repo}
}

type ListOwnerCVsInput struct {
	CallerID uuid.UUID
	OwnerID  uuid.UUID
}

// Execute returns the owner's CVs. Hidden ones are included only for the owner.
func (uc *ListOwnerCVsUseCase) Execute(ctx context.Context, input ListOwnerCVsInput) ([]*cv.CV, error) {
	ctx, span := tracer.Start(ctx, "ListOwnerCVs")
	defer span.End()

	return uc.cvRepo.ListByOwner(ctx, input.OwnerID, input.CallerID != input.OwnerID)
}
