package cv

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/domain/cv"
)

type GetCVUseCase struct {
	cvRepo cv.Repository
}

func NewGetCVUseCase(repo cv.Repository) *GetCVUseCase {
	return &GetCVUseCase{cvRepo: repo}
}

func (uc *GetCVUseCase) Execute(ctx context.Context, id uuid.UUID) (*cv.CV, error) {
	ctx, span := tracer.Start(ctx, "GetCV")
	defer span.End()

	c, err := uc.cvRepo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return c, nil
}
