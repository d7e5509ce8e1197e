package recommendation

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/domain/recommendation"
)

type ListRecommendationsUseCase struct {
	recRepo recommendation.Repository
}

func NewListRecommendationsUseCase(repo recommendation.Repository) *ListRecommendationsUseCase {
	return &ListRecommendationsUseCase{recRepo: repo}
}

func (uc *ListRecommendationsUseCase) Execute(ctx context.Context, cvID uuid.UUID) ([]*recommendation.Recommendation, error) {
	ctx, span := tracer.Start(ctx, "ListRecommendations")
	defer span.End()

	return uc.recRepo.ListByCV(ctx, cvID)
}
