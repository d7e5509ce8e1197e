package recommendation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/application/service"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type DeleteRecommendationUseCase struct {
	recRepo   recommendation.Repository
	cvRepo    cv.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewDeleteRecommendationUseCase(recRepo recommendation.Repository, cvRepo cv.Repository, pub service.EventPublisher, log logger.Logger) *DeleteRecommendationUseCase {
	return &DeleteRecommendationUseCase{
		recRepo:   recRepo,
		cvRepo:    cvRepo,
		publisher: pub,
		logger:    log,
	}
}

type DeleteRecommendationInput struct {
	RecommendationID uuid.UUID
	CallerID         uuid.UUID
}

// Execute lets the author or the owner of the recommended CV remove a recommendation.
func (uc *DeleteRecommendationUseCase) Execute(ctx context.Context, input DeleteRecommendationInput) error {
	ctx, span := tracer.Start(ctx, "DeleteRecommendation")
	defer span.End()
	ctx = context.WithoutCancel(ctx)

	rec, err := uc.recRepo.FindByID(ctx, input.RecommendationID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	allowed, err := uc.mayDelete(ctx, rec, input.CallerID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !allowed {
		return apperror.NewPermissionDenied("only the author or the cv owner can delete this recommendation")
	}

	if err := uc.recRepo.Delete(ctx, rec.ID); err != nil {
		span.RecordError(err)
		return err
	}

	service.Emit(ctx, uc.publisher, uc.logger,
		activity.NewEvent(activity.RecommendationDeleted, rec.ID, input.CallerID, rec.CVID))

	return nil
}

func (uc *DeleteRecommendationUseCase) mayDelete(ctx context.Context, rec *recommendation.Recommendation, callerID uuid.UUID) (bool, error) {
	if rec.IsWrittenBy(callerID) {
		return true, nil
	}
	target, err := uc.cvRepo.FindByID(ctx, rec.CVID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return target.IsOwnedBy(callerID), nil
}
