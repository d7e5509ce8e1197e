package cv

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/application/service"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type DeleteCVUseCase struct {
	cvRepo    cv.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewDeleteCVUseCase(repo cv.Repository, pub service.EventPublisher, log logger.Logger) *DeleteCVUseCase {
	return &DeleteCVUseCase{
		cvRepo:    repo,
		publisher: pub,
		logger:    log,
	}
}

type DeleteCVInput struct {
	CVID     uuid.UUID
	CallerID uuid.UUID
}

// Execute removes the CV. Recommendations pointing at it are left in place.
func (uc *DeleteCVUseCase) Execute(ctx context.Context, input DeleteCVInput) error {
	ctx, span := tracer.Start(ctx, "DeleteCV")
	defer span.End()
	ctx = context.WithoutCancel(ctx)

	existing, err := uc.cvRepo.FindByID(ctx, input.CVID)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !existing.IsOwnedBy(input.CallerID) {
		return apperror.NewPermissionDenied("only the owner can delete this cv")
	}

	if err := uc.cvRepo.Delete(ctx, input.CVID); err != nil {
		span.RecordError(err)
		return err
	}

	service.Emit(ctx, uc.publisher, uc.logger,
		activity.NewEvent(activity.CVDeleted, input.CVID, input.CallerID, input.CVID))

	return nil
}
