package cv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/application/service"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type UpdateCVUseCase struct {
	cvRepo    cv.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewUpdateCVUseCase(repo cv.Repository, pub service.EventPublisher, log logger.Logger) *UpdateCVUseCase {
	return &UpdateCVUseCase{
		cvRepo:    repo,
		publisher: pub,
		logger:    log,
	}
}

type UpdateCVInput struct {
	CVID     uuid.UUID
	CallerID uuid.UUID
	Body     map[string]any
}

// Execute replaces every mutable field of the CV. Invalid bodies never reach storage.
func (uc *UpdateCVUseCase) Execute(ctx context.Context, input UpdateCVInput) (*cv.CV, error) {
	ctx, span := tracer.Start(ctx, "UpdateCV")
	defer span.End()
	ctx = context.WithoutCancel(ctx)

	draft, err := cv.ParseDraft(input.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	existing, err := uc.cvRepo.FindByID(ctx, input.CVID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if !existing.IsOwnedBy(input.CallerID) {
		return nil, apperror.NewPermissionDenied("only the owner can update this cv")
	}

	existing.Replace(*draft, time.Now().UTC())
	if err := uc.cvRepo.Update(ctx, existing); err != nil {
		span.RecordError(err)
		return nil, err
	}

	service.Emit(ctx, uc.publisher, uc.logger,
		activity.NewEvent(activity.CVUpdated, existing.ID, input.CallerID, existing.ID))

	return existing, nil
}
