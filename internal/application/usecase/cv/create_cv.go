package cv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/cvhub/internal/application/service"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/logger"
)

var tracer = otel.Tracer("cv_usecase")

type CreateCVUseCase struct {
	cvRepo    cv.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewCreateCVUseCase(repo cv.Repository, pub service.EventPublisher, log logger.Logger) *CreateCVUseCase {
	return &CreateCVUseCase{
		cvRepo:    repo,
		publisher: pub,
		logger:    log,
	}
}

type CreateCVInput struct {
	OwnerID uuid.UUID
	Body    map[string]any
}

func (uc *CreateCVUseCase) Execute(ctx context.Context, input CreateCVInput) (*cv.CV, error) {
	ctx, span := tracer.Start(ctx, "CreateCV")
	defer span.End()
	// A client hang-up must not abort the write once it has started.
	ctx = context.WithoutCancel(ctx)

	draft, err := cv.ParseDraft(input.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	newCV := cv.New(input.OwnerID, *draft, time.Now().UTC())
	if err := uc.cvRepo.Save(ctx, newCV); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("cv_id", newCV.ID.String()))

	service.Emit(ctx, uc.publisher, uc.logger,
		activity.NewEvent(activity.CVCreated, newCV.ID, input.OwnerID, newCV.ID))

	return newCV, nil
}
