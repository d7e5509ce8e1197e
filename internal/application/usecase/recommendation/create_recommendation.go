package recommendation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/khoahotran/cvhub/internal/application/service"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/internal/domain/user"
	"github.com/khoahotran/cvhub/pkg/logger"
)

var tracer = otel.Tracer("recommendation_usecase")

type CreateRecommendationUseCase struct {
	recRepo   recommendation.Repository
	publisher service.EventPublisher
	logger    logger.Logger
}

func NewCreateRecommendationUseCase(repo recommendation.Repository, pub service.EventPublisher, log logger.Logger) *CreateRecommendationUseCase {
	return &CreateRecommendationUseCase{
		recRepo:   repo,
		publisher: pub,
		logger:    log,
	}
}

type CreateRecommendationInput struct {
	Author user.Principal
	CVID   uuid.UUID
	Body   map[string]any
}

// Execute stores a recommendation whose author fields are copied from the
// caller at this instant. The target CV is not required to exist.
func (uc *CreateRecommendationUseCase) Execute(ctx context.Context, input CreateRecommendationInput) (*recommendation.Recommendation, error) {
	ctx, span := tracer.Start(ctx, "CreateRecommendation")
	defer span.End()
	// A client hang-up must not abort the write once it has started.
	ctx = context.WithoutCancel(ctx)

	description, err := recommendation.ParseDescription(input.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	author := recommendation.Author{
		ID:        input.Author.ID,
		FirstName: input.Author.FirstName,
		LastName:  input.Author.LastName,
	}
	rec := recommendation.New(author, input.CVID, description, time.Now().UTC())
	if err := uc.recRepo.Save(ctx, rec); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("recommendation_id", rec.ID.String()))

	service.Emit(ctx, uc.publisher, uc.logger,
		activity.NewEvent(activity.RecommendationCreated, rec.ID, author.ID, rec.CVID))

	return rec, nil
}
