package activity

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type RecordEventUseCase struct {
	repo   activity.Repository
	logger logger.Logger
}

func NewRecordEventUseCase(repo activity.Repository, log logger.Logger) *RecordEventUseCase {
	return &RecordEventUseCase{repo: repo, logger: log}
}

// Execute appends e to the audit trail. Redelivered events are ignored.
func (uc *RecordEventUseCase) Execute(ctx context.Context, e activity.Event) error {
	if !e.Type.Known() {
		return fmt.Errorf("unknown event type %q", e.Type)
	}

	inserted, err := uc.repo.Append(ctx, e)
	if err != nil {
		return fmt.Errorf("record %s event: %w", e.Type, err)
	}
	if !inserted {
		uc.logger.Debug("Event already recorded", zap.String("event_id", e.ID.String()))
		return nil
	}

	uc.logger.Info("Event recorded",
		zap.String("event_type", string(e.Type)),
		zap.String("cv_id", e.CVID.String()),
		zap.String("actor_id", e.ActorID.String()),
	)
	return nil
}
