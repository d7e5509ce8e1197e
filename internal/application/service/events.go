package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type EventPublisher interface {
	Publish(ctx context.Context, e activity.Event) error
}

// Emit publishes e after a committed write. Failures are logged and dropped;
// a nil publisher disables publication.
func Emit(ctx context.Context, pub EventPublisher, log logger.Logger, e activity.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, e); err != nil {
		log.Error("Failed to publish event", err,
			zap.String("event_type", string(e.Type)),
			zap.String("resource_id", e.ResourceID.String()),
		)
	}
}
