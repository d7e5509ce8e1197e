package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type postgresActivityRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresActivityRepo(db *pgxpool.Pool, logger logger.Logger) activity.Repository {
	return &postgresActivityRepo{db: db, logger: logger}
}

var psqlActivity = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Append stores e once. It reports false when the event was already recorded.
func (r *postgresActivityRepo) Append(ctx context.Context, e activity.Event) (bool, error) {
	query := `
		INSERT INTO cv_events (id, event_type, resource_id, actor_id, cv_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	cmdTag, err := r.db.Exec(ctx, query, e.ID, string(e.Type), e.ResourceID, e.ActorID, e.CVID, e.OccurredAt)
	if err != nil {
		return false, apperror.NewInternal("failed to append cv event", err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

func (r *postgresActivityRepo) ListByCV(ctx context.Context, cvID uuid.UUID, limit int) ([]activity.Event, error) {
	sql, args, err := psqlActivity.Select("id, event_type, resource_id, actor_id, cv_id, occurred_at").
		From("cv_events").
		Where(sq.Eq{"cv_id": cvID}).
		OrderBy("occurred_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build cv events query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query cv events", err)
	}
	defer rows.Close()

	events := make([]activity.Event, 0)
	for rows.Next() {
		var e activity.Event
		var eventType string
		if err := rows.Scan(&e.ID, &eventType, &e.ResourceID, &e.ActorID, &e.CVID, &e.OccurredAt); err != nil {
			return nil, apperror.NewInternal("failed to scan cv event", err)
		}
		e.Type = activity.EventType(eventType)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating cv events", err)
	}
	return events, nil
}
