package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type postgresRecommendationRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRecommendationRepo(db *pgxpool.Pool, logger logger.Logger) recommendation.Repository {
	return &postgresRecommendationRepo{db: db, logger: logger}
}

var psqlRecommendation = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const recommendationColumns = "id, cv_id, author_id, author_first_name, author_last_name, description, created_at, updated_at"

func scanRecommendation(row pgx.Row) (*recommendation.Recommendation, error) {
	rec := &recommendation.Recommendation{}
	err := row.Scan(
		&rec.ID,
		&rec.CVID,
		&rec.Author.ID,
		&rec.Author.FirstName,
		&rec.Author.LastName,
		&rec.Description,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("recommendation", "")
		}
		return nil, apperror.NewInternal("failed to scan recommendation row", err)
	}
	return rec, nil
}

func (r *postgresRecommendationRepo) Save(ctx context.Context, rec *recommendation.Recommendation) error {
	query := `
		INSERT INTO recommendations (` + recommendationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		rec.ID, rec.CVID, rec.Author.ID, rec.Author.FirstName, rec.Author.LastName,
		rec.Description, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save recommendation", err)
	}
	return nil
}

func (r *postgresRecommendationRepo) FindByID(ctx context.Context, id uuid.UUID) (*recommendation.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = $1`
	rec, err := scanRecommendation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("recommendation", id.String())
	}
	return rec, err
}

func (r *postgresRecommendationRepo) ListByCV(ctx context.Context, cvID uuid.UUID) ([]*recommendation.Recommendation, error) {
	sql, args, err := psqlRecommendation.Select(recommendationColumns).
		From("recommendations").
		Where(sq.Eq{"cv_id": cvID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build recommendation list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query recommendations", err)
	}
	defer rows.Close()

	recs := make([]*recommendation.Recommendation, 0)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating recommendation rows", err)
	}
	return recs, nil
}

func (r *postgresRecommendationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM recommendations WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete recommendation", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("recommendation", id.String())
	}
	return nil
}
