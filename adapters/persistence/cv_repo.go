package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type postgresCVRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCVRepo(db *pgxpool.Pool, logger logger.Logger) cv.Repository {
	return &postgresCVRepo{db: db, logger: logger}
}

var psqlCV = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const cvColumns = "id, owner_id, first_name, last_name, description, visible, " +
	"diplomas, certifications, formations, jobs, missions, companies, created_at, updated_at"

// sectionColumns holds the JSONB encoding of the six nested sequences, in column order.
type sectionColumns [6][]byte

func encodeSections(d cv.Draft) (sectionColumns, error) {
	var cols sectionColumns
	values := []any{d.Diplomas, d.Certifications, d.Formations, d.Jobs, d.Missions, d.Companies}
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return cols, err
		}
		cols[i] = b
	}
	return cols, nil
}

func scanCV(row pgx.Row, l logger.Logger) (*cv.CV, error) {
	c := &cv.CV{}
	var cols sectionColumns

	err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.FirstName,
		&c.LastName,
		&c.Description,
		&c.Visible,
		&cols[0], &cols[1], &cols[2], &cols[3], &cols[4], &cols[5],
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("cv", "")
		}
		return nil, apperror.NewInternal("failed to scan cv row", err)
	}

	targets := []any{&c.Diplomas, &c.Certifications, &c.Formations, &c.Jobs, &c.Missions, &c.Companies}
	names := []string{"diplomas", "certifications", "formations", "jobs", "missions", "companies"}
	for i, target := range targets {
		if err := json.Unmarshal(cols[i], target); err != nil {
			l.Warn("Failed to unmarshal cv section", zap.String("cv_id", c.ID.String()), zap.String("section", names[i]), zap.Error(err))
		}
	}
	c.Draft = c.Draft.Normalized()

	return c, nil
}

func scanCVs(rows pgx.Rows, l logger.Logger) ([]*cv.CV, error) {
	defer rows.Close()
	cvs := make([]*cv.CV, 0)

	for rows.Next() {
		c, err := scanCV(rows, l)
		if err != nil {
			return nil, err
		}
		cvs = append(cvs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating cv rows", err)
	}
	return cvs, nil
}

func (r *postgresCVRepo) Save(ctx context.Context, c *cv.CV) error {
	cols, err := encodeSections(c.Draft)
	if err != nil {
		return apperror.NewInternal("failed to marshal cv sections", err)
	}

	query := `
		INSERT INTO cvs (` + cvColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.Exec(ctx, query,
		c.ID, c.OwnerID, c.FirstName, c.LastName, c.Description, c.Visible,
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5],
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save cv", err)
	}
	return nil
}

// Update replaces every mutable field. The last writer wins.
func (r *postgresCVRepo) Update(ctx context.Context, c *cv.CV) error {
	cols, err := encodeSections(c.Draft)
	if err != nil {
		return apperror.NewInternal("failed to marshal cv sections for update", err)
	}

	query := `
		UPDATE cvs SET
			first_name = $2, last_name = $3, description = $4, visible = $5,
			diplomas = $6, certifications = $7, formations = $8, jobs = $9, missions = $10, companies = $11,
			updated_at = $12
		WHERE id = $1
	`
	cmdTag, err := r.db.Exec(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Description, c.Visible,
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5],
		c.UpdatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to update cv", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("cv", c.ID.String())
	}
	return nil
}

func (r *postgresCVRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM cvs WHERE id = $1`, id)
	if err != nil {
		return apperror.NewInternal("failed to delete cv", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("cv", id.String())
	}
	return nil
}

func (r *postgresCVRepo) FindByID(ctx context.Context, id uuid.UUID) (*cv.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE id = $1`
	c, err := scanCV(r.db.QueryRow(ctx, query, id), r.logger)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("cv", id.String())
	}
	return c, err
}

func (r *postgresCVRepo) ListVisible(ctx context.Context) ([]*cv.CV, error) {
	return r.list(ctx, sq.Eq{"visible": true})
}

func (r *postgresCVRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, visibleOnly bool) ([]*cv.CV, error) {
	where := sq.And{sq.Eq{"owner_id": ownerID}}
	if visibleOnly {
		where = append(where, sq.Eq{"visible": true})
	}
	return r.list(ctx, where)
}

func (r *postgresCVRepo) SearchVisibleByName(ctx context.Context, fragment string) ([]*cv.CV, error) {
	pattern := "%" + escapeLike(fragment) + "%"
	return r.list(ctx, sq.And{
		sq.Eq{"visible": true},
		sq.Or{
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
		},
	})
}

func (r *postgresCVRepo) list(ctx context.Context, where sq.Sqlizer) ([]*cv.CV, error) {
	sql, args, err := psqlCV.Select(cvColumns).
		From("cvs").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build cv list query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query cvs", err)
	}

	return scanCVs(rows, r.logger)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes a user-supplied fragment match literally inside LIKE/ILIKE.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
