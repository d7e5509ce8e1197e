package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/internal/domain/user"
	"github.com/khoahotran/cvhub/internal/testutil/memstore"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type fixture struct {
	recs   *memstore.RecommendationRepo
	cvs    *memstore.CVRepo
	pub    *memstore.Publisher
	owner  user.Principal
	author user.Principal
	target *cv.CV
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		recs:   memstore.NewRecommendationRepo(),
		cvs:    memstore.NewCVRepo(),
		pub:    &memstore.Publisher{},
		owner:  user.Principal{ID: uuid.New(), FirstName: "Jane", LastName: "Roe", Email: "jane@example.com"},
		author: user.Principal{ID: uuid.New(), FirstName: "John", LastName: "Doe", Email: "john@example.com"},
	}
	f.target = cv.New(f.owner.ID, cv.Draft{FirstName: "Jane", LastName: "Roe", Description: "dev", Visible: true}, time.Now().UTC())
	require.NoError(t, f.cvs.Save(context.Background(), f.target))
	return f
}

func (f *fixture) create(t *testing.T) *recommendation.Recommendation {
	t.Helper()
	rec, err := NewCreateRecommendationUseCase(f.recs, f.pub, logger.NewNopLogger()).Execute(context.Background(), CreateRecommendationInput{
		Author: f.author,
		CVID:   f.target.ID,
		Body:   map[string]any{"description": "Great engineer"},
	})
	require.NoError(t, err)
	return rec
}

func TestCreateRecommendation_Validation(t *testing.T) {
	f := newFixture(t)
	uc := NewCreateRecommendationUseCase(f.recs, f.pub, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), CreateRecommendationInput{
		Author: f.author,
		CVID:   f.target.ID,
		Body:   map[string]any{"description": "ok"},
	})

	assert.ErrorIs(t, err, apperror.ErrValidation)
	assert.Contains(t, err.Error(), "Description is missing or incorrect")
	assert.Empty(t, f.pub.Events)
}

func TestCreateRecommendation_SnapshotsAuthor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	users := memstore.NewUserRepo()
	stored := &user.User{ID: f.author.ID, FirstName: f.author.FirstName, LastName: f.author.LastName, Email: f.author.Email}
	require.NoError(t, users.Save(ctx, stored))

	out := f.create(t)

	stored.FirstName = "Johnny"
	stored.LastName = "Dough"
	require.NoError(t, users.Update(ctx, stored))

	listed, err := NewListRecommendationsUseCase(f.recs).Execute(ctx, f.target.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, out.ID, listed[0].ID)
	assert.Equal(t, f.author.ID, listed[0].Author.ID)
	assert.Equal(t, "John", listed[0].Author.FirstName)
	assert.Equal(t, "Doe", listed[0].Author.LastName)
	assert.Equal(t, "Great engineer", listed[0].Description)
	assert.Equal(t, []activity.EventType{activity.RecommendationCreated}, f.pub.Types())
}

func TestCreateRecommendation_DanglingCVAccepted(t *testing.T) {
	f := newFixture(t)
	rec, err := NewCreateRecommendationUseCase(f.recs, nil, logger.NewNopLogger()).Execute(context.Background(), CreateRecommendationInput{
		Author: f.author,
		CVID:   uuid.New(),
		Body:   map[string]any{"description": "Great engineer", "cvid": "ignored"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, f.target.ID, rec.CVID)
}

func TestListRecommendations_OtherCV(t *testing.T) {
	f := newFixture(t)
	f.create(t)

	listed, err := NewListRecommendationsUseCase(f.recs).Execute(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDeleteRecommendation(t *testing.T) {
	ctx := context.Background()

	del := func(f *fixture) *DeleteRecommendationUseCase {
		return NewDeleteRecommendationUseCase(f.recs, f.cvs, f.pub, logger.NewNopLogger())
	}

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture(t)
		err := del(f).Execute(ctx, DeleteRecommendationInput{RecommendationID: uuid.New(), CallerID: f.author.ID})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("author", func(t *testing.T) {
		f := newFixture(t)
		out := f.create(t)
		require.NoError(t, del(f).Execute(ctx, DeleteRecommendationInput{RecommendationID: out.ID, CallerID: f.author.ID}))

		_, err := f.recs.FindByID(ctx, out.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Equal(t, []activity.EventType{activity.RecommendationCreated, activity.RecommendationDeleted}, f.pub.Types())
	})

	t.Run("cv owner", func(t *testing.T) {
		f := newFixture(t)
		out := f.create(t)
		assert.NoError(t, del(f).Execute(ctx, DeleteRecommendationInput{RecommendationID: out.ID, CallerID: f.owner.ID}))
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture(t)
		out := f.create(t)
		err := del(f).Execute(ctx, DeleteRecommendationInput{RecommendationID: out.ID, CallerID: uuid.New()})
		assert.ErrorIs(t, err, apperror.ErrPermission)
	})

	t.Run("owner after cv deletion", func(t *testing.T) {
		f := newFixture(t)
		out := f.create(t)
		require.NoError(t, f.cvs.Delete(ctx, f.target.ID))

		err := del(f).Execute(ctx, DeleteRecommendationInput{RecommendationID: out.ID, CallerID: f.owner.ID})
		assert.ErrorIs(t, err, apperror.ErrPermission)

		assert.NoError(t, del(f).Execute(ctx, DeleteRecommendationInput{RecommendationID: out.ID, CallerID: f.author.ID}))
	})
}

// ctxAwareRecommendationRepo fails like pgx does when the statement context is already done.
type ctxAwareRecommendationRepo struct {
	*memstore.RecommendationRepo
}

func (r ctxAwareRecommendationRepo) Save(ctx context.Context, rec *recommendation.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.RecommendationRepo.Save(ctx, rec)
}

func (r ctxAwareRecommendationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.RecommendationRepo.Delete(ctx, id)
}

func TestRecommendationWrites_SurviveCallerDisconnect(t *testing.T) {
	f := newFixture(t)
	repo := ctxAwareRecommendationRepo{RecommendationRepo: f.recs}
	log := logger.NewNopLogger()

	gone, cancel := context.WithCancel(context.Background())
	cancel()

	rec, err := NewCreateRecommendationUseCase(repo, f.pub, log).Execute(gone, CreateRecommendationInput{
		Author: f.author,
		CVID:   f.target.ID,
		Body:   map[string]any{"description": "Great engineer"},
	})
	require.NoError(t, err)
	_, err = f.recs.FindByID(context.Background(), rec.ID)
	require.NoError(t, err)

	err = NewDeleteRecommendationUseCase(repo, f.cvs, f.pub, log).Execute(gone, DeleteRecommendationInput{
		RecommendationID: rec.ID,
		CallerID:         f.author.ID,
	})
	require.NoError(t, err)
	_, err = f.recs.FindByID(context.Background(), rec.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
