package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cvhub/internal/application/service"
	activityUC "github.com/khoahotran/cvhub/internal/application/usecase/activity"
	authUC "github.com/khoahotran/cvhub/internal/application/usecase/auth"
	cvUC "github.com/khoahotran/cvhub/internal/application/usecase/cv"
	recUC "github.com/khoahotran/cvhub/internal/application/usecase/recommendation"
	userUC "github.com/khoahotran/cvhub/internal/application/usecase/user"
	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/internal/domain/recommendation"
	"github.com/khoahotran/cvhub/internal/domain/user"
	"github.com/khoahotran/cvhub/internal/testutil/memstore"
	"github.com/khoahotran/cvhub/pkg/auth"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type testAPI struct {
	router    *gin.Engine
	users     *memstore.UserRepo
	cvs       *memstore.CVRepo
	recs      *memstore.RecommendationRepo
	events    *memstore.ActivityRepo
	publisher *memstore.Publisher
}

type wiring struct {
	users  user.Repository
	cvs    cv.Repository
	recs   recommendation.Repository
	events activity.Repository
	pub    service.EventPublisher
	limit  RateLimitConfig
}

func buildRouter(t *testing.T, w wiring) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	userUseCase := userUC.NewUserUseCase(w.users, log)

	handlers := Handlers{
		Auth: NewAuthHandler(authUC.NewRegisterUseCase(w.users, log), authUC.NewLoginUseCase(w.users, jwtSvc, log)),
		User: NewUserHandler(userUseCase),
		CV: NewCVHandler(
			cvUC.NewCreateCVUseCase(w.cvs, w.pub, log),
			cvUC.NewListVisibleCVsUseCase(w.cvs),
			cvUC.NewListOwnerCVsUseCase(w.cvs),
			cvUC.NewGetCVUseCase(w.cvs),
			cvUC.NewSearchCVsUseCase(w.cvs),
			cvUC.NewUpdateCVUseCase(w.cvs, w.pub, log),
			cvUC.NewDeleteCVUseCase(w.cvs, w.pub, log),
		),
		Recommendation: NewRecommendationHandler(
			recUC.NewCreateRecommendationUseCase(w.recs, w.pub, log),
			recUC.NewListRecommendationsUseCase(w.recs),
			recUC.NewDeleteRecommendationUseCase(w.recs, w.cvs, w.pub, log),
		),
		Feed:     NewFeedHandler(cvUC.NewCVFeedUseCase(w.cvs, "http://cv.test", log), log),
		Activity: NewActivityHandler(activityUC.NewListCVActivityUseCase(w.events, w.cvs)),
	}
	middlewares := Middlewares{
		Auth:       AuthMiddleware(jwtSvc, userUseCase),
		LoginLimit: NewRateLimiter(w.limit, nil, log).Middleware(),
	}

	router, err := NewRouter(handlers, middlewares, log)
	require.NoError(t, err)
	return router
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{
		users:     memstore.NewUserRepo(),
		cvs:       memstore.NewCVRepo(),
		recs:      memstore.NewRecommendationRepo(),
		events:    memstore.NewActivityRepo(),
		publisher: &memstore.Publisher{},
	}
	api.router = buildRouter(t, wiring{
		users:  api.users,
		cvs:    api.cvs,
		recs:   api.recs,
		events: api.events,
		pub:    api.publisher,
		limit:  LoginRateLimitConfig(),
	})
	return api
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

// signUp registers a user and returns its token and id.
func (a *testAPI) signUp(t *testing.T, first, last, email string) (string, string) {
	t.Helper()
	rr := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"firstname": first, "lastname": last, "email": email, "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out struct {
		AccessToken string         `json:"access_token"`
		User        user.Principal `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out.AccessToken, out.User.ID.String()
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func validCVBody(last string, visible bool) gin.H {
	return gin.H{
		"firstname":   "John",
		"lastname":    last,
		"description": "Backend developer",
		"visible":     visible,
		"certifications": []gin.H{
			{"name": "CJD", "year": 2021},
		},
		"jobs": []gin.H{
			{"title": "Engineer", "startYear": 2015, "endYear": 2020},
		},
	}
}

func nopLogger() logger.Logger {
	return logger.NewNopLogger()
}
