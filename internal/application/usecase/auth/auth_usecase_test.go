package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cvhub/internal/testutil/memstore"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/auth"
	"github.com/khoahotran/cvhub/pkg/logger"
)

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewUserRepo()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	registered, err := NewRegisterUseCase(repo, logger.NewNopLogger()).Execute(ctx, RegisterInput{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "  John@Example.com ",
		Password:  "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", registered.Email)
	assert.NotEqual(t, "secret1", registered.PasswordHash)

	out, err := NewLoginUseCase(repo, jwtSvc, logger.NewNopLogger()).Execute(ctx, LoginInput{
		Email:    "JOHN@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, out.User.ID)
	assert.Equal(t, "Doe", out.User.LastName)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewUserRepo()
	uc := NewRegisterUseCase(repo, logger.NewNopLogger())
	input := RegisterInput{FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "secret1"}

	_, err := uc.Execute(ctx, input)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, input)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLogin_Failures(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewUserRepo()
	_, err := NewRegisterUseCase(repo, logger.NewNopLogger()).Execute(ctx, RegisterInput{
		FirstName: "John", LastName: "Doe", Email: "john@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	login := NewLoginUseCase(repo, auth.NewJWTService("test-secret", time.Hour), logger.NewNopLogger())

	_, err = login.Execute(ctx, LoginInput{Email: "john@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = login.Execute(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
