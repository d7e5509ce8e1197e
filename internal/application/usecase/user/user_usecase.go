package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/khoahotran/cvhub/internal/domain/user"
	"github.com/khoahotran/cvhub/pkg/apperror"
	"github.com/khoahotran/cvhub/pkg/auth"
	"github.com/khoahotran/cvhub/pkg/logger"
)

var tracer = otel.Tracer("user_usecase")

type UserUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewUserUseCase(repo user.Repository, log logger.Logger) *UserUseCase {
	return &UserUseCase{userRepo: repo, logger: log}
}

// ResolvePrincipal loads the identity behind a verified token. A user that
// no longer exists is reported as Unauthorized.
func (uc *UserUseCase) ResolvePrincipal(ctx context.Context, id uuid.UUID) (user.Principal, error) {
	ctx, span := tracer.Start(ctx, "ResolvePrincipal")
	defer span.End()

	u, err := uc.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return user.Principal{}, apperror.NewUnauthorized("user no longer exists", nil)
		}
		span.RecordError(err)
		return user.Principal{}, err
	}
	return u.Principal(), nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "GetUser")
	defer span.End()

	return uc.userRepo.FindByID(ctx, id)
}

type UpdateMeInput struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// UpdateMe replaces the caller's identity fields. An empty password keeps the current one.
// Recommendation author snapshots are left untouched.
func (uc *UserUseCase) UpdateMe(ctx context.Context, input UpdateMeInput) (*user.User, error) {
	ctx, span := tracer.Start(ctx, "UpdateMe")
	defer span.End()

	u, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	u.FirstName = input.FirstName
	u.LastName = input.LastName
	u.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, apperror.NewInternal("failed to hash password", err)
		}
		u.PasswordHash = hash
	}
	u.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return u, nil
}
