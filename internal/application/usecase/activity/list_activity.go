package activity

import (
	"context"

	"github.com/google/uuid"

	"github.com/khoahotran/cvhub/internal/domain/activity"
	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/apperror"
)

const defaultActivityLimit = 50

type ListCVActivityUseCase struct {
	activityRepo activity.Repository
	cvRepo       cv.Repository
}

func NewListCVActivityUseCase(activityRepo activity.Repository, cvRepo cv.Repository) *ListCVActivityUseCase {
	return &ListCVActivityUseCase{activityRepo: activityRepo, cvRepo: cvRepo}
}

type ListCVActivityInput struct {
	CVID     uuid.UUID
	CallerID uuid.UUID
	Limit    int
}

// Execute returns the newest recorded events of a CV. Only its owner may read them.
func (uc *ListCVActivityUseCase) Execute(ctx context.Context, input ListCVActivityInput) ([]activity.Event, error) {
	target, err := uc.cvRepo.FindByID(ctx, input.CVID)
	if err != nil {
		return nil, err
	}
	if !target.IsOwnedBy(input.CallerID) {
		return nil, apperror.NewPermissionDenied("only the owner can read this cv's activity")
	}

	if input.Limit <= 0 || input.Limit > 200 {
		input.Limit = defaultActivityLimit
	}
	return uc.activityRepo.ListByCV(ctx, input.CVID, input.Limit)
}
