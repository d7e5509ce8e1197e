package cv

import (
	"context"
	"strings"

	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/apperror"
)

type SearchCVsUseCase struct {
	cvRepo cv.Repository
}

func NewSearchCVsUseCase(repo cv.Repository) *SearchCVsUseCase {
	return &SearchCVsUseCase{cvRepo: repo}
}

// Execute matches the fragment against first and last names, ignoring case.
// Only visible CVs are searched; hidden ones are reachable by id or by owner.
func (uc *SearchCVsUseCase) Execute(ctx context.Context, name string) ([]*cv.CV, error) {
	ctx, span := tracer.Start(ctx, "SearchCVs")
	defer span.End()

	fragment := strings.TrimSpace(name)
	if fragment == "" {
		return nil, apperror.NewInvalidInput("search name must not be empty", nil)
	}

	cvs, err := uc.cvRepo.SearchVisibleByName(ctx, fragment)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if len(cvs) == 0 {
		return nil, apperror.NewNotFound("cv", fragment)
	}
	return cvs, nil
}
