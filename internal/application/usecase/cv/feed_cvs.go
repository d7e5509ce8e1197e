package cv

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/pkg/logger"
)

const feedSize = 20

// CVFeedUseCase publishes the most recently changed visible CVs as a feed.
type CVFeedUseCase struct {
	cvRepo  cv.Repository
	baseURL string
	logger  logger.Logger
}

func NewCVFeedUseCase(repo cv.Repository, baseURL string, log logger.Logger) *CVFeedUseCase {
	return &CVFeedUseCase{
		cvRepo:  repo,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

func (uc *CVFeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	ctx, span := tracer.Start(ctx, "CVFeed")
	defer span.End()

	cvs, err := uc.cvRepo.ListVisible(ctx)
	if err != nil {
		uc.logger.Error("Failed to list visible cvs for feed", err)
		return nil, err
	}

	sort.SliceStable(cvs, func(i, j int) bool { return cvs[i].UpdatedAt.After(cvs[j].UpdatedAt) })
	if len(cvs) > feedSize {
		cvs = cvs[:feedSize]
	}

	feed := &feeds.Feed{
		Title:       "CV Hub - Latest CVs",
		Link:        &feeds.Link{Href: uc.baseURL + "/api/cv"},
		Description: "Recently published or updated CVs.",
		Created:     time.Now().UTC(),
	}
	if len(cvs) > 0 {
		feed.Updated = cvs[0].UpdatedAt
	}

	for _, c := range cvs {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          c.ID.String(),
			Title:       fmt.Sprintf("%s %s", c.FirstName, c.LastName),
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/cv/%s", uc.baseURL, c.ID)},
			Description: c.Description,
			Created:     c.CreatedAt,
			Updated:     c.UpdatedAt,
		})
	}

	uc.logger.Debug("CV feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}
