package cv

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cvhub/internal/domain/cv"
	"github.com/khoahotran/cvhub/internal/testutil/memstore"
	"github.com/khoahotran/cvhub/pkg/logger"
)

func TestCVFeed_NewestVisibleFirst(t *testing.T) {
	ctx := context.Background()
	repo := memstore.NewCVRepo()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	older := cv.New(uuid.New(), cv.Draft{FirstName: "Ada", LastName: "Old", Description: "first", Visible: true}, base)
	newer := cv.New(uuid.New(), cv.Draft{FirstName: "Bob", LastName: "New", Description: "second", Visible: true}, base.Add(time.Hour))
	hidden := cv.New(uuid.New(), cv.Draft{FirstName: "Cy", LastName: "Hidden", Description: "third", Visible: false}, base.Add(2*time.Hour))
	for _, c := range []*cv.CV{older, newer, hidden} {
		require.NoError(t, repo.Save(ctx, c))
	}

	feed, err := NewCVFeedUseCase(repo, "https://cv.example.com/", logger.NewNopLogger()).Execute(ctx)
	require.NoError(t, err)

	require.Len(t, feed.Items, 2)
	assert.Equal(t, "Bob New", feed.Items[0].Title)
	assert.Equal(t, "https://cv.example.com/api/cv/"+newer.ID.String(), feed.Items[0].Link.Href)
	assert.Equal(t, "Ada Old", feed.Items[1].Title)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Bob New</title>")
	assert.NotContains(t, rss, "Hidden")
}
