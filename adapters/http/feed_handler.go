package http

import (
	"github.com/gin-gonic/gin"

	cvUC "github.com/khoahotran/cvhub/internal/application/usecase/cv"
	"github.com/khoahotran/cvhub/pkg/logger"
)

type FeedHandler struct {
	feedUseCase *cvUC.CVFeedUseCase
	logger      logger.Logger
}

func NewFeedHandler(uc *cvUC.CVFeedUseCase, log logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: uc,
		logger:      log,
	}
}

func (h *FeedHandler) RSS(c *gin.Context) {
	feed, err := h.feedUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	if err := feed.WriteRss(c.Writer); err != nil {
		h.logger.Error("Failed to write RSS feed to response", err)
	}
}
