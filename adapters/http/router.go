package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/cvhub/pkg/logger"
)

type Handlers struct {
	Auth           *AuthHandler
	User           *UserHandler
	CV             *CVHandler
	Recommendation *RecommendationHandler
	Feed           *FeedHandler
	Activity       *ActivityHandler
}

type Middlewares struct {
	Auth       gin.HandlerFunc
	LoginLimit gin.HandlerFunc
}

func NewRouter(h Handlers, m Middlewares, log logger.Logger) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", m.LoginLimit, h.Auth.Login)

		userGroup := api.Group("/user", m.Auth)
		{
			userGroup.GET("/me", h.User.Me)
			userGroup.PUT("/me", h.User.UpdateMe)
			userGroup.GET("/:id", h.User.GetUser)
		}

		cvGroup := api.Group("/cv")
		{
			cvGroup.GET("", h.CV.ListVisibleCVs)
			cvGroup.GET("/search/:name", h.CV.SearchCVs)
			cvGroup.GET("/feed", h.Feed.RSS)

			cvGroup.POST("", m.Auth, h.CV.CreateCV)
			cvGroup.GET("/me/:id", m.Auth, h.CV.ListOwnerCVs)
			cvGroup.GET("/:id", m.Auth, h.CV.GetCV)
			cvGroup.GET("/:id/activity", m.Auth, h.Activity.ListCVActivity)
			cvGroup.PUT("/:id", m.Auth, h.CV.UpdateCV)
			cvGroup.DELETE("/:id", m.Auth, h.CV.DeleteCV)
		}

		recGroup := api.Group("/recommendation", m.Auth)
		{
			recGroup.POST("/cv/:id", h.Recommendation.CreateRecommendation)
			recGroup.GET("/cv/:id", h.Recommendation.ListRecommendations)
			recGroup.DELETE("/:id", h.Recommendation.DeleteRecommendation)
		}
	}

	return router, nil
}
