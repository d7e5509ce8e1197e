package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	recUC "github.com/khoahotran/cvhub/internal/application/usecase/recommendation"
	"github.com/khoahotran/cvhub/pkg/apperror"
)

type RecommendationHandler struct {
	createUseCase *recUC.CreateRecommendationUseCase
	listUseCase   *recUC.ListRecommendationsUseCase
	deleteUseCase *recUC.DeleteRecommendationUseCase
}

func NewRecommendationHandler(
	createUC *recUC.CreateRecommendationUseCase,
	listUC *recUC.ListRecommendationsUseCase,
	deleteUC *recUC.DeleteRecommendationUseCase,
) *RecommendationHandler {
	return &RecommendationHandler{
		createUseCase: createUC,
		listUseCase:   listUC,
		deleteUseCase: deleteUC,
	}
}

func (h *RecommendationHandler) CreateRecommendation(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	cvID, ok := pathID(c, "id", "invalid CV ID")
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	rec, err := h.createUseCase.Execute(c.Request.Context(), recUC.CreateRecommendationInput{
		Author: principal,
		CVID:   cvID,
		Body:   body,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToRecommendationDTO(rec))
}

func (h *RecommendationHandler) ListRecommendations(c *gin.Context) {
	cvID, ok := pathID(c, "id", "invalid CV ID")
	if !ok {
		return
	}

	recs, err := h.listUseCase.Execute(c.Request.Context(), cvID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToRecommendationDTOs(recs))
}

func (h *RecommendationHandler) DeleteRecommendation(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	id, ok := pathID(c, "id", "invalid recommendation ID")
	if !ok {
		return
	}

	err := h.deleteUseCase.Execute(c.Request.Context(), recUC.DeleteRecommendationInput{
		RecommendationID: id,
		CallerID:         principal.ID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
