package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	activityUC "github.com/khoahotran/cvhub/internal/application/usecase/activity"
	"github.com/khoahotran/cvhub/pkg/apperror"
)

type ActivityHandler struct {
	listActivityUseCase *activityUC.ListCVActivityUseCase
}

func NewActivityHandler(listUC *activityUC.ListCVActivityUseCase) *ActivityHandler {
	return &ActivityHandler{listActivityUseCase: listUC}
}

func (h *ActivityHandler) ListCVActivity(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	id, ok := pathID(c, "id", "invalid CV ID")
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.Error(apperror.NewInvalidInput("limit must be an integer", err))
			return
		}
		limit = n
	}

	events, err := h.listActivityUseCase.Execute(c.Request.Context(), activityUC.ListCVActivityInput{
		CVID:     id,
		CallerID: principal.ID,
		Limit:    limit,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}
