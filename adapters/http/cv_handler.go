package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cvUC "github.com/khoahotran/cvhub/internal/application/usecase/cv"
	"github.com/khoahotran/cvhub/pkg/apperror"
)

type CVHandler struct {
	createCVUseCase    *cvUC.CreateCVUseCase
	listVisibleUseCase *cvUC.ListVisibleCVsUseCase
	listOwnerUseCase   *cvUC.ListOwnerCVsUseCase
	getCVUseCase       *cvUC.GetCVUseCase
	searchCVsUseCase   *cvUC.SearchCVsUseCase
	updateCVUseCase    *cvUC.UpdateCVUseCase
	deleteCVUseCase    *cvUC.DeleteCVUseCase
}

func NewCVHandler(
	createUC *cvUC.CreateCVUseCase,
	listVisibleUC *cvUC.ListVisibleCVsUseCase,
	listOwnerUC *cvUC.ListOwnerCVsUseCase,
	getUC *cvUC.GetCVUseCase,
	searchUC *cvUC.SearchCVsUseCase,
	updateUC *cvUC.UpdateCVUseCase,
	deleteUC *cvUC.DeleteCVUseCase,
) *CVHandler {
	return &CVHandler{
		createCVUseCase:    createUC,
		listVisibleUseCase: listVisibleUC,
		listOwnerUseCase:   listOwnerUC,
		getCVUseCase:       getUC,
		searchCVsUseCase:   searchUC,
		updateCVUseCase:    updateUC,
		deleteCVUseCase:    deleteUC,
	}
}

func (h *CVHandler) CreateCV(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	created, err := h.createCVUseCase.Execute(c.Request.Context(), cvUC.CreateCVInput{
		OwnerID: principal.ID,
		Body:    body,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, ToCVDTO(created))
}

func (h *CVHandler) ListVisibleCVs(c *gin.Context) {
	cvs, err := h.listVisibleUseCase.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCVDTOs(cvs))
}

func (h *CVHandler) ListOwnerCVs(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	ownerID, ok := pathID(c, "id", "invalid user ID")
	if !ok {
		return
	}

	cvs, err := h.listOwnerUseCase.Execute(c.Request.Context(), cvUC.ListOwnerCVsInput{
		CallerID: principal.ID,
		OwnerID:  ownerID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCVDTOs(cvs))
}

func (h *CVHandler) GetCV(c *gin.Context) {
	id, ok := pathID(c, "id", "invalid CV ID")
	if !ok {
		return
	}

	found, err := h.getCVUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCVDTO(found))
}

func (h *CVHandler) SearchCVs(c *gin.Context) {
	cvs, err := h.searchCVsUseCase.Execute(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCVDTOs(cvs))
}

func (h *CVHandler) UpdateCV(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	id, ok := pathID(c, "id", "invalid CV ID")
	if !ok {
		return
	}

	body, ok := bindBody(c)
	if !ok {
		return
	}

	updated, err := h.updateCVUseCase.Execute(c.Request.Context(), cvUC.UpdateCVInput{
		CVID:     id,
		CallerID: principal.ID,
		Body:     body,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCVDTO(updated))
}

func (h *CVHandler) DeleteCV(c *gin.Context) {
	principal, ok := GetPrincipalFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("principal not found in context", nil))
		return
	}

	id, ok := pathID(c, "id", "invalid CV ID")
	if !ok {
		return
	}

	err := h.deleteCVUseCase.Execute(c.Request.Context(), cvUC.DeleteCVInput{
		CVID:     id,
		CallerID: principal.ID,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindBody decodes the request into an untyped document for the validators.
func bindBody(c *gin.Context) (map[string]any, bool) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Error(apperror.NewInvalidInput("request body must be a JSON object", err))
		return nil, false
	}
	if body == nil {
		c.Error(apperror.NewInvalidInput("request body must be a JSON object", nil))
		return nil, false
	}
	return body, true
}

func pathID(c *gin.Context, param, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.Error(apperror.NewInvalidInput(message, err))
		return uuid.Nil, false
	}
	return id, true
}
