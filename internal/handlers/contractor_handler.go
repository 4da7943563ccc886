package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"estate_backend/internal/middleware"
	"estate_backend/internal/models"
	"estate_backend/internal/services"
	"estate_backend/internal/services/dto"
	"estate_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ContractorHandler struct {
	*BaseHandler
	contractorService services.ContractorService
}

func NewContractorHandler(base *BaseHandler, contractorService services.ContractorService) *ContractorHandler {
	return &ContractorHandler{
		BaseHandler:       base,
		contractorService: contractorService,
	}
}

// RegisterRoutes mounts the contractor directory. The directory is public;
// profile mutations require auth and verification/deletion is admin only.
func (h *ContractorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contractors := rg.Group("/contractors")
	{
		contractors.GET("", h.List)
		contractors.GET("/:id", h.Get)
	}

	authed := rg.Group("/contractors")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", h.Create)
		authed.PUT("/:id", h.Update)
	}

	admin := rg.Group("/contractors")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.PATCH("/:id/verify", h.Verify)
		admin.DELETE("/:id", h.Delete)
	}
}

// Create registers a contractor profile. Two request shapes are accepted:
// a JSON body with an optional pre-structured portfolio array, or a
// multipart form whose portfolio travels as portfolio[<idx>][<field>] text
// parts and portfolio[<idx>][images] file parts.
func (h *ContractorHandler) Create(c *gin.Context) {
	var req dto.CreateContractorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	form, ok := h.multipartForm(c)
	if !ok {
		return
	}

	resp, err := h.contractorService.Create(c.Request.Context(), h.GetDB(c), &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ContractorHandler) Get(c *gin.Context) {
	resp, err := h.contractorService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractorHandler) List(c *gin.Context) {
	var query dto.ContractorListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.contractorService.List(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update rewrites a contractor. On multipart requests the portfolio is
// replaced wholesale: retained images come back as existingImages[<idx>]
// URLs, new images as portfolio[<idx>][images] files.
func (h *ContractorHandler) Update(c *gin.Context) {
	var req dto.UpdateContractorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	form, ok := h.multipartForm(c)
	if !ok {
		return
	}

	resp, err := h.contractorService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req, form)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractorHandler) Verify(c *gin.Context) {
	var req dto.VerifyContractorRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.contractorService.SetVerified(h.GetDB(c), c.Param("id"), req.Verified); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contractor verification updated"})
}

func (h *ContractorHandler) Delete(c *gin.Context) {
	if err := h.contractorService.Delete(h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contractor deleted"})
}

// multipartForm returns the parsed multipart form, or nil for JSON requests.
// ok is false only when a multipart body failed to parse; the error response
// has already been written in that case.
func (h *ContractorHandler) multipartForm(c *gin.Context) (*multipart.Form, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil, true
	}
	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return nil, false
	}
	return form, true
}
