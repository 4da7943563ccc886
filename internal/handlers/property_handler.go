package handlers

import (
	"net/http"

	"estate_backend/internal/middleware"
	"estate_backend/internal/services"
	"estate_backend/internal/services/dto"
	"estate_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	*BaseHandler
	propertyService services.PropertyService
}

func NewPropertyHandler(base *BaseHandler, propertyService services.PropertyService) *PropertyHandler {
	return &PropertyHandler{
		BaseHandler:     base,
		propertyService: propertyService,
	}
}

// RegisterRoutes mounts the property listing endpoints. Reads are public,
// writes require an authenticated owner (agent or plain user) or admin.
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	properties := rg.Group("/properties")
	{
		properties.GET("", h.List)
		properties.GET("/:id", h.Get)
	}

	authed := rg.Group("/properties")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("", h.Create)
		authed.GET("/mine", h.ListMine)
		authed.PATCH("/:id", h.Update)
		authed.PATCH("/:id/status", h.UpdateStatus)
		authed.POST("/:id/photos", h.AddPhotos)
		authed.DELETE("/:id", h.Delete)
	}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePropertyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.propertyService.Create(c.Request.Context(), h.GetDB(c), userID, &req, nil)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	resp, err := h.propertyService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PropertyHandler) List(c *gin.Context) {
	var query dto.PropertyListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	resp, err := h.propertyService.List(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PropertyHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	items, err := h.propertyService.ListByOwner(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *PropertyHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.RoleFromContext(c)

	var req dto.UpdatePropertyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.propertyService.Update(h.GetDB(c), c.Param("id"), userID, role, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PropertyHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.RoleFromContext(c)

	var req dto.UpdatePropertyStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.propertyService.UpdateStatus(h.GetDB(c), c.Param("id"), userID, role, req.Status); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// AddPhotos accepts a multipart form with one or more parts named "photos".
func (h *PropertyHandler) AddPhotos(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.RoleFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	photos := form.File["photos"]
	if len(photos) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("No photos in request"))
		return
	}

	resp, err := h.propertyService.AddPhotos(c.Request.Context(), h.GetDB(c), c.Param("id"), userID, role, photos)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	role, _ := middleware.RoleFromContext(c)

	if err := h.propertyService.Delete(h.GetDB(c), c.Param("id"), userID, role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}
