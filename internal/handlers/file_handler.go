package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"estate_backend/internal/media"
	"estate_backend/internal/middleware"
	"estate_backend/internal/storage"
	"estate_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler serves locally stored uploads and hands out signed URLs for
// private objects on remote backends.
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

// RegisterRoutes mounts file serving. Objects are public-read; signed URLs
// require auth.
func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	{
		files.GET("/*path", h.ServeFile)
	}

	signed := rg.Group("/signed-urls")
	signed.Use(middleware.AuthMiddleware())
	{
		signed.GET("/*path", h.GetSignedURL)
	}
}

// ServeFile streams the object at the wildcard path.
func (h *FileHandler) ServeFile(c *gin.Context) {
	path := c.Param("path")
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	ctx := c.Request.Context()

	exists, err := h.storage.Exists(ctx, path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !exists {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File not found"))
		return
	}

	reader, err := h.storage.Get(ctx, path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	if size, err := h.storage.GetSize(ctx, path); err == nil {
		c.Header("Content-Length", strconv.FormatInt(size, 10))
	}
	c.Header("Content-Type", media.MimeTypeFromFilename(path))
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// Headers are gone; nothing left to do but drop the connection.
		c.Abort()
	}
}

// GetSignedURL returns a temporary URL for the object at the wildcard path.
func (h *FileHandler) GetSignedURL(c *gin.Context) {
	path := c.Param("path")
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}

	expiry := time.Duration(ParseQueryInt(c, "expiry_minutes", 15)) * time.Minute
	url, err := h.storage.GetSignedURL(c.Request.Context(), path, expiry)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url, "expires_in": int(expiry.Seconds())})
}
