package handlers

import (
	"net/http"

	"estate_backend/internal/middleware"
	"estate_backend/internal/models"
	"estate_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes platform-wide counters for the admin dashboard.
type AdminHandler struct {
	*BaseHandler
	userRepo       repositories.UserRepository
	propertyRepo   repositories.PropertyRepository
	contractorRepo repositories.ContractorRepository
}

func NewAdminHandler(
	base *BaseHandler,
	userRepo repositories.UserRepository,
	propertyRepo repositories.PropertyRepository,
	contractorRepo repositories.ContractorRepository,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:    base,
		userRepo:       userRepo,
		propertyRepo:   propertyRepo,
		contractorRepo: contractorRepo,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/stats", h.Stats)
	}
}

func (h *AdminHandler) Stats(c *gin.Context) {
	db := h.GetDB(c)

	users, err := h.userRepo.CountByRole(db, models.UserRoleUser)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	agents, err := h.userRepo.CountByRole(db, models.UserRoleAgent)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	properties, err := h.propertyRepo.Count(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	contractors, err := h.contractorRepo.Count(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	portfolioEntries, err := h.contractorRepo.CountPortfolioEntries(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":             users,
		"agents":            agents,
		"properties":        properties,
		"contractors":       contractors,
		"portfolio_entries": portfolioEntries,
	})
}
