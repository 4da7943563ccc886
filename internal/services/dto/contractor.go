package dto

import (
	"time"

	"estate_backend/internal/models"
)

// CreateContractorRequest - scalar contractor fields. Portfolio data travels
// alongside in the same multipart body (bracket-indexed fields and files) or
// as an already-structured Portfolio array when the client sends JSON.
type CreateContractorRequest struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Phone       string `json:"phone" form:"phone" binding:"required,phone"`
	Email       string `json:"email" form:"email" binding:"omitempty,email"`
	Location    string `json:"location" form:"location" binding:"required"`
	ServiceType string `json:"serviceType" form:"serviceType" binding:"required"`

	// Portfolio is only populated on JSON requests where the client already
	// structured the entries itself (image URLs included, nothing to upload).
	Portfolio []PortfolioEntryInput `json:"portfolio,omitempty" form:"-"`
}

// UpdateContractorRequest - partial scalar update
type UpdateContractorRequest struct {
	Name        *string `json:"name,omitempty" form:"name"`
	Phone       *string `json:"phone,omitempty" form:"phone" binding:"omitempty,phone"`
	Email       *string `json:"email,omitempty" form:"email" binding:"omitempty,email"`
	Location    *string `json:"location,omitempty" form:"location"`
	ServiceType *string `json:"serviceType,omitempty" form:"serviceType"`

	Portfolio []PortfolioEntryInput `json:"portfolio,omitempty" form:"-"`
}

// PortfolioEntryInput - one pre-structured portfolio entry in a JSON body
type PortfolioEntryInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	CompletedOn string   `json:"completedOn" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Images      []string `json:"images" binding:"required,min=1"`
}

// ContractorListQuery - directory filters
type ContractorListQuery struct {
	ServiceType string `form:"service_type"`
	Location    string `form:"location"`
	Verified    *bool  `form:"verified"`
	Page        int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize    int    `form:"page_size,default=20" binding:"omitempty,gte=1,lte=100"`
}

// VerifyContractorRequest - admin verification toggle
type VerifyContractorRequest struct {
	Verified bool `json:"verified"`
}

// PortfolioEntryResponse
type PortfolioEntryResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CompletedOn string   `json:"completedOn"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

// RejectedEntryResponse surfaces a portfolio index that was dropped during
// reconstruction, with the reasons, so clients can fix and resubmit.
type RejectedEntryResponse struct {
	Index   int      `json:"index"`
	Reasons []string `json:"reasons"`
}

// ContractorResponse
type ContractorResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Phone       string                   `json:"phone"`
	Email       string                   `json:"email,omitempty"`
	Location    string                   `json:"location"`
	ServiceType string                   `json:"serviceType"`
	Verified    bool                     `json:"verified"`
	Portfolio   []PortfolioEntryResponse `json:"portfolio"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// ContractorMutationResponse - create/update result including any portfolio
// entries that did not make it in.
type ContractorMutationResponse struct {
	Contractor ContractorResponse      `json:"contractor"`
	Rejected   []RejectedEntryResponse `json:"rejected,omitempty"`
}

type ContractorListResponse struct {
	Items    []ContractorResponse `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

func ContractorToResponse(c *models.Contractor) ContractorResponse {
	resp := ContractorResponse{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Location:    c.Location,
		ServiceType: c.ServiceType,
		Verified:    c.Verified,
		Portfolio:   make([]PortfolioEntryResponse, 0, len(c.Portfolio)),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, entry := range c.Portfolio {
		images := make([]string, 0, len(entry.Images))
		for _, img := range entry.Images {
			images = append(images, img.URL)
		}
		resp.Portfolio = append(resp.Portfolio, PortfolioEntryResponse{
			ID:          entry.ID,
			Title:       entry.Title,
			Description: entry.Description,
			CompletedOn: entry.CompletedOn,
			Location:    entry.Location,
			Images:      images,
		})
	}
	return resp
}
