package dto

import (
	"time"

	"estate_backend/internal/models"
)

// CreatePropertyRequest - new listing payload
type CreatePropertyRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Price       int64               `json:"price" binding:"required,gt=0"`
	Type        models.PropertyType `json:"type" binding:"required,oneof=house flat plot commercial"`
	BHK         int                 `json:"bhk" binding:"omitempty,gte=0"`
	AreaSqft    float64             `json:"area_sqft" binding:"omitempty,gt=0"`
	City        string              `json:"city" binding:"required"`
	Address     string              `json:"address"`
	Amenities   []string            `json:"amenities"`
}

// UpdatePropertyRequest - partial update, nil fields untouched
type UpdatePropertyRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Price       *int64               `json:"price,omitempty" binding:"omitempty,gt=0"`
	Type        *models.PropertyType `json:"type,omitempty" binding:"omitempty,oneof=house flat plot commercial"`
	BHK         *int                 `json:"bhk,omitempty" binding:"omitempty,gte=0"`
	AreaSqft    *float64             `json:"area_sqft,omitempty" binding:"omitempty,gt=0"`
	City        *string              `json:"city,omitempty"`
	Address     *string              `json:"address,omitempty"`
	Amenities   []string             `json:"amenities,omitempty"`
}

// UpdatePropertyStatusRequest
type UpdatePropertyStatusRequest struct {
	Status models.PropertyStatus `json:"status" binding:"required,oneof=available pending sold"`
}

// PropertyListQuery - listing filters bound from the query string
type PropertyListQuery struct {
	City     string `form:"city"`
	Type     string `form:"type" binding:"omitempty,oneof=house flat plot commercial"`
	Status   string `form:"status" binding:"omitempty,oneof=available pending sold"`
	MinPrice int64  `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice int64  `form:"max_price" binding:"omitempty,gte=0"`
	BHK      int    `form:"bhk" binding:"omitempty,gte=0"`
	Search   string `form:"search"`
	Page     int    `form:"page,default=1" binding:"omitempty,gte=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,gte=1,lte=100"`
}

// PropertyResponse - public listing view
type PropertyResponse struct {
	ID          string                `json:"id"`
	OwnerID     string                `json:"owner_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Price       int64                 `json:"price"`
	Type        models.PropertyType   `json:"type"`
	Status      models.PropertyStatus `json:"status"`
	BHK         int                   `json:"bhk,omitempty"`
	AreaSqft    float64               `json:"area_sqft,omitempty"`
	City        string                `json:"city"`
	Address     string                `json:"address,omitempty"`
	Amenities   []string              `json:"amenities"`
	Photos      []string              `json:"photos"`
	Owner       *UserDTO              `json:"owner,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

type PropertyListResponse struct {
	Items    []PropertyResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
