package services

import (
	"context"
	"mime/multipart"
	"strings"

	"estate_backend/internal/logger"
	"estate_backend/internal/media"
	"estate_backend/internal/models"
	"estate_backend/internal/repositories"
	"estate_backend/internal/services/dto"
	"estate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const propertyPhotoFolder = "properties"

type PropertyService interface {
	Create(ctx context.Context, db *gorm.DB, ownerID string, req *dto.CreatePropertyRequest, photos []*multipart.FileHeader) (*dto.PropertyResponse, error)
	GetByID(db *gorm.DB, id string) (*dto.PropertyResponse, error)
	List(db *gorm.DB, query *dto.PropertyListQuery) (*dto.PropertyListResponse, error)
	ListByOwner(db *gorm.DB, ownerID string) ([]dto.PropertyResponse, error)
	Update(db *gorm.DB, id, actorID string, actorRole models.UserRole, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error)
	UpdateStatus(db *gorm.DB, id, actorID string, actorRole models.UserRole, status models.PropertyStatus) error
	AddPhotos(ctx context.Context, db *gorm.DB, id, actorID string, actorRole models.UserRole, photos []*multipart.FileHeader) (*dto.PropertyResponse, error)
	Delete(db *gorm.DB, id, actorID string, actorRole models.UserRole) error
}

type PropertyServiceImpl struct {
	propertyRepo repositories.PropertyRepository
	uploader     media.Uploader
}

func NewPropertyService(propertyRepo repositories.PropertyRepository, uploader media.Uploader) PropertyService {
	return &PropertyServiceImpl{
		propertyRepo: propertyRepo,
		uploader:     uploader,
	}
}

func (s *PropertyServiceImpl) Create(ctx context.Context, db *gorm.DB, ownerID string, req *dto.CreatePropertyRequest, photos []*multipart.FileHeader) (*dto.PropertyResponse, error) {
	property := &models.Property{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Type:        req.Type,
		Status:      models.PropertyStatusAvailable,
		BHK:         req.BHK,
		AreaSqft:    req.AreaSqft,
		City:        req.City,
		Address:     req.Address,
		Amenities:   strings.Join(req.Amenities, ","),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.propertyRepo.Create(tx, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	urls := s.uploadPhotos(ctx, photos)
	for i, url := range urls {
		photo := &models.PropertyPhoto{
			PropertyID: property.ID,
			URL:        url,
			OrderIndex: i,
		}
		if err := s.propertyRepo.AddPhoto(tx, photo); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(db, property.ID)
}

func (s *PropertyServiceImpl) GetByID(db *gorm.DB, id string) (*dto.PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := propertyToResponse(property)
	return &resp, nil
}

func (s *PropertyServiceImpl) List(db *gorm.DB, query *dto.PropertyListQuery) (*dto.PropertyListResponse, error) {
	filters := &repositories.PropertyFilters{
		City:     query.City,
		Type:     models.PropertyType(query.Type),
		Status:   models.PropertyStatus(query.Status),
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
		BHK:      query.BHK,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	properties, total, err := s.propertyRepo.FindAll(db, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, propertyToResponse(&properties[i]))
	}

	return &dto.PropertyListResponse{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

func (s *PropertyServiceImpl) ListByOwner(db *gorm.DB, ownerID string) ([]dto.PropertyResponse, error) {
	properties, err := s.propertyRepo.FindByOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	items := make([]dto.PropertyResponse, 0, len(properties))
	for i := range properties {
		items = append(items, propertyToResponse(&properties[i]))
	}
	return items, nil
}

func (s *PropertyServiceImpl) Update(db *gorm.DB, id, actorID string, actorRole models.UserRole, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	property, err := s.loadOwned(db, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.Type != nil {
		property.Type = *req.Type
	}
	if req.BHK != nil {
		property.BHK = *req.BHK
	}
	if req.AreaSqft != nil {
		property.AreaSqft = *req.AreaSqft
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Amenities != nil {
		property.Amenities = strings.Join(req.Amenities, ",")
	}

	if err := s.propertyRepo.Update(db, property); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(db, id)
}

func (s *PropertyServiceImpl) UpdateStatus(db *gorm.DB, id, actorID string, actorRole models.UserRole, status models.PropertyStatus) error {
	property, err := s.loadOwned(db, id, actorID, actorRole)
	if err != nil {
		return err
	}
	if property.Status == models.PropertyStatusSold && status != models.PropertyStatusSold {
		return apperrors.ErrInvalidStatus("property", "sold listings cannot be reopened")
	}
	if err := s.propertyRepo.UpdateStatus(db, id, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PropertyServiceImpl) AddPhotos(ctx context.Context, db *gorm.DB, id, actorID string, actorRole models.UserRole, photos []*multipart.FileHeader) (*dto.PropertyResponse, error) {
	property, err := s.loadOwned(db, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	base := len(property.Photos)
	urls := s.uploadPhotos(ctx, photos)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	for i, url := range urls {
		photo := &models.PropertyPhoto{
			PropertyID: property.ID,
			URL:        url,
			OrderIndex: base + i,
		}
		if err := s.propertyRepo.AddPhoto(tx, photo); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.GetByID(db, id)
}

func (s *PropertyServiceImpl) Delete(db *gorm.DB, id, actorID string, actorRole models.UserRole) error {
	if _, err := s.loadOwned(db, id, actorID, actorRole); err != nil {
		return err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.propertyRepo.DeletePhotos(tx, id); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.propertyRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// loadOwned fetches a property and enforces that the actor owns it or is an
// admin.
func (s *PropertyServiceImpl) loadOwned(db *gorm.DB, id, actorID string, actorRole models.UserRole) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if property.OwnerID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return property, nil
}

// uploadPhotos hosts each file and returns the URLs that succeeded, keeping
// request order. Individual failures are logged and skipped.
func (s *PropertyServiceImpl) uploadPhotos(ctx context.Context, photos []*multipart.FileHeader) []string {
	urls := make([]string, 0, len(photos))
	for _, fh := range photos {
		url, err := media.UploadFromFileHeader(ctx, s.uploader, fh, propertyPhotoFolder)
		if err != nil {
			logger.CtxWithError(ctx, "property photo upload failed", err, "file", fh.Filename)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func propertyToResponse(p *models.Property) dto.PropertyResponse {
	photos := make([]string, 0, len(p.Photos))
	for _, photo := range p.Photos {
		photos = append(photos, photo.URL)
	}

	var amenities []string
	if p.Amenities != "" {
		amenities = strings.Split(p.Amenities, ",")
	}

	resp := dto.PropertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Type:        p.Type,
		Status:      p.Status,
		BHK:         p.BHK,
		AreaSqft:    p.AreaSqft,
		City:        p.City,
		Address:     p.Address,
		Amenities:   amenities,
		Photos:      photos,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Owner != nil {
		owner := dto.UserToDTO(p.Owner)
		resp.Owner = &owner
	}
	return resp
}
