package repositories

import (
	"errors"

	"estate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("property not found")

// PropertyFilters narrows listing queries. Zero values mean "no filter".
type PropertyFilters struct {
	City     string
	Type     models.PropertyType
	Status   models.PropertyStatus
	MinPrice int64
	MaxPrice int64
	BHK      int
	Search   string
	Page     int
	PageSize int
}

type PropertyRepository interface {
	Create(db *gorm.DB, property *models.Property) error
	FindByID(db *gorm.DB, id string) (*models.Property, error)
	FindAll(db *gorm.DB, filters *PropertyFilters) ([]models.Property, int64, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.Property, error)
	Update(db *gorm.DB, property *models.Property) error
	UpdateStatus(db *gorm.DB, id string, status models.PropertyStatus) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)

	AddPhoto(db *gorm.DB, photo *models.PropertyPhoto) error
	DeletePhotos(db *gorm.DB, propertyID string) error
}

type PropertyRepositoryImpl struct{}

func NewPropertyRepository() PropertyRepository {
	return &PropertyRepositoryImpl{}
}

func (r *PropertyRepositoryImpl) Create(db *gorm.DB, property *models.Property) error {
	return db.Create(property).Error
}

func (r *PropertyRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Property, error) {
	var property models.Property
	err := db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Preload("Owner").First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepositoryImpl) FindAll(db *gorm.DB, filters *PropertyFilters) ([]models.Property, int64, error) {
	query := db.Model(&models.Property{})

	if filters != nil {
		if filters.City != "" {
			query = query.Where("city ILIKE ?", filters.City)
		}
		if filters.Type != "" {
			query = query.Where("type = ?", filters.Type)
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.MinPrice > 0 {
			query = query.Where("price >= ?", filters.MinPrice)
		}
		if filters.MaxPrice > 0 {
			query = query.Where("price <= ?", filters.MaxPrice)
		}
		if filters.BHK > 0 {
			query = query.Where("bhk = ?", filters.BHK)
		}
		if filters.Search != "" {
			pattern := "%" + filters.Search + "%"
			query = query.Where("title ILIKE ? OR city ILIKE ?", pattern, pattern)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters != nil && filters.Page > 0 && filters.PageSize > 0 {
		query = query.Offset((filters.Page - 1) * filters.PageSize).Limit(filters.PageSize)
	}

	var properties []models.Property
	err := query.Preload("Photos").Order("created_at DESC").Find(&properties).Error
	return properties, total, err
}

func (r *PropertyRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("Photos").Where("owner_id = ?", ownerID).
		Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) Update(db *gorm.DB, property *models.Property) error {
	return db.Save(property).Error
}

func (r *PropertyRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.PropertyStatus) error {
	return db.Model(&models.Property{}).Where("id = ?", id).
		Update("status", status).Error
}

func (r *PropertyRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Property{}, "id = ?", id).Error
}

func (r *PropertyRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Property{}).Count(&count).Error
	return count, err
}

func (r *PropertyRepositoryImpl) AddPhoto(db *gorm.DB, photo *models.PropertyPhoto) error {
	return db.Create(photo).Error
}

func (r *PropertyRepositoryImpl) DeletePhotos(db *gorm.DB, propertyID string) error {
	return db.Delete(&models.PropertyPhoto{}, "property_id = ?", propertyID).Error
}
