package repositories

import (
	"errors"

	"estate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrContractorNotFound = errors.New("contractor not found")

// ContractorFilters narrows contractor listing queries.
type ContractorFilters struct {
	ServiceType string
	Location    string
	Verified    *bool
	Page        int
	PageSize    int
}

type ContractorRepository interface {
	Create(db *gorm.DB, contractor *models.Contractor) error
	FindByID(db *gorm.DB, id string) (*models.Contractor, error)
	FindAll(db *gorm.DB, filters *ContractorFilters) ([]models.Contractor, int64, error)
	Update(db *gorm.DB, contractor *models.Contractor) error
	SetVerified(db *gorm.DB, id string, verified bool) error
	Delete(db *gorm.DB, id string) error
	Count(db *gorm.DB) (int64, error)

	// Portfolio operations
	ReplacePortfolio(db *gorm.DB, contractorID string, entries []models.PortfolioEntry) error
	CountPortfolioEntries(db *gorm.DB) (int64, error)
}

type ContractorRepositoryImpl struct{}

func NewContractorRepository() ContractorRepository {
	return &ContractorRepositoryImpl{}
}

func (r *ContractorRepositoryImpl) Create(db *gorm.DB, contractor *models.Contractor) error {
	return db.Create(contractor).Error
}

func (r *ContractorRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Contractor, error) {
	var contractor models.Contractor
	err := db.Preload("Portfolio", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).Preload("Portfolio.Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&contractor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractorNotFound
		}
		return nil, err
	}
	return &contractor, nil
}

func (r *ContractorRepositoryImpl) FindAll(db *gorm.DB, filters *ContractorFilters) ([]models.Contractor, int64, error) {
	query := db.Model(&models.Contractor{})

	if filters != nil {
		if filters.ServiceType != "" {
			query = query.Where("service_type = ?", filters.ServiceType)
		}
		if filters.Location != "" {
			query = query.Where("location ILIKE ?", filters.Location)
		}
		if filters.Verified != nil {
			query = query.Where("verified = ?", *filters.Verified)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters != nil && filters.Page > 0 && filters.PageSize > 0 {
		query = query.Offset((filters.Page - 1) * filters.PageSize).Limit(filters.PageSize)
	}

	var contractors []models.Contractor
	err := query.Preload("Portfolio.Images").Preload("Portfolio").
		Order("created_at DESC").Find(&contractors).Error
	return contractors, total, err
}

func (r *ContractorRepositoryImpl) Update(db *gorm.DB, contractor *models.Contractor) error {
	return db.Save(contractor).Error
}

func (r *ContractorRepositoryImpl) SetVerified(db *gorm.DB, id string, verified bool) error {
	result := db.Model(&models.Contractor{}).Where("id = ?", id).Update("verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContractorNotFound
	}
	return nil
}

func (r *ContractorRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Contractor{}, "id = ?", id).Error
}

func (r *ContractorRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Contractor{}).Count(&count).Error
	return count, err
}

// ReplacePortfolio swaps the full portfolio set of a contractor. Old entries
// and their images go away; the new entries are inserted with their images.
func (r *ContractorRepositoryImpl) ReplacePortfolio(db *gorm.DB, contractorID string, entries []models.PortfolioEntry) error {
	var oldEntryIDs []string
	if err := db.Model(&models.PortfolioEntry{}).
		Where("contractor_id = ?", contractorID).
		Pluck("id", &oldEntryIDs).Error; err != nil {
		return err
	}

	if len(oldEntryIDs) > 0 {
		if err := db.Delete(&models.PortfolioImage{}, "entry_id IN ?", oldEntryIDs).Error; err != nil {
			return err
		}
		if err := db.Delete(&models.PortfolioEntry{}, "contractor_id = ?", contractorID).Error; err != nil {
			return err
		}
	}

	for i := range entries {
		entries[i].ContractorID = contractorID
		if err := db.Create(&entries[i]).Error; err != nil {
			return err
		}
	}

	return nil
}

func (r *ContractorRepositoryImpl) CountPortfolioEntries(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.PortfolioEntry{}).Count(&count).Error
	return count, err
}
