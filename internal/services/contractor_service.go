package services

import (
	"context"
	"mime/multipart"

	"estate_backend/internal/formdata"
	"estate_backend/internal/media"
	"estate_backend/internal/models"
	"estate_backend/internal/repositories"
	"estate_backend/internal/services/dto"
	"estate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const portfolioFolder = "portfolio"

type ContractorService interface {
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateContractorRequest, form *multipart.Form) (*dto.ContractorMutationResponse, error)
	GetByID(db *gorm.DB, id string) (*dto.ContractorResponse, error)
	List(db *gorm.DB, query *dto.ContractorListQuery) (*dto.ContractorListResponse, error)
	Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateContractorRequest, form *multipart.Form) (*dto.ContractorMutationResponse, error)
	SetVerified(db *gorm.DB, id string, verified bool) error
	Delete(db *gorm.DB, id string) error
}

type ContractorServiceImpl struct {
	contractorRepo repositories.ContractorRepository
	uploader       media.Uploader
}

func NewContractorService(contractorRepo repositories.ContractorRepository, uploader media.Uploader) ContractorService {
	return &ContractorServiceImpl{
		contractorRepo: contractorRepo,
		uploader:       uploader,
	}
}

// Create registers a contractor. Portfolio entries arrive either already
// structured in the JSON body or as bracket-indexed multipart fields plus
// image files; the multipart form wins when both are present.
func (s *ContractorServiceImpl) Create(ctx context.Context, db *gorm.DB, req *dto.CreateContractorRequest, form *multipart.Form) (*dto.ContractorMutationResponse, error) {
	entries, rejected, err := s.buildPortfolio(ctx, form, req.Portfolio, nil)
	if err != nil {
		return nil, err
	}

	contractor := &models.Contractor{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Location:    req.Location,
		ServiceType: req.ServiceType,
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.contractorRepo.Create(tx, contractor); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.contractorRepo.ReplacePortfolio(tx, contractor.ID, entries); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.mutationResponse(db, contractor.ID, rejected)
}

func (s *ContractorServiceImpl) GetByID(db *gorm.DB, id string) (*dto.ContractorResponse, error) {
	contractor, err := s.contractorRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContractorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ContractorToResponse(contractor)
	return &resp, nil
}

func (s *ContractorServiceImpl) List(db *gorm.DB, query *dto.ContractorListQuery) (*dto.ContractorListResponse, error) {
	filters := &repositories.ContractorFilters{
		ServiceType: query.ServiceType,
		Location:    query.Location,
		Verified:    query.Verified,
		Page:        query.Page,
		PageSize:    query.PageSize,
	}

	contractors, total, err := s.contractorRepo.FindAll(db, filters)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ContractorResponse, 0, len(contractors))
	for i := range contractors {
		items = append(items, dto.ContractorToResponse(&contractors[i]))
	}

	return &dto.ContractorListResponse{
		Items:    items,
		Total:    total,
		Page:     query.Page,
		PageSize: query.PageSize,
	}, nil
}

// Update rewrites scalar fields and, when the request carries portfolio data,
// replaces the full portfolio. Retained images are listed by the client under
// existingImages[<idx>]; entries absent from the request are deleted.
func (s *ContractorServiceImpl) Update(ctx context.Context, db *gorm.DB, id string, req *dto.UpdateContractorRequest, form *multipart.Form) (*dto.ContractorMutationResponse, error) {
	contractor, err := s.contractorRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrContractorNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		contractor.Name = *req.Name
	}
	if req.Phone != nil {
		contractor.Phone = *req.Phone
	}
	if req.Email != nil {
		contractor.Email = *req.Email
	}
	if req.Location != nil {
		contractor.Location = *req.Location
	}
	if req.ServiceType != nil {
		contractor.ServiceType = *req.ServiceType
	}

	var existing map[int][]string
	if form != nil {
		existing = formdata.ParseExistingImages(form.Value)
	}

	replace := form != nil && hasPortfolioData(form, existing) || len(req.Portfolio) > 0

	var entries []models.PortfolioEntry
	var rejected []dto.RejectedEntryResponse
	if replace {
		entries, rejected, err = s.buildPortfolio(ctx, form, req.Portfolio, existing)
		if err != nil {
			return nil, err
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.contractorRepo.Update(tx, contractor); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if replace {
		if err := s.contractorRepo.ReplacePortfolio(tx, id, entries); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.mutationResponse(db, id, rejected)
}

func (s *ContractorServiceImpl) SetVerified(db *gorm.DB, id string, verified bool) error {
	if err := s.contractorRepo.SetVerified(db, id, verified); err != nil {
		if apperrors.Is(err, repositories.ErrContractorNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ContractorServiceImpl) Delete(db *gorm.DB, id string) error {
	if _, err := s.contractorRepo.FindByID(db, id); err != nil {
		if apperrors.Is(err, repositories.ErrContractorNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// Clearing the portfolio first keeps image/entry rows from orphaning on
	// databases without cascading deletes.
	if err := s.contractorRepo.ReplacePortfolio(tx, id, nil); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.contractorRepo.Delete(tx, id); err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// buildPortfolio produces persistable entries from whichever shape the request
// used. Multipart data goes through the reconstruction pipeline (uploads
// included); pre-structured entries are taken as-is since binding already
// guaranteed completeness.
func (s *ContractorServiceImpl) buildPortfolio(ctx context.Context, form *multipart.Form, structured []dto.PortfolioEntryInput, existing map[int][]string) ([]models.PortfolioEntry, []dto.RejectedEntryResponse, error) {
	if form != nil {
		result, err := AssemblePortfolio(ctx, s.uploader, AssembleInput{
			Fields:   form.Value,
			Files:    form.File,
			Existing: existing,
			Folder:   portfolioFolder,
		})
		if err != nil {
			return nil, nil, apperrors.InternalError(err)
		}

		entries := make([]models.PortfolioEntry, 0, len(result.Accepted))
		for order, e := range result.Accepted {
			entries = append(entries, newPortfolioEntry(order, e.Title, e.Description, e.CompletedOn, e.Location, e.Images))
		}
		rejected := make([]dto.RejectedEntryResponse, 0, len(result.Rejected))
		for _, r := range result.Rejected {
			rejected = append(rejected, dto.RejectedEntryResponse{Index: r.Index, Reasons: r.Reasons})
		}
		return entries, rejected, nil
	}

	entries := make([]models.PortfolioEntry, 0, len(structured))
	for order, e := range structured {
		entries = append(entries, newPortfolioEntry(order, e.Title, e.Description, e.CompletedOn, e.Location, e.Images))
	}
	return entries, nil, nil
}

func newPortfolioEntry(order int, title, description, completedOn, location string, images []string) models.PortfolioEntry {
	entry := models.PortfolioEntry{
		Title:       title,
		Description: description,
		CompletedOn: completedOn,
		Location:    location,
		OrderIndex:  order,
		Images:      make([]models.PortfolioImage, 0, len(images)),
	}
	for i, url := range images {
		entry.Images = append(entry.Images, models.PortfolioImage{URL: url, OrderIndex: i})
	}
	return entry
}

// hasPortfolioData reports whether the multipart form carries any portfolio
// fields, files or retained URLs. A form with none of those leaves the stored
// portfolio untouched.
func hasPortfolioData(form *multipart.Form, existing map[int][]string) bool {
	if len(existing) > 0 {
		return true
	}
	if len(formdata.ParseIndexedFields(form.Value)) > 0 {
		return true
	}
	return len(formdata.GroupFilesByIndex(form.File)) > 0
}

func (s *ContractorServiceImpl) mutationResponse(db *gorm.DB, id string, rejected []dto.RejectedEntryResponse) (*dto.ContractorMutationResponse, error) {
	resp, err := s.GetByID(db, id)
	if err != nil {
		return nil, err
	}
	return &dto.ContractorMutationResponse{
		Contractor: *resp,
		Rejected:   rejected,
	}, nil
}
