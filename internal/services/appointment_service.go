package services

import (
	"time"

	"estate_backend/internal/email"
	"estate_backend/internal/logger"
	"estate_backend/internal/models"
	"estate_backend/internal/repositories"
	"estate_backend/internal/services/dto"
	"estate_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AppointmentService interface {
	Create(db *gorm.DB, buyerID string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(db *gorm.DB, id, actorID string, actorRole models.UserRole) (*dto.AppointmentResponse, error)
	ListForBuyer(db *gorm.DB, buyerID string) ([]dto.AppointmentResponse, error)
	ListForOwner(db *gorm.DB, ownerID string) ([]dto.AppointmentResponse, error)
	UpdateStatus(db *gorm.DB, id, actorID string, actorRole models.UserRole, status models.AppointmentStatus) error
}

type AppointmentServiceImpl struct {
	appointmentRepo repositories.AppointmentRepository
	propertyRepo    repositories.PropertyRepository
	userRepo        repositories.UserRepository
	emailProvider   email.Provider
}

func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	propertyRepo repositories.PropertyRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) AppointmentService {
	return &AppointmentServiceImpl{
		appointmentRepo: appointmentRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		emailProvider:   emailProvider,
	}
}

func (s *AppointmentServiceImpl) Create(db *gorm.DB, buyerID string, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperrors.ErrAppointmentSlotPassed
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	property, err := s.propertyRepo.FindByID(tx, req.PropertyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if property.Status != models.PropertyStatusAvailable {
		return nil, apperrors.ErrPropertyNotAvailable
	}
	if property.OwnerID == buyerID {
		return nil, apperrors.ErrInvalidOperation("appointment", "cannot book a viewing of your own listing")
	}

	conflict, err := s.appointmentRepo.HasConflict(tx, req.PropertyID, req.ScheduledAt)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if conflict {
		return nil, apperrors.ErrConflict(nil, "appointment", "slot is already taken")
	}

	appointment := &models.Appointment{
		PropertyID:  req.PropertyID,
		BuyerID:     buyerID,
		ScheduledAt: req.ScheduledAt,
		Message:     req.Message,
		Status:      models.AppointmentStatusPending,
	}
	if err := s.appointmentRepo.Create(tx, appointment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyOwner(db, property, appointment)

	created, err := s.appointmentRepo.FindByID(db, appointment.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := appointmentToResponse(created)
	return &resp, nil
}

func (s *AppointmentServiceImpl) GetByID(db *gorm.DB, id, actorID string, actorRole models.UserRole) (*dto.AppointmentResponse, error) {
	appointment, err := s.loadVisible(db, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	resp := appointmentToResponse(appointment)
	return &resp, nil
}

func (s *AppointmentServiceImpl) ListForBuyer(db *gorm.DB, buyerID string) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.FindByBuyer(db, buyerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return appointmentsToResponses(appointments), nil
}

func (s *AppointmentServiceImpl) ListForOwner(db *gorm.DB, ownerID string) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointmentRepo.FindForOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return appointmentsToResponses(appointments), nil
}

// UpdateStatus applies an owner decision (confirm/cancel/complete) or a buyer
// cancellation. Terminal states cannot be left.
func (s *AppointmentServiceImpl) UpdateStatus(db *gorm.DB, id, actorID string, actorRole models.UserRole, status models.AppointmentStatus) error {
	appointment, err := s.loadVisible(db, id, actorID, actorRole)
	if err != nil {
		return err
	}

	isBuyer := appointment.BuyerID == actorID
	if isBuyer && status != models.AppointmentStatusCancelled && actorRole != models.UserRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	switch appointment.Status {
	case models.AppointmentStatusCancelled, models.AppointmentStatusCompleted, models.AppointmentStatusExpired:
		return apperrors.ErrInvalidStatus("appointment",
			"appointment is already "+string(appointment.Status))
	}

	if err := s.appointmentRepo.UpdateStatus(db, id, status); err != nil {
		if apperrors.Is(err, repositories.ErrAppointmentNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if !isBuyer {
		s.notifyBuyer(db, appointment, status)
	}
	return nil
}

// loadVisible fetches an appointment and enforces that the actor is the
// buyer, the property owner, or an admin.
func (s *AppointmentServiceImpl) loadVisible(db *gorm.DB, id, actorID string, actorRole models.UserRole) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAppointmentNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if actorRole == models.UserRoleAdmin || appointment.BuyerID == actorID {
		return appointment, nil
	}
	if appointment.Property != nil && appointment.Property.OwnerID == actorID {
		return appointment, nil
	}
	return nil, apperrors.ErrInsufficientPermissions
}

// notifyOwner emails the listing owner about a new request. Delivery problems
// are logged, never surfaced to the booking flow.
func (s *AppointmentServiceImpl) notifyOwner(db *gorm.DB, property *models.Property, appointment *models.Appointment) {
	owner, err := s.userRepo.FindByID(db, property.OwnerID)
	if err != nil {
		logger.WithError(err).Warn("appointment notification skipped, owner lookup failed",
			"appointment_id", appointment.ID)
		return
	}
	buyer, err := s.userRepo.FindByID(db, appointment.BuyerID)
	if err != nil {
		logger.WithError(err).Warn("appointment notification skipped, buyer lookup failed",
			"appointment_id", appointment.ID)
		return
	}

	go func() {
		err := s.emailProvider.SendTemplate(
			[]string{owner.Email},
			"New viewing request: "+property.Title,
			email.TemplateAppointmentRequested,
			email.TemplateData{
				"BuyerName":     buyer.Name,
				"PropertyTitle": property.Title,
				"ScheduledAt":   appointment.ScheduledAt.Format(time.RFC1123),
				"Message":       appointment.Message,
			},
		)
		if err != nil {
			logger.WithError(err).Error("failed to send appointment request email",
				"appointment_id", appointment.ID)
		}
	}()
}

func (s *AppointmentServiceImpl) notifyBuyer(db *gorm.DB, appointment *models.Appointment, status models.AppointmentStatus) {
	buyer, err := s.userRepo.FindByID(db, appointment.BuyerID)
	if err != nil {
		logger.WithError(err).Warn("appointment decision email skipped, buyer lookup failed",
			"appointment_id", appointment.ID)
		return
	}

	title := ""
	if appointment.Property != nil {
		title = appointment.Property.Title
	}

	go func() {
		err := s.emailProvider.SendTemplate(
			[]string{buyer.Email},
			"Viewing "+string(status)+": "+title,
			email.TemplateAppointmentDecided,
			email.TemplateData{
				"PropertyTitle": title,
				"ScheduledAt":   appointment.ScheduledAt.Format(time.RFC1123),
				"Status":        string(status),
			},
		)
		if err != nil {
			logger.WithError(err).Error("failed to send appointment decision email",
				"appointment_id", appointment.ID)
		}
	}()
}

func appointmentToResponse(a *models.Appointment) dto.AppointmentResponse {
	resp := dto.AppointmentResponse{
		ID:          a.ID,
		PropertyID:  a.PropertyID,
		BuyerID:     a.BuyerID,
		ScheduledAt: a.ScheduledAt,
		Message:     a.Message,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
	if a.Property != nil {
		property := propertyToResponse(a.Property)
		resp.Property = &property
	}
	if a.Buyer != nil {
		buyer := dto.UserToDTO(a.Buyer)
		resp.Buyer = &buyer
	}
	return resp
}

func appointmentsToResponses(appointments []models.Appointment) []dto.AppointmentResponse {
	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, appointmentToResponse(&appointments[i]))
	}
	return items
}
