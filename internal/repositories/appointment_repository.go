package repositories

import (
	"errors"
	"time"

	"estate_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *models.Appointment) error
	FindByID(db *gorm.DB, id string) (*models.Appointment, error)
	FindByBuyer(db *gorm.DB, buyerID string) ([]models.Appointment, error)
	FindByProperty(db *gorm.DB, propertyID string) ([]models.Appointment, error)
	FindForOwner(db *gorm.DB, ownerID string) ([]models.Appointment, error)
	HasConflict(db *gorm.DB, propertyID string, scheduledAt time.Time) (bool, error)
	UpdateStatus(db *gorm.DB, id string, status models.AppointmentStatus) error
	ExpirePastPending(db *gorm.DB, now time.Time) (int64, error)
}

type AppointmentRepositoryImpl struct{}

func NewAppointmentRepository() AppointmentRepository {
	return &AppointmentRepositoryImpl{}
}

func (r *AppointmentRepositoryImpl) Create(db *gorm.DB, appointment *models.Appointment) error {
	return db.Create(appointment).Error
}

func (r *AppointmentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := db.Preload("Property").Preload("Buyer").First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepositoryImpl) FindByBuyer(db *gorm.DB, buyerID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Property").
		Where("buyer_id = ?", buyerID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepositoryImpl) FindByProperty(db *gorm.DB, propertyID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Buyer").
		Where("property_id = ?", propertyID).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

// FindForOwner returns appointments across all properties owned by ownerID.
func (r *AppointmentRepositoryImpl) FindForOwner(db *gorm.DB, ownerID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Property").Preload("Buyer").
		Joins("JOIN properties ON properties.id = appointments.property_id").
		Where("properties.owner_id = ?", ownerID).
		Order("appointments.scheduled_at ASC").
		Find(&appointments).Error
	return appointments, err
}

// HasConflict reports whether an active appointment already occupies the slot.
func (r *AppointmentRepositoryImpl) HasConflict(db *gorm.DB, propertyID string, scheduledAt time.Time) (bool, error) {
	var count int64
	err := db.Model(&models.Appointment{}).
		Where("property_id = ? AND scheduled_at = ? AND status IN ?",
			propertyID, scheduledAt,
			[]models.AppointmentStatus{models.AppointmentStatusPending, models.AppointmentStatusConfirmed}).
		Count(&count).Error
	return count > 0, err
}

func (r *AppointmentRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.AppointmentStatus) error {
	result := db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// ExpirePastPending marks pending appointments whose slot already passed.
func (r *AppointmentRepositoryImpl) ExpirePastPending(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Model(&models.Appointment{}).
		Where("status = ? AND scheduled_at < ?", models.AppointmentStatusPending, now).
		Update("status", models.AppointmentStatusExpired)
	return result.RowsAffected, result.Error
}
