package models

import "time"

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusExpired   AppointmentStatus = "expired"
)

// Appointment is a property-viewing booking made by a buyer against a listing.
type Appointment struct {
	BaseModel
	PropertyID  string            `gorm:"not null;index" json:"propertyId"`
	BuyerID     string            `gorm:"not null;index" json:"buyerId"`
	ScheduledAt time.Time         `gorm:"not null" json:"scheduledAt"`
	Message     string            `json:"message"`
	Status      AppointmentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`

	// Relations
	Property *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	Buyer    *User     `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
}
