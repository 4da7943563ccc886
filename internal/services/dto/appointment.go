package dto

import (
	"time"

	"estate_backend/internal/models"
)

// CreateAppointmentRequest - books a property viewing
type CreateAppointmentRequest struct {
	PropertyID  string    `json:"property_id" binding:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	Message     string    `json:"message"`
}

// UpdateAppointmentStatusRequest - owner/agent decision on a booking
type UpdateAppointmentStatusRequest struct {
	Status models.AppointmentStatus `json:"status" binding:"required,oneof=confirmed cancelled completed"`
}

// AppointmentResponse
type AppointmentResponse struct {
	ID          string                   `json:"id"`
	PropertyID  string                   `json:"property_id"`
	BuyerID     string                   `json:"buyer_id"`
	ScheduledAt time.Time                `json:"scheduled_at"`
	Message     string                   `json:"message,omitempty"`
	Status      models.AppointmentStatus `json:"status"`
	Property    *PropertyResponse        `json:"property,omitempty"`
	Buyer       *UserDTO                 `json:"buyer,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Total int                   `json:"total"`
}
