package services

import "estate_backend/internal/email"

// ServiceContainer bundles every application service.
type ServiceContainer struct {
	AuthService        AuthService
	PropertyService    PropertyService
	ContractorService  ContractorService
	AppointmentService AppointmentService
	EmailService       email.Provider
}
