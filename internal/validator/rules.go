package validator

import (
	"log"
	"regexp"

	"estate_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// Digits with optional leading +, 7-20 characters counting the spaces and
// dashes allowed as separators.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

// RegisterCustomRules installs the project's validation tags. Called for the
// standalone Validator and for gin's binding engine at startup.
func RegisterCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("phone", validatePhone)
	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-property-type", validatePropertyType)
	mustRegister("is-property-status", validatePropertyStatus)
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	return phoneRe.MatchString(value)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleUser, models.UserRoleAgent, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validatePropertyType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PropertyType(value) {
	case models.PropertyTypeHouse, models.PropertyTypeFlat, models.PropertyTypePlot, models.PropertyTypeCommercial:
		return true
	default:
		return false
	}
}

func validatePropertyStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.PropertyStatus(value) {
	case models.PropertyStatusAvailable, models.PropertyStatusPending, models.PropertyStatusSold:
		return true
	default:
		return false
	}
}
