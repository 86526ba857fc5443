package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/availability"
)

// ErrorResponse is a struct for error response
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// BookingErrorStatus maps an availability engine error to its HTTP status.
// Anything outside the engine's taxonomy is a storage or transport failure
// and surfaces as a 500 so callers can tell it apart from their own input
// errors.
func BookingErrorStatus(err error) int {
	switch {
	case errors.Is(err, availability.ErrMissingField),
		errors.Is(err, availability.ErrInvalidTimeFormat),
		errors.Is(err, availability.ErrInvalidRange):
		return fiber.StatusBadRequest
	case errors.Is(err, availability.ErrServiceNotFound),
		errors.Is(err, availability.ErrProviderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, availability.ErrSlotUnavailable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
