package availability

import "errors"

// Booking and slot computation errors. All of these are caller errors —
// the request can be resubmitted with corrected input or a different slot.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	ErrInvalidRange      = errors.New("end time must be after start time")
	ErrMissingField      = errors.New("missing required field")
	ErrServiceNotFound   = errors.New("service not found or does not belong to provider")
	ErrSlotUnavailable   = errors.New("time slot is already booked")
	ErrProviderNotFound  = errors.New("provider not found")
)
