package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/slotwise/booking-app/availability"
)

func TestBookingErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{availability.ErrMissingField, fiber.StatusBadRequest},
		{availability.ErrInvalidTimeFormat, fiber.StatusBadRequest},
		{availability.ErrInvalidRange, fiber.StatusBadRequest},
		{availability.ErrServiceNotFound, fiber.StatusNotFound},
		{availability.ErrProviderNotFound, fiber.StatusNotFound},
		{availability.ErrSlotUnavailable, fiber.StatusConflict},
		{fmt.Errorf("reserve: %w", availability.ErrSlotUnavailable), fiber.StatusConflict},
		{errors.New("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := BookingErrorStatus(tt.err); got != tt.want {
			t.Errorf("BookingErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-01-05")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if d.Hour() != 0 || d.Minute() != 0 || !d.Equal(d.UTC()) {
		t.Errorf("ParseDate did not normalize to midnight UTC: %v", d)
	}

	for _, bad := range []string{"", "05-01-2026", "2026/01/05", "2026-13-01", "yesterday"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): got %v, want ErrInvalidDate", bad, err)
		}
	}
}
