package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Statuses that block a time slot. Cancelled and completed appointments
// never conflict with a new booking.
var activeStatuses = []string{"upcoming", "confirmed"}

// TemplateDay is one weekday entry of a provider's recurring availability.
type TemplateDay struct {
	Start       string
	End         string
	IsAvailable bool
}

// WeeklyTemplate maps each weekday to its availability entry. Missing
// weekdays count as unavailable.
type WeeklyTemplate map[time.Weekday]TemplateDay

// BookedInterval is the subset of an appointment the engine needs for
// conflict detection.
type BookedInterval struct {
	ID     uint
	Start  string
	End    string
	Status string
}

// ServiceInfo is the subset of a service the engine needs for booking.
type ServiceInfo struct {
	ID              uint
	ProviderID      uint
	DurationMinutes int
}

// Reservation is a validated booking handed to the store for an atomic
// check-and-reserve. Start and End are canonical zero-padded "HH:MM".
type Reservation struct {
	BookingRef string
	UserID     uint
	ProviderID uint
	ServiceID  uint
	Date       time.Time
	Start      string
	End        string
	Notes      string
}

// Store is the engine's read/write collaborator. ReserveAppointment must
// perform the conflict check and the insert in one transaction scoped to
// the provider, so two concurrent requests for overlapping intervals
// cannot both commit. It returns ErrSlotUnavailable on conflict.
type Store interface {
	WeeklyTemplate(ctx context.Context, providerID uint) (WeeklyTemplate, error)
	FindAppointments(ctx context.Context, providerID uint, date time.Time, statuses []string, excludeID uint) ([]BookedInterval, error)
	ServiceForProvider(ctx context.Context, serviceID, providerID uint) (ServiceInfo, error)
	ReserveAppointment(ctx context.Context, r *Reservation) error
}

// Engine computes free slots and validates bookings against a provider's
// weekly template and existing appointments. It holds no state of its own;
// every call reflects the store's contents at that moment.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// BookingRequest is the raw input of a booking attempt, before validation.
type BookingRequest struct {
	UserID     uint
	ProviderID uint
	ServiceID  uint
	Date       time.Time
	Start      string
	End        string
	Notes      string
}

// IsIntervalAvailable reports whether [start, end) in minutes-since-midnight
// is free of conflicts with the provider's upcoming and confirmed
// appointments on the given date. excludeID (0 for none) skips one
// appointment, used when revalidating an existing booking.
//
// This is a point-in-time read. The write path must not rely on it alone;
// ReserveAppointment repeats the check under a lock.
func (e *Engine) IsIntervalAvailable(ctx context.Context, providerID uint, date time.Time, start, end int, excludeID uint) (bool, error) {
	if !ValidRange(start, end) {
		return false, ErrInvalidRange
	}
	booked, err := e.store.FindAppointments(ctx, providerID, date, activeStatuses, excludeID)
	if err != nil {
		return false, err
	}
	conflict, err := overlapsAnyBooked(start, end, booked)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// FreeSlots returns the ascending "HH:MM" start times on date at which a
// slot of durationMinutes fits inside the provider's template for that
// weekday without conflicting with an existing appointment. Candidates are
// generated at a fixed stride equal to the slot duration.
func (e *Engine) FreeSlots(ctx context.Context, providerID uint, date time.Time, durationMinutes int) ([]string, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidRange
	}

	template, err := e.store.WeeklyTemplate(ctx, providerID)
	if err != nil {
		return nil, err
	}
	day, ok := template[date.Weekday()]
	if !ok || !day.IsAvailable || day.Start == "" || day.End == "" {
		return []string{}, nil
	}

	dayStart, err := ParseTimeOfDay(day.Start)
	if err != nil {
		return nil, err
	}
	dayEnd, err := ParseTimeOfDay(day.End)
	if err != nil {
		return nil, err
	}
	if dayEnd-dayStart < durationMinutes {
		return []string{}, nil
	}

	booked, err := e.store.FindAppointments(ctx, providerID, date, activeStatuses, 0)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for t := dayStart; t+durationMinutes <= dayEnd; t += durationMinutes {
		conflict, err := overlapsAnyBooked(t, t+durationMinutes, booked)
		if err != nil {
			return nil, err
		}
		if !conflict {
			slots = append(slots, FormatMinutes(t))
		}
	}
	return slots, nil
}

// ValidateAndBook runs the booking pipeline: required fields, time format,
// time range, service ownership, then the atomic slot reservation. It fails
// fast on the first violation. On success the appointment is persisted with
// status "upcoming" and the reservation is returned with its booking ref.
func (e *Engine) ValidateAndBook(ctx context.Context, req BookingRequest) (*Reservation, error) {
	if req.ProviderID == 0 || req.ServiceID == 0 || req.Date.IsZero() || req.Start == "" || req.End == "" {
		return nil, ErrMissingField
	}

	start, err := ParseTimeOfDay(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := ParseTimeOfDay(req.End)
	if err != nil {
		return nil, err
	}
	if !ValidRange(start, end) {
		return nil, ErrInvalidRange
	}

	if _, err := e.store.ServiceForProvider(ctx, req.ServiceID, req.ProviderID); err != nil {
		return nil, err
	}

	// Cheap pre-check so obviously taken slots fail before opening a
	// transaction. The reservation below repeats it under a lock.
	free, err := e.IsIntervalAvailable(ctx, req.ProviderID, req.Date, start, end, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrSlotUnavailable
	}

	r := &Reservation{
		BookingRef: uuid.NewString(),
		UserID:     req.UserID,
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		// Canonical zero-padded form, so lexicographic order in the store
		// matches chronological order.
		Start: FormatMinutes(start),
		End:   FormatMinutes(end),
		Notes: req.Notes,
	}
	if err := e.store.ReserveAppointment(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// overlapsAnyBooked fails loudly on an unparseable stored interval instead
// of skipping it; a corrupt row must never make its slot look free.
func overlapsAnyBooked(start, end int, booked []BookedInterval) (bool, error) {
	for _, b := range booked {
		bs, err := ParseTimeOfDay(b.Start)
		if err != nil {
			return false, err
		}
		be, err := ParseTimeOfDay(b.End)
		if err != nil {
			return false, err
		}
		if overlaps(start, end, bs, be) {
			return true, nil
		}
	}
	return false, nil
}
