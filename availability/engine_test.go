package availability

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// monday is a known Monday used by the scenario tests.
var monday = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

type fakeAppointment struct {
	BookedInterval
	Date time.Time
}

// fakeStore is an in-memory Store. ReserveAppointment repeats the conflict
// check before inserting, mirroring the transactional behavior the real
// store provides.
type fakeStore struct {
	template     WeeklyTemplate
	appointments []fakeAppointment
	services     map[uint]ServiceInfo
	nextID       uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		template: WeeklyTemplate{},
		services: map[uint]ServiceInfo{},
		nextID:   1,
	}
}

func (f *fakeStore) WeeklyTemplate(ctx context.Context, providerID uint) (WeeklyTemplate, error) {
	return f.template, nil
}

func (f *fakeStore) FindAppointments(ctx context.Context, providerID uint, date time.Time, statuses []string, excludeID uint) ([]BookedInterval, error) {
	var out []BookedInterval
	for _, a := range f.appointments {
		if !a.Date.Equal(date) || a.ID == excludeID {
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				out = append(out, a.BookedInterval)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ServiceForProvider(ctx context.Context, serviceID, providerID uint) (ServiceInfo, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.ProviderID != providerID {
		return ServiceInfo{}, ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeStore) ReserveAppointment(ctx context.Context, r *Reservation) error {
	start, err := ParseTimeOfDay(r.Start)
	if err != nil {
		return err
	}
	end, err := ParseTimeOfDay(r.End)
	if err != nil {
		return err
	}
	booked, _ := f.FindAppointments(ctx, r.ProviderID, r.Date, activeStatuses, 0)
	conflict, err := overlapsAnyBooked(start, end, booked)
	if err != nil {
		return err
	}
	if conflict {
		return ErrSlotUnavailable
	}
	f.appointments = append(f.appointments, fakeAppointment{
		BookedInterval: BookedInterval{ID: f.nextID, Start: r.Start, End: r.End, Status: "upcoming"},
		Date:           r.Date,
	})
	f.nextID++
	return nil
}

func (f *fakeStore) addAppointment(date time.Time, start, end, status string) uint {
	id := f.nextID
	f.nextID++
	f.appointments = append(f.appointments, fakeAppointment{
		BookedInterval: BookedInterval{ID: id, Start: start, End: end, Status: status},
		Date:           date,
	})
	return id
}

func mondayNineToFive() *fakeStore {
	store := newFakeStore()
	store.template[time.Monday] = TemplateDay{Start: "09:00", End: "17:00", IsAvailable: true}
	return store
}

func TestFreeSlots_FullDay(t *testing.T) {
	engine := NewEngine(mondayNineToFive())

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}

	want := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("FreeSlots = %v, want %v", slots, want)
	}
}

func TestFreeSlots_BookedSlotExcluded(t *testing.T) {
	store := mondayNineToFive()
	store.addAppointment(monday, "10:00", "11:00", "confirmed")
	engine := NewEngine(store)

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}

	want := []string{"09:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("FreeSlots = %v, want %v", slots, want)
	}
}

func TestFreeSlots_CancelledAppointmentDoesNotBlock(t *testing.T) {
	store := mondayNineToFive()
	store.addAppointment(monday, "10:00", "11:00", "cancelled")
	store.addAppointment(monday, "11:00", "12:00", "completed")
	engine := NewEngine(store)

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(slots) != 8 {
		t.Errorf("got %d slots, want 8: %v", len(slots), slots)
	}
}

func TestFreeSlots_UnavailableWeekday(t *testing.T) {
	store := mondayNineToFive()
	store.template[time.Monday] = TemplateDay{Start: "09:00", End: "17:00", IsAvailable: false}
	engine := NewEngine(store)

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %v, want no slots on an unavailable day", slots)
	}
}

func TestFreeSlots_MissingTemplateDay(t *testing.T) {
	engine := NewEngine(newFakeStore())

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %v, want no slots without a template entry", slots)
	}
}

func TestFreeSlots_DurationLongerThanDay(t *testing.T) {
	store := newFakeStore()
	store.template[time.Monday] = TemplateDay{Start: "09:00", End: "10:00", IsAvailable: true}
	engine := NewEngine(store)

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 90)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %v, want no slots when the day is shorter than the duration", slots)
	}
}

func TestFreeSlots_PartialTrailingWindowDropped(t *testing.T) {
	store := newFakeStore()
	// 09:00-10:30 fits one 60-minute slot only; 10:00 would overrun
	store.template[time.Monday] = TemplateDay{Start: "09:00", End: "10:30", IsAvailable: true}
	engine := NewEngine(store)

	slots, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	want := []string{"09:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Errorf("FreeSlots = %v, want %v", slots, want)
	}
}

func TestFreeSlots_Idempotent(t *testing.T) {
	store := mondayNineToFive()
	store.addAppointment(monday, "12:00", "13:00", "upcoming")
	engine := NewEngine(store)

	first, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	second, err := engine.FreeSlots(context.Background(), 1, monday, 60)
	if err != nil {
		t.Fatalf("FreeSlots: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestFreeSlots_InvalidDuration(t *testing.T) {
	engine := NewEngine(mondayNineToFive())

	if _, err := engine.FreeSlots(context.Background(), 1, monday, 0); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("duration 0: got %v, want ErrInvalidRange", err)
	}
	if _, err := engine.FreeSlots(context.Background(), 1, monday, -30); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("negative duration: got %v, want ErrInvalidRange", err)
	}
}

func TestIsIntervalAvailable(t *testing.T) {
	store := mondayNineToFive()
	store.addAppointment(monday, "10:00", "11:00", "confirmed")
	engine := NewEngine(store)
	ctx := context.Background()

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"before booking", 9 * 60, 10 * 60, true},
		{"after booking", 11 * 60, 12 * 60, true},
		{"exact overlap", 10 * 60, 11 * 60, false},
		{"straddles start", 9*60 + 30, 10*60 + 30, false},
		{"straddles end", 10*60 + 30, 11*60 + 30, false},
		{"contains booking", 9 * 60, 12 * 60, false},
		{"inside booking", 10*60 + 15, 10*60 + 45, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.IsIntervalAvailable(ctx, 1, monday, tt.start, tt.end, 0)
			if err != nil {
				t.Fatalf("IsIntervalAvailable: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsIntervalAvailable(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestIsIntervalAvailable_InvalidRange(t *testing.T) {
	engine := NewEngine(mondayNineToFive())

	_, err := engine.IsIntervalAvailable(context.Background(), 1, monday, 600, 540, 0)
	if !errors.Is(err, ErrInvalidRange) {
		t.Errorf("got %v, want ErrInvalidRange", err)
	}
}

func TestIsIntervalAvailable_ExcludesAppointment(t *testing.T) {
	store := mondayNineToFive()
	id := store.addAppointment(monday, "10:00", "11:00", "confirmed")
	engine := NewEngine(store)

	// Revalidating the appointment's own interval must not conflict with
	// itself.
	free, err := engine.IsIntervalAvailable(context.Background(), 1, monday, 10*60, 11*60, id)
	if err != nil {
		t.Fatalf("IsIntervalAvailable: %v", err)
	}
	if !free {
		t.Error("interval should be available when its own appointment is excluded")
	}
}

func validBooking(store *fakeStore) BookingRequest {
	store.services[7] = ServiceInfo{ID: 7, ProviderID: 1, DurationMinutes: 60}
	return BookingRequest{
		UserID:     2,
		ProviderID: 1,
		ServiceID:  7,
		Date:       monday,
		Start:      "09:00",
		End:        "10:00",
	}
}

func TestValidateAndBook_Success(t *testing.T) {
	store := mondayNineToFive()
	engine := NewEngine(store)

	r, err := engine.ValidateAndBook(context.Background(), validBooking(store))
	if err != nil {
		t.Fatalf("ValidateAndBook: %v", err)
	}
	if r.BookingRef == "" {
		t.Error("reservation has no booking ref")
	}
	if r.Start != "09:00" || r.End != "10:00" {
		t.Errorf("reservation interval %s-%s, want 09:00-10:00", r.Start, r.End)
	}
	if len(store.appointments) != 1 {
		t.Fatalf("store has %d appointments, want 1", len(store.appointments))
	}
}

func TestValidateAndBook_NormalizesTimes(t *testing.T) {
	store := mondayNineToFive()
	req := validBooking(store)
	req.Start = "9:00"
	req.End = "9:30"
	engine := NewEngine(store)

	r, err := engine.ValidateAndBook(context.Background(), req)
	if err != nil {
		t.Fatalf("ValidateAndBook: %v", err)
	}
	if r.Start != "09:00" || r.End != "09:30" {
		t.Errorf("reservation interval %s-%s, want zero-padded 09:00-09:30", r.Start, r.End)
	}
}

func TestValidateAndBook_PipelineOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BookingRequest)
		wantErr error
	}{
		{"missing provider", func(r *BookingRequest) { r.ProviderID = 0 }, ErrMissingField},
		{"missing service", func(r *BookingRequest) { r.ServiceID = 0 }, ErrMissingField},
		{"missing date", func(r *BookingRequest) { r.Date = time.Time{} }, ErrMissingField},
		{"missing start", func(r *BookingRequest) { r.Start = "" }, ErrMissingField},
		{"bad start format", func(r *BookingRequest) { r.Start = "25:00" }, ErrInvalidTimeFormat},
		{"bad end format", func(r *BookingRequest) { r.End = "10am" }, ErrInvalidTimeFormat},
		{"inverted range", func(r *BookingRequest) { r.Start = "09:00"; r.End = "08:00" }, ErrInvalidRange},
		{"empty range", func(r *BookingRequest) { r.Start = "09:00"; r.End = "09:00" }, ErrInvalidRange},
		{"foreign service", func(r *BookingRequest) { r.ServiceID = 99 }, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mondayNineToFive()
			req := validBooking(store)
			tt.mutate(&req)

			_, err := NewEngine(store).ValidateAndBook(context.Background(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if len(store.appointments) != 0 {
				t.Error("failed booking must not persist an appointment")
			}
		})
	}
}

// A time string that is malformed but present must fail on format, not on
// the missing-field check, and must never be coerced to midnight.
func TestValidateAndBook_MalformedTimeNotTreatedAsMidnight(t *testing.T) {
	store := mondayNineToFive()
	store.addAppointment(monday, "00:00", "23:59", "confirmed")
	req := validBooking(store)
	req.Start = "banana"
	req.End = "banana"

	_, err := NewEngine(store).ValidateAndBook(context.Background(), req)
	if !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("got %v, want ErrInvalidTimeFormat", err)
	}
}

func TestValidateAndBook_SlotTaken(t *testing.T) {
	store := mondayNineToFive()
	store.addAppointment(monday, "09:30", "10:30", "upcoming")
	req := validBooking(store)

	_, err := NewEngine(store).ValidateAndBook(context.Background(), req)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("got %v, want ErrSlotUnavailable", err)
	}
}

// Two identical booking attempts must yield exactly one reservation; the
// second fails with ErrSlotUnavailable at the reserve step.
func TestValidateAndBook_DoubleBookingRejected(t *testing.T) {
	store := mondayNineToFive()
	req := validBooking(store)
	engine := NewEngine(store)
	ctx := context.Background()

	if _, err := engine.ValidateAndBook(ctx, req); err != nil {
		t.Fatalf("first booking: %v", err)
	}
	_, err := engine.ValidateAndBook(ctx, req)
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("second booking: got %v, want ErrSlotUnavailable", err)
	}
	if len(store.appointments) != 1 {
		t.Errorf("store has %d appointments, want exactly 1", len(store.appointments))
	}
}

// Even when both requests pass the pre-check before either reserves, the
// reserve step itself must reject the loser.
func TestReserve_RaceLoserRejected(t *testing.T) {
	store := mondayNineToFive()
	r1 := &Reservation{BookingRef: "a", UserID: 2, ProviderID: 1, Date: monday, Start: "09:00", End: "10:00"}
	r2 := &Reservation{BookingRef: "b", UserID: 3, ProviderID: 1, Date: monday, Start: "09:30", End: "10:30"}

	if err := store.ReserveAppointment(context.Background(), r1); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if err := store.ReserveAppointment(context.Background(), r2); !errors.Is(err, ErrSlotUnavailable) {
		t.Errorf("second reserve: got %v, want ErrSlotUnavailable", err)
	}
}

func TestSlotDuration(t *testing.T) {
	if got := SlotDuration(nil); got != DefaultSlotMinutes {
		t.Errorf("SlotDuration(nil) = %d, want %d", got, DefaultSlotMinutes)
	}
	if got := SlotDuration(&ServiceInfo{DurationMinutes: 45}); got != 45 {
		t.Errorf("SlotDuration(45) = %d, want 45", got)
	}
	if got := SlotDuration(&ServiceInfo{}); got != DefaultSlotMinutes {
		t.Errorf("SlotDuration(zero service) = %d, want %d", got, DefaultSlotMinutes)
	}
}
