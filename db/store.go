package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/slotwise/booking-app/availability"
	"github.com/slotwise/booking-app/models"
)

// Store adapts the gorm database to the availability engine's collaborator
// interface.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// WeeklyTemplate loads the provider's recurring availability, one entry per
// configured weekday. Missing weekdays are simply absent from the map.
func (s *Store) WeeklyTemplate(ctx context.Context, providerID uint) (availability.WeeklyTemplate, error) {
	var provider models.User
	if err := s.db.WithContext(ctx).First(&provider, providerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, availability.ErrProviderNotFound
		}
		return nil, err
	}
	if !provider.IsProvider() {
		return nil, availability.ErrProviderNotFound
	}

	var days []models.DayAvailability
	if err := s.db.WithContext(ctx).Where("provider_id = ?", providerID).Find(&days).Error; err != nil {
		return nil, err
	}

	template := availability.WeeklyTemplate{}
	for _, d := range days {
		template[d.Weekday] = availability.TemplateDay{
			Start:       d.StartTime,
			End:         d.EndTime,
			IsAvailable: d.IsAvailable,
		}
	}
	return template, nil
}

// FindAppointments returns the booked intervals for a provider on one date,
// restricted to the given statuses. excludeID (0 for none) skips a single
// appointment.
func (s *Store) FindAppointments(ctx context.Context, providerID uint, date time.Time, statuses []string, excludeID uint) ([]availability.BookedInterval, error) {
	var appointments []models.Appointment
	query := s.db.WithContext(ctx).
		Where("provider_id = ? AND date = ?", providerID, DayOf(date)).
		Where("status IN ?", statuses)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}

	intervals := make([]availability.BookedInterval, 0, len(appointments))
	for _, a := range appointments {
		intervals = append(intervals, availability.BookedInterval{
			ID:     a.ID,
			Start:  a.StartTime,
			End:    a.EndTime,
			Status: string(a.Status),
		})
	}
	return intervals, nil
}

// ServiceForProvider resolves a service and verifies it belongs to the
// provider and is active.
func (s *Store) ServiceForProvider(ctx context.Context, serviceID, providerID uint) (availability.ServiceInfo, error) {
	var service models.Service
	err := s.db.WithContext(ctx).
		Where("id = ? AND provider_id = ? AND is_active = ?", serviceID, providerID, true).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return availability.ServiceInfo{}, availability.ErrServiceNotFound
		}
		return availability.ServiceInfo{}, err
	}
	return availability.ServiceInfo{
		ID:              service.ID,
		ProviderID:      service.ProviderID,
		DurationMinutes: service.DurationMinutes,
	}, nil
}

// ReserveAppointment inserts the appointment only if its interval is still
// free, inside one transaction. The provider row is locked first so two
// concurrent reservations for the same provider serialize; without that
// lock both could pass the conflict check before either insert commits.
func (s *Store) ReserveAppointment(ctx context.Context, r *availability.Reservation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.User
		if err := tx.Clauses(forUpdate()).First(&provider, r.ProviderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return availability.ErrProviderNotFound
			}
			return err
		}

		var conflicts int64
		err := tx.Model(&models.Appointment{}).
			Where("provider_id = ? AND date = ?", r.ProviderID, DayOf(r.Date)).
			Where("status IN ?", []models.AppointmentStatus{models.StatusUpcoming, models.StatusConfirmed}).
			Where("start_time < ? AND end_time > ?", r.End, r.Start).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return availability.ErrSlotUnavailable
		}

		appointment := models.Appointment{
			BookingRef: r.BookingRef,
			UserID:     r.UserID,
			ProviderID: r.ProviderID,
			ServiceID:  r.ServiceID,
			Date:       DayOf(r.Date),
			StartTime:  r.Start,
			EndTime:    r.End,
			Status:     models.StatusUpcoming,
			Notes:      r.Notes,
		}
		return tx.Create(&appointment).Error
	})
}

// MoveAppointment reschedules an existing appointment to a new date and
// interval under the same provider lock ReserveAppointment uses, with the
// appointment itself excluded from the conflict scan.
func (s *Store) MoveAppointment(ctx context.Context, appointment *models.Appointment, date time.Time, start, end string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var provider models.User
		if err := tx.Clauses(forUpdate()).First(&provider, appointment.ProviderID).Error; err != nil {
			return err
		}

		var conflicts int64
		err := tx.Model(&models.Appointment{}).
			Where("provider_id = ? AND date = ? AND id != ?", appointment.ProviderID, DayOf(date), appointment.ID).
			Where("status IN ?", []models.AppointmentStatus{models.StatusUpcoming, models.StatusConfirmed}).
			Where("start_time < ? AND end_time > ?", end, start).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return availability.ErrSlotUnavailable
		}

		appointment.Date = DayOf(date)
		appointment.StartTime = start
		appointment.EndTime = end
		return tx.Save(appointment).Error
	})
}

func forUpdate() clause.Locking {
	return clause.Locking{Strength: "UPDATE"}
}

// DayOf normalizes a timestamp to day granularity (midnight UTC), the form
// appointment dates are stored in.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
