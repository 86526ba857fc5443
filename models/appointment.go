package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusUpcoming  AppointmentStatus = "upcoming"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is one booked [start,end) interval with a provider. Date
// carries day granularity only (normalized to midnight UTC); start and end
// are zero-padded "HH:MM" strings, converted to minutes-since-midnight only
// inside the availability engine.
type Appointment struct {
	gorm.Model
	BookingRef  string            `json:"booking_ref" gorm:"uniqueIndex"`
	UserID      uint              `json:"user_id" gorm:"index"`
	User        User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProviderID  uint              `json:"provider_id" gorm:"index:idx_provider_date"`
	Provider    User              `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID   uint              `json:"service_id"`
	Service     Service           `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Date        time.Time         `json:"date" gorm:"index:idx_provider_date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Status      AppointmentStatus `json:"status" gorm:"index"`
	IsCancelled bool              `json:"is_cancelled" gorm:"default:false"`
	Notes       string            `json:"notes"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusUpcoming
	}
	return nil
}

// CanTransitionTo reports whether a one-way status transition is allowed:
// upcoming may become confirmed or cancelled, confirmed may become
// completed or cancelled, and the terminal states allow nothing.
func (s AppointmentStatus) CanTransitionTo(newStatus AppointmentStatus) error {
	switch s {
	case StatusUpcoming:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from upcoming to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", s)
	default:
		return fmt.Errorf("unknown status %s", s)
	}
	return nil
}

// UpdateStatus applies a one-way status transition and persists it.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if err := a.Status.CanTransitionTo(newStatus); err != nil {
		return err
	}

	a.Status = newStatus
	if newStatus == StatusCancelled {
		a.IsCancelled = true
	}
	return tx.Save(a).Error
}
