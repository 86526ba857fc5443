package models

import (
	"time"

	"gorm.io/gorm"
)

// DayAvailability is one weekday entry of a provider's recurring weekly
// template: at most one row per (provider, weekday). The seven rows are
// replaced wholesale when the provider updates their schedule; there is no
// per-day patch and no history.
type DayAvailability struct {
	gorm.Model
	ProviderID  uint         `json:"provider_id" gorm:"index:idx_provider_weekday,unique"`
	Weekday     time.Weekday `json:"weekday" gorm:"index:idx_provider_weekday,unique"`
	StartTime   string       `json:"start_time"` // "HH:MM", empty when unset
	EndTime     string       `json:"end_time"`   // "HH:MM", empty when unset
	IsAvailable bool         `json:"is_available" gorm:"default:true"`
}
