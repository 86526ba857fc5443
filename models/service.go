package models

import (
	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	Title           string  `json:"title"`
	Category        string  `json:"category"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration"` // default slot length in minutes
	IsActive        bool    `json:"is_active" gorm:"default:true"`
	ProviderID      uint    `json:"provider_id"`
	Provider        User    `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
}
