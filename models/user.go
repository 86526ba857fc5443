package models

import (
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleProvider = "provider"
	RoleUser     = "user"
)

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role" gorm:"default:user"`
	// Set by an admin to lock the account out; blocked users cannot sign in.
	IsBlocked bool `json:"is_blocked" gorm:"default:false"`

	// Provider profile fields
	Bio            string `json:"bio,omitempty"`
	Specialization string `json:"specialization,omitempty"`

	ProvidedServices []Service         `json:"provided_services,omitempty" gorm:"foreignKey:ProviderID"`
	Availability     []DayAvailability `json:"availability,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// IsProvider reports whether the user can own services and a weekly
// availability template.
func (u *User) IsProvider() bool {
	return u.Role == RoleProvider
}
