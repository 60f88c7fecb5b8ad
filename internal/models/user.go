package models

import "time"

// User represents a user account, including the preference fields surfaced
// through the profile endpoint.
type User struct {
	Base
	Username         string     `gorm:"uniqueIndex;not null" json:"username"`
	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Password         string     `gorm:"not null" json:"-"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	IsActive         bool       `gorm:"default:true" json:"is_active"`
	IsEmailVerified  bool       `gorm:"default:false" json:"is_email_verified"`
	TwoFactorEnabled bool       `gorm:"default:false" json:"two_factor_enabled"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	// Preferences, mirrored by the client-side preferences store.
	PreferredCurrency string `gorm:"default:'USD'" json:"preferred_currency"`
	DateFormat        string `gorm:"default:'MM/DD/YYYY'" json:"date_format"`
	PreferredLanguage string `gorm:"default:'en'" json:"preferred_language"`
}

// FullName returns the user's display name, falling back to the username.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
