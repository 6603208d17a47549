package models

import "time"

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Name         string     `gorm:"not null" json:"name"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`

	// Set when an admin provisions or resets the account; cleared on the
	// first successful password change.
	MustChangePassword bool `gorm:"default:false" json:"must_change_password"`

	// MFAEnabled flips only after the user verifies a TOTP code against
	// TOTPSecret. Until then the route guard funnels the user to the
	// profile page.
	MFAEnabled bool   `gorm:"default:false" json:"mfa_enabled"`
	TOTPSecret string `json:"-"`

	ResetToken    string     `json:"-"`
	ResetTokenExp *time.Time `json:"-"`
	InvitedBy     string     `json:"invited_by,omitempty"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
