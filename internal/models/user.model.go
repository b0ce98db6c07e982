package models

import (
	"strings"
	"time"
)

type User struct {
	BaseUUIDModel
	DisplayName string     `gorm:"type:text"                          json:"displayName"`
	Email       *string    `gorm:"type:text"                          json:"email,omitempty"`
	Subject     string     `gorm:"column:subject;type:text;uniqueIndex" json:"-"`
	IsActive    bool       `gorm:"type:bool;default:true"             json:"isActive"`
	LastSeenAt  *time.Time `gorm:"type:timestamp"                     json:"lastSeenAt,omitempty"`
}

// UserProfile represents public user profile information
type UserProfile struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Email       *string    `json:"email,omitempty"`
	IsActive    bool       `json:"isActive"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		Email:       u.Email,
		IsActive:    u.IsActive,
		LastSeenAt:  u.LastSeenAt,
	}
}

// UpdateFromClaims refreshes profile fields carried by the identity token.
// Empty claim values never clear what is already stored.
func (u *User) UpdateFromClaims(email, name string) {
	now := time.Now().UTC()
	u.LastSeenAt = &now

	if email = strings.TrimSpace(email); email != "" {
		u.Email = &email
	}

	if name = strings.TrimSpace(name); name != "" {
		u.DisplayName = name
	}

	if u.DisplayName == "" {
		u.DisplayName = u.Subject
	}
}
