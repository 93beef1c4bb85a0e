package models

import "time"

// Stored role tags. Authorization semantics live in internal/access;
// this is only the persisted value.
const (
	RoleAdmin   = "admin"
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName    string `gorm:"size:100;not null" json:"fullName"`
	Email       string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PhoneNumber string `gorm:"size:20;not null" json:"phoneNumber"`

	// Username is optional; the column stays NULL when absent so the
	// unique index never collides on missing usernames.
	Username *string `gorm:"size:50;uniqueIndex" json:"username,omitempty"`

	Role         string `gorm:"size:20;default:'patient'" json:"role"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// Doctor-only.
	Specialty string `gorm:"size:100" json:"specialty,omitempty"`

	// Patient-only: object name of the stored condition document.
	ConditionPDF string `gorm:"size:255" json:"conditionPDF,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
