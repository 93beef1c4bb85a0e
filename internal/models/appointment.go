package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint `gorm:"not null;index" json:"patient_id"`
	Patient   User `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	DoctorID uint `gorm:"not null;index" json:"doctor_id"`
	Doctor   User `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"doctor"`

	// Scheduled date-time. Past dates are accepted at booking time.
	Date time.Time `gorm:"not null" json:"date"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
