package dto

import "time"

// AppointmentListDTO is the patient/doctor-facing listing row.
type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
}

// RecentAppointmentDTO is the admin dashboard row with split date/time
// fields, matching what the dashboard table renders.
type RecentAppointmentDTO struct {
	ID          uint      `json:"id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	PatientName string    `json:"patientName"`
	PatientID   uint      `json:"patientId"`
	DoctorName  string    `json:"doctorName"`
	Specialty   string    `json:"doctorSpecialty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}
