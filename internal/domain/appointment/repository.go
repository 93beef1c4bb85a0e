package appointment

import (
	"context"
	"time"

	"github.com/hospitalhq/hospital-api/internal/models"
)

// ListAllFilter narrows the unscoped admin listing.
type ListAllFilter struct {
	Status Status // empty means no filter
	Limit  int
	Offset int
}

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetUserByIDAndRole(
		ctx context.Context,
		id uint,
		role string,
	) (*models.User, error)

	// -------- Appointment (create / state change) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listings --------
	ListForPatient(
		ctx context.Context,
		patientID uint,
		notBefore *time.Time,
		ascending bool,
	) ([]models.Appointment, error)

	ListForDoctor(
		ctx context.Context,
		doctorID uint,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
		filter ListAllFilter,
	) ([]models.Appointment, int64, error)

	ListRecent(
		ctx context.Context,
		limit int,
	) ([]models.Appointment, error)
}
