package appointment

import (
	"context"
	"fmt"
	"time"

	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/mailer"
	"github.com/hospitalhq/hospital-api/internal/models"
	"github.com/hospitalhq/hospital-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type BookAppointmentInput struct {
	// PatientID is always the caller's own id; booking on behalf of
	// another patient is not representable.
	PatientID uint
	DoctorID  uint

	// Past dates are accepted, booking does not reject them.
	Date time.Time
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	notifier Notifier
	tz       string
}

func NewBookAppointment(
	repo domain.Repository,
	notifier Notifier,
	tz string,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		notifier: notifier,
		tz:       tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	doctor, err := uc.repo.GetUserByIDAndRole(ctx, in.DoctorID, models.RoleDoctor)
	if err != nil {
		return nil, err
	}

	patient, err := uc.repo.GetUserByID(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      in.Date,
		Status:    string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Confirmation is best-effort and never blocks the booking.
	if patient.Email != "" {
		local := in.Date.In(timezone.Location(uc.tz))
		uc.notifier.Dispatch(mailer.Message{
			To:      patient.Email,
			Subject: "Appointment Booked Successfully",
			Body: fmt.Sprintf(
				"Hello %s,\n\nYour appointment with Dr. %s is successfully booked.\n\nDate: %s\nTime: %s\n\nThank you,\nHospital Team",
				patient.FullName,
				doctor.FullName,
				local.Format("Mon Jan 2 2006"),
				local.Format("03:04 PM"),
			),
		})
	}

	ap.Patient = *patient
	ap.Doctor = *doctor
	return ap, nil
}
