package appointment

import (
	"context"
	"fmt"
	"strings"

	"github.com/hospitalhq/hospital-api/internal/access"
	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/mailer"
	"github.com/hospitalhq/hospital-api/internal/models"
)

type UpdateStatus struct {
	repo     domain.Repository
	notifier Notifier
}

func NewUpdateStatus(
	repo domain.Repository,
	notifier Notifier,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		notifier: notifier,
	}
}

// Execute applies a status change. Validation order matters: the enum
// check and the access policy both run before anything is written, so a
// denied or invalid request never leaves partial state.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	p access.Principal,
	appointmentID uint,
	newStatus string,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(newStatus)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if d := access.CanUpdateAppointmentStatus(p, ap.DoctorID); !d.Allowed {
		return nil, httperr.ErrBusinessReason("forbidden", d.Reason)
	}

	ap.Status = string(status)
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if ap.Patient.Email != "" {
		uc.notifier.Dispatch(mailer.Message{
			To:      ap.Patient.Email,
			Subject: "Appointment Status Update",
			Body: fmt.Sprintf(
				"Hello %s,\n\nYour appointment with Dr. %s is now *%s*.\n\nThank you,\nHospital Team",
				ap.Patient.FullName,
				ap.Doctor.FullName,
				strings.ToUpper(string(status)),
			),
		})
	}

	return ap, nil
}
