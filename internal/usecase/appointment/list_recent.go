package appointment

import (
	"context"

	"github.com/hospitalhq/hospital-api/internal/access"
	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/dto"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/timezone"
)

const recentLimit = 10

type ListRecent struct {
	repo domain.Repository
	tz   string
}

func NewListRecent(repo domain.Repository, tz string) *ListRecent {
	return &ListRecent{repo: repo, tz: tz}
}

// Execute returns the admin dashboard's most recently created
// appointments as pre-formatted rows.
func (uc *ListRecent) Execute(
	ctx context.Context,
	p access.Principal,
) ([]dto.RecentAppointmentDTO, error) {

	if d := access.CanListAllAppointments(p); !d.Allowed {
		return nil, httperr.ErrBusinessReason("forbidden", d.Reason)
	}

	appointments, err := uc.repo.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(uc.tz)

	out := make([]dto.RecentAppointmentDTO, 0, len(appointments))
	for _, ap := range appointments {
		patientName := ap.Patient.FullName
		if patientName == "" {
			patientName = "Unknown Patient"
		}
		doctorName := ap.Doctor.FullName
		if doctorName == "" {
			doctorName = "Unknown Doctor"
		}
		specialty := ap.Doctor.Specialty
		if specialty == "" {
			specialty = "General"
		}

		local := ap.Date.In(loc)
		out = append(out, dto.RecentAppointmentDTO{
			ID:          ap.ID,
			Date:        local.Format("2006-01-02"),
			Time:        local.Format("15:04:05"),
			PatientName: patientName,
			PatientID:   ap.PatientID,
			DoctorName:  doctorName,
			Specialty:   specialty,
			Status:      ap.Status,
			CreatedAt:   ap.CreatedAt,
		})
	}

	return out, nil
}
