package appointment

import (
	"context"

	"github.com/hospitalhq/hospital-api/internal/access"
	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/dto"
	"github.com/hospitalhq/hospital-api/internal/httperr"
)

type ListForDoctor struct {
	repo domain.Repository
}

func NewListForDoctor(repo domain.Repository) *ListForDoctor {
	return &ListForDoctor{repo: repo}
}

func (uc *ListForDoctor) Execute(
	ctx context.Context,
	p access.Principal,
) ([]dto.AppointmentListDTO, error) {

	if d := access.CanListDoctorAppointments(p); !d.Allowed {
		return nil, httperr.ErrBusinessReason("forbidden", d.Reason)
	}

	appointments, err := uc.repo.ListForDoctor(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Date:        ap.Date,
			Status:      ap.Status,
			PatientName: ap.Patient.FullName,
		})
	}

	return out, nil
}
