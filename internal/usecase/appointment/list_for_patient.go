package appointment

import (
	"context"
	"time"

	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/dto"
)

// Scope selects between the two patient-facing listings.
type Scope string

const (
	// ScopeUpcoming returns date >= now, ascending.
	ScopeUpcoming Scope = "upcoming"
	// ScopeAll returns every appointment, descending.
	ScopeAll Scope = "all"
)

type ListForPatient struct {
	repo domain.Repository
}

func NewListForPatient(repo domain.Repository) *ListForPatient {
	return &ListForPatient{repo: repo}
}

func (uc *ListForPatient) Execute(
	ctx context.Context,
	patientID uint,
	scope Scope,
) ([]dto.AppointmentListDTO, error) {

	var notBefore *time.Time
	ascending := false

	if scope == ScopeUpcoming {
		now := time.Now()
		notBefore = &now
		ascending = true
	}

	appointments, err := uc.repo.ListForPatient(ctx, patientID, notBefore, ascending)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:         ap.ID,
			Date:       ap.Date,
			Status:     ap.Status,
			DoctorName: ap.Doctor.FullName,
			Specialty:  ap.Doctor.Specialty,
		})
	}

	return out, nil
}
