package appointment

import (
	"context"

	"github.com/hospitalhq/hospital-api/internal/access"
	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListAllResult struct {
	Appointments []models.Appointment `json:"appointments"`
	Total        int64                `json:"total"`
	TotalPages   int                  `json:"totalPages"`
	CurrentPage  int                  `json:"currentPage"`
}

type ListAll struct {
	repo domain.Repository
}

func NewListAll(repo domain.Repository) *ListAll {
	return &ListAll{repo: repo}
}

// Execute returns one page of the unscoped listing, newest first.
// Pages are 1-based; a page past the end yields an empty list, not an
// error. totalPages is ceil(total/limit).
func (uc *ListAll) Execute(
	ctx context.Context,
	p access.Principal,
	statusFilter string,
	page int,
	limit int,
) (*ListAllResult, error) {

	if d := access.CanListAllAppointments(p); !d.Allowed {
		return nil, httperr.ErrBusinessReason("forbidden", d.Reason)
	}

	var status domain.Status
	if statusFilter != "" {
		parsed, err := domain.ParseStatus(statusFilter)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	appointments, total, err := uc.repo.ListAll(ctx, domain.ListAllFilter{
		Status: status,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &ListAllResult{
		Appointments: appointments,
		Total:        total,
		TotalPages:   totalPages,
		CurrentPage:  page,
	}, nil
}
