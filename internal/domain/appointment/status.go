package appointment

import "github.com/hospitalhq/hospital-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validation
// ===============================

// ParseStatus accepts exactly the four known status values. There is no
// transition table: any valid value may be applied regardless of the
// current status, the only gate beyond this is the access policy.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}
