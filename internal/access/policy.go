package access

// ===============================
// Roles / Principal
// ===============================

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RolePatient:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated caller, resolved once per request by the
// auth middleware and passed explicitly into every policy and engine call.
type Principal struct {
	UserID uint
	Role   Role
}

// ===============================
// Decision
// ===============================

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ===============================
// Appointment rules
// ===============================

// CanUpdateAppointmentStatus gates the status-update operation.
// Admins are unrestricted; doctors may only touch their own
// appointments; patients are always denied.
func CanUpdateAppointmentStatus(p Principal, appointmentDoctorID uint) Decision {
	switch p.Role {
	case RoleAdmin:
		return Allow()
	case RoleDoctor:
		if p.UserID == appointmentDoctorID {
			return Allow()
		}
		return Deny("you can only update your own appointments")
	case RolePatient:
		return Deny("patients cannot update appointment status")
	default:
		return Deny("unknown role")
	}
}

// CanListAllAppointments gates the unscoped (recent/paged) listings.
func CanListAllAppointments(p Principal) Decision {
	switch p.Role {
	case RoleAdmin:
		return Allow()
	case RoleDoctor, RolePatient:
		return Deny("admin only")
	default:
		return Deny("unknown role")
	}
}

// CanListDoctorAppointments gates the "my schedule" listing, scoped to
// appointments where the caller is the doctor.
func CanListDoctorAppointments(p Principal) Decision {
	switch p.Role {
	case RoleDoctor:
		return Allow()
	case RoleAdmin, RolePatient:
		return Deny("doctors only")
	default:
		return Deny("unknown role")
	}
}

// ===============================
// User management rules
// ===============================

// CanListPatients permits admins and doctors.
func CanListPatients(p Principal) Decision {
	switch p.Role {
	case RoleAdmin, RoleDoctor:
		return Allow()
	case RolePatient:
		return Deny("admin or doctor only")
	default:
		return Deny("unknown role")
	}
}

// CanManageUsers gates create/update/delete of patient and doctor
// records, and the doctor listing on the management surface.
func CanManageUsers(p Principal) Decision {
	switch p.Role {
	case RoleAdmin:
		return Allow()
	case RoleDoctor, RolePatient:
		return Deny("admin only")
	default:
		return Deny("unknown role")
	}
}

// ===============================
// Condition documents
// ===============================

// CanAccessConditionDocument gates upload and download of a patient's
// condition PDF. The caller must be an admin, a doctor, or the subject
// patient themself.
func CanAccessConditionDocument(p Principal, ownerID uint) Decision {
	switch p.Role {
	case RoleAdmin, RoleDoctor:
		return Allow()
	case RolePatient:
		if p.UserID == ownerID {
			return Allow()
		}
		return Deny("you can only access your own records")
	default:
		return Deny("unknown role")
	}
}
