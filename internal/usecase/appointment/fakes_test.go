package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/mailer"
	"github.com/hospitalhq/hospital-api/internal/models"
)

// fakeNotifier records dispatched messages synchronously.
type fakeNotifier struct {
	sent []mailer.Message
}

func (n *fakeNotifier) Dispatch(msg mailer.Message) {
	n.sent = append(n.sent, msg)
}

// fakeRepo is an in-memory domain.Repository with the same ordering and
// not-found semantics as the gorm implementation.
type fakeRepo struct {
	users        map[uint]*models.User
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        make(map[uint]*models.User),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (r *fakeRepo) addUser(u models.User) *models.User {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.users[u.ID] = &u
	return &u
}

func (r *fakeRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) GetUserByIDAndRole(_ context.Context, id uint, role string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok || u.Role != role {
		return nil, httperr.ErrBusiness("user_not_found")
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	ap.ID = r.nextID
	r.nextID++
	ap.CreatedAt = time.Now()
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *fakeRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	if p, ok := r.users[ap.PatientID]; ok {
		cp.Patient = *p
	}
	if d, ok := r.users[ap.DoctorID]; ok {
		cp.Doctor = *d
	}
	return &cp, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	stored, ok := r.appointments[ap.ID]
	if !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}
	stored.Status = ap.Status
	return nil
}

func (r *fakeRepo) statusOf(id uint) string {
	return r.appointments[id].Status
}

func sortByDate(apps []models.Appointment, ascending bool) {
	sort.Slice(apps, func(i, j int) bool {
		if !apps[i].Date.Equal(apps[j].Date) {
			if ascending {
				return apps[i].Date.Before(apps[j].Date)
			}
			return apps[i].Date.After(apps[j].Date)
		}
		if ascending {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].ID > apps[j].ID
	})
}

func (r *fakeRepo) hydrate(ap models.Appointment) models.Appointment {
	if p, ok := r.users[ap.PatientID]; ok {
		ap.Patient = *p
	}
	if d, ok := r.users[ap.DoctorID]; ok {
		ap.Doctor = *d
	}
	return ap
}

func (r *fakeRepo) ListForPatient(_ context.Context, patientID uint, notBefore *time.Time, ascending bool) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.PatientID != patientID {
			continue
		}
		if notBefore != nil && ap.Date.Before(*notBefore) {
			continue
		}
		out = append(out, r.hydrate(*ap))
	}
	sortByDate(out, ascending)
	return out, nil
}

func (r *fakeRepo) ListForDoctor(_ context.Context, doctorID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID {
			out = append(out, r.hydrate(*ap))
		}
	}
	sortByDate(out, true)
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context, filter domain.ListAllFilter) ([]models.Appointment, int64, error) {
	var all []models.Appointment
	for _, ap := range r.appointments {
		if filter.Status != "" && ap.Status != string(filter.Status) {
			continue
		}
		all = append(all, r.hydrate(*ap))
	}
	sortByDate(all, false)

	total := int64(len(all))
	if filter.Offset >= len(all) {
		return []models.Appointment{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[filter.Offset:end], total, nil
}

func (r *fakeRepo) ListRecent(_ context.Context, limit int) ([]models.Appointment, error) {
	var all []models.Appointment
	for _, ap := range r.appointments {
		all = append(all, r.hydrate(*ap))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
