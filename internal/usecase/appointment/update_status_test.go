package appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hospitalhq/hospital-api/internal/access"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/models"
)

func seedAppointment(t *testing.T, repo *fakeRepo) (*models.Appointment, *models.User, *models.User) {
	t.Helper()
	patient, doctor := seedPair(repo)

	ap := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Status:    "pending",
	}
	if err := repo.CreateAppointment(context.Background(), ap); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}
	return ap, patient, doctor
}

func TestUpdateStatus_InvalidValueLeavesStateUnchanged(t *testing.T) {
	repo := newFakeRepo()
	ap, _, _ := seedAppointment(t, repo)
	notifier := &fakeNotifier{}
	uc := NewUpdateStatus(repo, notifier)
	adminP := access.Principal{UserID: 50, Role: access.RoleAdmin}

	_, err := uc.Execute(context.Background(), adminP, ap.ID, "done")
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("err = %v, want invalid_status", err)
	}
	if got := repo.statusOf(ap.ID); got != "pending" {
		t.Errorf("stored status = %q, must stay pending", got)
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification on rejected update")
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewUpdateStatus(repo, &fakeNotifier{})
	adminP := access.Principal{UserID: 50, Role: access.RoleAdmin}

	_, err := uc.Execute(context.Background(), adminP, 12345, "confirmed")
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("err = %v, want appointment_not_found", err)
	}
}

func TestUpdateStatus_AdminMaySetAnyValue(t *testing.T) {
	repo := newFakeRepo()
	ap, _, _ := seedAppointment(t, repo)
	uc := NewUpdateStatus(repo, &fakeNotifier{})
	adminP := access.Principal{UserID: 50, Role: access.RoleAdmin}

	// No transition table: every valid value is accepted from every
	// current status.
	for _, status := range []string{"confirmed", "completed", "cancelled", "pending"} {
		got, err := uc.Execute(context.Background(), adminP, ap.ID, status)
		if err != nil {
			t.Fatalf("Execute(%q): %v", status, err)
		}
		if got.Status != status {
			t.Errorf("returned status = %q, want %q", got.Status, status)
		}
		if stored := repo.statusOf(ap.ID); stored != status {
			t.Errorf("stored status = %q, want %q", stored, status)
		}
	}
}

func TestUpdateStatus_PatientAlwaysDenied(t *testing.T) {
	repo := newFakeRepo()
	ap, patient, _ := seedAppointment(t, repo)
	uc := NewUpdateStatus(repo, &fakeNotifier{})

	// Even the appointment's own patient.
	p := access.Principal{UserID: patient.ID, Role: access.RolePatient}
	_, err := uc.Execute(context.Background(), p, ap.ID, "cancelled")
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if repo.statusOf(ap.ID) != "pending" {
		t.Error("denied update must not mutate")
	}
}

func TestUpdateStatus_DoctorRestrictedToOwn(t *testing.T) {
	repo := newFakeRepo()
	ap, _, doctor := seedAppointment(t, repo)
	uc := NewUpdateStatus(repo, &fakeNotifier{})

	assigned := access.Principal{UserID: doctor.ID, Role: access.RoleDoctor}
	if _, err := uc.Execute(context.Background(), assigned, ap.ID, "completed"); err != nil {
		t.Fatalf("assigned doctor must be allowed: %v", err)
	}

	other := access.Principal{UserID: doctor.ID + 100, Role: access.RoleDoctor}
	_, err := uc.Execute(context.Background(), other, ap.ID, "cancelled")
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if repo.statusOf(ap.ID) != "completed" {
		t.Errorf("status = %q, must stay completed after denial", repo.statusOf(ap.ID))
	}
}

func TestUpdateStatus_NotifiesPatient(t *testing.T) {
	repo := newFakeRepo()
	ap, patient, doctor := seedAppointment(t, repo)
	notifier := &fakeNotifier{}
	uc := NewUpdateStatus(repo, notifier)
	adminP := access.Principal{UserID: 50, Role: access.RoleAdmin}

	if _, err := uc.Execute(context.Background(), adminP, ap.ID, "confirmed"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.To != patient.Email {
		t.Errorf("notification to %q, want %q", msg.To, patient.Email)
	}
	if !strings.Contains(msg.Body, "Dr. "+doctor.FullName) {
		t.Errorf("body missing doctor name: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "*CONFIRMED*") {
		t.Errorf("body missing new status: %q", msg.Body)
	}
}

// Full lifecycle walk: book, admin confirms, assigned doctor completes,
// another doctor is rejected and the status survives.
func TestUpdateStatus_LifecycleScenario(t *testing.T) {
	repo := newFakeRepo()
	patient, doctorD := seedPair(repo)
	doctorE := repo.addUser(models.User{
		FullName: "Elena Ruiz",
		Email:    "elena@example.com",
		Role:     models.RoleDoctor,
	})

	ctx := context.Background()
	book := NewBookAppointment(repo, &fakeNotifier{}, "UTC")
	update := NewUpdateStatus(repo, &fakeNotifier{})

	ap, err := book.Execute(ctx, BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctorD.ID,
		Date:      time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if ap.Status != "pending" {
		t.Fatalf("booked status = %q, want pending", ap.Status)
	}

	adminP := access.Principal{UserID: 99, Role: access.RoleAdmin}
	if _, err := update.Execute(ctx, adminP, ap.ID, "confirmed"); err != nil {
		t.Fatalf("admin confirm: %v", err)
	}
	if repo.statusOf(ap.ID) != "confirmed" {
		t.Fatalf("status = %q, want confirmed", repo.statusOf(ap.ID))
	}

	dP := access.Principal{UserID: doctorD.ID, Role: access.RoleDoctor}
	if _, err := update.Execute(ctx, dP, ap.ID, "completed"); err != nil {
		t.Fatalf("assigned doctor complete: %v", err)
	}
	if repo.statusOf(ap.ID) != "completed" {
		t.Fatalf("status = %q, want completed", repo.statusOf(ap.ID))
	}

	eP := access.Principal{UserID: doctorE.ID, Role: access.RoleDoctor}
	if _, err := update.Execute(ctx, eP, ap.ID, "cancelled"); !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("other doctor err = %v, want forbidden", err)
	}
	if repo.statusOf(ap.ID) != "completed" {
		t.Errorf("status = %q, must remain completed", repo.statusOf(ap.ID))
	}
}
