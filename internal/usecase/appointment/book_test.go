package appointment

import (
	"context"
	"strings"
	"testing"
	"time"

	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/models"
)

func seedPair(repo *fakeRepo) (patient, doctor *models.User) {
	patient = repo.addUser(models.User{
		FullName: "Ana Gomez",
		Email:    "ana@example.com",
		Role:     models.RolePatient,
	})
	doctor = repo.addUser(models.User{
		FullName:  "Carlos Mendez",
		Email:     "carlos@example.com",
		Role:      models.RoleDoctor,
		Specialty: "Cardiology",
	})
	return patient, doctor
}

func TestBook_CreatesPendingAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	patient, doctor := seedPair(repo)
	notifier := &fakeNotifier{}
	uc := NewBookAppointment(repo, notifier, "UTC")

	date := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)
	ap, err := uc.Execute(context.Background(), BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      date,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Errorf("status = %q, want pending", ap.Status)
	}
	if ap.PatientID != patient.ID || ap.DoctorID != doctor.ID {
		t.Errorf("references = (%d,%d), want (%d,%d)", ap.PatientID, ap.DoctorID, patient.ID, doctor.ID)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	msg := notifier.sent[0]
	if msg.To != patient.Email {
		t.Errorf("notification to %q, want %q", msg.To, patient.Email)
	}
	if !strings.Contains(msg.Body, "Dr. Carlos Mendez") {
		t.Errorf("body missing doctor name: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "Fri Jan 10 2025") {
		t.Errorf("body missing formatted date: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "09:00 AM") {
		t.Errorf("body missing formatted time: %q", msg.Body)
	}
}

func TestBook_AcceptsPastDates(t *testing.T) {
	repo := newFakeRepo()
	patient, doctor := seedPair(repo)
	uc := NewBookAppointment(repo, &fakeNotifier{}, "UTC")

	_, err := uc.Execute(context.Background(), BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Now().Add(-48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("past dates must be accepted at booking time: %v", err)
	}
}

func TestBook_DoctorNotFound(t *testing.T) {
	repo := newFakeRepo()
	patient, _ := seedPair(repo)
	notifier := &fakeNotifier{}
	uc := NewBookAppointment(repo, notifier, "UTC")

	_, err := uc.Execute(context.Background(), BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  999,
		Date:      time.Now(),
	})
	if !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("err = %v, want user_not_found", err)
	}
	if len(notifier.sent) != 0 {
		t.Error("no notification must be sent on failure")
	}
}

func TestBook_DoctorRoleMismatch(t *testing.T) {
	repo := newFakeRepo()
	patient, _ := seedPair(repo)
	uc := NewBookAppointment(repo, &fakeNotifier{}, "UTC")

	// Booking against a patient id in the doctor slot must not resolve.
	_, err := uc.Execute(context.Background(), BookAppointmentInput{
		PatientID: patient.ID,
		DoctorID:  patient.ID,
		Date:      time.Now(),
	})
	if !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("err = %v, want user_not_found", err)
	}
}

func TestBook_PatientNotFound(t *testing.T) {
	repo := newFakeRepo()
	_, doctor := seedPair(repo)
	uc := NewBookAppointment(repo, &fakeNotifier{}, "UTC")

	_, err := uc.Execute(context.Background(), BookAppointmentInput{
		PatientID: 888,
		DoctorID:  doctor.ID,
		Date:      time.Now(),
	})
	if !httperr.IsBusiness(err, "user_not_found") {
		t.Fatalf("err = %v, want user_not_found", err)
	}
}
