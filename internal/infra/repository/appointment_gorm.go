package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetUserByIDAndRole(
	ctx context.Context,
	id uint,
	role string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, role).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &user, nil
}

// --------------------------------------------------
// Appointment (create / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID).
		Update("status", ap.Status).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

// Every listing orders by date with id as tiebreaker so repeated reads
// against unchanged data come back in the same order.

func (r *AppointmentGormRepository) ListForPatient(
	ctx context.Context,
	patientID uint,
	notBefore *time.Time,
	ascending bool,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", patientID)

	if notBefore != nil {
		q = q.Where("date >= ?", *notBefore)
	}

	order := "date DESC, id DESC"
	if ascending {
		order = "date ASC, id ASC"
	}

	var apps []models.Appointment
	if err := q.Order(order).Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForDoctor(
	ctx context.Context,
	doctorID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date ASC, id ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
	filter domain.ListAllFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Doctor").
		Order("date DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ListRecent(
	ctx context.Context,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
