package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hospitalhq/hospital-api/internal/access"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/middleware"
	"github.com/hospitalhq/hospital-api/internal/models"
	"github.com/hospitalhq/hospital-api/internal/storage"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	db    *gorm.DB
	store storage.ConditionStore
}

func NewPatientHandler(db *gorm.DB, store storage.ConditionStore) *PatientHandler {
	return &PatientHandler{db: db, store: store}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePatientRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Username    string `json:"username"`
	Password    string `json:"password" binding:"required,min=6"`
}

type UpdatePatientRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Username    string `json:"username"`
}

// ======================================================
// ADMIN CRUD
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanListPatients(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	var patients []models.User
	if err := h.db.
		Where("role = ?", models.RolePatient).
		Order("created_at DESC").
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "patients": patients})
}

func (h *PatientHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "fullName, email, phoneNumber and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_create", "Server error. Please try again later.")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, "duplicate_email", "A user with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_create", "Server error. Please try again later.")
		return
	}

	patient := models.User{
		FullName:     req.FullName,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		Role:         models.RolePatient,
		PasswordHash: string(hashed),
	}
	if u := strings.TrimSpace(req.Username); u != "" {
		patient.Username = &u
	}

	if err := h.db.Create(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "duplicate_user", "A user with this email or username already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Patient created successfully.",
		"patient": patient,
	})
}

func (h *PatientHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return
	}

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed request body.")
		return
	}

	var patient models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RolePatient).
		First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "patient_not_found", "Patient not found.")
			return
		}
		httperr.Internal(c, "failed_to_update", "Server error. Please try again later.")
		return
	}

	if req.FullName != "" {
		patient.FullName = req.FullName
	}
	if req.Email != "" {
		patient.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.PhoneNumber != "" {
		patient.PhoneNumber = req.PhoneNumber
	}
	if u := strings.TrimSpace(req.Username); u != "" {
		var taken int64
		if err := h.db.Model(&models.User{}).
			Where("username = ? AND id <> ?", u, patient.ID).
			Count(&taken).Error; err != nil {
			httperr.Internal(c, "failed_to_update", "Server error. Please try again later.")
			return
		}
		if taken > 0 {
			httperr.BadRequest(c, "duplicate_username", "This username is already taken.")
			return
		}
		patient.Username = &u
	}

	if err := h.db.Save(&patient).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "duplicate_user", "A user with this email or username already exists.")
			return
		}
		httperr.Internal(c, "failed_to_update", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Patient updated successfully.",
		"patient": patient,
	})
}

func (h *PatientHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return
	}

	res := h.db.
		Where("id = ? AND role = ?", id, models.RolePatient).
		Delete(&models.User{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete", "Server error. Please try again later.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "patient_not_found", "Patient not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Patient deleted successfully.",
	})
}

// ======================================================
// DOCTOR VIEW
// ======================================================

// MyPatients lists the patients who hold at least one appointment with
// the calling doctor.
func (h *PatientHandler) MyPatients(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanListDoctorAppointments(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	sub := h.db.Model(&models.Appointment{}).
		Select("patient_id").
		Where("doctor_id = ?", p.UserID)

	var patients []models.User
	if err := h.db.
		Where("id IN (?)", sub).
		Order("full_name ASC").
		Find(&patients).Error; err != nil {
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "patients": patients})
}

// ======================================================
// SELF VIEW
// ======================================================

// MyRecord returns the caller's own record together with the distinct
// doctors they have held appointments with.
func (h *PatientHandler) MyRecord(c *gin.Context) {
	p := middleware.Principal(c)

	var patient models.User
	if err := h.db.First(&patient, p.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "patient_not_found", "Patient not found.")
			return
		}
		httperr.Internal(c, "failed_to_fetch", "Server error. Please try again later.")
		return
	}

	sub := h.db.Model(&models.Appointment{}).
		Select("doctor_id").
		Where("patient_id = ?", p.UserID)

	var doctors []models.User
	if err := h.db.
		Where("id IN (?)", sub).
		Order("full_name ASC").
		Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_fetch", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"patient": patient,
		"doctors": doctors,
	})
}

// ======================================================
// CONDITION DOCUMENTS
// ======================================================

func (h *PatientHandler) UploadPDF(c *gin.Context) {
	p := middleware.Principal(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return
	}

	if d := access.CanAccessConditionDocument(p, uint(id)); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A PDF file is required.")
		return
	}
	if fileHeader.Size > storage.MaxUploadSize {
		httperr.BadRequest(c, "file_too_large", "The file exceeds the 5 MB limit.")
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != storage.ContentTypePDF {
		httperr.BadRequest(c, "invalid_file_type", "Only PDF files are accepted.")
		return
	}

	var patient models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RolePatient).
		First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "patient_not_found", "Patient not found.")
			return
		}
		httperr.Internal(c, "failed_to_upload", "Server error. Please try again later.")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_upload", "Server error. Please try again later.")
		return
	}
	defer src.Close()

	name := storage.ObjectName(patient.ID)
	if err := h.store.Save(c.Request.Context(), name, src); err != nil {
		httperr.Internal(c, "failed_to_upload", "Server error. Please try again later.")
		return
	}

	patient.ConditionPDF = name
	if err := h.db.Model(&patient).Update("condition_pdf", name).Error; err != nil {
		httperr.Internal(c, "failed_to_upload", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Condition document uploaded successfully.",
		"file":    name,
	})
}

func (h *PatientHandler) DownloadPDF(c *gin.Context) {
	p := middleware.Principal(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid patient id.")
		return
	}

	if d := access.CanAccessConditionDocument(p, uint(id)); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	var patient models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RolePatient).
		First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "patient_not_found", "Patient not found.")
			return
		}
		httperr.Internal(c, "failed_to_download", "Server error. Please try again later.")
		return
	}
	if patient.ConditionPDF == "" {
		httperr.NotFound(c, "document_not_found", "No condition document on file.")
		return
	}

	rc, size, err := h.store.Open(c.Request.Context(), patient.ConditionPDF)
	if err != nil {
		if err == storage.ErrNotFound {
			httperr.NotFound(c, "document_not_found", "No condition document on file.")
			return
		}
		httperr.Internal(c, "failed_to_download", "Server error. Please try again later.")
		return
	}
	defer rc.Close()

	headers := map[string]string{
		"Content-Disposition": `attachment; filename="` + patient.ConditionPDF + `"`,
	}
	c.DataFromReader(http.StatusOK, size, storage.ContentTypePDF, rc, headers)
}
