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
)

// ======================================================
// HANDLER
// ======================================================

// DoctorHandler covers the staff roster: admin-only CRUD over users
// holding the doctor role.
type DoctorHandler struct {
	db *gorm.DB
}

func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateDoctorRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Specialty   string `json:"specialty" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

type UpdateDoctorRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Specialty   string `json:"specialty"`
}

// ======================================================
// CRUD
// ======================================================

func (h *DoctorHandler) List(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	var doctors []models.User
	if err := h.db.
		Where("role = ?", models.RoleDoctor).
		Order("created_at DESC").
		Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "doctors": doctors})
}

func (h *DoctorHandler) Create(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "fullName, email, phoneNumber, specialty and password are required.")
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

	doctor := models.User{
		FullName:     req.FullName,
		Email:        email,
		PhoneNumber:  req.PhoneNumber,
		Specialty:    req.Specialty,
		Role:         models.RoleDoctor,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&doctor).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "duplicate_email", "A user with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Doctor created successfully.",
		"doctor":  doctor,
	})
}

func (h *DoctorHandler) Update(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed request body.")
		return
	}

	var doctor models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
			return
		}
		httperr.Internal(c, "failed_to_update", "Server error. Please try again later.")
		return
	}

	if req.FullName != "" {
		doctor.FullName = req.FullName
	}
	if req.Email != "" {
		doctor.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.PhoneNumber != "" {
		doctor.PhoneNumber = req.PhoneNumber
	}
	if req.Specialty != "" {
		doctor.Specialty = req.Specialty
	}

	if err := h.db.Save(&doctor).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "duplicate_email", "A user with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_update", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Doctor updated successfully.",
		"doctor":  doctor,
	})
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	res := h.db.
		Where("id = ? AND role = ?", id, models.RoleDoctor).
		Delete(&models.User{})
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete", "Server error. Please try again later.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Doctor deleted successfully.",
	})
}
