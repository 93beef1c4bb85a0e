package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/httpresp"
	"github.com/hospitalhq/hospital-api/internal/middleware"
	"github.com/hospitalhq/hospital-api/internal/models"
	ucAppointment "github.com/hospitalhq/hospital-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	bookUC          *ucAppointment.BookAppointment
	updateStatusUC  *ucAppointment.UpdateStatus
	listForPatient  *ucAppointment.ListForPatient
	listForDoctor   *ucAppointment.ListForDoctor
	listAllUC       *ucAppointment.ListAll
	listRecentUC    *ucAppointment.ListRecent
	displayTimezone string
}

func NewAppointmentHandler(
	db *gorm.DB,
	bookUC *ucAppointment.BookAppointment,
	updateStatusUC *ucAppointment.UpdateStatus,
	listForPatient *ucAppointment.ListForPatient,
	listForDoctor *ucAppointment.ListForDoctor,
	listAllUC *ucAppointment.ListAll,
	listRecentUC *ucAppointment.ListRecent,
	displayTimezone string,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:              db,
		bookUC:          bookUC,
		updateStatusUC:  updateStatusUC,
		listForPatient:  listForPatient,
		listForDoctor:   listForDoctor,
		listAllUC:       listAllUC,
		listRecentUC:    listRecentUC,
		displayTimezone: displayTimezone,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID        uint   `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// DOCTORS (booking picker)
// ======================================================

// ListDoctors serves the booking form: any authenticated caller may see
// the roster of doctors.
func (h *AppointmentHandler) ListDoctors(c *gin.Context) {
	var doctors []models.User
	if err := h.db.
		Where("role = ?", models.RoleDoctor).
		Order("full_name ASC").
		Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Server error. Please try again later.")
		return
	}

	httpresp.List(c, doctors)
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	p := middleware.Principal(c)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "doctorId and appointmentDate are required.")
		return
	}

	date, err := parseAppointmentDate(req.AppointmentDate, h.displayTimezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Could not parse appointmentDate.")
		return
	}

	// The caller always books for themself; the patient reference is
	// never taken from the body.
	ap, err := h.bookUC.Execute(c.Request.Context(), ucAppointment.BookAppointmentInput{
		PatientID: p.UserID,
		DoctorID:  req.DoctorID,
		Date:      date,
	})
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			httperr.NotFound(c, "user_not_found", "Doctor or patient not found.")
			return
		}
		httperr.Internal(c, "failed_to_book", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Appointment booked successfully!",
		"appointment": ap,
	})
}

// ======================================================
// PATIENT LISTINGS
// ======================================================

func (h *AppointmentHandler) MyAppointments(c *gin.Context) {
	h.listMine(c, ucAppointment.ScopeUpcoming)
}

func (h *AppointmentHandler) MyAppointmentsAll(c *gin.Context) {
	h.listMine(c, ucAppointment.ScopeAll)
}

func (h *AppointmentHandler) listMine(c *gin.Context, scope ucAppointment.Scope) {
	p := middleware.Principal(c)

	appointments, err := h.listForPatient.Execute(c.Request.Context(), p.UserID, scope)
	if err != nil {
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"appointments": appointments,
	})
}

// ======================================================
// DOCTOR LISTING
// ======================================================

func (h *AppointmentHandler) DoctorAppointments(c *gin.Context) {
	p := middleware.Principal(c)

	appointments, err := h.listForDoctor.Execute(c.Request.Context(), p)
	if err != nil {
		if httperr.IsBusiness(err, "forbidden") {
			httperr.Forbidden(c, "forbidden", "Access denied. Doctors only.")
			return
		}
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"appointments": appointments,
	})
}

// ======================================================
// ADMIN LISTINGS
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	p := middleware.Principal(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := c.Query("status")

	res, err := h.listAllUC.Execute(c.Request.Context(), p, status, page, limit)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "forbidden"):
			httperr.Forbidden(c, "forbidden", "Access denied. Admin only.")
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Invalid status value.")
		default:
			httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"appointments": res.Appointments,
		"totalPages":   res.TotalPages,
		"currentPage":  res.CurrentPage,
		"total":        res.Total,
	})
}

func (h *AppointmentHandler) Recent(c *gin.Context) {
	p := middleware.Principal(c)

	appointments, err := h.listRecentUC.Execute(c.Request.Context(), p)
	if err != nil {
		if httperr.IsBusiness(err, "forbidden") {
			httperr.Forbidden(c, "forbidden", "Access denied. Admin only.")
			return
		}
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"appointments": appointments,
	})
}

// ======================================================
// STATUS UPDATE
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	p := middleware.Principal(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "status is required.")
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), p, uint(id), req.Status)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "invalid_status"):
			httperr.BadRequest(c, "invalid_status", "Invalid status value.")
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "forbidden"):
			msg := httperr.BusinessReason(err)
			if msg == "" {
				msg = "Access denied."
			}
			httperr.Forbidden(c, "forbidden", msg)
		default:
			httperr.Internal(c, "failed_to_update", "Server error. Please try again later.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment status updated successfully.",
		"appointment": ap,
	})
}
