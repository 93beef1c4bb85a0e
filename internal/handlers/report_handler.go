package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hospitalhq/hospital-api/internal/access"
	"github.com/hospitalhq/hospital-api/internal/cache"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/middleware"
	"github.com/hospitalhq/hospital-api/internal/models"
)

const (
	userSummaryKey = "reports:user-summary"
	userSummaryTTL = time.Minute
)

type UserSummary struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalPatients int64 `json:"totalPatients"`
	TotalDoctors  int64 `json:"totalDoctors"`
	TotalAdmins   int64 `json:"totalAdmins"`
}

type ReportHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewReportHandler(db *gorm.DB, cc *cache.Cache) *ReportHandler {
	return &ReportHandler{db: db, cache: cc}
}

// ======================================================
// SUMMARY
// ======================================================

func (h *ReportHandler) UserSummary(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	ctx := c.Request.Context()

	var summary UserSummary
	hit, err := h.cache.Get(ctx, userSummaryKey, &summary)
	if err != nil {
		logrus.WithError(err).Warn("reports: cache read failed")
	}
	if hit {
		c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
		return
	}

	type roleCount struct {
		Role  string
		Count int64
	}
	var rows []roleCount
	if err := h.db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_load_report", "Server error. Please try again later.")
		return
	}

	for _, r := range rows {
		summary.TotalUsers += r.Count
		switch r.Role {
		case models.RolePatient:
			summary.TotalPatients = r.Count
		case models.RoleDoctor:
			summary.TotalDoctors = r.Count
		case models.RoleAdmin:
			summary.TotalAdmins = r.Count
		}
	}

	if err := h.cache.Set(ctx, userSummaryKey, summary, userSummaryTTL); err != nil {
		logrus.WithError(err).Warn("reports: cache write failed")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "summary": summary})
}

// ======================================================
// USER LISTINGS
// ======================================================

func (h *ReportHandler) AllUsers(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanManageUsers(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	var users []models.User
	if err := h.db.Order("created_at DESC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// UserByID resolves a single user record for staff. Admins and doctors
// may look users up; patients are refused.
func (h *ReportHandler) UserByID(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanListPatients(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid user id.")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httperr.Internal(c, "failed_to_fetch", "Server error. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
