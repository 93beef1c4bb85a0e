package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hospitalhq/hospital-api/internal/access"
	"github.com/hospitalhq/hospital-api/internal/cache"
	domain "github.com/hospitalhq/hospital-api/internal/domain/appointment"
	"github.com/hospitalhq/hospital-api/internal/httperr"
	"github.com/hospitalhq/hospital-api/internal/middleware"
	"github.com/hospitalhq/hospital-api/internal/models"
	"github.com/hospitalhq/hospital-api/internal/timezone"
)

const (
	dashboardStatsKey = "dashboard:stats"
	dashboardStatsTTL = 30 * time.Second
)

// DashboardStats is the admin landing-page summary. The counts are
// cheap enough to recompute but the page polls, so results sit in
// Redis for a short window.
type DashboardStats struct {
	TotalPatients         int64 `json:"totalPatients"`
	TotalDoctors          int64 `json:"totalDoctors"`
	NewRegistrations      int64 `json:"newRegistrations"`
	UpcomingAppointments  int64 `json:"upcomingAppointments"`
	CompletedAppointments int64 `json:"completedAppointments"`
	CancelledAppointments int64 `json:"cancelledAppointments"`
}

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	tz    string
}

func NewDashboardHandler(db *gorm.DB, cc *cache.Cache, tz string) *DashboardHandler {
	return &DashboardHandler{db: db, cache: cc, tz: tz}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	p := middleware.Principal(c)
	if d := access.CanListAllAppointments(p); !d.Allowed {
		httperr.Forbidden(c, "forbidden", d.Reason)
		return
	}

	ctx := c.Request.Context()

	var stats DashboardStats
	hit, err := h.cache.Get(ctx, dashboardStatsKey, &stats)
	if err != nil {
		logrus.WithError(err).Warn("dashboard: cache read failed")
	}
	if hit {
		c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
		return
	}

	now := timezone.NowIn(h.tz)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalPatients, h.db.Model(&models.User{}).
			Where("role = ?", models.RolePatient)},
		{&stats.TotalDoctors, h.db.Model(&models.User{}).
			Where("role = ?", models.RoleDoctor)},
		{&stats.NewRegistrations, h.db.Model(&models.User{}).
			Where("role = ? AND created_at >= ?", models.RolePatient, startOfDay)},
		{&stats.UpcomingAppointments, h.db.Model(&models.Appointment{}).
			Where("date >= ? AND status IN ?", now,
				[]string{string(domain.StatusPending), string(domain.StatusConfirmed)})},
		{&stats.CompletedAppointments, h.db.Model(&models.Appointment{}).
			Where("status = ?", string(domain.StatusCompleted))},
		{&stats.CancelledAppointments, h.db.Model(&models.Appointment{}).
			Where("status = ?", string(domain.StatusCancelled))},
	}
	for _, cq := range counts {
		if err := cq.query.Count(cq.dest).Error; err != nil {
			httperr.Internal(c, "failed_to_load_stats", "Server error. Please try again later.")
			return
		}
	}

	if err := h.cache.Set(ctx, dashboardStatsKey, stats, dashboardStatsTTL); err != nil {
		logrus.WithError(err).Warn("dashboard: cache write failed")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
