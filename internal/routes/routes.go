package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hospitalhq/hospital-api/internal/cache"
	"github.com/hospitalhq/hospital-api/internal/config"
	"github.com/hospitalhq/hospital-api/internal/handlers"
	infraRepo "github.com/hospitalhq/hospital-api/internal/infra/repository"
	"github.com/hospitalhq/hospital-api/internal/mailer"
	"github.com/hospitalhq/hospital-api/internal/middleware"
	"github.com/hospitalhq/hospital-api/internal/storage"
	ucAppointment "github.com/hospitalhq/hospital-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cc *cache.Cache,
	store storage.ConditionStore,
	dispatcher *mailer.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		dispatcher,
		cfg.Timezone,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		dispatcher,
	)

	listForPatientUC := ucAppointment.NewListForPatient(appointmentRepo)
	listForDoctorUC := ucAppointment.NewListForDoctor(appointmentRepo)
	listAllUC := ucAppointment.NewListAll(appointmentRepo)
	listRecentUC := ucAppointment.NewListRecent(appointmentRepo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	patientHandler := handlers.NewPatientHandler(db, store)
	doctorHandler := handlers.NewDoctorHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, cc, cfg.Timezone)
	reportHandler := handlers.NewReportHandler(db, cc)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		bookUC,
		updateStatusUC,
		listForPatientUC,
		listForDoctorUC,
		listAllUC,
		listRecentUC,
		cfg.Timezone,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/auth/me", authHandler.GetMe)

			// Appointments.
			secured.GET("/appointments/doctors", appointmentHandler.ListDoctors)
			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments/my-appointments", appointmentHandler.MyAppointments)
			secured.GET("/appointments/my-appointments-all", appointmentHandler.MyAppointmentsAll)
			secured.GET("/appointments/doctor/appointments", appointmentHandler.DoctorAppointments)
			secured.GET("/appointments/recent", appointmentHandler.Recent)
			secured.GET("/appointments", appointmentHandler.ListAll)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

			// Patients.
			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)
			secured.GET("/patients/my-record", patientHandler.MyRecord)
			secured.GET("/patients/my-patients", patientHandler.MyPatients)
			secured.PUT("/patients/:id", patientHandler.Update)
			secured.DELETE("/patients/:id", patientHandler.Delete)
			secured.POST("/patients/upload/:id", patientHandler.UploadPDF)
			secured.GET("/patients/download-condition/:id", patientHandler.DownloadPDF)

			// Staff roster management.
			secured.GET("/doctors", doctorHandler.List)
			secured.POST("/doctors", doctorHandler.Create)
			secured.PUT("/doctors/:id", doctorHandler.Update)
			secured.DELETE("/doctors/:id", doctorHandler.Delete)

			// Dashboard and reports.
			secured.GET("/dashboard/stats", dashboardHandler.Stats)
			secured.GET("/reports/user-summary", reportHandler.UserSummary)
			secured.GET("/reports/all-users", reportHandler.AllUsers)
			secured.GET("/reports/all-users/:id", reportHandler.UserByID)
		}
	}
}
