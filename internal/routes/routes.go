package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-frontdesk/internal/audit"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/config"
	domain "github.com/BruksfildServices01/clinic-frontdesk/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/handlers"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/middleware"
	"github.com/BruksfildServices01/clinic-frontdesk/internal/syncstore"
	ucAppointment "github.com/BruksfildServices01/clinic-frontdesk/internal/usecase/appointment"
)

// Deps are the long-lived singletons built by main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Location *time.Location
	Logger   *slog.Logger

	Repo    domain.Repository
	Store   *syncstore.Store
	Audit   *audit.Dispatcher
	Storage ucAppointment.ImageStorage
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// USE CASES
	// ======================================================
	listUC := ucAppointment.NewListAppointments(d.Store, d.Location)
	refreshUC := ucAppointment.NewRefreshAppointments(d.Store)
	saveUC := ucAppointment.NewSaveAppointment(d.Repo, d.Store, d.Audit, d.Location, d.Logger)
	datesUC := ucAppointment.NewListFollowUpDates(d.Location)
	imagesUC := ucAppointment.NewAssessmentImages(
		d.Storage,
		d.Config.MaxImageBytes,
		d.Config.SignedURLTTL,
		d.Logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config.JWTSecret)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Location)

	appointmentHandler := handlers.NewAppointmentHandler(
		listUC,
		refreshUC,
		saveUC,
		datesUC,
		d.Store,
		d.Logger,
	)
	imageHandler := handlers.NewImageHandler(imagesUC, d.Config.MaxImageBytes)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/counters", appointmentHandler.Counters)
			secured.GET("/appointments/stream", appointmentHandler.Stream)
			secured.POST("/appointments/refresh", appointmentHandler.Refresh)
			secured.PATCH("/appointments/:id", appointmentHandler.Save)

			secured.GET("/followups/dates", appointmentHandler.FollowUpDates)

			// ------------------------------
			// ASSESSMENT IMAGES
			// ------------------------------
			secured.POST("/appointments/:id/images", imageHandler.Upload)
			secured.POST("/images/signed-urls", imageHandler.SignedURLs)
			secured.DELETE("/images", imageHandler.Remove)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
