package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	catalogdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/salon-scheduler/internal/usecase/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
	ucSlot "github.com/BruksfildServices01/salon-scheduler/internal/usecase/slot"
	ucUser "github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

// Deps carries the infrastructure built in main. Optional backends are left
// nil: Cache, Images, Hub, AuditLog and Audit.
type Deps struct {
	Appointments apdomain.Repository
	Reports      report.Repository
	Slots        slotdomain.Repository
	Catalog      catalogdomain.Repository
	Users        userdomain.Repository

	Tokens    *auth.Manager
	Blacklist auth.Blacklist

	AuditLog *audit.Logger
	Audit    *audit.Dispatcher

	Cache  ucCatalog.Cache
	Images ucCatalog.ImageStore
	Hub    *realtime.Hub

	Location          *time.Location
	CatalogTTL        time.Duration
	AuthRatePerMinute int
	CORSOrigins       []string

	Health map[string]handlers.Pinger
	Log    *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Log),
		middleware.CORSMiddleware(d.CORSOrigins),
		gin.Recovery(),
	)

	// slot events go nowhere without a hub
	var events slotdomain.Publisher
	if d.Hub != nil {
		events = d.Hub
	}

	// ======================================================
	// USE CASES
	// ======================================================
	authUC := ucUser.NewAuth(d.Users, d.Tokens, d.Blacklist, d.Audit, d.Log)
	accountsUC := ucUser.NewAccounts(d.Users, d.Images, d.Audit)

	servicesUC := ucCatalog.NewServices(d.Catalog, d.Cache, d.Images, d.Audit, d.CatalogTTL)
	stylistsUC := ucCatalog.NewStylists(d.Catalog, d.Cache, d.Images, d.Audit, d.CatalogTTL)

	appointmentUC := handlers.AppointmentUseCases{
		Create:   ucAppointment.NewCreateAppointment(d.Appointments, d.Audit, events, d.Location),
		Cancel:   ucAppointment.NewCancelAppointment(d.Appointments, d.Audit, events),
		Confirm:  ucAppointment.NewConfirmAppointment(d.Appointments, d.Audit),
		Complete: ucAppointment.NewCompleteAppointment(d.Appointments, d.Audit),
		List:     ucAppointment.NewListAppointments(d.Appointments),
		Get:      ucAppointment.NewGetAppointment(d.Appointments),
		Update:   ucAppointment.NewUpdateAppointment(d.Appointments, d.Audit, events),
		Delete:   ucAppointment.NewDeleteAppointment(d.Appointments, d.Audit, events),
	}

	slotUC := handlers.SlotUseCases{
		Create:  ucSlot.NewCreateSlot(d.Slots, d.Audit, events),
		Update:  ucSlot.NewUpdateSlot(d.Slots, d.Audit, events),
		Delete:  ucSlot.NewDeleteSlot(d.Slots, d.Audit, events),
		Queries: ucSlot.NewQueries(d.Slots, d.Location),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authUC, d.Log)
	meHandler := handlers.NewMeHandler()
	userHandler := handlers.NewUserHandler(accountsUC, d.Log)
	serviceHandler := handlers.NewServiceHandler(servicesUC, d.Log)
	stylistHandler := handlers.NewStylistHandler(stylistsUC, d.Log)
	slotHandler := handlers.NewSlotHandler(slotUC, d.Hub, d.Location, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentUC,
		report.NewReports(d.Reports, d.Location),
		d.Location,
		d.Log,
	)
	healthHandler := handlers.NewHealthHandler(d.Health)

	r.GET("/health", healthHandler.Health)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		limiter := middleware.NewRateLimiter(d.AuthRatePerMinute)
		api.POST("/auth/register", limiter.Limit(), authHandler.Register)
		api.POST("/auth/login", limiter.Limit(), authHandler.Login)

		// ------------------------------
		// CATALOG + SLOTS (public reads)
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)
		api.GET("/stylists", stylistHandler.List)
		api.GET("/stylists/:id", stylistHandler.Get)

		api.GET("/slots/available", slotHandler.Available)
		api.GET("/slots/booked", slotHandler.Booked)
		if d.Hub != nil {
			api.GET("/slots/ws", slotHandler.WS)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(authUC, d.Log))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/receipt", appointmentHandler.Receipt)
			secured.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// SLOTS
			// ------------------------------
			secured.GET("/slots", slotHandler.List)
			secured.GET("/slots/:id", slotHandler.Get)

			// ------------------------------
			// USERS (self or admin)
			// ------------------------------
			secured.GET("/users/:id", userHandler.Get)
			secured.PUT("/users/:id", userHandler.Update)
			secured.PUT("/users/:id/change-password", userHandler.ChangePassword)
			secured.PUT("/users/:id/avatar", userHandler.Avatar)
		}

		admin := secured.Group("/")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/appointments/stats/monthly-income", appointmentHandler.MonthlyIncome)
			admin.GET("/appointments/stats/monthly-data", appointmentHandler.MonthlyData)
			admin.GET("/appointments/stats/monthly-export", appointmentHandler.MonthlyExport)
			admin.PUT("/appointments/:id/confirm", appointmentHandler.Confirm)
			admin.PUT("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PUT("/appointments/:id", appointmentHandler.Update)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)

			admin.POST("/services", serviceHandler.Create)
			admin.PUT("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)
			admin.POST("/services/:id/images", serviceHandler.AddImage)
			admin.DELETE("/services/:id/images/:imageId", serviceHandler.DeleteImage)

			admin.POST("/stylists", stylistHandler.Create)
			admin.PUT("/stylists/:id", stylistHandler.Update)
			admin.DELETE("/stylists/:id", stylistHandler.Delete)
			admin.PUT("/stylists/:id/image", stylistHandler.SetImage)

			admin.POST("/slots", slotHandler.Create)
			admin.PUT("/slots/:id", slotHandler.Update)
			admin.DELETE("/slots/:id", slotHandler.Delete)

			admin.GET("/users", userHandler.List)
			admin.DELETE("/users/:id", userHandler.Delete)

			if d.AuditLog != nil {
				auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, d.Log)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
