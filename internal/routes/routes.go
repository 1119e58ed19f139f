package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"portfolio-server/internal/config"
	"portfolio-server/internal/handlers"
	"portfolio-server/internal/middleware"
	"portfolio-server/internal/models"
	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

// Services are the application services the routes expose.
type Services struct {
	Booking      *services.BookingService
	Technologies *services.TechnologyService
	Projects     *services.ContentService[models.Project, *models.Project]
	Experiences  *services.ContentService[models.Experience, *models.Experience]
	Engagements  *services.ContentService[models.Engagement, *models.Engagement]
	Auth         *services.AuthService
	Stats        *services.StatsService
}

// NewRouter builds the gin engine with the global middleware chain and all
// routes. Only cfg.TrustedProxies may set the client IP through
// X-Forwarded-For; the rate limiter keys on that IP.
func NewRouter(cfg *config.Config, svc *Services, limiter *middleware.RateLimiter) (*gin.Engine, error) {
	utils.RegisterValidators()

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Authenticate(svc.Auth))

	SetupRoutes(router, svc, cfg, limiter)
	return router, nil
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, svc *Services, cfg *config.Config, limiter *middleware.RateLimiter) {
	// Initialize handlers
	appointmentHandler := handlers.NewAppointmentHandler(svc.Booking)
	technologyHandler := handlers.NewTechnologyHandler(svc.Technologies)
	projectHandler := handlers.NewProjectHandler(svc.Projects)
	experienceHandler := handlers.NewExperienceHandler(svc.Experiences)
	engagementHandler := handlers.NewEngagementHandler(svc.Engagements)
	authHandler := handlers.NewAuthHandler(svc.Auth, cfg.IsProduction())
	statsHandler := handlers.NewStatsHandler(svc.Stats)

	rateLimited := middleware.RateLimit(limiter)

	// Public routes (no authentication required)
	public := router.Group("/api")
	{
		appointmentRoutes := public.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetBooked)
			appointmentRoutes.GET("/slots", appointmentHandler.GetSlots)
			appointmentRoutes.POST("", rateLimited, appointmentHandler.CreateAppointment)
		}

		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/login", rateLimited, authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/session", authHandler.Session)
		}

		readOnly(public.Group("/technologies"), technologyHandler)
		readOnly(public.Group("/projects"), projectHandler)
		readOnly(public.Group("/experiences"), experienceHandler)
		readOnly(public.Group("/engagements"), engagementHandler)
	}

	// Admin routes. RequireAdmin guards the whole group, so no route below
	// can be registered without it.
	admin := router.Group("/api/admin", middleware.RequireAdmin())
	{
		appointmentRoutes := admin.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.ListAppointments)
			appointmentRoutes.GET("/export", appointmentHandler.ExportAppointments)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointment)
			appointmentRoutes.PATCH("/:id", appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", appointmentHandler.DeleteAppointment)
		}

		crud(admin.Group("/technologies"), technologyHandler)
		crud(admin.Group("/projects"), projectHandler)
		crud(admin.Group("/experiences"), experienceHandler)
		crud(admin.Group("/engagements"), engagementHandler)

		admin.GET("/stats", statsHandler.Get)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
}

type readHandler interface {
	List(*gin.Context)
	Get(*gin.Context)
}

type crudHandler interface {
	readHandler
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func readOnly(group *gin.RouterGroup, h readHandler) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
}

func crud(group *gin.RouterGroup, h crudHandler) {
	readOnly(group, h)
	group.POST("", h.Create)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}
