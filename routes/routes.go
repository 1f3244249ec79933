package routes

import (
	"time"

	"oasis/handlers"
	"oasis/middleware"
	"oasis/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries what route registration needs besides the handlers.
type Options struct {
	JWTSecret         []byte
	AllowedOrigins    []string
	MaxRequestsPerMin int
}

// RegisterBookingSettingsRoutes registers schedule and availability endpoints.
func RegisterBookingSettingsRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	g := api.Group("/booking-settings")
	{
		g.GET("/settings", hb.BookingSettings.GetSettings)
		g.GET("/available-slots/:date", hb.BookingSettings.AvailableSlots)
		g.GET("/bookable-slots/:date", hb.BookingSettings.BookableSlots)

		g.PUT("/settings", admin, hb.BookingSettings.UpdateSettings)
		g.PUT("/settings/day/:day", admin, hb.BookingSettings.UpdateDay)
	}
}

// RegisterBlockedDateRoutes registers date override endpoints.
func RegisterBlockedDateRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	g := api.Group("/blocked-dates")
	{
		g.GET("/active", hb.BlockedDates.ListActive)
		g.GET("/check/:date", hb.BlockedDates.Check)

		protected := g.Group("")
		protected.Use(admin)
		protected.GET("", hb.BlockedDates.List)
		protected.POST("", hb.BlockedDates.Block)
		protected.POST("/bulk", hb.BlockedDates.BlockBulk)
		protected.PUT("/:id/toggle", hb.BlockedDates.Toggle)
		protected.PUT("/:id", hb.BlockedDates.Update)
		protected.DELETE("/:id", hb.BlockedDates.Delete)
		protected.DELETE("/:id/slot/:slot", hb.BlockedDates.RemoveSlot)
	}
}

// RegisterAppointmentRoutes registers booking endpoints.
func RegisterAppointmentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	g := api.Group("/appointments")
	{
		g.POST("", hb.Appointments.Create)
		g.GET("/booked-slots", hb.Appointments.BookedSlots)

		protected := g.Group("")
		protected.Use(admin)
		protected.GET("", hb.Appointments.List)
		protected.DELETE("/clear-all", hb.Appointments.ClearAll)
		protected.GET("/:id", hb.Appointments.Get)
		protected.PATCH("/:id/status", hb.Appointments.UpdateStatus)
		protected.PATCH("/:id/cancel", hb.Appointments.Cancel)
		protected.DELETE("/:id", hb.Appointments.Delete)
	}
}

type contentRoutes interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func registerContent(api *gin.RouterGroup, path string, h contentRoutes, optional, admin gin.HandlerFunc) {
	g := api.Group(path)
	{
		g.GET("", optional, h.List)
		g.GET("/:id", optional, h.Get)
		g.POST("", admin, h.Create)
		g.PUT("/:id", admin, h.Update)
		g.DELETE("/:id", admin, h.Delete)
	}
}

// RegisterContentRoutes registers the catalog collections and legal pages.
func RegisterContentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, optional, admin gin.HandlerFunc) {
	registerContent(api, "/services", hb.Services, optional, admin)
	registerContent(api, "/properties", hb.Properties, optional, admin)
	registerContent(api, "/testimonials", hb.Testimonials, optional, admin)
	registerContent(api, "/faqs", hb.FAQs, optional, admin)

	legal := api.Group("/legal")
	{
		legal.GET("", admin, hb.Legal.List)
		legal.GET("/:slug", hb.Legal.GetBySlug)
		legal.POST("", admin, hb.Legal.Create)
		legal.PUT("/:slug", admin, hb.Legal.Upsert)
		legal.DELETE("/:slug", admin, hb.Legal.DeleteBySlug)
	}
}

// RegisterContactRoutes registers the contact form and the admin inbox.
func RegisterContactRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, admin gin.HandlerFunc) {
	g := api.Group("/contact")
	{
		g.POST("", hb.Contact.Submit)
		g.GET("", admin, hb.Contact.List)
		g.PATCH("/:id/read", admin, hb.Contact.MarkRead)
		g.DELETE("/:id", admin, hb.Contact.Delete)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// NewRouter builds the engine with the global middleware. utils.ErrorHandler is the only
// panic recovery so a panic always answers with the JSON envelope.
func NewRouter(logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger(logger))
	return r
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	admin := middleware.JWTAuthAdminMiddleware(opts.JWTSecret)
	optional := middleware.OptionalAdminMiddleware(opts.JWTSecret)

	api.POST("/admin/login", hb.Admin.Login)
	RegisterBookingSettingsRoutes(api, hb, admin)
	RegisterBlockedDateRoutes(api, hb, admin)
	RegisterAppointmentRoutes(api, hb, admin)
	RegisterContentRoutes(api, hb, optional, admin)
	RegisterContactRoutes(api, hb, admin)
}
