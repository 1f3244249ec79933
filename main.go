// File: oasis/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oasis/config"
	"oasis/cron"
	"oasis/database"
	appointmentRepo "oasis/database/repository/appointment"
	blockedRepo "oasis/database/repository/blocked"
	contentRepo "oasis/database/repository/content"
	"oasis/database/repository/memory"
	settingsRepo "oasis/database/repository/settings"
	"oasis/handlers"
	"oasis/models"
	"oasis/routes"
	"oasis/services/admin"
	"oasis/services/booking"
	"oasis/services/contact"
	"oasis/services/content"
	"oasis/services/notification"
	"oasis/services/tasks"
	"oasis/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// repositories is every store the services need, backed by MongoDB or memory.
type repositories struct {
	Settings     settingsRepo.SettingsRepository
	Blocked      blockedRepo.BlockedDateRepository
	Appointments appointmentRepo.AppointmentRepository
	Services     contentRepo.Repository[models.Service]
	Properties   contentRepo.Repository[models.Property]
	Testimonials contentRepo.Repository[models.Testimonial]
	FAQs         contentRepo.Repository[models.FAQ]
	Legal        contentRepo.Repository[models.LegalPage]
	Contact      contentRepo.Repository[models.ContactMessage]
}

func mongoRepositories(db *mongo.Database) repositories {
	return repositories{
		Settings:     settingsRepo.NewMongoSettingsRepo(db),
		Blocked:      blockedRepo.NewMongoBlockedDateRepo(db),
		Appointments: appointmentRepo.NewMongoAppointmentRepo(db),
		Services:     contentRepo.NewMongoRepo[models.Service](db, contentRepo.ServicesCollection),
		Properties:   contentRepo.NewMongoRepo[models.Property](db, contentRepo.PropertiesCollection),
		Testimonials: contentRepo.NewMongoRepo[models.Testimonial](db, contentRepo.TestimonialsCollection),
		FAQs:         contentRepo.NewMongoRepo[models.FAQ](db, contentRepo.FAQsCollection),
		Legal:        contentRepo.NewMongoRepo[models.LegalPage](db, contentRepo.LegalPagesCollection),
		Contact:      contentRepo.NewMongoRepo[models.ContactMessage](db, contentRepo.ContactCollection),
	}
}

func memoryRepositories() repositories {
	return repositories{
		Settings:     memory.NewSettingsRepo(),
		Blocked:      memory.NewBlockedDateRepo(),
		Appointments: memory.NewAppointmentRepo(),
		Services:     memory.NewContentRepo[models.Service](),
		Properties:   memory.NewContentRepo[models.Property](),
		Testimonials: memory.NewContentRepo[models.Testimonial](),
		FAQs:         memory.NewContentRepo[models.FAQ](),
		Legal:        memory.NewContentRepo[models.LegalPage](),
		Contact:      memory.NewContentRepo[models.ContactMessage](),
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return errors.Join(
		settingsRepo.EnsureIndexes(ctx, db),
		blockedRepo.EnsureIndexes(ctx, db),
		appointmentRepo.EnsureIndexes(ctx, db),
		contentRepo.EnsureIndexes(ctx, db),
	)
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	businessLoc, err := config.Location()
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	// Storage.
	var repos repositories
	if database.UsesMemoryStore() {
		logger.Warn("main: using the in-memory store, data is lost on restart")
		repos = memoryRepositories()
	} else {
		db, err := database.InitDB()
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		if err := ensureIndexes(rootCtx, db); err != nil {
			logger.Sugar().Fatalf("main: failed to create indexes: %v", err)
		}
		repos = mongoRepositories(db)
	}

	// Availability cache. Redis is optional; without it the cache is per process.
	ttl := time.Duration(config.AppConfig.AvailabilityCacheTTLS) * time.Second
	var availCache booking.AvailabilityCache = booking.NewLocalAvailabilityCache(ttl)
	redisClient, err := utils.InitCache()
	if err != nil {
		logger.Warn("main: redis unavailable, using in-process availability cache", zap.Error(err))
	} else {
		availCache = booking.NewRedisAvailabilityCache(redisClient, ttl, logger)
	}

	utils.StartHealthMonitor(rootCtx, 30*time.Second, redisClient, database.MongoClient)

	notifier := notification.NewFromConfig(logger)

	// Booking engine.
	resolver := booking.NewScheduleResolver(repos.Settings)
	engine := booking.NewAvailabilityEngine(resolver, repos.Blocked, availCache)
	settingsSvc := booking.NewSettingsService(repos.Settings, availCache, logger)
	blockedSvc := booking.NewBlockedDateService(repos.Blocked, availCache, logger)
	ledger := booking.NewBookingLedger(repos.Appointments, repos.Settings, engine, logger)
	ledger.Confirmations = notifier
	ledger.Location = businessLoc

	// Reminders need Redis for the asynq queue.
	var (
		queue  *asynq.Client
		worker *asynq.Server
	)
	if redisClient != nil {
		queue = asynq.NewClient(tasks.RedisOpt())
		lead := time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour
		scheduler := tasks.NewReminderScheduler(queue, lead, logger)
		scheduler.Location = businessLoc
		ledger.Reminders = scheduler

		worker, err = cron.StartReminderWorker(&cron.ReminderWorker{
			Appointments: repos.Appointments,
			Notifier:     notifier,
			Logger:       logger,
		}, tasks.RedisOpt())
		if err != nil {
			logger.Error("main: reminders disabled", zap.Error(err))
		}
	} else {
		logger.Warn("main: reminders disabled, Redis is not available")
	}

	// Content.
	servicesSvc := content.NewService[models.Service](repos.Services, "service", logger)
	propertiesSvc := content.NewService[models.Property](repos.Properties, "property", logger)
	testimonialsSvc := content.NewService[models.Testimonial](repos.Testimonials, "testimonial", logger)
	faqsSvc := content.NewService[models.FAQ](repos.FAQs, "faq", logger)
	legalSvc := content.NewLegalService(repos.Legal, admin.DefaultLegalPage(config.AppConfig.BusinessName), logger)
	contactSvc := contact.NewContactService(repos.Contact, notifier, logger)

	adminSvc := admin.NewDefaultAdminService(
		config.AppConfig.AdminEmail,
		config.AppConfig.AdminPasswordHash,
		[]byte(config.AppConfig.JWTSecret),
		logger,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		BookingSettings: handlers.NewBookingSettingsHandler(settingsSvc, engine, ledger),
		BlockedDates:    handlers.NewBlockedDateHandler(blockedSvc),
		Appointments:    handlers.NewAppointmentHandler(ledger),
		Services:        handlers.NewContentHandler[models.Service](servicesSvc, "Service"),
		Properties:      handlers.NewContentHandler[models.Property](propertiesSvc, "Property"),
		Testimonials:    handlers.NewContentHandler[models.Testimonial](testimonialsSvc, "Testimonial"),
		FAQs:            handlers.NewContentHandler[models.FAQ](faqsSvc, "FAQ"),
		Legal:           handlers.NewLegalHandler(legalSvc),
		Contact:         handlers.NewContactHandler(contactSvc),
		Admin:           handlers.NewAdminHandler(adminSvc),
	}

	router := routes.NewRouter(logger)

	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		JWTSecret:         []byte(config.AppConfig.JWTSecret),
		AllowedOrigins:    config.AllowedOrigins(),
		MaxRequestsPerMin: config.AppConfig.MaxRequestsPerMin,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queue != nil {
		if err := queue.Close(); err != nil {
			logger.Warn("main: failed to close reminder queue", zap.Error(err))
		}
	}
	if redisClient != nil {
		redisClient.Close()
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
