package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-booking-service/config"
	deliveryHttp "clinic-booking-service/internal/delivery/http"
	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"
	"clinic-booking-service/internal/infrastructure/cache"
	"clinic-booking-service/internal/infrastructure/database"
	"clinic-booking-service/internal/infrastructure/messaging"
	"clinic-booking-service/internal/infrastructure/storage"
	"clinic-booking-service/internal/metrics"
	"clinic-booking-service/internal/repository"
	"clinic-booking-service/internal/service"
	"clinic-booking-service/internal/usecase"
	"clinic-booking-service/pkg/jwt"
	"clinic-booking-service/pkg/password"
	"clinic-booking-service/pkg/validator"

	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	AMQP        *amqp.Connection
	Minio       *minio.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	log := setupLogger()
	app := &App{Log: log}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown LOG_LEVEL %q, keeping info", cfg.Log.Level)
	}
	log.Info("Configuration loaded successfully")

	if cfg.DB.AutoMigrate {
		if err := database.RunMigrations(cfg.DB.URL, log); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	db, err := database.NewPostgresConnection(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	amqpConn, err := messaging.NewRabbitMQConnection(cfg.RabbitMQ, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	app.AMQP = amqpConn

	minioClient, err := storage.NewMinioClient(cfg.Minio, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to object storage: %w", err)
	}
	app.Minio = minioClient

	server, err := app.initializeServer()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)
	return log
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() (*http.Server, error) {
	cfg, log, db := app.Config, app.Log, app.DB

	jwtService, err := jwt.NewJWTService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	params := password.DefaultParams()
	params.Memory = cfg.Password.MemoryKiB
	params.Iterations = cfg.Password.Iterations
	params.Parallelism = cfg.Password.Parallelism
	hasher := password.NewHasher(params)

	customValidator := validator.NewValidator()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(registry)

	// Initialize repositories
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	practitionerRepo := repository.NewPractitionerRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	kycRepo := repository.NewKycRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	sessionRepo := repository.NewSessionRepository(app.RedisClient)

	// Initialize services
	auditService := service.NewAuditService(log, auditRepo)
	events := service.NewEventPublisher(app.AMQP, cfg.RabbitMQ.Exchange, log)
	pictures := service.NewPictureStorage(app.Minio, cfg.Minio.Bucket, cfg.Minio.PublicURL, log)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, tx, userRepo, sessionRepo, auditRepo, hasher, jwtService, auditService, appMetrics)
	patientUsecase := usecase.NewPatientUsecase(log, tx, userRepo, patientRepo, pictures, auditService)
	practitionerUsecase := usecase.NewPractitionerUsecase(log, tx, userRepo, practitionerRepo, serviceRepo, pictures, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, tx, appointmentRepo, patientRepo, practitionerRepo,
		serviceRepo, availabilityRepo, auditService, events, appMetrics)
	availabilityUsecase := usecase.NewAvailabilityUsecase(log, tx, availabilityRepo, practitionerRepo, auditService)
	kycUsecase := usecase.NewKycUsecase(log, tx, kycRepo, practitionerRepo, auditService, events, appMetrics)
	catalogUsecase := usecase.NewServiceCatalogUsecase(log, tx, serviceRepo, auditService)

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	checks := map[string]handler.Pinger{
		"postgres": sqlDB.PingContext,
		"redis":    func(ctx context.Context) error { return app.RedisClient.Ping(ctx).Err() },
	}
	if app.AMQP != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if app.AMQP.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	}
	if app.Minio != nil {
		checks["minio"] = func(ctx context.Context) error {
			exists, err := app.Minio.BucketExists(ctx, cfg.Minio.Bucket)
			if err == nil && !exists {
				err = errors.New("bucket " + cfg.Minio.Bucket + " is missing")
			}
			return err
		}
	}
	health := handler.NewHealthHandler(checks)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientUsecase, customValidator),
		Practitioner: handler.NewPractitionerHandler(practitionerUsecase, customValidator),
		Appointment:  handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Availability: handler.NewAvailabilityHandler(availabilityUsecase, customValidator),
		Kyc:          handler.NewKycHandler(kycUsecase),
		Service:      handler.NewServiceHandler(catalogUsecase, customValidator),
		Health:       health,
	}

	router := deliveryHttp.NewRouter(
		handlers,
		middleware.NewAuthMiddleware(jwtService),
		middleware.NewCORSMiddleware(),
		middleware.NewLoggingMiddleware(log, appMetrics),
		cfg.Admin.APIKey,
		cfg.App.RequestTimeout,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.App.RequestTimeout + 5*time.Second,
		WriteTimeout:      cfg.App.RequestTimeout + 5*time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases every open connection in parallel.
func (app *App) Close() {
	var g errgroup.Group

	if app.DB != nil {
		g.Go(func() error {
			sqlDB, err := app.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}
	if app.RedisClient != nil {
		g.Go(app.RedisClient.Close)
	}
	if app.AMQP != nil {
		g.Go(app.AMQP.Close)
	}

	if err := g.Wait(); err != nil {
		app.Log.Warnf("Failed to close a connection: %+v", err)
	}
}
