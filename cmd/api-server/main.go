package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edunexus-dev/cu-admissions-api/api/swagger"
	"github.com/edunexus-dev/cu-admissions-api/internal/handler"
	"github.com/edunexus-dev/cu-admissions-api/internal/middleware"
	"github.com/edunexus-dev/cu-admissions-api/internal/repository"
	"github.com/edunexus-dev/cu-admissions-api/internal/service"
	"github.com/edunexus-dev/cu-admissions-api/pkg/cache"
	"github.com/edunexus-dev/cu-admissions-api/pkg/config"
	"github.com/edunexus-dev/cu-admissions-api/pkg/database"
	"github.com/edunexus-dev/cu-admissions-api/pkg/logger"
	corsmiddleware "github.com/edunexus-dev/cu-admissions-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edunexus-dev/cu-admissions-api/pkg/middleware/requestid"
	"github.com/edunexus-dev/cu-admissions-api/pkg/storage"
)

// @title CU Admissions API
// @version 1.0.0
// @description College administration backend for CU registration workflows
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalogue cache disabled", "error", err)
		redisClient = nil
	}

	objectStore, err := storage.NewObjectStore(storage.ObjectStoreOptions{
		Endpoint:  cfg.ObjectStore.Endpoint,
		AccessKey: cfg.ObjectStore.AccessKey,
		SecretKey: cfg.ObjectStore.SecretKey,
		Bucket:    cfg.ObjectStore.Bucket,
		Region:    cfg.ObjectStore.Region,
		UseSSL:    cfg.ObjectStore.UseSSL,
		PublicURL: cfg.ObjectStore.PublicURL,
	})
	if err != nil {
		logr.Sugar().Fatalw("failed to init object store", "error", err)
	}
	localStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init local storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Uploads.SignedURLSecret, cfg.Uploads.SignedURLTTL)

	// Repositories.
	requestRepo := repository.NewCorrectionRequestRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	uploadRepo := repository.NewDocumentUploadRepository(db)
	counterRepo := repository.NewApplicationCounterRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services.
	metricsSvc := service.NewMetricsService()
	validate := validator.New()
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogSvc := service.NewCatalogService(documentRepo, redisClient, cfg.Uploads.CatalogCacheTTL, logr).
		WithMetrics(metricsSvc)
	numberSvc := service.NewApplicationNumberService(counterRepo,
		cfg.Registration.ApplicationNumberPrefix, cfg.Registration.Cycle, logr)
	uploadSvc := service.NewUploadService(objectStore, localStore, logr)
	notificationSvc := service.NewNotificationService(cfg.Notifications, cfg.SMTP, logr)
	registrationSvc := service.NewRegistrationService(
		requestRepo, studentRepo, catalogSvc, uploadRepo, numberSvc,
		service.NewDocumentPathService(cfg.Registration.DefaultCourse),
		service.NewImageService(logr), uploadSvc, service.NewPDFService(), logr,
	).WithNotifier(notificationSvc).WithMetrics(metricsSvc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notificationSvc.Start(ctx)
	defer notificationSvc.Stop()

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	registrationHandler := handler.NewRegistrationHandler(registrationSvc, numberSvc, cfg.Uploads.MaxFileSizeBytes)
	documentHandler := handler.NewDocumentHandler(uploadRepo, catalogSvc, uploadSvc, signer, cfg.APIPrefix)
	exportHandler := handler.NewExportHandler(registrationSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		reg := api.Group("/admissions/cu-registration")
		{
			// Student-facing submission. Candidates authenticate through the
			// admission portal that fronts this API, so no bearer token here.
			reg.POST("/batch-submit", registrationHandler.BatchSubmit)
			reg.GET("/documents/catalogue", documentHandler.Catalogue)
			reg.GET("/documents/:id/download", documentHandler.Download)
		}

		secured := api.Group("/admissions/cu-registration")
		secured.Use(middleware.JWT(authSvc))
		{
			secured.GET("/correction-requests", registrationHandler.List)
			secured.GET("/correction-requests/:id", registrationHandler.Get)
			secured.PATCH("/correction-requests/:id/physical-registration", registrationHandler.MarkPhysicallyRegistered)
			secured.GET("/application-numbers/stats", registrationHandler.NumberStats)
			secured.GET("/documents/:id/download-url", documentHandler.DownloadURL)
			secured.GET("/export", exportHandler.Register)
		}

		me := api.Group("")
		me.Use(middleware.JWT(authSvc))
		me.GET("/auth/me", authHandler.Me)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env,
		"object_store_configured", objectStore.Configured())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
