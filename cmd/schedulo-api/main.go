package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/schedulo-api/api/swagger"
	"github.com/noah-isme/schedulo-api/internal/handler"
	internalmiddleware "github.com/noah-isme/schedulo-api/internal/middleware"
	"github.com/noah-isme/schedulo-api/internal/models"
	"github.com/noah-isme/schedulo-api/internal/repository"
	"github.com/noah-isme/schedulo-api/internal/service"
	"github.com/noah-isme/schedulo-api/pkg/cache"
	"github.com/noah-isme/schedulo-api/pkg/config"
	"github.com/noah-isme/schedulo-api/pkg/database"
	"github.com/noah-isme/schedulo-api/pkg/export"
	"github.com/noah-isme/schedulo-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/schedulo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/schedulo-api/pkg/middleware/requestid"
)

// @title Schedulo API
// @version 1.0.0
// @description Weekly timetable generation for classes and faculty
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(context.Background(), cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Timetable.CacheEnabled {
		redisClient, err = cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, timetable cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient, logr),
		metricsSvc,
		cfg.Timetable.CacheTTL,
		logr,
		redisClient != nil,
	)
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: "schedulo-api"})

	timetableSvc := service.NewTimetableService(service.TimetableServiceDeps{
		Classes:   repository.NewClassRepository(db),
		Subjects:  repository.NewSubjectRepository(db),
		Faculty:   repository.NewFacultyRepository(db),
		Rooms:     repository.NewRoomRepository(db),
		Institute: repository.NewInstituteConfigRepository(db),
		Store:     repository.NewTimetableRepository(db),
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		CSV:       export.NewCSVExporter(),
		PDF:       export.NewPDFExporter(),
		Validator: validator.New(),
		Logger:    logr,
	}, service.TimetableServiceConfig{
		MaxAttempts:  cfg.Scheduler.MaxAttempts,
		Timeout:      cfg.Scheduler.Timeout,
		SlotOrder:    cfg.Scheduler.SlotOrder,
		Seed:         cfg.Scheduler.Seed,
		ProblemLimit: cfg.Scheduler.ProblemLimit,
		CacheTTL:     cfg.Timetable.CacheTTL,
	})

	readiness := map[string]handler.Pinger{"postgres": db}
	if redisClient != nil {
		readiness["redis"] = handler.PingFunc(func(ctx context.Context) error { return cache.Ping(ctx, redisClient) })
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)
	timetableHandler := handler.NewTimetableHandler(timetableSvc, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	timetables := api.Group("/timetables", internalmiddleware.JWT(tokenSvc))
	timetables.POST("/generate", internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin), timetableHandler.Generate)
	timetables.GET("", timetableHandler.List)
	timetables.GET("/data-summary", internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin), timetableHandler.DataSummary)
	timetables.GET("/class/:id", timetableHandler.Class)
	timetables.GET("/class/:id/export", timetableHandler.ExportClass)
	timetables.GET("/faculty/:id", timetableHandler.Faculty)
	timetables.GET("/faculty/:id/export", timetableHandler.ExportFaculty)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
