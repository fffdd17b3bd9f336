package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edupulse/course-activity-api/internal/config"
	"github.com/edupulse/course-activity-api/internal/database"
	"github.com/edupulse/course-activity-api/internal/handler"
	"github.com/edupulse/course-activity-api/internal/middleware"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/repository"
	"github.com/edupulse/course-activity-api/internal/router"
	"github.com/edupulse/course-activity-api/internal/service"
	"github.com/edupulse/course-activity-api/pkg/filestore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Department{},
		&models.Course{},
		&models.ActivityLog{},
		&models.Report{},
		&models.SystemEventLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	files, err := filestore.NewLocal(cfg.ReportDir)
	if err != nil {
		log.Fatalf("failed to prepare report directory: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)
	reportRepo := repository.NewReportRepository(db)
	eventRepo := repository.NewSystemEventRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	eventService := service.NewEventService(eventRepo, logger)
	authService := service.NewAuthService(userRepo, departmentRepo, eventService, redisClient, validate, logger, cfg.JWTSecret, cfg.JWTTokenTTL)
	userService := service.NewUserService(userRepo, departmentRepo, eventService, validate, logger)
	departmentService := service.NewDepartmentService(departmentRepo, logger)
	courseService := service.NewCourseService(courseRepo, userRepo, eventService, validate, logger)
	activityService := service.NewActivityService(activityRepo, courseRepo, validate, logger)
	dashboardService := service.NewDashboardService(dashboardRepo, logger)

	worker := service.NewReportWorker(reportRepo, activityRepo, files, eventService, logger, cfg.ReportQueueSize)
	reportService := service.NewReportService(reportRepo, files, worker, validate, logger)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker.Start(workerCtx)

	if cfg.SeedDepartments {
		if err := departmentService.SeedDefaults(context.Background()); err != nil {
			log.Fatalf("failed to seed departments: %v", err)
		}
	}

	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	departmentHandler := handler.NewDepartmentHandler(departmentService, logger)
	courseHandler := handler.NewCourseHandler(courseService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)
	reportHandler := handler.NewReportHandler(reportService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	activityFeedHandler := handler.NewActivityFeedHandler(eventService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:         authHandler,
		UserHandler:         userHandler,
		DepartmentHandler:   departmentHandler,
		CourseHandler:       courseHandler,
		ActivityHandler:     activityHandler,
		ReportHandler:       reportHandler,
		DashboardHandler:    dashboardHandler,
		ActivityFeedHandler: activityFeedHandler,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret, redisClient),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)

	stopWorker()
	worker.Close()
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
