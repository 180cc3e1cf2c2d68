package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/analyzer"
	"github.com/keith666666666/APEER/internal/config"
	"github.com/keith666666666/APEER/internal/database"
	"github.com/keith666666666/APEER/internal/handler"
	"github.com/keith666666666/APEER/internal/middleware"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
	"github.com/keith666666666/APEER/internal/router"
	"github.com/keith666666666/APEER/internal/service"
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
		&models.Group{},
		&models.Rubric{},
		&models.RubricCriterion{},
		&models.Activity{},
		&models.Submission{},
		&models.CriterionScore{},
		&models.AnalysisResult{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())
	commentAnalyzer := analyzer.New(rand.New(rand.NewSource(time.Now().UnixNano())), logger)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	rubricRepo := repository.NewRubricRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	evaluationService := service.NewEvaluationService(userRepo, activityRepo, submissionRepo, commentAnalyzer, validate, redisClient, logger)
	studentService := service.NewStudentService(userRepo, submissionRepo, analysisRepo, commentAnalyzer, redisClient, cfg.DashboardCacheTTL, logger)
	teacherService := service.NewTeacherService(userRepo, submissionRepo, analysisRepo, redisClient, cfg.DashboardCacheTTL, logger)
	activityService := service.NewActivityService(activityRepo, rubricRepo, submissionRepo, validate, logger)
	groupService := service.NewGroupService(groupRepo, userRepo, activityRepo, validate, logger)
	rubricService := service.NewRubricService(rubricRepo, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	seedService := service.NewSeedService(userRepo, rubricService, cfg.SeedEnabled, cfg.SeedToken, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		EvaluationHandler: handler.NewEvaluationHandler(evaluationService, logger),
		StudentHandler:    handler.NewStudentHandler(studentService, logger),
		TeacherHandler:    handler.NewTeacherHandler(teacherService, logger),
		ActivityHandler:   handler.NewActivityHandler(activityService, logger),
		GroupHandler:      handler.NewGroupHandler(groupService, logger),
		RubricHandler:     handler.NewRubricHandler(rubricService, logger),
		ProfileHandler:    handler.NewProfileHandler(userService, logger),
		AdminHandler:      handler.NewAdminHandler(userService, seedService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
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
