package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/cmd"
	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/jobs"
	"dispatch/migrations"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := postgresDSN(configs)
	runMigrations(dsn)

	gormDB := mustConnectDB(dsn)

	publisher := createPublisher(configs, logger)
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("Failed to close Kafka publisher", "error", err)
			}
		}()
	}

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(
		root.CreateFlipShiftStatusCommandHandler(),
		root.CreateEvaluateMetricsCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&root, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file found, using environment: %v", err)
	}

	return cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaAssignmentsTopic: envOrDefault("KAFKA_ASSIGNMENTS_TOPIC", "assignment.recorded"),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func postgresDSN(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)
}

func runMigrations(dsn string) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database for migrations: %v", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.Embedded)
	if err = goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set goose dialect: %v", err)
	}

	if err = goose.Up(sqlDB, "."); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
}

func mustConnectDB(dsn string) *gorm.DB {
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func createPublisher(configs cmd.Config, logger *slog.Logger) *kafka.AssignmentPublisher {
	if configs.KafkaHost == "" {
		logger.Info("KAFKA_HOST not set, assignment events disabled")
		return nil
	}

	publisher, err := kafka.NewAssignmentPublisher(
		[]string{configs.KafkaHost}, configs.KafkaAssignmentsTopic,
	)
	if err != nil {
		log.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	return publisher
}

func startWebServer(root *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpadapter.NewServer(
		root.TokenService(),
		root.CreateRegisterPartnerCommandHandler(),
		root.CreateJoinAsPartnerCommandHandler(),
		root.CreateReviewPartnerApplicationCommandHandler(),
		root.CreateUpdatePartnerCommandHandler(),
		root.CreateDeletePartnerCommandHandler(),
		root.CreateComputePartnerDashboardCommandHandler(),
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateAssignOrderCommandHandler(),
		root.CreateEvaluateMetricsCommandHandler(),
		root.CreateGetAllOrdersQueryHandler(),
		root.CreateGetPartnerOrdersQueryHandler(),
		root.CreateGetAllPartnersQueryHandler(),
		root.CreateGetAssignmentsQueryHandler(),
		root.CreateGetAssignmentMetricsQueryHandler(),
		root.CreateGetDashboardSummaryQueryHandler(),
		root.CreateGetPartnerCredentialsQueryHandler(),
	)
	server.RegisterRoutes(e, httpadapter.NewAuthMiddleware(root.TokenService()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
