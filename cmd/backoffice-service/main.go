package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/kmfx/kmfx-backoffice-service/internal/config"
	deliveryhttp "github.com/kmfx/kmfx-backoffice-service/internal/delivery/http"
	"github.com/kmfx/kmfx-backoffice-service/internal/delivery/http/handlers"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/kafka"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/logger"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/metrics"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/migrate"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/repository"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/rediscache"
	"github.com/kmfx/kmfx-backoffice-service/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const defaultMinWithdrawal = "10"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()
	setupLogger(cfg.LogConfig)
	// Init database
	db := postgres.MustInitDB(cfg)
	if cfg.MigrationsPath != "" {
		if err := migrate.RunMigrations(db, cfg.MigrationsPath); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Notification publisher
	brokers := []string{fmt.Sprintf("%s:%s", cfg.KafkaService.Host, cfg.KafkaService.Port)}
	topic := cfg.KafkaService.Topic
	if topic == "" {
		topic = "client-notifications"
	}
	publisher := kafka.NewKafkaNotificationPublisher(brokers, topic)
	defer publisher.Close()

	// Dashboard summary cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisCache.Addr,
		Password: cfg.RedisCache.Password,
		DB:       cfg.RedisCache.DB,
	})
	summaryCache := rediscache.NewDashboardSummaryCache(redisClient, 0)

	// Init store and repositories
	store := repository.NewPGStore(db)
	txManager := repository.NewPGTxManager(db)
	clientRepo := repository.NewDefaultClientRepository(db)
	profitRepo := repository.NewDefaultProfitRepository(db)
	credentialRepo := repository.NewDefaultCredentialRepository(db)
	auditLogger := logger.NewPGAuditLogger(db)
	ledgerMetrics := metrics.NewLedgerMetrics()

	minWithdrawal, err := decimal.NewFromString(cfg.Withdrawal.MinAmount)
	if err != nil || !minWithdrawal.IsPositive() {
		minWithdrawal = decimal.RequireFromString(defaultMinWithdrawal)
	}

	// Init usecases
	ledgerUsecase := usecase.NewDefaultLedgerUsecase(txManager, store, publisher, auditLogger, ledgerMetrics, summaryCache, minWithdrawal)
	referralUsecase := usecase.NewDefaultReferralUsecase(clientRepo, profitRepo)
	clientUsecase := usecase.NewDefaultClientUsecase(clientRepo, credentialRepo, auditLogger)
	licenseUsecase := usecase.NewDefaultLicenseUsecase(txManager, store, publisher, auditLogger, ledgerMetrics, summaryCache)
	reportingUsecase := usecase.NewDefaultReportingUsecase(store, summaryCache)

	router := deliveryhttp.NewRouter(
		handlers.NewClientHandler(clientUsecase),
		handlers.NewLedgerHandler(ledgerUsecase),
		handlers.NewReferralHandler(referralUsecase),
		handlers.NewLicenseHandler(licenseUsecase),
		handlers.NewDashboardHandler(reportingUsecase, auditLogger),
	)

	addr := fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port)
	slog.Info("backoffice service listening", "addr", addr, "env", cfg.Env)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("http server stopped: %v", err)
	}
}

func setupLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}
