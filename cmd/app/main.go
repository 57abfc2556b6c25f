package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/notificationrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/paymentrepo"
	"fulfillment/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	metrics.Register()

	root := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() { _ = root.ClosePublisher() }()

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := root.CreateNotificationConsumer()
	consumer.Start(ctx)
	defer func() { _ = consumer.Close() }()

	startWebServer(root.CreateHTTPServer(), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Fatalf("Error loading .env file")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		KafkaHost:              os.Getenv("KAFKA_HOST"),
		KafkaConsumerGroup:     os.Getenv("KAFKA_CONSUMER_GROUP"),
		KafkaNotificationTopic: os.Getenv("KAFKA_NOTIFICATION_TOPIC"),

		PaymentSuccessRate:             envFloat("PAYMENT_SUCCESS_RATE", 0.9),
		PaymentErrorRate:               envFloat("PAYMENT_ERROR_RATE", 0.1),
		PaymentBreakerFailureThreshold: envFloat("PAYMENT_BREAKER_FAILURE_THRESHOLD", 0.5),
		PaymentBreakerWindowSize:       envInt("PAYMENT_BREAKER_WINDOW_SIZE", 10),
		PaymentBreakerMinCalls:         envInt("PAYMENT_BREAKER_MIN_CALLS", 5),
		PaymentBreakerProbeInterval:    envDurationMs("PAYMENT_BREAKER_PROBE_INTERVAL_MS", 10000),
		PaymentBreakerCallTimeout:      envDurationMs("PAYMENT_BREAKER_CALL_TIMEOUT_MS", 3000),

		MaxActiveDeliveriesPerRider: envInt("MAX_ACTIVE_DELIVERIES_PER_RIDER", 3),

		NotificationRetryMaxAttempts:    envInt("NOTIFICATION_RETRY_MAX_ATTEMPTS", 3),
		NotificationRetryBackoff:        envDurationMs("NOTIFICATION_RETRY_BACKOFF_MS", 1000),
		NotificationConsumerConcurrency: envInt("NOTIFICATION_CONSUMER_CONCURRENCY", 3),
	}
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return value
}

func envDurationMs(key string, fallbackMs int) time.Duration {
	return time.Duration(envInt(key, fallbackMs)) * time.Millisecond
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&paymentrepo.PaymentDTO{},
		&deliveryrepo.DeliveryDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return gormDB
}

func startWebServer(server *httpin.Server, port string) {
	e := echo.New()
	server.RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
