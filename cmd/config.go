package cmd

import "time"

// Config carries every runtime setting of the service, assembled from the
// environment in cmd/app.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaConsumerGroup     string
	KafkaNotificationTopic string

	PaymentSuccessRate             float64
	PaymentErrorRate               float64
	PaymentBreakerFailureThreshold float64
	PaymentBreakerWindowSize       int
	PaymentBreakerMinCalls         int
	PaymentBreakerProbeInterval    time.Duration
	PaymentBreakerCallTimeout      time.Duration

	MaxActiveDeliveriesPerRider int

	NotificationRetryMaxAttempts    int
	NotificationRetryBackoff        time.Duration
	NotificationConsumerConcurrency int
}
