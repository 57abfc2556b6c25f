package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	kafkain "fulfillment/internal/adapters/in/kafka"
	kafkaout "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/paymentgate"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/breaker"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into command and query handlers.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	publisher  *kafkaout.Publisher
	gateway    ports.PaymentGateway
	dispatcher services.NotificationDispatcher
}

// NewCompositionRoot builds the object graph shared by the HTTP server, the
// consumer, and the jobs.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	publisher := kafkaout.NewPublisher(configs.KafkaHost, configs.KafkaNotificationTopic, logger)

	gateway := paymentgate.NewGuardedGateway(
		paymentgate.NewStochasticGateway(configs.PaymentSuccessRate, configs.PaymentErrorRate),
		breaker.New(breaker.Policy{
			FailureThreshold: configs.PaymentBreakerFailureThreshold,
			WindowSize:       configs.PaymentBreakerWindowSize,
			MinimumCalls:     configs.PaymentBreakerMinCalls,
			ProbeInterval:    configs.PaymentBreakerProbeInterval,
			CallTimeout:      configs.PaymentBreakerCallTimeout,
		}),
		logger,
	)

	dispatcher := services.NewNotificationDispatcher([]ports.NotificationChannel{
		notify.NewLogChannel(logger),
	})

	return &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		publisher:  publisher,
		gateway:    gateway,
		dispatcher: dispatcher,
	}
}

// ClosePublisher flushes and closes the Kafka writer on shutdown.
func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderPaymentUoWFactory() commands.OrderPaymentUoWFactory {
	return FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notificationUoWFactory() commands.NotificationUoWFactory {
	return FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderPaymentUoWFactory(), c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(
		c.deliveryUoWFactory(), c.configs.MaxActiveDeliveriesPerRider, c.publisher, c.logger)
}

func (c *CompositionRoot) CreatePickupDeliveryCommandHandler() commands.PickupDeliveryCommandHandler {
	return commands.NewPickupDeliveryCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	return commands.NewDeliverOrderCommandHandler(c.deliveryUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateSettlePendingPaymentsCommandHandler() commands.SettlePendingPaymentsCommandHandler {
	return commands.NewSettlePendingPaymentsCommandHandler(
		c.orderPaymentUoWFactory(), c.gateway, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateProcessNotificationCommandHandler() commands.ProcessNotificationCommandHandler {
	return commands.NewProcessNotificationCommandHandler(c.notificationUoWFactory(), c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateRetryNotificationCommandHandler() commands.RetryNotificationCommandHandler {
	return commands.NewRetryNotificationCommandHandler(c.notificationUoWFactory(), c.dispatcher, c.logger)
}

// CreateHTTPServer assembles the REST server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		CancelOrder:       c.CreateCancelOrderCommandHandler(),
		UpdateOrderStatus: c.CreateUpdateOrderStatusCommandHandler(),
		AssignDelivery:    c.CreateAssignDeliveryCommandHandler(),
		PickupDelivery:    c.CreatePickupDeliveryCommandHandler(),
		DeliverOrder:      c.CreateDeliverOrderCommandHandler(),
		RetryNotification: c.CreateRetryNotificationCommandHandler(),

		GetOrderByID:           queries.NewGetOrderByIDQueryHandler(c.gormDB),
		GetOrderHistory:        queries.NewGetOrderHistoryQueryHandler(c.gormDB),
		GetOrderBasic:          queries.NewGetOrderBasicQueryHandler(c.gormDB),
		GetOrderStats:          queries.NewGetOrderStatsQueryHandler(c.gormDB),
		GetPaymentByOrder:      queries.NewGetPaymentByOrderQueryHandler(c.gormDB),
		GetRiderDeliveries:     queries.NewGetRiderDeliveriesQueryHandler(c.gormDB),
		GetNotificationsByRef:  queries.NewGetNotificationsByReferenceQueryHandler(c.gormDB),
		GetNotificationsByUser: queries.NewGetNotificationsByUserQueryHandler(c.gormDB),
		GetFailedNotifications: queries.NewGetFailedNotificationsQueryHandler(c.gormDB),
		GetNotificationStats:   queries.NewGetNotificationStatsQueryHandler(c.gormDB),
	})
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSettlePendingPaymentsCommandHandler(), c.logger)
}

// CreateNotificationConsumer assembles the Kafka consumer group.
func (c *CompositionRoot) CreateNotificationConsumer() *kafkain.Consumer {
	return kafkain.NewConsumer(
		kafkain.ConsumerConfig{
			Broker:        c.configs.KafkaHost,
			GroupID:       c.configs.KafkaConsumerGroup,
			Topic:         c.configs.KafkaNotificationTopic,
			Concurrency:   c.configs.NotificationConsumerConcurrency,
			MaxAttempts:   c.configs.NotificationRetryMaxAttempts,
			RetryInterval: c.configs.NotificationRetryBackoff,
		},
		c.CreateProcessNotificationCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
