package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	kafkain "ordering/internal/adapters/in/kafka"
	"ordering/internal/adapters/out/catalog"
	kafkaout "ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB, err := gorm.Open(pgdriver.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	m := metrics.NewDefault()

	writer := kafkaout.NewWriter(configs.KafkaBrokers, configs.KafkaOrderExchange, configs.KafkaAsync)
	publisher := kafkaout.NewOrderEventPublisher(writer, configs.KafkaOrderRoutingKey)
	catalogClient := catalog.NewClient(configs.CatalogBaseURL, configs.CatalogTimeout, m)

	app := cmd.NewCompositionRoot(configs, gormDB, catalogClient, publisher, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	jobManager := jobs.NewJobManager(app.CreateGetOrderStatsQueryHandler(), m, configs.OrderStatsSchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}

	consumerDone := make(chan struct{})
	if configs.NotificationsEnabled {
		kafkaReader := kafkain.NewReader(configs.KafkaBrokers, configs.KafkaOrderExchange, configs.KafkaConsumerGroup)
		defer kafkaReader.Close()
		consumer := kafkain.NewNotificationConsumer(kafkaReader, logger)
		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil {
				logger.Error("notification consumer stopped", "error", err)
			}
		}()
	} else {
		close(consumerDone)
	}

	e := newRouter(app, m, logger)
	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("http server started", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	jobManager.StopAll()
	<-consumerDone

	if err := writer.Close(); err != nil {
		logger.Error("failed to flush order events", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newRouter(app cmd.CompositionRoot, m *metrics.Metrics, logger *slog.Logger) *echo.Echo {
	createOrder := app.CreateCreateOrderCommandHandler()
	changeOrderStatus := app.CreateChangeOrderStatusCommandHandler()

	server := httpin.NewServer(
		&createOrder,
		&changeOrderStatus,
		app.CreateGetOrderQueryHandler(),
		app.CreateListOrdersQueryHandler(),
	)
	return httpin.NewRouter(server, m, logger)
}
