package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vehiql-main/internal/analytics"
	"vehiql-main/internal/app"
	"vehiql-main/internal/kafka"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const cfgPath = "config/analytics-config.yaml"

func main() {
	// Init logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	logger := zapLogger.Sugar()
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Parse config
	c, err := analytics.NewConfig(cfgPath)
	if err != nil {
		logger.Fatalf("Error parsing config: %v", err)
	}

	// Init DB
	db, err := app.NewPostgres(ctx, c.CfgDB, c.MaxOpenConns)
	if err != nil {
		logger.Fatalf("Error connecting to DB: %v", err)
	}
	defer db.Close()

	// Init Kafka Consumer
	consumer := kafka.NewConsumer(c.CfgKafka.Brokers, c.CfgKafka.Topic, c.CfgKafka.GroupID, logger)
	defer consumer.Close()

	// Init analytics repository и service через интерфейсы
	repo := analytics.NewRepository(db, logger)
	service := analytics.NewService(repo, logger)

	// Start event processor
	go consumer.Consume(ctx, service.ProcessEvent)

	// Init HTTP server
	handler := analytics.NewHandler(service, logger)
	r := mux.NewRouter()
	r.HandleFunc("/user/{user_id}/preferences", handler.GetUserPreferences).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         ":" + c.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Starting analytics service on :%s", c.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
