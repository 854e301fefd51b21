package main

import (
	"carrier-gateway-service/carriers/ups"
	"carrier-gateway-service/config"
	"carrier-gateway-service/core"
	"carrier-gateway-service/exchanges"
	"carrier-gateway-service/transport"
	"carrier-gateway-service/workers/shipments"
	"carrier-gateway-service/workers/shipments/dedup"
	"carrier-gateway-service/workers/shipments/models"
	"carrier-gateway-service/workers/shipments/processors"
	"carrier-gateway-service/workers/shipments/processors/unsupported"
	upsprocessor "carrier-gateway-service/workers/shipments/processors/ups"
	"carrier-gateway-service/workers/shipments/repositories"
	"context"
	"errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := core.NewLogger(*cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	repo := repositories.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		logger.Fatal("Failed to migrate shipment tables", zap.Error(err))
	}
	if err := db.WithContext(ctx).AutoMigrate(&exchanges.CarrierExchange{}); err != nil {
		logger.Fatal("Failed to migrate exchange log", zap.Error(err))
	}

	var events shipments.EventSet
	redisClient, err := dedup.Connect(ctx, dedup.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		logger.Warn("Redis unavailable, event dedup relies on the database", zap.Error(err))
	} else {
		defer func() { _ = redisClient.Close() }()
		events = dedup.NewEventSet(redisClient, 0)
	}

	exchangeLog := exchanges.NewRepository(db)
	carrierTransport := transport.New(transport.Options{
		Name:     ups.Name,
		Timeout:  cfg.UPSApi.Timeout,
		Recorder: exchangeLog,
	}, logger.Named("transport"))

	client, err := ups.NewClient(ups.Options{
		LicenseKey:         cfg.UPSApi.LicenseKey,
		UserID:             cfg.UPSApi.UserID,
		Password:           cfg.UPSApi.Password,
		Test:               cfg.UPSApi.Test,
		OriginAccount:      cfg.UPSApi.OriginAccount,
		DestinationAccount: cfg.UPSApi.DestinationAccount,
	}, carrierTransport, logger.Named("ups"))
	if err != nil {
		logger.Fatal("Failed to create UPS client", zap.Error(err))
	}

	newProcessor := func(carrier string) processors.CarrierTrackingProcessor {
		switch carrier {
		case models.CarrierUPS:
			return upsprocessor.NewTrackingProcessor(client, ups.TrackOptions{}, logger)
		}
		return unsupported.NewTrackingProcessor(carrier, logger)
	}

	orchestrator := core.NewOrchestrator(logger, []core.Worker{
		shipments.NewWorker(logger, repo, events, newProcessor, cfg.TrackingSchedule),
		exchanges.NewRetentionWorker(logger, exchangeLog, cfg.ExchangeRetention, cfg.ExchangePruneSchedule),
	})

	c, err := orchestrator.Start(ctx)
	if err != nil {
		logger.Fatal("Failed to start orchestrator", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server stopped", zap.Error(err))
		}
	}()

	logger.Info("Carrier gateway started",
		zap.String("metrics_addr", cfg.MetricsAddr),
		zap.Bool("ups_test", cfg.UPSApi.Test),
	)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	<-c.Stop().Done()
}
