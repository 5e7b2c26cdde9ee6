package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/atikxb/manufacturing-company-server-side/internal/app"
	"github.com/atikxb/manufacturing-company-server-side/internal/auth"
	"github.com/atikxb/manufacturing-company-server-side/internal/clock"
	"github.com/atikxb/manufacturing-company-server-side/internal/config"
	"github.com/atikxb/manufacturing-company-server-side/internal/events"
	"github.com/atikxb/manufacturing-company-server-side/internal/payment"
	"github.com/atikxb/manufacturing-company-server-side/internal/storage/postgres"
	transporthttp "github.com/atikxb/manufacturing-company-server-side/internal/transport/http"
	"github.com/atikxb/manufacturing-company-server-side/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publisher events.Publisher = events.Nop{}
	var kafkaPub *events.KafkaPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub = events.NewKafkaPublisher(cfg.KafkaBrokers, logger, 256)
		kafkaPub.Start(stopCtx)
		publisher = kafkaPub
		logger.Info("kafka publisher enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	sysClock := clock.NewSystem()
	partRepo := postgres.NewPartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	issuer := auth.NewIssuer(cfg.TokenSecret, sysClock)
	stripeBridge := payment.NewStripeBridge(cfg.StripeSecretKey)

	orderSvc := app.NewOrderService(
		partRepo, orderRepo, paymentRepo, userRepo, stripeBridge, sysClock,
		app.WithEventPublisher(publisher, cfg.ServiceName),
	)
	userSvc := app.NewUserService(userRepo, issuer, sysClock)
	partSvc := app.NewPartService(partRepo)

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Parts:    partSvc,
		Orders:   orderSvc,
		Users:    userSvc,
		Verifier: issuer,
		Logger:   logger,
	})
	handler := transporthttp.CORS(cfg.CORSOrigins, router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}

	if kafkaPub != nil {
		stop()
		kafkaPub.WaitClosed()
	}
	logger.Info("server stopped")
}
