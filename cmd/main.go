package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	grpcctx "github.com/dtroode/shopkeeper-server/internal/api/grpc/context"
	"github.com/dtroode/shopkeeper-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/shopkeeper-server/internal/api/grpc/server"
	httpx "github.com/dtroode/shopkeeper-server/internal/api/http"
	"github.com/dtroode/shopkeeper-server/internal/config"
	"github.com/dtroode/shopkeeper-server/internal/events/rabbitmq"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/mail"
	"github.com/dtroode/shopkeeper-server/internal/model"
	"github.com/dtroode/shopkeeper-server/internal/otp"
	"github.com/dtroode/shopkeeper-server/internal/password"
	"github.com/dtroode/shopkeeper-server/internal/repository/postgres"
	"github.com/dtroode/shopkeeper-server/internal/server"
	"github.com/dtroode/shopkeeper-server/internal/service"
	storage "github.com/dtroode/shopkeeper-server/internal/storage/minio"
	"github.com/dtroode/shopkeeper-server/internal/token"
	"github.com/dtroode/shopkeeper-server/internal/worker"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, cfg.JWT.RefreshTTL, logger.Component("token"))

	authService := service.NewAuth(
		userRepo,
		password.NewHasher(cfg.Auth.BcryptCost),
		mail.NewOTPMailer(newMailClient(cfg.Mail, logger), cfg.Auth.OTPTTL),
		otp.NewGenerator(),
		tokenService,
		cfg.Auth.OTPTTL,
		logger.Component("auth"),
	)
	catalogService := service.NewCatalog(productRepo, newImageStorage(ctx, cfg.Storage, logger), logger.Component("catalog"))
	cartService := service.NewCart(cartRepo, userRepo, productRepo, cfg.Cart.Retention, logger.Component("cart"))
	orderService := service.NewOrder(orderRepo, userRepo, productRepo, logger.Component("order"))

	r := router.New(router.Services{
		Auth:     authService,
		Tokens:   tokenService,
		Verifier: tokenService,
		Catalog:  catalogService,
		Cart:     cartService,
		Order:    orderService,
	}, cfg.Auth.AdminAPIKey, grpcctx.NewManager(), logger)

	servers := []model.Server{
		grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
		httpx.NewServer(fmt.Sprintf(":%s", cfg.HTTP.Port), db, logger.Component("http")),
	}

	var sl model.SecurityLayer = server.NewPlainLayer()
	if cfg.GRPC.EnableHTTPS {
		tlsLayer, err := server.NewTLSLayer(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
		if err != nil {
			logger.Error("failed to configure TLS", "error", err)
			os.Exit(1)
		}
		sl = tlsLayer
	}

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
			}
		}(s)
	}

	sweeper := worker.NewCartSweeper(cartRepo, cfg.Cart.SweepInterval, cfg.Cart.SweepBatch, logger.Component("sweeper"))
	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	if cfg.RabbitMQ.URL != "" {
		broker, err := rabbitmq.Connect(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Fatal("failed to connect to rabbitmq", "error", err)
		}
		defer broker.Close()

		if err := rabbitmq.DeclareTopology(broker.Ch, cfg.RabbitMQ.Exchange); err != nil {
			logger.Fatal("failed to declare rabbitmq topology", "error", err)
		}

		relay := worker.NewOutboxRelay(outboxRepo, rabbitmq.NewPublisher(broker.Ch, cfg.RabbitMQ.Exchange), worker.OutboxRelayConfig{
			PollInterval: cfg.Outbox.PollInterval,
			BatchSize:    cfg.Outbox.BatchSize,
			MaxAttempts:  cfg.Outbox.MaxAttempts,
			BackoffMax:   cfg.Outbox.BackoffMax,
		}, logger.Component("outbox"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Run(ctx)
		}()
	} else {
		logger.Warn("RABBITMQ_URL is empty, order events stay in the outbox")
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newMailClient(cfg config.Mail, logger *logger.Logger) mail.Client {
	if cfg.SendGridAPIKey == "" {
		logger.Warn("MAIL_SENDGRID_API_KEY is empty, OTP emails are only logged")
		return mail.NewLogClient(logger.Component("mail"))
	}
	return mail.NewSendGridClient(cfg.SendGridAPIKey, cfg.FromName, cfg.FromAddress, logger.Component("mail"))
}

// newImageStorage returns nil when object storage is unreachable. Products
// can then only be created with an image URL.
func newImageStorage(ctx context.Context, cfg config.Storage, logger *logger.Logger) model.Storage {
	client, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize image storage, uploads disabled", "error", err)
		return nil
	}
	return client
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
