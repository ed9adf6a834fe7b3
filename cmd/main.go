package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/SergeyBogomolovv/shared-payment-service/docs"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/app"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/config"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/events"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/gateway"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/handler"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/middleware"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/postgres"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/provider"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/ratelimit"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/redis"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/repo"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/service"
	"github.com/SergeyBogomolovv/shared-payment-service/internal/tracing"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/cache"
	"github.com/SergeyBogomolovv/shared-payment-service/pkg/trm"

	"github.com/joho/godotenv"
)

// @title           Shared Payment Service API
// @version         1.0
// @description     Документация HTTP API: ссылки на оплату заказов, оплата и уведомления шлюзов
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, logger, conf.Tracing, conf.Env)
	panicIfErr("failed to setup tracing", err)

	db, err := postgres.New(ctx, conf.Postgres)
	panicIfErr("failed to connect to db", err)
	logger.Info("postgres connected")

	rdb, err := redis.New(ctx, conf.Redis)
	panicIfErr("failed to connect to redis", err)
	logger.Info("redis connected")

	pgRepo := repo.NewPostgresRepo(db)
	txManager := trm.NewManager(db)
	viewCache := cache.NewLRU[string, []byte](conf.Cache.Capacity, conf.Cache.TTL)

	schemas, err := provider.NewSchemaValidator()
	panicIfErr("failed to compile provider schemas", err)
	custom, err := provider.NewCustom(schemas)
	panicIfErr("failed to setup custom providers", err)
	providers := provider.NewRegistry(
		provider.NewGateway(gateway.NewClient(logger, conf.Gateway), schemas),
		provider.NewDirect(schemas),
		custom,
	)

	eventsWriter := events.NewWriter(conf.Kafka)
	publisher := events.NewPublisher(logger, eventsWriter)

	clock := service.Clock(time.Now)
	settler := service.NewSettler(logger, pgRepo, pgRepo, service.NewGuard(pgRepo), publisher, clock)

	orderService := service.NewOrderService(logger, txManager, pgRepo)
	shareService := service.NewShareService(logger, pgRepo, pgRepo, viewCache, conf.Share, clock)
	paymentService := service.NewPaymentService(logger, txManager, pgRepo, pgRepo, pgRepo, providers, settler, conf.Share, clock)
	webhookService := service.NewWebhookService(logger, txManager, pgRepo, pgRepo, pgRepo, pgRepo, providers, settler, clock)

	auth := middleware.NewAuth(logger, conf.Auth.JWTSecret)
	limiter := ratelimit.NewLimiter(rdb, "shared-order", conf.Redis.RateLimitPerMinute, conf.Redis.RateLimitBurst)
	guards := handler.Guards{
		User:    auth.Required,
		Visitor: auth.Optional,
		Admin:   middleware.RequireRole(middleware.RoleAdmin),
		Limited: middleware.RateLimit(logger, limiter),
	}

	handler.RegisterMetrics()

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(
		handler.NewShareHandler(logger, shareService, guards),
		handler.NewPaymentHandler(logger, paymentService, guards),
		handler.NewWebhookHandler(logger, webhookService),
		handler.NewAdminHandler(logger, orderService, guards),
	)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(viewCache)
	app.OnStop(
		func(context.Context) error { return db.Close() },
		func(context.Context) error { return rdb.Close() },
		shutdownTracing,
		func(context.Context) error { return eventsWriter.Close() },
	)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
