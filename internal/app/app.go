package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"golang.org/x/sync/errgroup"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/interfaces/icartrepo"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/rabbitmq"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/redis"
	memorycart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/cart/memory"
	rediscart "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/cart/redis"
	outboxrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/product/postgres"
	sessionrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/session/postgres"
	userrepo "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/repositories/user/postgres"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/jaeger"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/authsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/cartsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/catalogsvc"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/services/ordersvc"
	httptransport "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/transport/http"
	outboxworker "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/worker/outbox"
	sessionworker "github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/worker/sessions"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	sessionWorker  *sessionworker.Worker
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
	tracerProvider *sdktrace.TracerProvider
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracerProvider := setupTracing()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	queueName := viper.GetString("rabbitmq.orders_queue")
	if queueName == "" {
		queueName = "garcon.order.events"
	}
	if _, err := rabbitClient.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	}); err != nil {
		panic("failed to declare orders queue: " + err.Error())
	}

	var redisClient *redis.Client
	var cartRepo icartrepo.ICartRepository
	if viper.GetString("cart.storage") == "redis" {
		redisClient = redis.MustNewClient()
		cartRepo = rediscart.NewRedisCartRepository(redisClient)
	} else {
		cartRepo = memorycart.NewMemoryCartRepository()
	}

	pool := postgresClient.Pool()
	productRepo := productrepo.NewPostgresProductRepository(pool)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)
	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithCartRepository(cartRepo),
		cartsvc.WithProductRepository(productRepo),
		cartsvc.WithOrderService(orderSvc),
	)
	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithProductRepository(productRepo),
	)
	authSvc := authsvc.MustNewAuthService(
		authsvc.WithUserRepository(userrepo.NewPostgresUserRepository(pool)),
		authsvc.WithSessionRepository(sessionrepo.NewPostgresSessionRepository(pool)),
	)

	transport := httptransport.NewHTTPTransport(orderSvc, cartSvc, catalogSvc, authSvc)
	transport.RegisterRoutes()

	return &App{
		transport:      transport,
		outboxWorker:   outboxworker.NewWorker(outboxrepo.NewOutboxRepository(pool), rabbitClient),
		sessionWorker:  sessionworker.NewWorker(authSvc),
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitClient:   rabbitClient,
		tracerProvider: tracerProvider,
	}
}

// Run starts the HTTP server and the background workers and blocks until
// an interrupt signal arrives, then shuts everything down.
func (a *App) Run() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	group.Go(func() error {
		a.outboxWorker.Start(groupCtx)

		return nil
	})

	group.Go(func() error {
		a.sessionWorker.Start(groupCtx)

		return nil
	})

	<-groupCtx.Done()
	slog.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := group.Wait(); err != nil {
		slog.Error("Run group error", "error", err)
	}

	if err := a.tracerProvider.Shutdown(shutdownCtx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			slog.Error("Redis connection close error", "error", err)
		}
	}

	a.postgresClient.Close()

	slog.Info("Application shutdown complete")
}

// setupTracing installs the global tracer provider backed by Jaeger.
func setupTracing() *sdktrace.TracerProvider {
	exporter := jaeger.MustNewJaeger()

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName("garcon-delivery"),
		)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tracerProvider
}
