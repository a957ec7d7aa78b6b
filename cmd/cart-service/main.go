package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jcmexdev/storefront-cart/internal/cart"
	"github.com/jcmexdev/storefront-cart/internal/cart/broadcast"
	"github.com/jcmexdev/storefront-cart/internal/cart/storage/memory"
	redisstorage "github.com/jcmexdev/storefront-cart/internal/cart/storage/redis"
	sqlitestorage "github.com/jcmexdev/storefront-cart/internal/cart/storage/sqlite"
	"github.com/jcmexdev/storefront-cart/internal/checkout"
	"github.com/jcmexdev/storefront-cart/internal/checkout/submit"
	"github.com/jcmexdev/storefront-cart/internal/httpx"
	"github.com/jcmexdev/storefront-cart/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront-cart/internal/promo"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.SetupTracer(ctx, getEnv("OTEL_SERVICE_NAME", "cart-service"))
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	cartID := getEnv("CART_ID", "default")
	storage, closeStorage, err := buildStorage(ctx, cartID)
	if err != nil {
		slog.Error("failed to initialise storage", "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	bcast, err := buildBroadcaster(ctx, cartID)
	if err != nil {
		slog.Error("failed to initialise broadcaster", "error", err)
		os.Exit(1)
	}
	defer bcast.Close()

	store := cart.NewStore(ctx, storage, bcast)
	promos := promo.NewController(promo.NewRegistry())
	session := checkout.NewSession(store, promos)
	submitter := submit.NewHTTPSubmitter(nil, getEnv("ORDER_ENDPOINT", "http://localhost:8081/orders"))

	handler := httpx.NewHandler(store, session, submitter)
	router := httpx.NewRouter(handler)

	addr := ":" + getEnv("PORT", "8080")
	server := &http.Server{Addr: addr, Handler: router}

	go func() {
		slog.Info("cart service running", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", "error", err)
	}
}

// buildStorage picks the durable backend from CART_STORAGE: "redis" (the
// default when REDIS_ADDR is set), "sqlite", or "memory".
func buildStorage(ctx context.Context, cartID string) (cart.Storage, func(), error) {
	backend := getEnv("CART_STORAGE", "")
	if backend == "" {
		if os.Getenv("REDIS_ADDR") != "" {
			backend = "redis"
		} else {
			backend = "sqlite"
		}
	}

	switch backend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
		return redisstorage.New(client, cartID), func() { _ = client.Close() }, nil
	case "sqlite":
		s, err := sqlitestorage.Open(getEnv("CART_DB_PATH", "cart.db"), cartID)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return memory.New(), func() {}, nil
	default:
		return nil, nil, errors.New("CART_STORAGE must be redis, sqlite, or memory")
	}
}

// buildBroadcaster uses the Redis pub/sub channel when Redis is configured
// so instances in other processes see this one's writes; otherwise it falls
// back to the in-process bus.
func buildBroadcaster(ctx context.Context, cartID string) (cart.Broadcaster, error) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: addr})
		return broadcast.NewChannel(ctx, client, "storefront:cart-changed:"+cartID)
	}
	return broadcast.NewBus().Join(), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
