package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/pethaven/pethaven-api/internal/app/httpapi"
	"github.com/pethaven/pethaven-api/internal/clients/http/images"
	"github.com/pethaven/pethaven-api/internal/clients/http/payment"
	platformmigrations "github.com/pethaven/pethaven-api/internal/platform/migrations"
	platformobservability "github.com/pethaven/pethaven-api/internal/platform/observability"
	platformpostgres "github.com/pethaven/pethaven-api/internal/platform/postgres"
	"github.com/pethaven/pethaven-api/internal/platform/ratelimit"

	adoptionsmemory "github.com/pethaven/pethaven-api/internal/domains/adoptions/adapters/memory"
	adoptionsobs "github.com/pethaven/pethaven-api/internal/domains/adoptions/adapters/observability"
	adoptionspostgres "github.com/pethaven/pethaven-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionsapp "github.com/pethaven/pethaven-api/internal/domains/adoptions/application"
	adoptionsports "github.com/pethaven/pethaven-api/internal/domains/adoptions/ports"

	"github.com/pethaven/pethaven-api/internal/domains/assistant/adapters/canned"
	"github.com/pethaven/pethaven-api/internal/domains/assistant/adapters/gemini"
	assistantapp "github.com/pethaven/pethaven-api/internal/domains/assistant/application"
	assistantports "github.com/pethaven/pethaven-api/internal/domains/assistant/ports"

	catalogmemory "github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/pethaven/pethaven-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/pethaven/pethaven-api/internal/domains/catalog/application"
	catalogports "github.com/pethaven/pethaven-api/internal/domains/catalog/ports"

	ordersmemory "github.com/pethaven/pethaven-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/pethaven/pethaven-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/pethaven/pethaven-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/pethaven/pethaven-api/internal/domains/orders/application"
	ordersports "github.com/pethaven/pethaven-api/internal/domains/orders/ports"

	petsmemory "github.com/pethaven/pethaven-api/internal/domains/pets/adapters/memory"
	petspostgres "github.com/pethaven/pethaven-api/internal/domains/pets/adapters/persistence/postgres"
	petsapp "github.com/pethaven/pethaven-api/internal/domains/pets/application"
	petsports "github.com/pethaven/pethaven-api/internal/domains/pets/ports"

	usersmemory "github.com/pethaven/pethaven-api/internal/domains/users/adapters/memory"
	userspostgres "github.com/pethaven/pethaven-api/internal/domains/users/adapters/persistence/postgres"
	usersapp "github.com/pethaven/pethaven-api/internal/domains/users/application"
	usersports "github.com/pethaven/pethaven-api/internal/domains/users/ports"
)

const assistantRequestsPerMinute = 8

// Run boots the PetHaven HTTP API with observability, repositories, and
// external clients wired. Repositories use PostgreSQL when POSTGRES_DSN is
// set and fall back to in-memory implementations otherwise.
func Run(ctx context.Context) error {
	const serviceName = "pethaven-api"

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectWithFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var (
		userRepo     usersports.Repository
		petRepo      petsports.Repository
		requestRepo  adoptionsports.Repository
		productRepo  catalogports.Repository
		cartRepo     catalogports.CartRepository
		orderRepo    ordersports.Repository
	)
	if db != nil {
		userRepo = userspostgres.NewRepository(db)
		petRepo = petspostgres.NewRepository(db)
		requestRepo = adoptionspostgres.NewRepository(db)
		productRepo = catalogpostgres.NewRepository(db)
		cartRepo = catalogpostgres.NewCartRepository(db)
		orderRepo = orderspostgres.NewRepository(db)
	} else {
		userRepo = usersmemory.NewRepository()
		memPets := petsmemory.NewRepository()
		petRepo = memPets
		requestRepo = adoptionsmemory.NewRepository(memPets)
		memProducts := catalogmemory.NewRepository()
		memCart := catalogmemory.NewCartRepository()
		productRepo = memProducts
		cartRepo = memCart
		orderRepo = ordersmemory.NewRepository(memProducts, memCart)
	}

	var imageStore petsports.ImageStore
	if cfg.ImageServiceURL != "" {
		imageClient, err := images.NewClient(cfg.ImageServiceURL, cfg.ImageServiceKey)
		if err != nil {
			return fmt.Errorf("failed to configure image service client: %w", err)
		}
		imageStore = imageClient
	} else {
		logger.Warn("IMAGE_SERVICE_URL not set, pet photo uploads disabled")
	}
	petService := petsapp.NewService(petRepo, imageStore)

	adoptionService := adoptionsobs.New(
		adoptionsapp.NewService(requestRepo, petRepo),
		adoptionsobs.WithLogger(logger),
		adoptionsobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionsobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)

	productService := catalogapp.NewProductService(productRepo)
	cartService := catalogapp.NewCartService(productRepo, cartRepo)

	var gateway ordersports.PaymentGateway = disabledGateway{}
	if cfg.RazorpayKeyID != "" {
		gatewayClient, err := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		if err != nil {
			return fmt.Errorf("failed to configure payment gateway client: %w", err)
		}
		gateway = gatewayClient
	} else {
		logger.Warn("RAZORPAY_KEY_ID not set, gateway checkout disabled (COD still available)")
	}
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, productRepo, cartRepo, gateway),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	userService := usersapp.NewService(userRepo)

	var limiterStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer redisClient.Close()
		limiterStore = ratelimit.NewRedisStore(redisClient)
		logger.Info("assistant rate limiter backed by redis", slog.String("addr", cfg.RedisAddr))
	}
	limiter := ratelimit.New(limiterStore, assistantRequestsPerMinute, time.Minute)

	var generator assistantports.Generator = canned.NewGenerator()
	if cfg.GeminiAPIKey != "" {
		generator = gemini.NewClient(cfg.GeminiAPIKey)
	} else {
		logger.Warn("GEMINI_API_KEY not set, assistant replies with canned responses")
	}
	assistantService := assistantapp.NewService(userRepo, generator, limiter)

	router := httpapi.NewRouter(httpapi.Services{
		Pets:      petService,
		Adoptions: adoptionService,
		Products:  productService,
		Cart:      cartService,
		Orders:    orderService,
		Users:     userService,
		Assistant: assistantService,
	}, []byte(cfg.JWTSecret), serviceName)

	addr := ":" + cfg.Port
	logger.Info("PetHaven API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("PetHaven API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// disabledGateway rejects gateway payment flows when no credentials are
// configured. COD checkout does not touch it.
type disabledGateway struct{}

func (disabledGateway) CreateOrder(context.Context, decimal.Decimal, string, string) (string, error) {
	return "", errors.New("payment gateway credentials are not configured")
}

func (disabledGateway) VerifySignature(string, string, string) bool { return false }

func (disabledGateway) Refund(context.Context, string, decimal.Decimal) error {
	return errors.New("payment gateway credentials are not configured")
}
