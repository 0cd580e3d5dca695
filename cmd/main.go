package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/create_booking"
	createCheckoutHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/create_checkout_session"
	fakeCheckoutHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/fake_checkout"
	getAvailableSlotsHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_booking"
	getCheckoutStatusHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_checkout_status"
	getCleanersHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_cleaners"
	getMeHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_me"
	getServiceAreasHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_service_areas"
	getServicesHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_services"
	getUserBookingsHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/get_user_bookings"
	loginHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/login"
	registerHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/register"
	stripeWebhookHandler "github.com/m04kA/SMC-CleaningBooking/internal/api/handlers/stripe_webhook"
	"github.com/m04kA/SMC-CleaningBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CleaningBooking/internal/config"
	"github.com/m04kA/SMC-CleaningBooking/internal/domain"
	"github.com/m04kA/SMC-CleaningBooking/internal/infra/idempotency"
	bookingRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/booking"
	cleanerRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/cleaner"
	paymentRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/payment"
	userRepo "github.com/m04kA/SMC-CleaningBooking/internal/infra/storage/user"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/fakecheckout"
	"github.com/m04kA/SMC-CleaningBooking/internal/integrations/stripecheckout"
	authService "github.com/m04kA/SMC-CleaningBooking/internal/service/auth"
	bookingsService "github.com/m04kA/SMC-CleaningBooking/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-CleaningBooking/internal/service/catalog"
	createBookingUC "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_booking"
	createCheckoutUC "github.com/m04kA/SMC-CleaningBooking/internal/usecase/create_checkout_session"
	getAvailableSlotsUC "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_available_slots"
	getCheckoutStatusUC "github.com/m04kA/SMC-CleaningBooking/internal/usecase/get_checkout_status"
	"github.com/m04kA/SMC-CleaningBooking/migrations"
	"github.com/m04kA/SMC-CleaningBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/logger"
	"github.com/m04kA/SMC-CleaningBooking/pkg/metrics"
	"github.com/m04kA/SMC-CleaningBooking/pkg/txmanager"
)

// PaymentProvider общий интерфейс stripe и тестового провайдера
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.PaymentSession, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*domain.CheckoutStatus, error)
	ParseWebhook(payload []byte, signature string) (*domain.WebhookEvent, error)
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-CleaningBooking...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Метрики запросов пишутся только при включённых метриках, обёртка нужна в любом случае ради транзакций
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Redis для Idempotency-Key (опционально)
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal("Invalid redis url: %v", err)
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable, idempotency falls back to the database: %v", err)
		} else {
			log.Info("Connected to redis at %s", opts.Addr)
		}
		cancel()
	} else {
		log.Warn("Redis url is empty, idempotency relies on the database only")
	}

	// Провайдер оплаты
	var (
		provider     PaymentProvider
		fakeProvider *fakecheckout.Client
	)
	switch cfg.Payments.Provider {
	case "stripe":
		stripeClient, err := stripecheckout.NewClient(cfg.Payments.StripeAPIKey, cfg.Payments.WebhookSecret, nil, log)
		if err != nil {
			log.Fatal("Failed to initialize stripe client: %v", err)
		}
		provider = stripeClient
		log.Info("Payment provider: stripe")
	case "fake":
		fakeProvider, err = fakecheckout.NewClient(cfg.Payments.PublicBaseURL)
		if err != nil {
			log.Fatal("Failed to initialize fake payment provider: %v", err)
		}
		provider = fakeProvider
		log.Warn("Payment provider: fake (development only)")
	case "":
		log.Warn("Payment provider is not configured, checkout endpoints will return errors")
	default:
		log.Fatal("Unknown payment provider %q", cfg.Payments.Provider)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	cleanerRepository := cleanerRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	idempotencyStore := idempotency.NewStore(redisClient, time.Duration(cfg.Redis.IdempotencyTTL)*time.Second, log)

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(cleanerRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	authSvc, err := authService.NewService(
		userRepository,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTLHours,
		cfg.Auth.BcryptCost,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize auth service: %v", err)
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		cleanerRepository,
		idempotencyStore,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(log)
	createCheckoutUseCase := createCheckoutUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		provider,
		cfg.Payments.Currency,
		log,
	)
	getCheckoutStatusUseCase := getCheckoutStatusUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		provider,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getServices := getServicesHandler.NewHandler(catalogSvc)
	getCleaners := getCleanersHandler.NewHandler(catalogSvc, log)
	getServiceAreas := getServiceAreasHandler.NewHandler(catalogSvc)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	createCheckout := createCheckoutHandler.NewHandler(createCheckoutUseCase, log)
	getCheckoutStatus := getCheckoutStatusHandler.NewHandler(getCheckoutStatusUseCase, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(getCheckoutStatusUseCase, log)
	register := registerHandler.NewHandler(authSvc, log)
	login := loginHandler.NewHandler(authSvc, log)
	getMe := getMeHandler.NewHandler(authSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/services", getServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/cleaners", getCleaners.Handle).Methods(http.MethodGet)
	api.HandleFunc("/service-areas", getServiceAreas.Handle).Methods(http.MethodGet)
	api.HandleFunc("/time-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	// Токен необязателен: с ним бронирование привязывается к клиенту
	api.Handle("/bookings",
		middleware.OptionalAuth(authSvc, log)(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// --- Оплата ---
	api.HandleFunc("/checkout/session", createCheckout.Handle).Methods(http.MethodPost)
	api.HandleFunc("/checkout/status/{sessionId}", getCheckoutStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/webhook/stripe", stripeWebhook.Handle).Methods(http.MethodPost)

	if fakeProvider != nil {
		fakeCheckout := fakeCheckoutHandler.NewHandler(fakeProvider, log)
		api.HandleFunc("/checkout/fake/{sessionId}", fakeCheckout.Handle).Methods(http.MethodGet)
	}

	// --- Авторизация ---
	limiter := middleware.NewRateLimiter(cfg.Auth.RateLimitPerSec, cfg.Auth.RateLimitBurst)
	api.Handle("/auth/register",
		middleware.RateLimit(limiter, log)(http.HandlerFunc(register.Handle))).Methods(http.MethodPost)
	api.Handle("/auth/login",
		middleware.RateLimit(limiter, log)(http.HandlerFunc(login.Handle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(authSvc, log))

	protected.HandleFunc("/auth/me", getMe.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customer/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customer/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", createBookingHandler.HeaderIdempotencyKey},
		ExposedHeaders:   []string{createBookingHandler.HeaderReplayed},
		AllowCredentials: false,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
