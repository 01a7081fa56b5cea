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

	cancelJobHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/cancel_job"
	checkAvailabilityHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/check_availability"
	createJobHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/create_job"
	createPriceOverrideHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/create_price_override"
	deletePriceOverrideHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/delete_price_override"
	getJobHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/get_job"
	getServiceDurationHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/get_service_duration"
	listJobsHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/list_jobs"
	quotePriceHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/quote_price"
	setStandardPriceHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/set_standard_price"
	updateJobHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/update_job"
	updateJobStatusHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/update_job_status"
	updateServiceDurationHandler "github.com/m04kA/SMC-DetailingCRM/internal/api/handlers/update_service_duration"
	"github.com/m04kA/SMC-DetailingCRM/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/config"
	addonRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/addon"
	jobRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/job"
	pricingRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/pricing"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	calendarClient "github.com/m04kA/SMC-DetailingCRM/internal/integrations/calendarapi"
	catalogService "github.com/m04kA/SMC-DetailingCRM/internal/service/catalog"
	jobsService "github.com/m04kA/SMC-DetailingCRM/internal/service/jobs"
	pricingService "github.com/m04kA/SMC-DetailingCRM/internal/service/pricing"
	checkAvailabilityUC "github.com/m04kA/SMC-DetailingCRM/internal/usecase/check_availability"
	createJobUC "github.com/m04kA/SMC-DetailingCRM/internal/usecase/create_job"
	quotePriceUC "github.com/m04kA/SMC-DetailingCRM/internal/usecase/quote_price"
	updateJobUC "github.com/m04kA/SMC-DetailingCRM/internal/usecase/update_job"
	"github.com/m04kA/SMC-DetailingCRM/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingCRM/pkg/logger"
	"github.com/m04kA/SMC-DetailingCRM/pkg/metrics"
	"github.com/m04kA/SMC-DetailingCRM/pkg/simpletxmanager"
	"github.com/m04kA/SMC-DetailingCRM/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SMC-DetailingCRM...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем клиента календаря
	calendar := calendarClient.NewClient(
		cfg.Calendar.URL,
		time.Duration(cfg.Calendar.Timeout)*time.Second,
		log,
	)
	log.Info("Calendar client initialized (url=%s, timeout=%ds)", cfg.Calendar.URL, cfg.Calendar.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		jobRepository     *jobRepo.Repository
		pricingRepository *pricingRepo.Repository
		serviceRepository *serviceRepo.Repository
		addonRepository   *addonRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		jobRepository = jobRepo.NewRepository(wrappedDB)
		pricingRepository = pricingRepo.NewRepository(wrappedDB)
		serviceRepository = serviceRepo.NewRepository(wrappedDB)
		addonRepository = addonRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		jobRepository = jobRepo.NewRepository(db)
		pricingRepository = pricingRepo.NewRepository(db)
		serviceRepository = serviceRepo.NewRepository(db)
		addonRepository = addonRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Собираем ядро бронирования
	tieBreak, err := bookingengine.ParseTieBreakPolicy(cfg.Pricing.OverrideTieBreak)
	if err != nil {
		log.Fatal("Invalid pricing.override_tie_break: %v", err)
	}

	priceResolver := bookingengine.NewPriceResolver(
		pricingRepository,
		addonRepository,
		cfg.Pricing.VATRate,
		tieBreak,
		log,
	)
	conflictChecker := bookingengine.NewConflictChecker(calendar, log)
	log.Info("Booking engine initialized (vat_rate=%.2f, tie_break=%s)", cfg.Pricing.VATRate, tieBreak)

	// Инициализируем сервисы
	jobsSvc := jobsService.NewService(jobRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	pricingSvc := pricingService.NewService(pricingRepository, serviceRepository, log)

	// Инициализируем use cases
	createJobUseCase := createJobUC.NewUseCase(
		jobRepository,
		serviceRepository,
		priceResolver,
		conflictChecker,
		txMgr,
		log,
	)
	updateJobUseCase := updateJobUC.NewUseCase(
		jobRepository,
		serviceRepository,
		priceResolver,
		conflictChecker,
		txMgr,
		log,
	)
	quotePriceUseCase := quotePriceUC.NewUseCase(
		serviceRepository,
		priceResolver,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(conflictChecker, log)

	// Инициализируем handlers
	createJob := createJobHandler.NewHandler(createJobUseCase, log)
	updateJob := updateJobHandler.NewHandler(updateJobUseCase, log)
	getJob := getJobHandler.NewHandler(jobsSvc, log)
	listJobs := listJobsHandler.NewHandler(jobsSvc, log)
	cancelJob := cancelJobHandler.NewHandler(jobsSvc, log)
	updateJobStatus := updateJobStatusHandler.NewHandler(jobsSvc, log)
	quotePrice := quotePriceHandler.NewHandler(quotePriceUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getServiceDuration := getServiceDurationHandler.NewHandler(catalogSvc, log)
	updateServiceDuration := updateServiceDurationHandler.NewHandler(catalogSvc, log)
	setStandardPrice := setStandardPriceHandler.NewHandler(pricingSvc, log)
	createPriceOverride := createPriceOverrideHandler.NewHandler(pricingSvc, log)
	deletePriceOverride := deletePriceOverrideHandler.NewHandler(pricingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Предварительный расчёт цены
	api.HandleFunc("/quotes", quotePrice.Handle).Methods(http.MethodPost)

	// Рекомендательная проверка занятости окна
	api.HandleFunc("/availability/check", checkAvailability.Handle).Methods(http.MethodPost)

	// Длительность услуги
	api.HandleFunc("/services/{serviceId}/duration", getServiceDuration.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Работы ---
	// Создание работы
	protected.HandleFunc("/jobs", createJob.Handle).Methods(http.MethodPost)

	// Доска работ с фильтрацией
	protected.HandleFunc("/jobs", listJobs.Handle).Methods(http.MethodGet)

	// Получение работы по ID
	protected.HandleFunc("/jobs/{jobId}", getJob.Handle).Methods(http.MethodGet)

	// Изменение работы
	protected.HandleFunc("/jobs/{jobId}", updateJob.Handle).Methods(http.MethodPatch)

	// Отмена работы
	protected.HandleFunc("/jobs/{jobId}/cancel", cancelJob.Handle).Methods(http.MethodPatch)

	// Перевод работы между этапами доски
	protected.HandleFunc("/jobs/{jobId}/status", updateJobStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог услуг ---
	// Изменение длительности услуги
	protected.HandleFunc("/services/{serviceId}/duration", updateServiceDuration.Handle).Methods(http.MethodPut)

	// --- Цены ---
	// Установка стандартного тарифа
	protected.HandleFunc("/services/{serviceId}/pricing", setStandardPrice.Handle).Methods(http.MethodPut)

	// Создание клиентской цены
	protected.HandleFunc("/customers/{customerId}/pricing", createPriceOverride.Handle).Methods(http.MethodPost)

	// Удаление клиентской цены
	protected.HandleFunc("/pricing/overrides/{overrideId}", deletePriceOverride.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
