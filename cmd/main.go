package main

import (
	"context"
	"database/sql"
	"errors"
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
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/complete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/get_appointment"
	getCalendarSettingsHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/get_calendar_settings"
	getOwnerAppointmentsHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/get_owner_appointments"
	resolveSlotHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/resolve_slot"
	scheduleAppointmentHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/schedule_appointment"
	updateCalendarSettingsHandler "github.com/m04kA/SMC-ShowingService/internal/api/handlers/update_calendar_settings"
	"github.com/m04kA/SMC-ShowingService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowingService/internal/config"
	settingsCache "github.com/m04kA/SMC-ShowingService/internal/infra/cache/settings"
	appointmentRepo "github.com/m04kA/SMC-ShowingService/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/SMC-ShowingService/internal/infra/storage/settings"
	backendClient "github.com/m04kA/SMC-ShowingService/internal/integrations/backend"
	conferencingClient "github.com/m04kA/SMC-ShowingService/internal/integrations/conferencing"
	"github.com/m04kA/SMC-ShowingService/internal/integrations/notifier"
	appointmentsService "github.com/m04kA/SMC-ShowingService/internal/service/appointments"
	settingsService "github.com/m04kA/SMC-ShowingService/internal/service/settings"
	resolveSlotUC "github.com/m04kA/SMC-ShowingService/internal/usecase/resolve_slot"
	scheduleAppointmentUC "github.com/m04kA/SMC-ShowingService/internal/usecase/schedule_appointment"
	"github.com/m04kA/SMC-ShowingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShowingService/pkg/logger"
	"github.com/m04kA/SMC-ShowingService/pkg/metrics"
	"github.com/m04kA/SMC-ShowingService/pkg/tracing"
	"github.com/m04kA/SMC-ShowingService/pkg/txmanager"
)

const serviceName = "SMC-ShowingService"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
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

	log.Info("Starting %s...", serviceName)
	log.Info("Configuration loaded from %s", configPath)

	loc, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid scheduling timezone: %v", err)
	}

	// Трейсинг (если выключен - глобальный no-op провайдер)
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  serviceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}

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

	// Оборачиваем БД (с метриками или без)
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	// Кеш настроек календаря (опционально)
	var (
		redisClient *redis.Client
		cache       settingsService.SettingsCache
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Кеш не критичен: без него настройки читаются из БД
			log.Warn("Redis is unavailable at %s, settings cache may degrade: %v", cfg.Redis.Addr, err)
		}
		cache = settingsCache.NewCache(redisClient, time.Duration(cfg.Redis.SettingsTTL)*time.Second)
		log.Info("Settings cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.SettingsTTL)
	}

	// Уведомления
	var kafkaWriter *kafka.Writer
	var alerts notifier.AlertPublisher = notifier.NoopAlertPublisher{}
	if cfg.Kafka.Enabled {
		kafkaWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Kafka.Brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: time.Duration(cfg.Kafka.WriteTimeout) * time.Second,
		}
		alerts = notifier.NewKafkaAlertPublisher(kafkaWriter, cfg.Kafka.AdminAlertTopic)
		log.Info("Admin alerts are published to kafka topic %s", cfg.Kafka.AdminAlertTopic)
	}

	var email notifier.EmailSender = notifier.NoopEmailSender{}
	if smtp := cfg.Notifications.SMTP; smtp.Enabled {
		email = notifier.NewSMTPSender(smtp.Host, smtp.Port, smtp.Username, smtp.Password, smtp.From)
		log.Info("SMTP email sender enabled (host=%s, port=%d)", smtp.Host, smtp.Port)
	}

	var sms notifier.SMSSender = notifier.NoopSMSSender{}
	if cfg.Notifications.SMS.Enabled {
		sms = notifier.NewWebhookSender(cfg.Notifications.SMS.WebhookURL, time.Duration(cfg.Notifications.Timeout)*time.Second)
		log.Info("SMS webhook sender enabled")
	}

	notificationSvc := notifier.NewNotifier(email, sms, alerts, cfg.Notifications.AdminTo, log)

	// Инициализируем интеграционных клиентов (выключенный клиент остается nil-интерфейсом)
	var conferencing scheduleAppointmentUC.ConferencingClient
	if cfg.Conferencing.Enabled {
		conferencing = conferencingClient.NewClient(
			cfg.Conferencing.URL,
			cfg.Conferencing.Token,
			time.Duration(cfg.Conferencing.Timeout)*time.Second,
			log,
		)
		log.Info("Conferencing client initialized (url=%s)", cfg.Conferencing.URL)
	}

	var backend scheduleAppointmentUC.BackendClient
	if cfg.Backend.Enabled {
		backend = backendClient.NewClient(
			cfg.Backend.URL,
			cfg.Backend.APIKey,
			time.Duration(cfg.Backend.Timeout)*time.Second,
			log,
		)
		log.Info("Backend client initialized (url=%s)", cfg.Backend.URL)
	}

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cache, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)

	// Инициализируем use cases
	var schedulingMetrics scheduleAppointmentUC.MetricsRecorder
	if cfg.Metrics.Enabled {
		schedulingMetrics = metricsCollector
	}

	settingsTimeout := time.Duration(cfg.Scheduling.SettingsTimeout) * time.Millisecond
	listingTimeout := time.Duration(cfg.Scheduling.ListingTimeout) * time.Millisecond

	// Порядок стратегий важен: сначала прямая запись, затем backend
	persistence := []scheduleAppointmentUC.PersistenceAttempt{
		scheduleAppointmentUC.NewDirectStoreAttempt(appointmentRepository, txMgr),
		scheduleAppointmentUC.NewBackendAttempt(backend),
	}

	scheduleAppointmentUseCase := scheduleAppointmentUC.NewUseCase(
		settingsSvc,
		appointmentRepository,
		conferencing,
		notificationSvc,
		persistence,
		schedulingMetrics,
		scheduleAppointmentUC.Config{
			Location: loc,
			Timeouts: scheduleAppointmentUC.Timeouts{
				Settings:     settingsTimeout,
				Listing:      listingTimeout,
				Conferencing: time.Duration(cfg.Conferencing.Timeout) * time.Second,
				Notification: time.Duration(cfg.Notifications.Timeout) * time.Second,
				Persist:      time.Duration(cfg.Scheduling.PersistTimeout) * time.Millisecond,
			},
		},
		log,
	)

	resolveSlotUseCase := resolveSlotUC.NewUseCase(
		settingsSvc,
		appointmentRepository,
		resolveSlotUC.Config{
			Location:        loc,
			SettingsTimeout: settingsTimeout,
			ListingTimeout:  listingTimeout,
		},
		log,
	)

	// Инициализируем handlers
	scheduleAppointment := scheduleAppointmentHandler.NewHandler(scheduleAppointmentUseCase, log)
	resolveSlot := resolveSlotHandler.NewHandler(resolveSlotUseCase, log)
	getCalendarSettings := getCalendarSettingsHandler.NewHandler(settingsSvc, log)
	updateCalendarSettings := updateCalendarSettingsHandler.NewHandler(settingsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getOwnerAppointments := getOwnerAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// Запись на встречу (X-User-ID - владелец календаря, без него - анонимная запись)
	public.HandleFunc("/appointments", scheduleAppointment.Handle).Methods(http.MethodPost)

	// Предпросмотр ближайшего свободного времени
	public.HandleFunc("/calendars/{ownerId}/slot", resolveSlot.Handle).Methods(http.MethodGet)

	// Настройки календаря (нужны форме записи)
	public.HandleFunc("/calendars/{ownerId}/settings", getCalendarSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки календаря ---
	protected.HandleFunc("/calendars/{ownerId}/settings", updateCalendarSettings.Handle).Methods(http.MethodPut)

	// --- Встречи ---
	protected.HandleFunc("/calendars/{ownerId}/appointments", getOwnerAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "http.server"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			log.Error("Failed to close kafka writer: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
