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

	addAttendeesHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/add_attendees"
	bulkCreateSchedulesHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/bulk_create_schedules"
	cancelBookingHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/create_booking"
	createScheduleHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/create_schedule"
	deleteScheduleHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/delete_schedule"
	getActivitySchedulesHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/get_activity_schedules"
	getAvailableSchedulesHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/get_available_schedules"
	getBookingHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/get_booking"
	getScheduleAvailabilityHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/get_schedule_availability"
	getSpaceAvailabilityHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/get_space_availability"
	listBookingsHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/Hannyer/CRM-API-SERVER/internal/api/handlers/update_booking"
	"github.com/Hannyer/CRM-API-SERVER/internal/api/middleware"
	"github.com/Hannyer/CRM-API-SERVER/internal/config"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
	bookingRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/booking"
	companyRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/company"
	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
	bookingsService "github.com/Hannyer/CRM-API-SERVER/internal/service/bookings"
	schedulesService "github.com/Hannyer/CRM-API-SERVER/internal/service/schedules"
	addAttendeesUC "github.com/Hannyer/CRM-API-SERVER/internal/usecase/add_attendees"
	bulkCreateSchedulesUC "github.com/Hannyer/CRM-API-SERVER/internal/usecase/bulk_create_schedules"
	createBookingUC "github.com/Hannyer/CRM-API-SERVER/internal/usecase/create_booking"
	"github.com/Hannyer/CRM-API-SERVER/pkg/dbmetrics"
	"github.com/Hannyer/CRM-API-SERVER/pkg/logger"
	"github.com/Hannyer/CRM-API-SERVER/pkg/metrics"
	"github.com/Hannyer/CRM-API-SERVER/pkg/simpletxmanager"
	"github.com/Hannyer/CRM-API-SERVER/pkg/txmanager"
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

	log.Info("Starting CRM-API-SERVER...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		activityRepository *activityRepo.Repository
		companyRepository  *companyRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		bookingRepository  *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		activityRepository = activityRepo.NewRepository(wrappedDB)
		companyRepository = companyRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		activityRepository = activityRepo.NewRepository(db)
		companyRepository = companyRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	schedulesSvc := schedulesService.NewService(
		scheduleRepository,
		activityRepository,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		activityRepository,
		companyRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	bulkCreateSchedulesUseCase := bulkCreateSchedulesUC.NewUseCase(
		scheduleRepository,
		activityRepository,
		txMgr,
		log,
	)
	addAttendeesUseCase := addAttendeesUC.NewUseCase(scheduleRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		activityRepository,
		companyRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	bulkCreateSchedules := bulkCreateSchedulesHandler.NewHandler(bulkCreateSchedulesUseCase, log)
	addAttendees := addAttendeesHandler.NewHandler(addAttendeesUseCase, log)
	createSchedule := createScheduleHandler.NewHandler(schedulesSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(schedulesSvc, log)
	getScheduleAvailability := getScheduleAvailabilityHandler.NewHandler(schedulesSvc, log)
	getAvailableSchedules := getAvailableSchedulesHandler.NewHandler(schedulesSvc, log)
	getActivitySchedules := getActivitySchedulesHandler.NewHandler(bookingsSvc, log)
	getSpaceAvailability := getSpaceAvailabilityHandler.NewHandler(bookingsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)

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

	// Статические пути /activities/schedules/... регистрируются раньше
	// шаблонных /activities/{activityId}/..., иначе "schedules" матчится
	// как идентификатор активности

	// Проекция доступности расписаний (модель счётчика мест)
	api.HandleFunc("/activities/schedules/availability",
		getScheduleAvailability.Handle).Methods(http.MethodGet)

	// Свободные места расписания (модель суммирования броней)
	api.HandleFunc("/activities/schedules/{scheduleId}/availability",
		getSpaceAvailability.Handle).Methods(http.MethodGet)

	// Расписания активности на день со свободными местами
	api.HandleFunc("/activities/{activityId}/schedules/available",
		getAvailableSchedules.Handle).Methods(http.MethodGet)

	// Будущие расписания активности с заполненностью по броням
	api.HandleFunc("/activities/{activityId}/schedules",
		getActivitySchedules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписания ---
	// Создание одиночного расписания
	protected.HandleFunc("/activities/schedules", createSchedule.Handle).Methods(http.MethodPost)

	// Резервирование мест (атомарный инкремент счётчика)
	protected.HandleFunc("/activities/schedules/{scheduleId}/attendees",
		addAttendees.Handle).Methods(http.MethodPost)

	// Мягкое удаление расписания
	protected.HandleFunc("/activities/schedules/{scheduleId}",
		deleteSchedule.Handle).Methods(http.MethodDelete)

	// Массовая генерация расписаний с проверкой пересечений
	protected.HandleFunc("/activities/{activityId}/schedules/bulk",
		bulkCreateSchedules.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Страница бронирований
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)

	// Частичное обновление бронирования
	protected.HandleFunc("/bookings/{id}", updateBooking.Handle).Methods(http.MethodPut)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPut)

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
