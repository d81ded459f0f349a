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

	checkRoomSlotHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/check_room_slot"
	createLoanHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/create_loan"
	decideLoanHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/decide_loan"
	getLoanHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/get_loan"
	getLoansHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/get_loans"
	getRoomScheduleHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/get_room_schedule"
	getUserLoansHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/get_user_loans"
	verifyPickupHandler "github.com/mathrent/MathRent-LoanService/internal/api/handlers/verify_pickup"
	"github.com/mathrent/MathRent-LoanService/internal/api/middleware"
	"github.com/mathrent/MathRent-LoanService/internal/config"
	"github.com/mathrent/MathRent-LoanService/internal/domain"
	scheduleCache "github.com/mathrent/MathRent-LoanService/internal/infra/cache/schedule"
	loanRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/loan"
	resourceRepo "github.com/mathrent/MathRent-LoanService/internal/infra/storage/resource"
	loansService "github.com/mathrent/MathRent-LoanService/internal/service/loans"
	approveLoanUC "github.com/mathrent/MathRent-LoanService/internal/usecase/approve_loan"
	checkRoomSlotUC "github.com/mathrent/MathRent-LoanService/internal/usecase/check_room_slot"
	createLoanUC "github.com/mathrent/MathRent-LoanService/internal/usecase/create_loan"
	getRoomScheduleUC "github.com/mathrent/MathRent-LoanService/internal/usecase/get_room_schedule"
	"github.com/mathrent/MathRent-LoanService/pkg/dbmetrics"
	"github.com/mathrent/MathRent-LoanService/pkg/logger"
	"github.com/mathrent/MathRent-LoanService/pkg/metrics"
	"github.com/mathrent/MathRent-LoanService/pkg/simpletxmanager"
	"github.com/mathrent/MathRent-LoanService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting MathRent-LoanService...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Repositories and transaction managers, with or without metrics.
	var (
		loanRepository     *loanRepo.Repository
		resourceRepository *resourceRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		loanRepository = loanRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		loanRepository = loanRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Room schedule cache, optional. Untyped nil keeps the use case nil
	// checks meaningful.
	var (
		checkSlotCache   checkRoomSlotUC.ScheduleCache
		roomSchedCache   getRoomScheduleUC.ScheduleCache
		decisionInvCache approveLoanUC.ScheduleCache
	)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		cache := scheduleCache.NewCache(redisClient, time.Duration(cfg.Redis.TTLSeconds)*time.Second)
		checkSlotCache = cache
		roomSchedCache = cache
		decisionInvCache = cache
		log.Info("Room schedule cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Services
	loansSvc := loansService.NewService(loanRepository, log)

	// Use cases
	createLoanUseCase := createLoanUC.NewUseCase(
		loanRepository,
		resourceRepository,
		txMgr,
		log,
	)
	approveLoanUseCase := approveLoanUC.NewUseCase(
		loanRepository,
		resourceRepository,
		decisionInvCache,
		txMgr,
		log,
	)
	checkRoomSlotUseCase := checkRoomSlotUC.NewUseCase(
		loanRepository,
		resourceRepository,
		checkSlotCache,
		log,
	)
	getRoomScheduleUseCase := getRoomScheduleUC.NewUseCase(
		loanRepository,
		resourceRepository,
		roomSchedCache,
		log,
	)

	// Handlers
	createLoan := createLoanHandler.NewHandler(createLoanUseCase, log)
	decideLoan := decideLoanHandler.NewHandler(approveLoanUseCase, log)
	getLoan := getLoanHandler.NewHandler(loansSvc, log)
	getLoans := getLoansHandler.NewHandler(loansSvc, log)
	getUserLoans := getUserLoansHandler.NewHandler(loansSvc, log)
	verifyPickup := verifyPickupHandler.NewHandler(loansSvc, log)
	checkRoomSlot := checkRoomSlotHandler.NewHandler(checkRoomSlotUseCase, log)
	getRoomSchedule := getRoomScheduleHandler.NewHandler(getRoomScheduleUseCase, log)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Everything requires an authenticated session; token issuance lives in
	// the account service.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// Loan requests
	protected.HandleFunc("/loans", createLoan.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/loans/{loanId}", getLoan.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/loans", getUserLoans.Handle).Methods(http.MethodGet)

	// Room schedules
	protected.HandleFunc("/rooms/{roomId}/schedule", getRoomSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/rooms/{roomId}/schedule/check", checkRoomSlot.Handle).Methods(http.MethodGet)

	// Staff only
	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.RequireRole(domain.RoleStaff))
	staff.HandleFunc("/loans", getLoans.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/loans/{loanId}/decision", decideLoan.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/loans/{loanId}/verify", verifyPickup.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

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
