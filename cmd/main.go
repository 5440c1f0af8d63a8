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

	addSlotHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/add_slot"
	addStudentsHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/add_students"
	bulkAddSlotsHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/bulk_add_slots"
	createPanelHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/create_panel"
	deletePanelHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/delete_panel"
	deleteSlotHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/delete_slot"
	eligibleSlotsHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/eligible_slots"
	getPanelSlotsHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/get_panel_slots"
	listPanelsHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/list_panels"
	markCompletedHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/mark_completed"
	registerSlotHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/register_slot"
	removeStudentHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/remove_student"
	slotMappingsHandler "github.com/Ash469/ccd-training-skilling-sub000/internal/api/handlers/slot_mappings"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/api/middleware"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/app"
	"github.com/Ash469/ccd-training-skilling-sub000/internal/config"
	panelRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/panel"
	slotRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/slot"
	studentRepo "github.com/Ash469/ccd-training-skilling-sub000/internal/infra/storage/student"
	mailerClient "github.com/Ash469/ccd-training-skilling-sub000/internal/integrations/mailer"
	panelsService "github.com/Ash469/ccd-training-skilling-sub000/internal/service/panels"
	slotsService "github.com/Ash469/ccd-training-skilling-sub000/internal/service/slots"
	eligibleSlotsUC "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/eligible_slots"
	markCompletedUC "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/mark_completed"
	registerSlotUC "github.com/Ash469/ccd-training-skilling-sub000/internal/usecase/register_slot"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/dbmetrics"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/logger"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/metrics"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/simpletxmanager"
	"github.com/Ash469/ccd-training-skilling-sub000/pkg/txmanager"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CCD scheduling service...")
	log.Info("Configuration loaded from config.toml")

	// Initialize metrics (if enabled)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Connect to the database
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Configure the connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Apply pending migrations
	migrator, err := app.NewMigrator(db, cfg.Database.MigrationsDir)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Initialize the notification client
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (url=%s, timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Initialize repositories and the transaction manager, with or
	// without DB metrics
	var (
		panelRepository   *panelRepo.Repository
		slotRepository    *slotRepo.Repository
		studentRepository *studentRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		panelRepository = panelRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		studentRepository = studentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		panelRepository = panelRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		studentRepository = studentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Initialize services
	panelsSvc := panelsService.NewService(
		panelRepository,
		slotRepository,
		studentRepository,
		mailer,
		txMgr,
		log,
	)
	slotsSvc := slotsService.NewService(
		panelRepository,
		slotRepository,
		studentRepository,
		mailer,
		txMgr,
		log,
	)

	// Initialize use cases
	registerSlotUseCase := registerSlotUC.NewUseCase(
		panelRepository,
		slotRepository,
		studentRepository,
		txMgr,
		log,
	)
	eligibleSlotsUseCase := eligibleSlotsUC.NewUseCase(
		panelRepository,
		slotRepository,
		studentRepository,
		log,
	)
	markCompletedUseCase := markCompletedUC.NewUseCase(
		slotRepository,
		studentRepository,
		txMgr,
		log,
	)

	// Initialize handlers
	createPanel := createPanelHandler.NewHandler(panelsSvc, log)
	listPanels := listPanelsHandler.NewHandler(panelsSvc, log)
	deletePanel := deletePanelHandler.NewHandler(panelsSvc, log)
	addStudents := addStudentsHandler.NewHandler(panelsSvc, log)
	removeStudent := removeStudentHandler.NewHandler(panelsSvc, log)
	addSlot := addSlotHandler.NewHandler(slotsSvc, log)
	bulkAddSlots := bulkAddSlotsHandler.NewHandler(slotsSvc, log)
	getPanelSlots := getPanelSlotsHandler.NewHandler(slotsSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotsSvc, log)
	slotMappings := slotMappingsHandler.NewHandler(slotsSvc, log)
	registerSlot := registerSlotHandler.NewHandler(registerSlotUseCase, log)
	eligibleSlots := eligibleSlotsHandler.NewHandler(eligibleSlotsUseCase, log)
	markCompleted := markCompletedHandler.NewHandler(markCompletedUseCase, log)

	// Set up the router
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (public, no authentication)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; everything requires the gateway auth headers
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// ============================================================
	// STUDENT ROUTES
	// ============================================================

	// Eligibility view: open slots the caller can register for
	api.HandleFunc("/students/me/eligible-slots", eligibleSlots.Handle).Methods(http.MethodGet)

	// Register the caller to a slot
	api.HandleFunc("/registrations", registerSlot.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (require the admin role)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.RequireAdmin)

	// --- Panels ---
	admin.HandleFunc("/panels", createPanel.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/panels", listPanels.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/panels/{panelId}", deletePanel.Handle).Methods(http.MethodDelete)

	// --- Rosters ---
	admin.HandleFunc("/panels/{panelId}/students", addStudents.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/panels/{panelId}/students/{studentId}", removeStudent.Handle).Methods(http.MethodDelete)

	// --- Slots ---
	admin.HandleFunc("/panels/{panelId}/slots", addSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/panels/{panelId}/slots", getPanelSlots.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/panels/{panelId}/slots/bulk", bulkAddSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/panels/{panelId}/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)

	// --- Oversight ---
	admin.HandleFunc("/slot-mappings", slotMappings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/students/{studentId}/complete", markCompleted.Handle).Methods(http.MethodPost)

	// Create the HTTP server
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
