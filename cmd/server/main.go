package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-ledger/internal/config"
	"finance-ledger/internal/database"
	"finance-ledger/internal/handlers"
	"finance-ledger/internal/middleware"
	"finance-ledger/internal/notifier"
	"finance-ledger/internal/repositories"
	"finance-ledger/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	expenseRepo := repositories.NewRecurringExpenseRepository(db)
	alertRuleRepo := repositories.NewAlertRuleRepository(db)
	alertEventRepo := repositories.NewAlertEventRepository(db)

	// Notification channel: SMTP in production, structured log elsewhere
	var sink notifier.Sink
	if cfg.IsProduction() {
		sink = notifier.NewEmailSink(cfg.Notifier)
	} else {
		sink = notifier.NewLogSink(slog.Default())
	}

	dispatcher := notifier.NewDispatcher(sink, alertEventRepo, notifier.DispatcherOptions{
		QueueSize:   cfg.Notifier.QueueSize,
		Workers:     cfg.Notifier.Workers,
		SendTimeout: cfg.Notifier.SendTimeout,
	}, slog.Default())
	dispatcher.Start()

	// Services
	metrics := services.NewPrometheusMetrics()
	passwordService := services.NewPasswordService()
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, accountRepo, passwordService, tokenService, metrics)
	fraudService := services.NewFraudService(transactionRepo, metrics)
	projectionService := services.NewProjectionService(accountRepo, expenseRepo, metrics)
	alertService := services.NewAlertService(alertRuleRepo, alertEventRepo, dispatcher, metrics)
	transactionService := services.NewTransactionService(accountRepo, transactionRepo, userRepo, fraudService, alertService, metrics)
	expenseService := services.NewRecurringExpenseService(accountRepo, expenseRepo, projectionService)
	exchangeService := services.NewExchangeService(cfg.Exchange)
	demoService := services.NewDemoDataService(accountRepo, transactionRepo, expenseRepo, alertRuleRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	expenseHandler := handlers.NewRecurringExpenseHandler(expenseService)
	alertHandler := handlers.NewAlertHandler(alertService, accountRepo)
	transferHandler := handlers.NewTransferHandler(exchangeService)
	healthHandler := handlers.NewHealthCheckHandler(db)
	devHandler := handlers.NewDevHandler(cfg, demoService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	requireAuth := middleware.RequireAuth(tokenService)

	transactions := api.Group("/transactions", requireAuth)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)

	expenses := api.Group("/recurring-expenses", requireAuth)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.ListExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.GET("/projection", expenseHandler.Projection)

	alerts := api.Group("/alerts", requireAuth)
	alerts.POST("/balance-drop", alertHandler.CreateBalanceDropAlert)
	alerts.POST("/amount-reached", alertHandler.CreateTargetAmountAlert)
	alerts.GET("", alertHandler.ListAlerts)
	alerts.DELETE("/:id", alertHandler.DeleteAlert)
	alerts.GET("/events", alertHandler.ListAlertEvents)

	transfers := api.Group("/transfers")
	transfers.GET("/rates", transferHandler.Rates)
	transfers.GET("/fees", transferHandler.Fees)
	transfers.POST("/simulate", transferHandler.Simulate)

	if !cfg.IsProduction() {
		api.POST("/dev/seed", devHandler.Seed, requireAuth)
	}

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("starting server", "addr", server.Addr, "environment", cfg.Server.Environment)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	// Drain in-flight notifications before exit
	dispatcher.Stop()
}
