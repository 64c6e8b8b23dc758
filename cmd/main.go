package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/mlevkov/gamebackend/internal/handlers"
	"github.com/mlevkov/gamebackend/internal/logger"
	"github.com/mlevkov/gamebackend/internal/middlewares"
	"github.com/mlevkov/gamebackend/internal/migrations"
	"github.com/mlevkov/gamebackend/internal/repositories"
	"github.com/mlevkov/gamebackend/internal/services"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "modernc.org/sqlite"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title game-progress-backend API
// @version 1.0.0
// @description Backend for a game client: player accounts and per-level progress
// @host localhost:3000
// @schemes http https
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, dbPath, certFile, keyFile, logLevel, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		dbPath,
		certFile, keyFile,
		logLevel,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, TLS, and logging configuration.
func parseConfig(path string) (
	appHost, appPort string,
	dbPath string,
	certFile, keyFile string,
	logLevel string,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "3000")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// SQLite config
	dbPath = getEnv("DATABASE_PATH", "./data/gamedb.db")

	// TLS config; the server falls back to plaintext when either file is absent
	certFile = getEnv("TLS_CERT_FILE", "")
	keyFile = getEnv("TLS_KEY_FILE", "")

	return
}

// run initializes the logger and database, wires repositories, services, and
// handlers, sets up routes and middleware, and serves until shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	dbPath string,
	certFile, keyFile string,
	logLevel string,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Open SQLite database
	logger.Log.Infof("Opening SQLite database: %s", dbPath)
	db, err := sqlx.ConnectContext(ctx, "sqlite", dbPath)
	if err != nil {
		logger.Log.Fatal("SQLite connection error:", err)
	}
	defer db.Close()
	// Single shared connection; the engine serializes writes.
	db.SetMaxOpenConns(1)

	// Apply schema migrations
	if err := migrations.Run(ctx, db.DB); err != nil {
		logger.Log.Fatal("migration error:", err)
	}

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	progressReadRepo := repositories.NewProgressReadRepository(db)
	progressWriteRepo := repositories.NewProgressWriteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo)
	userService := services.NewUserService(userReadRepo, userWriteRepo, progressWriteRepo)
	progressService := services.NewProgressService(progressReadRepo, progressWriteRepo)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	loginHandler := handlers.NewLoginHandler(authService)
	getUserHandler := handlers.NewGetUserHandler(userService)
	getProgressHandler := handlers.NewGetProgressHandler(progressService)
	saveProgressHandler := handlers.NewSaveProgressHandler(progressService)
	deleteUserHandler := handlers.NewDeleteUserHandler(userService)

	// Permissive CORS so the game client can reach the API from anywhere
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler.Handler)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Post("/register", registerHandler)
	r.Post("/login", loginHandler)
	r.Get("/user/{id}", getUserHandler)
	r.Get("/progress/{userId}", getProgressHandler)
	r.Post("/save-progress", saveProgressHandler)

	// Delete runs two statements; the middleware makes them atomic.
	r.With(middlewares.TxMiddleware(db)).Delete("/user/{id}", deleteUserHandler)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		if useTLS(certFile, keyFile) {
			logger.Log.Infof("HTTPS server listening on %s:%s", appHost, appPort)
			if err := srv.ListenAndServeTLS(certFile, keyFile); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("HTTPS server failed: %w", err)
			}
			return
		}
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// useTLS reports whether both certificate files are present on disk.
func useTLS(certFile, keyFile string) bool {
	if certFile == "" || keyFile == "" {
		return false
	}
	if _, err := os.Stat(certFile); err != nil {
		return false
	}
	if _, err := os.Stat(keyFile); err != nil {
		return false
	}
	return true
}
