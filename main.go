package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/accountdemo/accountdemo/internal/handler"
	"github.com/accountdemo/accountdemo/internal/repository/sqlite"
	"github.com/accountdemo/accountdemo/internal/service"
)

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	slog.SetDefault(logger)

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "accountdemo.db")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
		os.Exit(1)
	}

	debounceWindow := service.DefaultDebounceWindow
	if v := os.Getenv("DEBOUNCE_WINDOW_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			slog.Error("invalid DEBOUNCE_WINDOW_MS", "value", v)
			os.Exit(1)
		}
		debounceWindow = time.Duration(ms) * time.Millisecond
	}

	// The md5 default keeps stored hashes compatible with records written
	// by earlier revisions; set PASSWORD_HASHER=bcrypt for fresh deployments.
	var hasher service.PasswordHasher
	switch h := envOrDefault("PASSWORD_HASHER", "md5"); h {
	case "bcrypt":
		hasher = service.BcryptHasher{Cost: 12}
	case "md5":
		hasher = service.MD5Hasher{}
	default:
		slog.Error("unknown PASSWORD_HASHER", "value", h)
		os.Exit(1)
	}

	db, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	debounce := service.NewDebouncer(debounceWindow)
	authService := service.NewAuthService(db.Users(), db.Prefs(), hasher, debounce, jwtSecret)
	movieService := service.NewMovieService()
	noteService := service.NewNoteService(db.Notes())

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, movieService, noteService)

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
