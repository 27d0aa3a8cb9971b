package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alextreichler/pharmadmin/internal/api"
	"github.com/alextreichler/pharmadmin/internal/config"
	"github.com/alextreichler/pharmadmin/internal/handlers"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	config.LoadEnvFile()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// 2. Backend client
	client := api.New(cfg.BackendURL,
		api.WithTimeout(cfg.RequestTimeout),
		api.WithLogger(logger.With("component", "api")),
	)

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	sessionStore.Options.MaxAge = int((24 * time.Hour).Seconds())
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load(handlers.Templates()); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	adminHandler := &handlers.AdminHandler{
		API:           client,
		SessionStore:  sessionStore,
		Templates:     templates,
		Currency:      cfg.Currency,
		StoreURL:      cfg.FrontendURL,
		ImageMaxWidth: cfg.ImageMaxWidth,
	}

	// Five login attempts, then one more every 12 seconds.
	loginLimiter := handlers.NewRateLimiter(12*time.Second, 5)
	mux := adminHandler.Routes(loginLimiter)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.Path("/"),
		// Trust local development origins
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	protected := CSRF(mux)
	if !cfg.CookieSecure {
		// Local development is served over plain HTTP.
		inner := protected
		protected = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}

	// Uploaded images are served by the backend.
	var imgSources []string
	if u, err := url.Parse(cfg.BackendURL); err == nil && u.Host != "" {
		imgSources = append(imgSources, u.Scheme+"://"+u.Host)
	}

	// Chain: Request ID -> Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.RequestIDMiddleware(
		handlers.LoggingMiddleware(
			handlers.SecurityHeadersMiddleware(imgSources...)(
				protected,
			),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port, "backend", cfg.BackendURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
