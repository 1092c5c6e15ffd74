package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcourier/internal/audit"
	"github.com/mrlokans/bookcourier/internal/auth"
	"github.com/mrlokans/bookcourier/internal/config"
	"github.com/mrlokans/bookcourier/internal/database"
	"github.com/mrlokans/bookcourier/internal/database/assignments"
	auditrepo "github.com/mrlokans/bookcourier/internal/database/audit"
	"github.com/mrlokans/bookcourier/internal/database/books"
	"github.com/mrlokans/bookcourier/internal/database/couriers"
	"github.com/mrlokans/bookcourier/internal/desk"
	http_controllers "github.com/mrlokans/bookcourier/internal/http"
	"github.com/mrlokans/bookcourier/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting desk at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	// SIGKILL can't be caught, so only INT and TERM are handled
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// csrfSecret accepts a hex-encoded secret from settings, falls back to the
// raw bytes, and generates a fresh one when nothing is configured.
func csrfSecret(configured string) ([]byte, error) {
	if configured == "" {
		log.Printf("[auth] no CSRF secret configured, generating one for this run")
		return auth.GenerateCSRFSecret()
	}
	if decoded, err := hex.DecodeString(configured); err == nil && len(decoded) >= 32 {
		return decoded, nil
	}
	if len(configured) < 32 {
		log.Printf("[auth] WARNING: CSRF secret is shorter than 32 bytes")
	}
	return []byte(configured), nil
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting bookcourier v%s", version)

	conn, err := database.NewConnector(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to configure database: %v", err)
	}
	log.Printf("[database] using %s", conn.Target())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The desk stays usable without a reachable database; every query
	// reports the connectivity problem on its own.
	if err := conn.Migrate(ctx); err != nil {
		log.Printf("[database] WARNING: migration skipped: %v", err)
	}

	auditSvc := audit.NewService(auditrepo.NewRepository(conn), cfg.Audit.Enabled)
	janitor := scheduler.NewAuditCleanupScheduler(auditSvc, cfg.Audit.Retention)
	if err := janitor.Start(ctx); err != nil {
		log.Fatalf("Failed to start audit cleanup: %v", err)
	}

	authSvc := auth.NewService(couriers.NewRepository(conn))
	d := desk.New(authSvc, books.NewRepository(conn), assignments.NewRepository(conn), auditSvc)

	limiter := auth.NewRateLimiter(auth.RateLimitConfig{
		MaxAttempts:     cfg.Auth.MaxLoginAttempts,
		WindowDuration:  cfg.Auth.RateLimitWindow,
		LockoutDuration: cfg.Auth.LockoutDuration,
		CleanupInterval: 5 * time.Minute,
	})

	secret, err := csrfSecret(cfg.Auth.CSRFSecret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	refresher := scheduler.NewRefreshScheduler(d, cfg.Refresh)
	if err := refresher.Start(ctx); err != nil {
		log.Fatalf("Failed to start refresh scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Desk:          d,
		Audit:         auditSvc,
		Database:      conn,
		RateLimiter:   limiter,
		CSRFSecret:    secret,
		SecureCookies: cfg.Auth.SecureCookies,
		Version:       version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		refresher.Stop()
		janitor.Stop()
		limiter.Stop()
		d.Logout(ctx, "")
	})
}
