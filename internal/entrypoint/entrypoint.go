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

	"github.com/mrlokans/jianjin/internal/auth"
	"github.com/mrlokans/jianjin/internal/config"
	"github.com/mrlokans/jianjin/internal/database"
	"github.com/mrlokans/jianjin/internal/database/tags"
	"github.com/mrlokans/jianjin/internal/database/words"
	http_controllers "github.com/mrlokans/jianjin/internal/http"
	"github.com/mrlokans/jianjin/internal/scheduler"
	"github.com/mrlokans/jianjin/internal/tasks"
)

// ShutdownFunc is called with the shutdown deadline before the server stops.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// CSRFSecret decodes a hex session secret, falling back to the raw bytes.
// An empty secret yields a freshly generated one.
func CSRFSecret(sessionSecret string) ([]byte, error) {
	if sessionSecret != "" {
		if secret, err := hex.DecodeString(sessionSecret); err == nil {
			return secret, nil
		}
		return []byte(sessionSecret), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}

// Run wires every component and serves HTTP until a shutdown signal.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Jianjin v%s", version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	wordRepo := words.NewRepository(db.DB)
	tagRepo := tags.NewRepository(db.DB)

	// Task queue (optional)
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.FromAppConfig(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupOrphanTagsQueue(tagRepo))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Orphan tag sweep
	var tagCleanup *scheduler.TagCleanupScheduler
	if cfg.TagCleanup.Enabled {
		var queue scheduler.Enqueuer
		if taskClient != nil {
			queue = taskClient
		}
		tagCleanup = scheduler.NewTagCleanupScheduler(cfg.TagCleanup.Schedule, queue, tagRepo)
		if err := tagCleanup.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start tag cleanup scheduler: %v", err)
		}
	}

	// Authentication
	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, db.Driver(), cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret, err := CSRFSecret(cfg.Auth.SessionSecret)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if hasUsers, err := authService.HasUsers(); err == nil && !hasUsers {
		log.Printf("No users found. Run 'jianjin create-user' to create an account.")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		WordStore:      wordRepo,
		TagStore:       tagRepo,
		Database:       db,
		AuthService:    authService,
		SessionManager: sessionManager,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		Pagination: http_controllers.PaginationConfig{
			DefaultPageSize: cfg.API.DefaultPageSize,
			MaxPageSize:     cfg.API.MaxPageSize,
		},
		Version: version,
	})

	onShutdown := func(ctx context.Context) {
		if tagCleanup != nil {
			tagCleanup.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
