package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/auth"
	"github.com/mrlokans/jianjin/internal/ui"
)

// handle registers h for path with and without the trailing slash.
func handle(r gin.IRoutes, method, path string, h gin.HandlerFunc) {
	trimmed := strings.TrimSuffix(path, "/")
	r.Handle(method, trimmed, h)
	r.Handle(method, trimmed+"/", h)
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.HandleMethodNotAllowed = true
	router.Use(RequestIDMiddleware())
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	authenticate := cfg.Authenticate
	if authenticate == nil {
		authenticate = auth.NewMiddleware(cfg.AuthService, cfg.SessionManager).Handler()
	}
	router.Use(authenticate)

	router.SetHTMLTemplate(ui.MustTemplates())
	router.NoMethod(respondMethodNotAllowed)

	if cfg.AuthService != nil && cfg.SessionManager != nil {
		auth.NewAuthController(cfg.AuthService, cfg.SessionManager).RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Version, HealthCheck{Name: "database", Pinger: cfg.Database})
	wordsController := NewWordsController(cfg.WordStore, cfg.TagStore, cfg.Pagination)
	tagsController := NewTagsController(cfg.TagStore)
	flashcardController := NewFlashcardController(cfg.WordStore, cfg.Random)
	confidenceController := NewConfidenceController(cfg.WordStore)
	searchController := NewSearchController(cfg.WordStore)
	uiController := NewUIController(cfg.WordStore, cfg.TagStore)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", ping)

	// Words API endpoints
	api := router.Group("/words")
	handle(api, "GET", "/words/", wordsController.List)
	handle(api, "POST", "/words/", wordsController.Create)
	handle(api, "GET", "/words/:id/", wordsController.Get)
	handle(api, "PUT", "/words/:id/", wordsController.Update)
	handle(api, "PATCH", "/words/:id/", wordsController.Update)
	handle(api, "DELETE", "/words/:id/", wordsController.Delete)
	handle(api, "GET", "/wordsbytag/:tag/", wordsController.ListByTag)
	handle(api, "GET", "/tags/", tagsController.List)
	handle(api, "GET", "/flashcard/", flashcardController.Draw)
	handle(api, "GET", "/flashcard/:tag/", flashcardController.Draw)
	handle(api, "POST", "/confidence/:id/", confidenceController.Set)
	handle(api, "GET", "/searchexact/:text/", searchController.Exact)
	handle(api, "GET", "/search/:text/", searchController.Substring)

	// UI routes
	router.GET("/", uiController.MainPage)

	return router
}
