package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/auth"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	WordStore interface {
		WordStore
		WordSearcher
		ConfidenceStore
	}
	TagStore TagStore
	Database Pinger

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	CSRFSecret     []byte // CSRF protection is off when empty
	SecureCookies  bool

	// Authenticate replaces the session middleware, e.g. in tests
	Authenticate gin.HandlerFunc

	// Flashcard randomness, nil for math/rand
	Random func() float64

	Pagination PaginationConfig

	// Application info
	Version string
}
