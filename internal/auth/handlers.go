package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/ui"
)

// LogoutPath ends the session.
const LogoutPath = "/accounts/logout/"

const invalidCredentialsMessage = "Invalid username or password"

// isLocalPath validates that a redirect path is local to prevent open redirect attacks.
func isLocalPath(path string) bool {
	if path == "" || !strings.HasPrefix(path, "/") {
		return false
	}
	// Protocol-relative URLs (//evil.com)
	if strings.HasPrefix(path, "//") {
		return false
	}
	if strings.Contains(path, "://") || strings.Contains(path, "\\") {
		return false
	}
	return true
}

// sanitizeRedirectPath returns a safe redirect path, defaulting to "/" if invalid.
func sanitizeRedirectPath(path string) string {
	if isLocalPath(path) {
		return path
	}
	return "/"
}

// LoginRequest is accepted as a form post or a JSON body.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Next     string `form:"next" json:"next"`
}

// AuthController handles authentication-related HTTP endpoints.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRouter) {
	for _, path := range []string{LoginPath, strings.TrimSuffix(LoginPath, "/")} {
		router.GET(path, ac.LoginPage)
		router.POST(path, ac.Login)
	}
	for _, path := range []string{LogoutPath, strings.TrimSuffix(LogoutPath, "/")} {
		router.POST(path, ac.Logout)
		router.GET(path, ac.Logout)
	}
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	next := sanitizeRedirectPath(c.Query("next"))
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, next)
		return
	}

	ac.renderLogin(c, http.StatusOK, gin.H{
		"Next":  next,
		"Error": c.Query("error"),
	})
}

// Login checks the submitted credentials and starts a session.
func (ac *AuthController) Login(c *gin.Context) {
	wantsJSON := c.ContentType() == gin.MIMEJSON

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.loginFailed(c, wantsJSON, req, http.StatusBadRequest, "Username and password are required")
		return
	}
	next := sanitizeRedirectPath(req.Next)

	user, err := ac.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrInvalidPassword) {
			log.Printf("Login failed for %q: %v", req.Username, err)
		}
		ac.loginFailed(c, wantsJSON, req, http.StatusUnauthorized, invalidCredentialsMessage)
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session for %q: %v", user.Username, err)
		ac.loginFailed(c, wantsJSON, req, http.StatusInternalServerError, "Failed to create session")
		return
	}

	if wantsJSON {
		c.JSON(http.StatusOK, gin.H{"username": user.Username, "next": next})
		return
	}
	c.Redirect(http.StatusFound, next)
}

func (ac *AuthController) loginFailed(c *gin.Context, wantsJSON bool, req LoginRequest, status int, message string) {
	if wantsJSON {
		c.JSON(status, gin.H{"error": message})
		return
	}
	ac.renderLogin(c, status, gin.H{
		"Next":     sanitizeRedirectPath(req.Next),
		"Username": req.Username,
		"Error":    message,
	})
}

// Logout destroys the session and redirects to the login page.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	if isAPIRequest(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, LoginPath)
}

func (ac *AuthController) renderLogin(c *gin.Context, status int, data gin.H) {
	data["Title"] = "Log in"
	data["CSRFToken"] = GetCSRFToken(c)
	c.HTML(status, ui.LoginTemplate, data)
}
