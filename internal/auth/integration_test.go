package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/jianjin/internal/config"
	"github.com/mrlokans/jianjin/internal/ui"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()

	db := setupTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get SQL DB: %v", err)
	}

	cfg := config.Auth{
		SessionLifetime: 24 * time.Hour,
		BcryptCost:      testBcryptCost,
		SecureCookies:   false,
	}
	svc := NewService(db, cfg)
	sm, err := NewSessionManager(sqlDB, config.DriverSQLite, cfg)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(ui.MustTemplates())
	router.Use(sm.SessionLoadSave())
	router.Use(NewMiddleware(svc, sm).Handler())
	NewAuthController(svc, sm).RegisterRoutes(router)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "username": GetUsername(c)})
	})
	router.GET("/words/words/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, svc
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no session cookie in response, headers: %v", w.Header())
	return nil
}

func postLoginForm(router *gin.Engine, username, password, next string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}, "next": {next}}
	req := httptest.NewRequest(http.MethodPost, LoginPath, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIntegration_UnauthenticatedAPI(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/words/words/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["error"] != ErrMessageNotAuthenticated {
		t.Errorf("unexpected error message %q", body["error"])
	}
}

func TestIntegration_UnauthenticatedJSONAccept(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for JSON request, got %d", w.Code)
	}
}

func TestIntegration_UnauthenticatedHTMLRedirects(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/accounts/login/?next=%2F" {
		t.Errorf("unexpected redirect %q", loc)
	}
}

func TestIntegration_RedirectKeepsQuery(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/?tag=hsk1&page=2", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	want := "/accounts/login/?next=%2F%3Ftag%3Dhsk1%26page%3D2"
	if loc := w.Header().Get("Location"); loc != want {
		t.Errorf("redirect = %q, want %q", loc, want)
	}
}

func TestIntegration_PublicRoutes(t *testing.T) {
	router, _ := setupTestRouter(t)

	for _, path := range []string{"/health", "/accounts/login/", "/accounts/login"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("public path %s returned %d, expected 200", path, w.Code)
		}
	}
}

func TestIntegration_LoginPageRendersForm(t *testing.T) {
	router, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/accounts/login/?next=/words/words/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), `name="next" value="/words/words/"`) {
		t.Errorf("login form should carry next path, got %s", w.Body.String())
	}
}

func TestIntegration_FormLoginFlow(t *testing.T) {
	router, svc := setupTestRouter(t)
	user, err := svc.CreateUser("alice", "alice@example.com", "password12345")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	w := postLoginForm(router, "alice", "password12345", "/words/words/")
	if w.Code != http.StatusFound {
		t.Fatalf("expected 302 after login, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/words/words/" {
		t.Errorf("expected redirect to next, got %q", loc)
	}
	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", cookie.SameSite)
	}

	req := httptest.NewRequest(http.MethodGet, "/words/words/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", w.Code)
	}
	var body map[string]uint
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["user_id"] != user.ID {
		t.Errorf("expected user_id %d, got %d", user.ID, body["user_id"])
	}

	// Logout clears the session.
	req = httptest.NewRequest(http.MethodGet, LogoutPath, nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusFound || w.Header().Get("Location") != LoginPath {
		t.Errorf("expected redirect to login after logout, got %d %q", w.Code, w.Header().Get("Location"))
	}

	req = httptest.NewRequest(http.MethodGet, "/words/words/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 after logout, got %d", w.Code)
	}
}

func TestIntegration_FormLoginWrongPassword(t *testing.T) {
	router, svc := setupTestRouter(t)
	if _, err := svc.CreateUser("alice", "alice@example.com", "password12345"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	w := postLoginForm(router, "alice", "wrongpassword1", "/")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), invalidCredentialsMessage) {
		t.Errorf("expected error message in page, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `value="alice"`) {
		t.Error("expected username to be kept in form")
	}
}

func TestIntegration_FormLoginRejectsOpenRedirect(t *testing.T) {
	router, svc := setupTestRouter(t)
	if _, err := svc.CreateUser("alice", "alice@example.com", "password12345"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	w := postLoginForm(router, "alice", "password12345", "//evil.example.com")
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to /, got %q", loc)
	}
}

func TestIntegration_JSONLogin(t *testing.T) {
	router, svc := setupTestRouter(t)
	if _, err := svc.CreateUser("alice", "alice@example.com", "password12345"); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, LoginPath, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := login(`{"username":"alice","password":"password12345"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	sessionCookie(t, w)

	if w := login(`{"username":"alice","password":"nope-nope-nope"}`); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if w := login(`{"username":"alice"}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestIsLocalPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/words/words/?page=2", true},
		{"", false},
		{"words", false},
		{"//evil.com", false},
		{"https://evil.com", false},
		{"/\\evil.com", false},
	}
	for _, tt := range tests {
		if got := isLocalPath(tt.path); got != tt.want {
			t.Errorf("isLocalPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
