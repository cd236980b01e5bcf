package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

var testCSRFSecret = []byte("test-secret-key-32-bytes-long!!!")

func setupCSRFRouter(handled *bool) *gin.Engine {
	router := gin.New()
	router.Use(CSRFMiddleware(testCSRFSecret, false))
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetCSRFToken(c))
	})
	router.POST("/test", func(c *gin.Context) {
		*handled = true
		c.Status(http.StatusOK)
	})
	return router
}

func TestCSRFMiddleware_AllowsGET(t *testing.T) {
	var handled bool
	router := setupCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for GET request, got %d", rr.Code)
	}
	if rr.Body.String() == "" {
		t.Error("Expected CSRF token to be set in context")
	}
	if rr.Header().Get(CSRFTokenHeader) != rr.Body.String() {
		t.Errorf("Expected %s header to carry the token", CSRFTokenHeader)
	}
}

func TestCSRFMiddleware_BlocksPOSTWithoutToken(t *testing.T) {
	var handled bool
	router := setupCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for POST without CSRF token, got %d", rr.Code)
	}
	if handled {
		t.Error("Handler must not run after a CSRF failure")
	}
	if !strings.Contains(rr.Body.String(), "CSRF token invalid or missing") {
		t.Errorf("Expected JSON error body, got %s", rr.Body.String())
	}
}

func TestCSRFMiddleware_AcceptsTokenHeader(t *testing.T) {
	var handled bool
	router := setupCSRFRouter(&handled)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	token := rr.Body.String()

	req = httptest.NewRequest(http.MethodPost, "/test", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	req.Header.Set(CSRFTokenHeader, token)
	req.Header.Set("Referer", "http://example.com/test")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 with valid token, got %d: %s", rr.Code, rr.Body.String())
	}
	if !handled {
		t.Error("Expected handler to run")
	}
}

func TestGetCSRFToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if token := GetCSRFToken(c); token != "" {
		t.Errorf("Expected empty token, got %s", token)
	}

	c.Set(contextKeyCSRFToken, "test-token-123")
	if token := GetCSRFToken(c); token != "test-token-123" {
		t.Errorf("Expected 'test-token-123', got '%s'", token)
	}
}

func TestCSRFErrorHandler_JSON(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/words/words/", nil)
	req.Header.Set("Accept", "application/json")

	csrfErrorHandler(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}
}

func TestCSRFErrorHandler_HTML(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/accounts/login/", nil)
	req.Header.Set("Accept", "text/html")

	csrfErrorHandler(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), LoginPath) {
		t.Error("Expected a link back to the login page")
	}
}
