package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JonnyWalker81/habitmood/backend/internal/apierror"
	"github.com/JonnyWalker81/habitmood/backend/internal/logger"
	"github.com/JonnyWalker81/habitmood/backend/pkg/supabase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	tokens map[string]string
}

func (f fakeVerifier) VerifyToken(ctx context.Context, token string) (*supabase.User, error) {
	if id, ok := f.tokens[token]; ok {
		return &supabase.User{ID: id, Email: id + "@example.com"}, nil
	}
	return nil, errors.New("invalid JWT")
}

func TestAuth(t *testing.T) {
	verifier := fakeVerifier{tokens: map[string]string{"good": "user-1"}}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Auth(verifier))
			r.GET("/me", func(c *gin.Context) {
				c.String(http.StatusOK, c.GetString("user_id")+"|"+logger.UserIDFromContext(c.Request.Context()))
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if w.Body.String() != "user-1|user-1" {
					t.Errorf("user not propagated: %q", w.Body.String())
				}
				return
			}
			if ct := w.Header().Get("Content-Type"); ct != apierror.ContentTypeProblemJSON {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantStatus int
		wantOrigin string
	}{
		{name: "no config allows all", origin: "https://x.dev", method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: "*"},
		{name: "exact origin", allowed: []string{"https://app.habitmood.dev"}, origin: "https://app.habitmood.dev", method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: "https://app.habitmood.dev"},
		{name: "wildcard origin", allowed: []string{"https://*.habitmood.pages.dev"}, origin: "https://pr-12.habitmood.pages.dev", method: http.MethodGet, wantStatus: http.StatusOK, wantOrigin: "https://pr-12.habitmood.pages.dev"},
		{name: "preflight allowed", allowed: []string{"https://app.habitmood.dev"}, origin: "https://app.habitmood.dev", method: http.MethodOptions, wantStatus: http.StatusNoContent, wantOrigin: "https://app.habitmood.dev"},
		{name: "preflight rejected", allowed: []string{"https://app.habitmood.dev"}, origin: "https://evil.dev", method: http.MethodOptions, wantStatus: http.StatusForbidden},
		{name: "simple request from unknown origin", allowed: []string{"https://app.habitmood.dev"}, origin: "https://evil.dev", method: http.MethodGet, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(tt.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestRateLimitWritesProblem(t *testing.T) {
	r := gin.New()
	r.Use(rateLimitMiddleware(NewRateLimiter(2, time.Minute, "test-problem")))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/x", nil))
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", last.Code)
	}
	if last.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", last.Header().Get("Retry-After"))
	}
	if last.Header().Get("X-RateLimit-Limit") != "2" {
		t.Errorf("X-RateLimit-Limit = %q", last.Header().Get("X-RateLimit-Limit"))
	}

	var problem apierror.ProblemDetails
	if err := json.Unmarshal(last.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if problem.Type != apierror.TypeRateLimit {
		t.Errorf("type = %q", problem.Type)
	}
}

func TestLoggerAssignsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(Logger(logger.NewSlogLogger(logger.Config{Level: logger.LevelError, Format: "json", Output: httptest.NewRecorder()})))
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, logger.RequestIDFromContext(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	id := w.Header().Get(RequestIDHeader)
	if id == "" || w.Body.String() != id {
		t.Errorf("request id header %q, context %q", id, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "from-client")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "from-client" {
		t.Errorf("expected client request id to be kept, got %q", w.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	for _, production := range []bool{false, true} {
		r := gin.New()
		r.Use(SecurityHeaders(production))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		if w.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("missing nosniff header")
		}
		if hsts := w.Header().Get("Strict-Transport-Security") != ""; hsts != production {
			t.Errorf("HSTS present = %v in production = %v", hsts, production)
		}
	}
}
