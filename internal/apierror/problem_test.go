package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		problem    *ProblemDetails
		wantType   string
		wantStatus int
	}{
		{"validation", NewValidationError("r", nil), TypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("r", "habit", "h1"), TypeNotFound, http.StatusNotFound},
		{"rate limit", NewRateLimitError("r", 30), TypeRateLimit, http.StatusTooManyRequests},
		{"internal", NewInternalError("r"), TypeInternal, http.StatusInternalServerError},
		{"bad request", NewBadRequestError("r", "unexpected EOF", "Invalid JSON format"), TypeBadRequest, http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("r"), TypeUnauthorized, http.StatusUnauthorized},
		{"invalid uuid", NewInvalidUUIDError("r", "id", "nope"), TypeInvalidUUID, http.StatusBadRequest},
		{"upstream", NewUpstreamError("r"), TypeUpstream, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.problem
			if p.Type != tt.wantType || p.Status != tt.wantStatus {
				t.Errorf("got %s/%d, want %s/%d", p.Type, p.Status, tt.wantType, tt.wantStatus)
			}
			if p.Title == "" || p.RequestID != "r" {
				t.Errorf("title=%q request_id=%q", p.Title, p.RequestID)
			}
		})
	}
}

func TestNewUnknownTypeIsInternal(t *testing.T) {
	p := New("urn:habitmood:error:made_up", "r", "x")
	if p.Type != TypeInternal || p.Status != http.StatusInternalServerError {
		t.Errorf("got %s/%d", p.Type, p.Status)
	}
}

func TestServerErrorsHideCause(t *testing.T) {
	for _, p := range []*ProblemDetails{NewInternalError("r"), NewUpstreamError("r")} {
		if strings.Contains(p.Detail, "supabase") || strings.Contains(p.Detail, "sql") {
			t.Errorf("%s leaks detail %q", p.Type, p.Detail)
		}
		if p.UserMessage == "" {
			t.Errorf("%s has no user message", p.Type)
		}
	}
}

func TestConstructorExtensions(t *testing.T) {
	nf := NewNotFoundError("r", "habit", "h1")
	if !strings.Contains(nf.Detail, "h1") || !strings.Contains(nf.UserMessage, "habit") {
		t.Errorf("not found = %+v", nf)
	}

	rl := NewRateLimitError("r", 42)
	if rl.RetryAfter == nil || *rl.RetryAfter != 42 {
		t.Errorf("retry_after = %v", rl.RetryAfter)
	}

	if NewUnauthorizedError("r").Action != "authenticate" {
		t.Error("401 should ask the client to authenticate")
	}

	uuidErr := NewInvalidUUIDError("r", "habit_id", "nope")
	if len(uuidErr.Errors) != 1 || uuidErr.Errors[0].Field != "habit_id" || uuidErr.Errors[0].Code != "invalid_uuid" {
		t.Errorf("errors = %+v", uuidErr.Errors)
	}

	fields := []FieldError{
		{Field: "date", Message: "must be a YYYY-MM-DD date", Code: "calendar_date"},
		{Field: "mood_score", Message: "must be at most 10", Code: "max"},
	}
	if v := NewValidationError("r", fields); len(v.Errors) != 2 {
		t.Errorf("validation errors = %+v", v.Errors)
	}
}

func TestProblemJSON(t *testing.T) {
	data, err := json.Marshal(NewInternalError(""))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"type", "title", "status", "detail"} {
		if _, ok := out[key]; !ok {
			t.Errorf("missing %q in %s", key, data)
		}
	}
	for _, key := range []string{"request_id", "retry_after", "action", "errors"} {
		if _, ok := out[key]; ok {
			t.Errorf("empty %q should be omitted: %s", key, data)
		}
	}
}

func TestWriteProblem(t *testing.T) {
	tests := []struct {
		name           string
		problem        *ProblemDetails
		wantRetryAfter string
	}{
		{"with retry", NewRateLimitError("r", 60), "60"},
		{"without retry", NewNotFoundError("r", "habit", "h1"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			WriteProblem(c, tt.problem)

			if w.Code != tt.problem.Status {
				t.Errorf("status = %d, want %d", w.Code, tt.problem.Status)
			}
			if ct := w.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
				t.Errorf("Content-Type = %q", ct)
			}
			if got := w.Header().Get("Retry-After"); got != tt.wantRetryAfter {
				t.Errorf("Retry-After = %q, want %q", got, tt.wantRetryAfter)
			}

			var decoded ProblemDetails
			if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if decoded.Type != tt.problem.Type {
				t.Errorf("type = %q", decoded.Type)
			}
		})
	}
}

func TestProblemDetailsError(t *testing.T) {
	if got := NewNotFoundError("", "habit", "h1").Error(); !strings.Contains(got, "h1") {
		t.Errorf("Error() = %q, want the detail", got)
	}
	if got := (&ProblemDetails{Title: "Bad Request"}).Error(); got != "Bad Request" {
		t.Errorf("Error() = %q, want the title", got)
	}
}

func TestGetRequestID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("X-Request-ID", "from-header")

	if got := GetRequestID(c); got != "from-header" {
		t.Errorf("header fallback = %q", got)
	}
	c.Set("request_id", "from-middleware")
	if got := GetRequestID(c); got != "from-middleware" {
		t.Errorf("context value = %q", got)
	}
}
