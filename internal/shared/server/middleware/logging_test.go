package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"biography-site/internal/shared/telemetry"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := telemetry.SetOutput(&buf)
	t.Cleanup(func() { telemetry.SetOutput(prev) })
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}
	return payload
}

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), Logging())
	router.GET("/resume", func(c *gin.Context) {
		c.Set(LocaleKey, "en")
		c.Set(ViewKey, "resume")
		c.Set(GateStateKey, "unlocked")
		c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/resume", nil)
	req.Header.Set("X-Request-Id", "req-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	payload := lastLogLine(t, buf)
	for _, key := range []string{"request_id", "duration_ms", "status", "method", "path"} {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["request_id"] != "req-1" {
		t.Fatalf("unexpected request_id: %v", payload["request_id"])
	}
	if payload["locale"] != "en" || payload["view"] != "resume" || payload["gateState"] != "unlocked" {
		t.Fatalf("unexpected handler fields: %v", payload)
	}
}

func TestRequestIDGeneratedWhenMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c))
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	id := resp.Header().Get("X-Request-Id")
	if len(id) != 36 || resp.Body.String() != id {
		t.Fatalf("expected generated uuid, header=%q body=%q", id, resp.Body.String())
	}
}

func TestRecoveryReturnsEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"code":"internal"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestRecoveryLogsSiteFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	buf := captureLogs(t)

	router := gin.New()
	router.Use(RequestID(), Recovery())
	router.GET("/interactive", func(c *gin.Context) {
		c.Set(LocaleKey, "zh")
		c.Set(ViewKey, "interactive")
		c.Set(GateStateKey, "unlocked")
		panic("template exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/interactive", nil)
	req.Header.Set("X-Request-Id", "req-9")
	router.ServeHTTP(httptest.NewRecorder(), req)

	payload := lastLogLine(t, buf)
	if payload["msg"] != "request.panic" || payload["level"] != "error" {
		t.Fatalf("unexpected event: %v", payload)
	}
	if payload["request_id"] != "req-9" || payload["panic"] != "template exploded" {
		t.Fatalf("unexpected panic fields: %v", payload)
	}
	if payload["locale"] != "zh" || payload["view"] != "interactive" || payload["gateState"] != "unlocked" {
		t.Fatalf("missing site fields: %v", payload)
	}
	if _, ok := payload["stack"]; !ok {
		t.Fatal("missing stack")
	}
}
