package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limitedRouter(limiter *RateLimiter, rules map[string]RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		Limiter: limiter,
		GroupFor: func(c *gin.Context) string {
			switch {
			case strings.HasPrefix(c.Request.URL.Path, "/media/"):
				return "MEDIA"
			case strings.HasPrefix(c.Request.URL.Path, "/api/"):
				return "API"
			}
			return ""
		},
		Rules: rules,
	}))
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/api/v1/biography", ok)
	r.GET("/media/*key", ok)
	r.GET("/", ok)
	return r
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
	return resp
}

func TestRateLimitGroupsAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(NewRateLimiter(func() time.Time { return now }), map[string]RateLimitRule{
		"API":   {Rate: 1, Burst: 2},
		"MEDIA": {Rate: 5, Burst: 10},
	})

	for i := 0; i < 2; i++ {
		if resp := serve(r, "/api/v1/biography"); resp.Code != http.StatusOK {
			t.Fatalf("api request %d expected 200, got %d", i+1, resp.Code)
		}
	}
	if resp := serve(r, "/api/v1/biography"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("api request 3 expected 429, got %d", resp.Code)
	}
	for i := 0; i < 5; i++ {
		if resp := serve(r, "/media/portrait.jpg"); resp.Code != http.StatusOK {
			t.Fatalf("media request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRateLimitSkipsUnlistedGroups(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(NewRateLimiter(func() time.Time { return now }), map[string]RateLimitRule{
		"API": {Rate: 1, Burst: 1},
	})
	for i := 0; i < 5; i++ {
		if resp := serve(r, "/"); resp.Code != http.StatusOK {
			t.Fatalf("page request %d expected 200, got %d", i+1, resp.Code)
		}
	}
}

func TestRateLimitRefills(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(NewRateLimiter(func() time.Time { return now }), map[string]RateLimitRule{
		"API": {Rate: 1, Burst: 1},
	})
	if resp := serve(r, "/api/v1/biography"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp := serve(r, "/api/v1/biography"); resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	now = now.Add(time.Second)
	if resp := serve(r, "/api/v1/biography"); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 after refill, got %d", resp.Code)
	}
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := limitedRouter(NewRateLimiter(func() time.Time { return now }), map[string]RateLimitRule{
		"API": {Rate: 1, Burst: 1},
	})

	serve(r, "/api/v1/biography")
	resp := serve(r, "/api/v1/biography")
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected Retry-After 1, got %q", resp.Header().Get("Retry-After"))
	}

	var payload struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Error.Code != "rate_limited" {
		t.Fatalf("expected code rate_limited, got %q", payload.Error.Code)
	}
	if _, ok := payload.Error.Details["retryAfterMs"]; !ok {
		t.Fatalf("expected retryAfterMs in details")
	}
}
