package server

import (
	"html/template"
	"strings"

	"github.com/gin-gonic/gin"

	"biography-site/internal/shared/config"
	"biography-site/internal/shared/metrics"
	"biography-site/internal/shared/server/middleware"
	"biography-site/internal/site"
)

const (
	rateGroupAPI   = "API"
	rateGroupMedia = "MEDIA"
)

// RouterDeps are the collaborators NewRouter wires together.
type RouterDeps struct {
	Config    config.Config
	Handler   *site.Handler
	Templates *template.Template
	Limiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Tracing(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules:    rateRules(deps.Config),
			GroupFor: rateGroup,
			Limiter:  deps.Limiter,
		}),
	)
	if deps.Templates != nil {
		r.SetHTMLTemplate(deps.Templates)
	}

	r.GET("/metrics", metrics.Handler())
	deps.Handler.RegisterPages(r)
	deps.Handler.RegisterAPI(r.Group("/api/v1"))
	deps.Handler.RegisterMedia(r.Group("/media"))

	return r
}

// rateRules limits the JSON API and the media endpoint per client. Pages are
// not limited.
func rateRules(cfg config.Config) map[string]middleware.RateLimitRule {
	if cfg.APIRate <= 0 || cfg.APIBurst <= 0 {
		return nil
	}
	rule := middleware.RateLimitRule{Rate: cfg.APIRate, Burst: cfg.APIBurst}
	return map[string]middleware.RateLimitRule{
		rateGroupAPI:   rule,
		rateGroupMedia: {Rate: cfg.APIRate * 4, Burst: cfg.APIBurst * 4},
	}
}

func rateGroup(c *gin.Context) string {
	path := c.Request.URL.Path
	switch {
	case strings.HasPrefix(path, "/api/"):
		return rateGroupAPI
	case strings.HasPrefix(path, "/media/"):
		return rateGroupMedia
	default:
		return "PAGES"
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
