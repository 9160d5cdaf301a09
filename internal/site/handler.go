// Package site serves the biography as HTML views and a JSON API behind the
// optional access gate.
package site

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"biography-site/biography/compose"
	"biography-site/biography/gallery"
	"biography-site/biography/gate"
	"biography-site/biography/locale"
	"biography-site/biography/model"
	"biography-site/biography/resolve"
	"biography-site/internal/sessions"
	"biography-site/internal/shared/auth"
	"biography-site/internal/shared/metrics"
	"biography-site/internal/shared/server/middleware"
	"biography-site/internal/shared/server/respond"
	"biography-site/internal/shared/storage/object"
	"biography-site/internal/shared/telemetry"
	"biography-site/internal/shared/util"
)

// Deps are the collaborators of a Handler.
type Deps struct {
	Record        *model.BiographyRecord
	Composer      *compose.Composer
	Gate          gate.Config
	Signer        *auth.Signer
	Sessions      *sessions.Service
	Media         object.MediaStore
	TokenTTL      time.Duration
	SecureCookies bool
}

// Handler wires HTTP handlers to the biography and the gate.
type Handler struct {
	deps Deps
}

// NewHandler constructs a Handler.
func NewHandler(deps Deps) *Handler {
	if deps.Composer == nil {
		deps.Composer = compose.New(compose.DefaultMediaPrefix)
	}
	return &Handler{deps: deps}
}

// RegisterPages attaches the HTML views and the unlock prompt.
func (h *Handler) RegisterPages(r gin.IRoutes) {
	guard := middleware.RequireUnlocked(h.openGate, h.lockedPage)
	r.GET("/", guard, h.page(compose.ViewInteractive))
	r.GET("/portfolio", guard, h.page(compose.ViewPortfolio))
	r.GET("/resume", guard, h.page(compose.ViewResume))
	r.GET("/unlock", h.unlockForm)
	r.POST("/unlock", h.unlockSubmit)
}

// RegisterAPI attaches the JSON endpoints.
func (h *Handler) RegisterAPI(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
	rg.GET("/gate", h.gateState)
	rg.POST("/unlock", h.unlockJSON)
	rg.GET("/biography", middleware.RequireUnlocked(h.openGate, h.lockedJSON), h.biography)
}

// RegisterMedia attaches the image endpoint.
func (h *Handler) RegisterMedia(rg *gin.RouterGroup) {
	rg.GET("/*key", middleware.RequireUnlocked(h.openGate, h.lockedJSON), h.media)
}

// newGate builds the per-request gate over the visitor's cookies.
func (h *Handler) newGate(c *gin.Context) *gate.Gate {
	return gate.New(h.deps.Gate, &CookieFlags{
		c:        c,
		signer:   h.deps.Signer,
		sessions: h.deps.Sessions,
		ttl:      h.deps.TokenTTL,
		secure:   h.deps.SecureCookies,
	})
}

func (h *Handler) openGate(c *gin.Context) (gate.State, error) {
	return h.newGate(c).Init(c.Request.Context())
}

func (h *Handler) lockedPage(c *gin.Context) {
	next := c.Request.URL.RequestURI()
	c.Redirect(http.StatusSeeOther, "/unlock?next="+url.QueryEscape(next))
}

func (h *Handler) lockedJSON(c *gin.Context) {
	respond.Private(c)
	respond.Error(c, http.StatusUnauthorized, "locked", "Password required", nil)
}

// resolveLocale applies the request's locale choice, remembering explicit ones.
func (h *Handler) resolveLocale(c *gin.Context) (locale.Locale, error) {
	l, remember, err := locale.FromRequest(c.Request)
	if err != nil {
		return "", err
	}
	if remember {
		locale.SetCookie(c.Writer, l)
	}
	c.Set(middleware.LocaleKey, string(l))
	return l, nil
}

func (h *Handler) page(view compose.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ViewKey, string(view))
		l, err := h.resolveLocale(c)
		if err != nil {
			h.errorPage(c, http.StatusBadRequest, locale.Default, "error.unsupported_locale")
			return
		}

		start := time.Now()
		_, span := telemetry.Tracer().Start(c.Request.Context(), "compose."+string(view))
		vm := resolve.Resolve(h.deps.Record, l)
		page, err := h.deps.Composer.Compose(view, vm)
		span.End()
		if err != nil {
			h.errorPage(c, http.StatusInternalServerError, l, "error.title")
			return
		}
		if raw := c.Query("image"); raw != "" {
			if ref, ok := gallery.ParseRef(raw); ok {
				page = page.Select(ref)
			}
		}

		respond.Private(c)
		respond.HTML(c, http.StatusOK, string(view)+".html", viewData{Page: page, Path: c.Request.URL.Path})
		metrics.IncPageRender(string(view), string(l))
		metrics.ObserveRenderDurationMs(metrics.SinceMillis(start))
	}
}

func (h *Handler) errorPage(c *gin.Context, status int, l locale.Locale, key string) {
	chrome := h.deps.Composer.Chrome(l)
	c.Abort()
	respond.HTML(c, status, "error.html", viewData{Page: chrome, Path: c.Request.URL.Path, Message: chrome.T[key]})
}

func (h *Handler) unlockForm(c *gin.Context) {
	l, err := h.resolveLocale(c)
	if err != nil {
		h.errorPage(c, http.StatusBadRequest, locale.Default, "error.unsupported_locale")
		return
	}
	next := safeNext(c.Query("next"))
	state, err := h.openGate(c)
	if err == nil && state == gate.Unlocked {
		c.Redirect(http.StatusSeeOther, next)
		return
	}
	h.renderUnlock(c, http.StatusOK, l, next, false)
}

func (h *Handler) unlockSubmit(c *gin.Context) {
	l, err := h.resolveLocale(c)
	if err != nil {
		l = locale.Default
	}
	next := safeNext(c.PostForm("next"))

	err = h.attempt(c, c.PostForm("password"))
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, next)
	case errors.Is(err, gate.ErrIncorrectPassword):
		h.renderUnlock(c, http.StatusUnauthorized, l, next, true)
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		telemetry.Error("gate.unlock_failed", map[string]any{"request_id": middleware.RequestIDFromContext(c), "error": err})
		h.errorPage(c, http.StatusInternalServerError, l, "error.title")
	}
}

func (h *Handler) renderUnlock(c *gin.Context, status int, l locale.Locale, next string, failed bool) {
	respond.Private(c)
	respond.HTML(c, status, "unlock.html", viewData{
		Page:   h.deps.Composer.Chrome(l),
		Path:   "/unlock",
		Next:   next,
		Failed: failed,
	})
}

// attempt runs one unlock attempt on a freshly initialised gate.
func (h *Handler) attempt(c *gin.Context, password string) error {
	g := h.newGate(c)
	state, err := g.Init(c.Request.Context())
	if err != nil {
		return err
	}
	if state == gate.Unlocked {
		return nil
	}
	metrics.IncUnlockAttempt()
	if err := g.AttemptUnlock(c.Request.Context(), password); err != nil {
		if errors.Is(err, gate.ErrIncorrectPassword) {
			metrics.IncUnlockFailure()
		}
		return err
	}
	metrics.IncUnlockSuccess()
	telemetry.Info("gate.unlocked", map[string]any{"request_id": middleware.RequestIDFromContext(c)})
	return nil
}

type unlockRequest struct {
	Password string `json:"password"`
}

func (h *Handler) unlockJSON(c *gin.Context) {
	var req unlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	l, err := h.resolveLocale(c)
	if err != nil {
		l = locale.Default
	}

	err = h.attempt(c, req.Password)
	switch {
	case err == nil:
		respond.Private(c)
		respond.OK(c, gin.H{"unlocked": true})
	case errors.Is(err, gate.ErrIncorrectPassword):
		respond.Error(c, http.StatusUnauthorized, "incorrect_password", compose.Labels(l)["gate.incorrect"], nil)
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "unlock failed", nil)
	}
}

func (h *Handler) gateState(c *gin.Context) {
	state, err := h.openGate(c)
	if err != nil {
		state = gate.Locked
	}
	respond.Private(c)
	respond.OK(c, gin.H{"enabled": h.deps.Gate.Enabled, "state": state.String()})
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, gin.H{"ok": true})
}

func (h *Handler) biography(c *gin.Context) {
	l, err := h.resolveLocale(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unsupported_locale", "unsupported language", gin.H{"supported": locale.All()})
		return
	}
	respond.Private(c)
	respond.OK(c, resolve.Resolve(h.deps.Record, l))
}

func (h *Handler) media(c *gin.Context) {
	if h.deps.Media == nil {
		respond.Error(c, http.StatusNotFound, "not_found", "media not configured", nil)
		return
	}
	key := strings.TrimPrefix(c.Param("key"), "/")
	rc, info, err := h.deps.Media.Open(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) || errors.Is(err, util.ErrInvalidKey) {
			respond.Error(c, http.StatusNotFound, "not_found", "image not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to open image", nil)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "private, max-age=3600")
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, nil)
}
