package site

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"biography-site/internal/sessions"
	"biography-site/internal/shared/auth"
	"biography-site/internal/shared/util"
)

// CookieFlags is the browser-side gate.FlagStore: each key is a cookie whose
// value is a signed token naming an unlock session. Missing, tampered or
// expired tokens read as absent. Tokens naming an unknown session read as
// absent only when the registry is durable; a memory registry forgets every
// session on restart.
type CookieFlags struct {
	c        *gin.Context
	signer   *auth.Signer
	sessions *sessions.Service
	ttl      time.Duration
	secure   bool
}

func (f *CookieFlags) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := f.c.Cookie(key)
	if err != nil || raw == "" {
		return "", false, nil
	}
	claims, err := f.signer.Verify(raw)
	if err != nil {
		return "", false, nil
	}
	_, err = f.sessions.Resume(ctx, claims.ID)
	switch {
	case err == nil:
	case errors.Is(err, sessions.ErrNotFound):
		if f.sessions.Durable() {
			return "", false, nil
		}
	default:
		return "", false, err
	}
	return claims.Flag, true, nil
}

func (f *CookieFlags) Set(ctx context.Context, key, value string) error {
	ua := f.c.Request.UserAgent()
	session, err := f.sessions.Start(ctx, util.HashClientKey(f.c.ClientIP(), ua), ua)
	if err != nil {
		return err
	}
	token, err := f.signer.Sign(session.ID, value)
	if err != nil {
		return err
	}
	maxAge := 0
	if f.ttl > 0 {
		maxAge = int(f.ttl.Seconds())
	}
	f.c.SetSameSite(http.SameSiteLaxMode)
	f.c.SetCookie(key, token, maxAge, "/", "", f.secure, true)
	return nil
}
