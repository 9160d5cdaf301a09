package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "biography-site"

var (
	ErrMissingSecret = errors.New("token secret not configured")
	ErrInvalidToken  = errors.New("invalid token")
)

// GateClaims is the payload of the unlock cookie. Flag mirrors the persisted
// gate flag value and the registered ID is the unlock session id.
type GateClaims struct {
	Flag string `json:"flag"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 gate tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner returns a Signer. A non-positive ttl issues tokens without expiry.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Sign issues a token for sessionID carrying flag.
func (s *Signer) Sign(sessionID, flag string) (string, error) {
	if sessionID == "" {
		return "", errors.New("session id is required")
	}
	now := s.now().UTC()
	claims := GateClaims{
		Flag: flag,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       sessionID,
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign gate token: %w", err)
	}
	return token, nil
}

// Verify parses token and returns its claims. Any signature, algorithm,
// issuer or expiry problem yields ErrInvalidToken.
func (s *Signer) Verify(token string) (GateClaims, error) {
	var claims GateClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return GateClaims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return GateClaims{}, ErrInvalidToken
	}
	return claims, nil
}
