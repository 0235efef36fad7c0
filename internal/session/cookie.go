package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "sanctuary_session"

type sidClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies the session id carried by the browser
// cookie, so a tampered cookie never resolves to a session.
type CookieCodec struct {
	secret []byte
	issuer string
	secure bool
	ttl    time.Duration
}

// NewCookieCodec creates a codec. An empty secret gets a development
// fallback.
func NewCookieCodec(secret string, secure bool, ttl time.Duration) *CookieCodec {
	if secret == "" {
		secret = "change-me-in-production"
	}
	return &CookieCodec{
		secret: []byte(secret),
		issuer: "sanctuaryconsole",
		secure: secure,
		ttl:    ttl,
	}
}

// Issue signs a session id into a cookie value.
func (c *CookieCodec) Issue(sid string) (string, error) {
	if sid == "" {
		return "", fmt.Errorf("session id required")
	}
	now := time.Now()
	claims := sidClaims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			Issuer:    c.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify extracts the session id from a cookie value.
func (c *CookieCodec) Verify(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &sidClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session cookie: %w", err)
	}
	claims, ok := token.Claims.(*sidClaims)
	if !ok || !token.Valid || claims.SID == "" {
		return "", fmt.Errorf("invalid session cookie claims")
	}
	return claims.SID, nil
}

// SetCookie writes the session cookie on a response.
func (c *CookieCodec) SetCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(c.ttl),
	})
}

// ClearCookie expires the session cookie.
func (c *CookieCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// ReadSID reads and verifies the session id from a request, if any.
func (c *CookieCodec) ReadSID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	sid, err := c.Verify(cookie.Value)
	if err != nil {
		return "", false
	}
	return sid, true
}
