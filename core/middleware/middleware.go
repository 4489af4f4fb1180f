package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Ridhima028/ai-calendar-assistant/core/cache"
	"github.com/Ridhima028/ai-calendar-assistant/core/constants"
	"github.com/Ridhima028/ai-calendar-assistant/core/logger"
	"github.com/Ridhima028/ai-calendar-assistant/core/session"
	"github.com/Ridhima028/ai-calendar-assistant/core/utils"
)

const sessionContextKey = "session_state"

// Middleware resolves the per-request session state from a signed cookie and
// makes it available to handlers. New visitors get a fresh session.
type Middleware struct {
	cache  cache.Cache
	secret []byte
	ttl    time.Duration
}

func NewMiddleware(c cache.Cache, secret string, ttl time.Duration) *Middleware {
	return &Middleware{
		cache:  c,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Session loads (or creates) the session state for every request passing
// through it. The state object stored in context is the same object the
// handler mutates and the middleware owner persists.
func (m *Middleware) Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			state := m.resolveState(c)
			c.Set(sessionContextKey, state)
			return next(c)
		}
	}
}

func (m *Middleware) resolveState(c echo.Context) *session.State {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		if sid, err := m.parseToken(cookie.Value); err == nil {
			state, err := m.cache.GetSession(ctx, sid)
			if err == nil && state != nil {
				return state
			}
			if err != nil {
				logger.Error("Middleware:Session:GetSession:Error", "error", err, "session_id", sid)
			}
			// Cookie is valid but the stored state expired; reuse the id so
			// the client keeps its cookie.
			return &session.State{ID: sid}
		}
	}

	state := &session.State{ID: utils.GenerateSessionID()}
	m.issueCookie(c, state.ID)
	return state
}

// Save persists the (possibly mutated) state back to the session store.
func (m *Middleware) Save(ctx context.Context, state *session.State) error {
	return m.cache.SaveSession(ctx, state)
}

// Destroy removes the stored state and expires the cookie.
func (m *Middleware) Destroy(c echo.Context, state *session.State) error {
	if err := m.cache.DeleteSession(c.Request().Context(), state.ID); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Middleware) issueCookie(c echo.Context, sessionID string) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		logger.Error("Middleware:IssueCookie:Sign:Error", "error", err)
		return
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (m *Middleware) parseToken(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session claims")
	}
	return claims.SessionID, nil
}

// GetState returns the session state installed by Session().
func GetState(c echo.Context) *session.State {
	if state, ok := c.Get(sessionContextKey).(*session.State); ok {
		return state
	}
	return nil
}
