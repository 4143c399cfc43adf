package middleware

import (
	"context"
	"errors"
	"net/http"

	sessionService "storefront-backend/internal/domains/session/service"
	"storefront-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "session_id"
	SessionMaxAge     = 60 * 60 * 24 * 30 // 30 days in seconds

	ContextKeySession   = "session"
	ContextKeySessionID = "session_id"
)

var ErrSessionNotFound = errors.New("session not found in context")

// SessionProvider resolves the engine of one device
type SessionProvider interface {
	Get(ctx context.Context, id string) *sessionService.Session
}

type SessionMiddlewareConfig struct {
	Sessions       SessionProvider
	CookieName     string
	CookieDomain   string
	CookiePath     string
	CookieSecure   bool
	CookieSameSite http.SameSite
	MaxAge         int
}

func DefaultSessionMiddlewareConfig(sessions SessionProvider) SessionMiddlewareConfig {
	return SessionMiddlewareConfig{
		Sessions:       sessions,
		CookieName:     SessionCookieName,
		CookiePath:     "/",
		CookieSecure:   true,
		CookieSameSite: http.SameSiteLaxMode,
		MaxAge:         SessionMaxAge,
	}
}

// SessionMiddleware identifies the device by its session cookie, issuing a
// new one when missing or malformed, and holds the session's lock for the
// rest of the request
func SessionMiddleware(config SessionMiddlewareConfig) gin.HandlerFunc {
	if config.CookieName == "" {
		config.CookieName = SessionCookieName
	}
	if config.CookiePath == "" {
		config.CookiePath = "/"
	}

	return func(c *gin.Context) {
		sessionID := getSessionID(c, config.CookieName)
		if sessionID == "" {
			sessionID = uuid.New().String()
			setSessionCookie(c, sessionID, config)
		}

		session := config.Sessions.Get(c.Request.Context(), sessionID)
		session.Lock()
		defer session.Unlock()

		c.Set(ContextKeySessionID, sessionID)
		c.Set(ContextKeySession, session)
		c.Next()
	}
}

func getSessionID(c *gin.Context, name string) string {
	sessionID, err := c.Cookie(name)
	if err != nil || sessionID == "" {
		return ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return ""
	}
	return sessionID
}

func setSessionCookie(c *gin.Context, sessionID string, config SessionMiddlewareConfig) {
	c.SetSameSite(config.CookieSameSite)
	c.SetCookie(
		config.CookieName,
		sessionID,
		config.MaxAge,
		config.CookiePath,
		config.CookieDomain,
		config.CookieSecure,
		true,
	)
}

// GetSession retrieves the device session set by SessionMiddleware
func GetSession(c *gin.Context) (*sessionService.Session, error) {
	value, exists := c.Get(ContextKeySession)
	if !exists {
		return nil, ErrSessionNotFound
	}
	session, ok := value.(*sessionService.Session)
	if !ok || session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// MustSession returns the session or aborts with 500
func MustSession(c *gin.Context) (*sessionService.Session, bool) {
	session, err := GetSession(c)
	if err != nil {
		response.InternalServerError(c, "Session unavailable")
		c.Abort()
		return nil, false
	}
	return session, true
}

// GetSessionID retrieves the session id from context
func GetSessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}
