package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/config"
)

const (
	// SessionHeader lets API clients carry the session without cookies
	SessionHeader = "X-Session-ID"

	sessionIDKey = "session_id"
	formKey      = "form_controller"
)

// SessionFromRequest extracts the session id from the header or the cookie
func SessionFromRequest(c *gin.Context, cookieName string) uuid.UUID {
	raw := strings.TrimSpace(c.GetHeader(SessionHeader))
	if raw == "" {
		if cookie, err := c.Cookie(cookieName); err == nil {
			raw = cookie
		}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// SessionMiddleware attaches the operator's form controller to the context,
// opening a fresh session when the request carries none or an expired one
func SessionMiddleware(forms *service.FormService, cfg *config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		requested := SessionFromRequest(c, cfg.CookieName)
		id, fc := forms.GetOrOpen(requested)

		if id != requested {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, id.String(), int(cfg.TTL.Seconds()), "/", "", cfg.SecureCookie, true)
		}
		c.Header(SessionHeader, id.String())

		c.Set(sessionIDKey, id)
		c.Set(formKey, fc)

		c.Next()
	}
}

// GetSessionID retrieves the session ID from gin context
func GetSessionID(c *gin.Context) uuid.UUID {
	sessionID, exists := c.Get(sessionIDKey)
	if !exists {
		return uuid.Nil
	}
	id, ok := sessionID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// GetFormController retrieves the session's form controller from gin context
func GetFormController(c *gin.Context) *service.FormController {
	v, exists := c.Get(formKey)
	if !exists {
		return nil
	}
	fc, _ := v.(*service.FormController)
	return fc
}
