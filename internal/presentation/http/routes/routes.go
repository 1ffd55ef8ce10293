package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/expedicao-api/internal/application/service"
	"github.com/sangkips/expedicao-api/internal/config"
	"github.com/sangkips/expedicao-api/internal/presentation/http/handler"
	"github.com/sangkips/expedicao-api/internal/presentation/http/middleware"
	"github.com/sangkips/expedicao-api/internal/presentation/web"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Form      *handler.FormHandler
	Expedicao *handler.ExpedicaoHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg   *config.Config
	Forms *service.FormService
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) (*gin.Engine, error) {
	router := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Per-session limiter on everything that reaches the WMS
	rlCfg := middleware.DefaultRateLimiterConfig()
	if deps.Cfg.RateLimit.Requests > 0 && deps.Cfg.RateLimit.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration)
		rlCfg.BurstSize = deps.Cfg.RateLimit.Requests
	}
	rateLimiter := middleware.NewSessionRateLimiter(rlCfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"sessions":     deps.Forms.ActiveSessions(),
			"rate_limiter": rateLimiter.Stats(),
		})
	})

	session := middleware.SessionMiddleware(deps.Forms, &deps.Cfg.Session)

	registerFormRoutes(router, h, session, rateLimiter)

	v1 := router.Group("/api/v1")
	v1.Use(session)
	registerExpedicaoRoutes(v1, h, rateLimiter)

	return router, nil
}

func registerFormRoutes(router *gin.Engine, h *Handlers, session gin.HandlerFunc, rl *middleware.SessionRateLimiter) {
	form := router.Group("/")
	form.Use(session)
	{
		form.GET("", h.Form.Show)
		form.POST("", h.Form.Action)
		form.POST("submit", rl.Middleware(), h.Form.Submit)
	}
}

func registerExpedicaoRoutes(v1 *gin.RouterGroup, h *Handlers, rl *middleware.SessionRateLimiter) {
	expedicao := v1.Group("/expedicao")
	{
		expedicao.GET("", h.Expedicao.Get)
		expedicao.PATCH("/fields", h.Expedicao.UpdateFields)
		expedicao.POST("/items", h.Expedicao.AddItem)
		expedicao.PATCH("/items/:index", h.Expedicao.UpdateItem)
		expedicao.DELETE("/items/:index", h.Expedicao.RemoveItem)
		expedicao.GET("/payload", h.Expedicao.Payload)
		expedicao.POST("/submit", rl.Middleware(), h.Expedicao.Submit)
		expedicao.POST("/reset", h.Expedicao.Reset)
	}
}
