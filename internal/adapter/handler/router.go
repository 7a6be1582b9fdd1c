package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/account-intel/internal/infrastructure/metrics"
	"github.com/johnquangdev/account-intel/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	dossierHandler *Dossier
	metricsManager *metrics.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, dossierHandler *Dossier, metricsManager *metrics.Manager) *Router {
	return &Router{
		cfg:            cfg,
		dossierHandler: dossierHandler,
		metricsManager: metricsManager,
	}
}

// Setup configures all application routes. The auth middleware is passed
// in from main so the handler package stays free of the middleware wiring.
func (rt *Router) Setup(e *echo.Echo, authenticate echo.MiddlewareFunc) {
	e.GET("/health", rt.healthCheck)

	if rt.metricsManager != nil {
		e.GET("/metrics", echo.WrapHandler(rt.metricsManager.Handler()))
	}

	v1 := e.Group("/v1")
	rt.setupDossierRoutes(v1, authenticate)
}

// setupDossierRoutes configures dossier routes
func (rt *Router) setupDossierRoutes(g *echo.Group, authenticate echo.MiddlewareFunc) {
	dossierGroup := g.Group("/dossiers")
	if authenticate != nil {
		dossierGroup.Use(authenticate)
	}

	if rt.dossierHandler != nil {
		dossierGroup.POST("", rt.dossierHandler.Generate)
		dossierGroup.GET("/:account", rt.dossierHandler.GetLatest)
		dossierGroup.GET("/:account/history", rt.dossierHandler.History)
	} else {
		dossierGroup.POST("", rt.notImplemented)
		dossierGroup.GET("/:account", rt.notImplemented)
		dossierGroup.GET("/:account/history", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	env := "development"
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": env,
	})
}
