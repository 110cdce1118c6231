package router

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/handler"
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/server"
)

const (
	contactRateLimit       = 5
	contactRateLimitWindow = time.Hour
)

func registerAPIRoutes(r *echo.Echo, s *server.Server, h *handler.Handlers, middlewares *middleware.Middlewares) {
	api := r.Group("/api")
	checkerCfg := s.Config.Checker

	api.POST("/checker",
		handler.Handle(h.Checker.Handler, h.Checker.Check, http.StatusOK),
		middlewares.RateLimit.Limit("checker", checkerCfg.RateLimit, checkerCfg.RateLimitWindow),
	)

	api.POST("/contact",
		handler.Handle(h.Contact.Handler, h.Contact.SendMessage, http.StatusAccepted),
		middlewares.RateLimit.Limit("contact", contactRateLimit, contactRateLimitWindow),
	)
}
