// Package handler is the HTTP layer: it binds and validates requests,
// calls the services and writes responses.
package handler

import (
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/server"
	"github.com/deppfellow/opl-checker/internal/service"
)

type Handlers struct {
	Health  *HealthHandler
	Checker *CheckerHandler
	Contact *ContactHandler
	Page    *PageHandler
}

func NewHandlers(s *server.Server, services *service.Services, middlewares *middleware.Middlewares) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		Checker: NewCheckerHandler(s, services.Checker),
		Contact: NewContactHandler(s, services.Contact),
		Page:    NewPageHandler(s, middlewares.Locale),
	}
}
