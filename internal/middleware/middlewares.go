package middleware

import (
	"github.com/deppfellow/opl-checker/internal/server"
)

// Middlewares bundles every middleware the router installs.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
	Locale          *LocaleMiddleware
}

// NewMiddlewares builds the bundle. Tracing degrades to pass-through when
// New Relic is not running.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Locale:          NewLocaleMiddleware(s),
	}
}
