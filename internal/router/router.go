// Package router builds the echo instance: global middleware, the error
// handler and every route.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/handler"
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/page"
	"github.com/deppfellow/opl-checker/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers, middlewares *middleware.Middlewares) (*echo.Echo, error) {
	renderer, err := page.NewRenderer()
	if err != nil {
		return nil, err
	}

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must
	// exist before the context logger is built from them.
	router.Use(
		middlewares.Global.Recover(),
		middlewares.Global.BodyLimit(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
	)

	registerSystemRoutes(router, h)
	registerPageRoutes(router, h, middlewares)
	registerAPIRoutes(router, s, h, middlewares)

	return router, nil
}

func registerPageRoutes(r *echo.Echo, h *handler.Handlers, middlewares *middleware.Middlewares) {
	pages := r.Group("", middlewares.Locale.ResolveLocale())
	pages.GET("/", h.Page.Checker)
	pages.GET("/checker", h.Page.Checker)
	pages.GET("/contact", h.Page.Contact)
}
