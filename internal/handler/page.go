package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/locale"
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/page"
	"github.com/deppfellow/opl-checker/internal/server"
)

// PageHandler renders the server-side pages. It relies on the locale
// middleware having run.
type PageHandler struct {
	Handler
	locales *middleware.LocaleMiddleware
}

func NewPageHandler(s *server.Server, locales *middleware.LocaleMiddleware) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(s),
		locales: locales,
	}
}

func (h *PageHandler) Contact(c echo.Context) error {
	return h.render(c, page.ContactPage, page.NewContactContext)
}

func (h *PageHandler) Checker(c echo.Context) error {
	return h.render(c, page.CheckerPage, page.NewCheckerContext)
}

func (h *PageHandler) render(c echo.Context, name string, build func(locale.Locale) page.Context) error {
	ctx := build(h.locales.GetLocale(c))

	middleware.GetLogger(c).Debug().
		Str("page", name).
		Str("language", string(ctx.Language)).
		Str("units", string(ctx.Units)).
		Msg("rendering page")

	return c.Render(http.StatusOK, name, ctx)
}
