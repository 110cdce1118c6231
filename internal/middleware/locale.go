package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/opl-checker/internal/locale"
	"github.com/deppfellow/opl-checker/internal/server"
)

const LocaleKey = "locale"

type LocaleMiddleware struct {
	server *server.Server
}

func NewLocaleMiddleware(s *server.Server) *LocaleMiddleware {
	return &LocaleMiddleware{server: s}
}

// ResolveLocale picks the visitor's language and units and stores the
// locale for GetLocale. Choices made through the query string are
// remembered in cookies.
func (lm *LocaleMiddleware) ResolveLocale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sel := lm.server.LangInfo.Resolve(c.Request())

			if sel.PersistLanguage {
				c.SetCookie(locale.LanguageCookieFor(sel.Locale.Language))
			}
			if sel.PersistUnits {
				c.SetCookie(locale.UnitsCookieFor(sel.Locale.Units))
			}

			c.Set(LocaleKey, sel.Locale)
			c.Response().Header().Add("Vary", "Accept-Language, Cookie")

			return next(c)
		}
	}
}

// GetLocale returns the resolved locale, or the default language with its
// default units when ResolveLocale did not run.
func (lm *LocaleMiddleware) GetLocale(c echo.Context) locale.Locale {
	if loc, ok := c.Get(LocaleKey).(locale.Locale); ok {
		return loc
	}
	return lm.server.LangInfo.Locale(locale.DefaultLanguage, locale.DefaultLanguage.DefaultUnits())
}
