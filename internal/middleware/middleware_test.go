package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/config"
	"github.com/deppfellow/opl-checker/internal/errs"
	"github.com/deppfellow/opl-checker/internal/locale"
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/server"
)

func newTestServer(t *testing.T, redisClient *redis.Client) *server.Server {
	t.Helper()

	info, err := locale.LoadLangInfo()
	require.NoError(t, err)

	logger := zerolog.Nop()
	return &server.Server{
		Config:   config.DefaultConfig(),
		Logger:   &logger,
		LangInfo: info,
		Redis:    redisClient,
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRateLimit(t *testing.T) {
	mr, client := newRedis(t)
	s := newTestServer(t, client)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/api/checker", ok, middleware.NewRateLimitMiddleware(s).Limit("checker", 3, time.Minute))

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/checker", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 3; i++ {
		rec := do("10.0.0.1")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	rec := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderRetryAfter))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "TOO_MANY_REQUESTS", body.Code)

	// Other clients have their own budget.
	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code)

	// Counters carry a TTL so stale windows disappear.
	for _, key := range mr.Keys() {
		assert.True(t, strings.HasPrefix(key, "ratelimit:checker:"), key)
		assert.Positive(t, mr.TTL(key))
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	mr, client := newRedis(t)
	s := newTestServer(t, client)
	mr.Close()

	e := echo.New()
	e.POST("/api/checker", ok, middleware.NewRateLimitMiddleware(s).Limit("checker", 1, time.Minute))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checker", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimit_DisabledWithoutRedis(t *testing.T) {
	s := newTestServer(t, nil)

	e := echo.New()
	e.POST("/api/checker", ok, middleware.NewRateLimitMiddleware(s).Limit("checker", 1, time.Minute))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checker", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestResolveLocale(t *testing.T) {
	s := newTestServer(t, nil)
	locales := middleware.NewLocaleMiddleware(s)

	var got locale.Locale
	e := echo.New()
	e.GET("/contact", func(c echo.Context) error {
		got = locales.GetLocale(c)
		return c.NoContent(http.StatusOK)
	}, locales.ResolveLocale())

	t.Run("query choice is remembered", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact?lang=fr", nil))

		assert.Equal(t, locale.French, got.Language)
		assert.Equal(t, locale.Kilograms, got.Units)
		assert.Same(t, s.LangInfo.Translations(locale.French), got.Strings)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, locale.LanguageCookie, cookies[0].Name)
		assert.Equal(t, "fr", cookies[0].Value)
	})

	t.Run("header only sets nothing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/contact", nil)
		req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, locale.Portuguese, got.Language)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("fallback without middleware", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		loc := locales.GetLocale(c)
		assert.Equal(t, locale.English, loc.Language)
		assert.Equal(t, locale.Pounds, loc.Units)
	})
}

func TestEnhanceContext(t *testing.T) {
	s := newTestServer(t, nil)
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	s.Logger = &logger

	e := echo.New()
	e.Use(middleware.RequestID(), middleware.NewContextEnhancer(s).EnhanceContext())
	e.GET("/status", func(c echo.Context) error {
		middleware.GetLogger(c).Info().Msg("from echo")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from context")
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"abc-123"`)
		assert.Contains(t, line, `"path":"/status"`)
	}
}

func TestGlobalErrorHandler(t *testing.T) {
	s := newTestServer(t, nil)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("database password is hunter2")
	})

	t.Run("unknown errors hide details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "hunter2")
	})

	t.Run("unknown routes are JSON 404s", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Route not found", body.Message)
	})
}
