package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/config"
	"github.com/deppfellow/opl-checker/internal/errs"
	"github.com/deppfellow/opl-checker/internal/handler"
	"github.com/deppfellow/opl-checker/internal/locale"
	"github.com/deppfellow/opl-checker/internal/middleware"
	"github.com/deppfellow/opl-checker/internal/repository"
	"github.com/deppfellow/opl-checker/internal/router"
	"github.com/deppfellow/opl-checker/internal/server"
	"github.com/deppfellow/opl-checker/internal/service"
)

func newRouter(t *testing.T) *echo.Echo {
	t.Helper()

	info, err := locale.LoadLangInfo()
	require.NoError(t, err)

	logger := zerolog.Nop()
	s := &server.Server{
		Config:   config.DefaultConfig(),
		Logger:   &logger,
		LangInfo: info,
	}

	services, err := service.NewServices(s, repository.NewRepositories(s))
	require.NoError(t, err)

	middlewares := middleware.NewMiddlewares(s)
	r, err := router.NewRouter(s, handler.NewHandlers(s, services, middlewares), middlewares)
	require.NoError(t, err)
	return r
}

func serve(r *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCheckerEndpoint(t *testing.T) {
	r := newRouter(t)

	t.Run("valid submission", func(t *testing.T) {
		body := `{"meet":"Federation,Date,MeetCountry,MeetState,MeetTown,MeetName\nUSAPL,2019-03-16,USA,CA,Sacramento,Spring Classic\n",` +
			`"entries":"Name,Sex,Equipment,Place,Event\nJohn Doe,M,Raw,1,SBD\n"}`
		rec := serve(r, http.MethodPost, "/api/checker", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"io_error":null,"meet_messages":[],"entries_messages":[]}`, rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("empty strings are checked, not rejected", func(t *testing.T) {
		rec := serve(r, http.MethodPost, "/api/checker", `{"meet":"","entries":""}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var out map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Nil(t, out["io_error"])
		assert.NotEmpty(t, out["meet_messages"])
		assert.Equal(t, []any{}, out["entries_messages"])
	})

	t.Run("missing field", func(t *testing.T) {
		rec := serve(r, http.MethodPost, "/api/checker", `{"meet":""}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var httpErr errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpErr))
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "entries", httpErr.Errors[0].Field)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := serve(r, http.MethodPost, "/api/checker", `{"meet":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestContactEndpoint_Unavailable(t *testing.T) {
	r := newRouter(t)

	rec := serve(r, http.MethodPost, "/api/contact",
		`{"name":"Sam","email":"sam@example.com","message":"Please fix my bodyweight."}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestPages(t *testing.T) {
	r := newRouter(t)

	t.Run("contact in German", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/contact?lang=de", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "<title>Kontakt</title>")
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "lang=de")
	})

	t.Run("checker", func(t *testing.T) {
		rec := serve(r, http.MethodGet, "/checker", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `<html lang="en">`)
	})
}

func TestSystemRoutes(t *testing.T) {
	r := newRouter(t)

	rec := serve(r, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)

	rec = serve(r, http.MethodGet, "/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Route not found")
}
