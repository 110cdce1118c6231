package page_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/locale"
	"github.com/deppfellow/opl-checker/internal/page"
)

func loadInfo(t *testing.T) *locale.LangInfo {
	t.Helper()
	info, err := locale.LoadLangInfo()
	require.NoError(t, err)
	return info
}

func TestNewContactContext(t *testing.T) {
	info := loadInfo(t)
	loc := info.Locale(locale.German, locale.Kilograms)

	ctx := page.NewContactContext(loc)

	assert.Equal(t, "/", ctx.URLPrefix)
	assert.Equal(t, "Kontakt", ctx.PageTitle)
	assert.Equal(t, loc.Strings.HTMLHeader.Description, ctx.PageDescription)
	assert.Equal(t, locale.German, ctx.Language)
	assert.Equal(t, locale.Kilograms, ctx.Units)
	assert.Same(t, loc.Strings, ctx.Strings)
}

func TestNewContactContext_Deterministic(t *testing.T) {
	info := loadInfo(t)

	for _, lang := range locale.Languages {
		for _, units := range []locale.WeightUnits{locale.Kilograms, locale.Pounds} {
			loc := info.Locale(lang, units)
			first := page.NewContactContext(loc)
			second := page.NewContactContext(loc)
			assert.Equal(t, first, second)

			// The builder must not touch the shared table.
			assert.Equal(t, *info.Translations(lang), *first.Strings)
		}
	}
}

func TestContextJSON(t *testing.T) {
	info := loadInfo(t)
	ctx := page.NewContactContext(info.Locale(locale.English, locale.Pounds))

	data, err := json.Marshal(ctx)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "/", decoded["urlprefix"])
	assert.Equal(t, "Contact", decoded["page_title"])
	assert.Equal(t, "en", decoded["language"])
	assert.Equal(t, "lbs", decoded["units"])
	assert.Contains(t, decoded, "strings")
}

func TestNewCheckerContext(t *testing.T) {
	info := loadInfo(t)
	loc := info.Locale(locale.French, locale.Kilograms)

	ctx := page.NewCheckerContext(loc)
	assert.Equal(t, loc.Strings.Header.Checker, ctx.PageTitle)
	assert.Equal(t, loc.Strings.HTMLHeader.Description, ctx.PageDescription)
}

func TestRenderer(t *testing.T) {
	info := loadInfo(t)
	renderer, err := page.NewRenderer()
	require.NoError(t, err)

	t.Run("contact", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := page.NewContactContext(info.Locale(locale.German, locale.Kilograms))
		require.NoError(t, renderer.Render(&buf, page.ContactPage, ctx, nil))

		html := buf.String()
		assert.Contains(t, html, `<html lang="de">`)
		assert.Contains(t, html, "<title>Kontakt</title>")
		assert.Contains(t, html, `action="/api/contact"`)
	})

	t.Run("checker", func(t *testing.T) {
		var buf bytes.Buffer
		ctx := page.NewCheckerContext(info.Locale(locale.English, locale.Pounds))
		require.NoError(t, renderer.Render(&buf, page.CheckerPage, ctx, nil))
		assert.Contains(t, buf.String(), "meet.csv")
	})

	t.Run("unknown page", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, renderer.Render(&buf, "about", page.Context{}, nil))
	})
}
