// Package page builds the render contexts of the server-rendered pages
// and renders them through html/template.
package page

import (
	"github.com/deppfellow/opl-checker/internal/locale"
)

// URLPrefix is prepended to every link a page renders.
const URLPrefix = "/"

// Context is what a page template renders from. Strings is shared with
// every other request and must be treated as read-only.
type Context struct {
	URLPrefix       string               `json:"urlprefix"`
	PageTitle       string               `json:"page_title"`
	PageDescription string               `json:"page_description"`
	Language        locale.Language      `json:"language"`
	Strings         *locale.Translations `json:"strings"`
	Units           locale.WeightUnits   `json:"units"`
}

func newContext(loc locale.Locale, title string) Context {
	return Context{
		URLPrefix:       URLPrefix,
		PageTitle:       title,
		PageDescription: loc.Strings.HTMLHeader.Description,
		Language:        loc.Language,
		Strings:         loc.Strings,
		Units:           loc.Units,
	}
}

// NewCheckerContext is the context of the checker page.
func NewCheckerContext(loc locale.Locale) Context {
	return newContext(loc, loc.Strings.Header.Checker)
}
