package page

import "github.com/deppfellow/opl-checker/internal/locale"

// NewContactContext is the context of the contact page. It has no
// failure modes: the translation table is complete once loaded.
func NewContactContext(loc locale.Locale) Context {
	return newContext(loc, loc.Strings.Header.Contact)
}
