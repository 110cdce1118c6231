package locale

import (
	"net/http"
	"time"

	"golang.org/x/text/language"
)

const (
	LanguageParam  = "lang"
	LanguageCookie = "lang"
	UnitsParam     = "units"
	UnitsCookie    = "units"

	cookieMaxAge = 365 * 24 * time.Hour
)

var matcher = newMatcher()

func newMatcher() language.Matcher {
	tags := make([]language.Tag, 0, len(Languages))
	for _, l := range Languages {
		tags = append(tags, l.Tag())
	}
	return language.NewMatcher(tags)
}

// Selection is the outcome of resolving a request. The Persist flags are
// set when the request chose a value by query parameter, which the caller
// should remember in a cookie.
type Selection struct {
	Locale          Locale
	PersistLanguage bool
	PersistUnits    bool
}

// Resolve picks the language and units for r. Each is looked up in the
// query string, then in its cookie, and finally derived from the
// Accept-Language header for language and from the language for units.
func (li *LangInfo) Resolve(r *http.Request) Selection {
	lang, persistLang := ResolveLanguage(r)
	units, persistUnits := ResolveUnits(r, lang)

	return Selection{
		Locale:          li.Locale(lang, units),
		PersistLanguage: persistLang,
		PersistUnits:    persistUnits,
	}
}

// ResolveLanguage returns the language for r and whether it came from the
// query string.
func ResolveLanguage(r *http.Request) (Language, bool) {
	if l, err := ParseLanguage(r.URL.Query().Get(LanguageParam)); err == nil {
		return l, true
	}
	if c, err := r.Cookie(LanguageCookie); err == nil {
		if l, err := ParseLanguage(c.Value); err == nil {
			return l, false
		}
	}
	return MatchAcceptLanguage(r.Header.Get("Accept-Language")), false
}

// ResolveUnits returns the weight units for r and whether they came from
// the query string.
func ResolveUnits(r *http.Request, lang Language) (WeightUnits, bool) {
	if u, err := ParseWeightUnits(r.URL.Query().Get(UnitsParam)); err == nil {
		return u, true
	}
	if c, err := r.Cookie(UnitsCookie); err == nil {
		if u, err := ParseWeightUnits(c.Value); err == nil {
			return u, false
		}
	}
	return lang.DefaultUnits(), false
}

// MatchAcceptLanguage returns the best supported language for an
// Accept-Language header value.
func MatchAcceptLanguage(header string) Language {
	if header == "" {
		return DefaultLanguage
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLanguage
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLanguage
	}
	return Languages[index]
}

// LanguageCookieFor builds the cookie that remembers lang.
func LanguageCookieFor(lang Language) *http.Cookie {
	return preferenceCookie(LanguageCookie, string(lang))
}

// UnitsCookieFor builds the cookie that remembers units.
func UnitsCookieFor(units WeightUnits) *http.Cookie {
	return preferenceCookie(UnitsCookie, string(units))
}

func preferenceCookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
