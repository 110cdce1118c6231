// Package locale holds the site translations and resolves which language
// and weight units a request should be served in.
//
// Translations are loaded once at startup into a LangInfo and never change
// afterwards, so every request shares them by pointer without locking.
package locale

import (
	"fmt"

	"golang.org/x/text/language"
)

// Language is a site language, identified by its ISO 639-1 code.
type Language string

const (
	English    Language = "en"
	German     Language = "de"
	French     Language = "fr"
	Spanish    Language = "es"
	Portuguese Language = "pt"
)

// DefaultLanguage is served when nothing in the request selects another.
const DefaultLanguage = English

// Languages lists every supported language. DefaultLanguage comes first.
var Languages = []Language{English, German, French, Spanish, Portuguese}

// ParseLanguage returns the supported Language for code.
func ParseLanguage(code string) (Language, error) {
	for _, l := range Languages {
		if string(l) == code {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", code)
}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	return language.Make(string(l))
}

// DefaultUnits returns the weight units a language shows unless the
// visitor picked others.
func (l Language) DefaultUnits() WeightUnits {
	if l == English {
		return Pounds
	}
	return Kilograms
}

// WeightUnits is the unit system used to display weights.
type WeightUnits string

const (
	Kilograms WeightUnits = "kg"
	Pounds    WeightUnits = "lbs"
)

// ParseWeightUnits returns the WeightUnits for s.
func ParseWeightUnits(s string) (WeightUnits, error) {
	switch WeightUnits(s) {
	case Kilograms, Pounds:
		return WeightUnits(s), nil
	}
	return "", fmt.Errorf("unsupported weight units %q", s)
}

// Locale is everything a page needs to render for one visitor.
type Locale struct {
	Language Language
	Units    WeightUnits
	// Strings points into the shared LangInfo and must not be modified.
	Strings *Translations
}
