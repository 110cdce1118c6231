package locale

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed translations/*.yaml
var embeddedTranslations embed.FS

// Translations is the translation table for one language. Every string is
// required: a missing key fails LoadLangInfo instead of rendering blank.
type Translations struct {
	Header     HeaderStrings     `yaml:"header" json:"header"`
	HTMLHeader HTMLHeaderStrings `yaml:"html_header" json:"html_header"`
	Units      UnitStrings       `yaml:"units" json:"units"`
	Checker    CheckerStrings    `yaml:"checker" json:"checker"`
	Contact    ContactStrings    `yaml:"contact" json:"contact"`
}

type HeaderStrings struct {
	Checker string `yaml:"checker" json:"checker" validate:"required"`
	Contact string `yaml:"contact" json:"contact" validate:"required"`
}

type HTMLHeaderStrings struct {
	Description string `yaml:"description" json:"description" validate:"required"`
}

type UnitStrings struct {
	Kg  string `yaml:"kg" json:"kg" validate:"required"`
	Lbs string `yaml:"lbs" json:"lbs" validate:"required"`
}

type CheckerStrings struct {
	Description  string `yaml:"description" json:"description" validate:"required"`
	MeetLabel    string `yaml:"meet_label" json:"meet_label" validate:"required"`
	EntriesLabel string `yaml:"entries_label" json:"entries_label" validate:"required"`
	Submit       string `yaml:"submit" json:"submit" validate:"required"`
	NoProblems   string `yaml:"no_problems" json:"no_problems" validate:"required"`
}

type ContactStrings struct {
	Intro       string `yaml:"intro" json:"intro" validate:"required"`
	DataIssues  string `yaml:"data_issues" json:"data_issues" validate:"required"`
	NameLabel   string `yaml:"name_label" json:"name_label" validate:"required"`
	EmailLabel  string `yaml:"email_label" json:"email_label" validate:"required"`
	MessageText string `yaml:"message_label" json:"message_label" validate:"required"`
	Send        string `yaml:"send" json:"send" validate:"required"`
}

// LangInfo holds the translations of every supported language.
type LangInfo struct {
	translations map[Language]*Translations
}

// LoadLangInfo loads the translations embedded in the binary.
func LoadLangInfo() (*LangInfo, error) {
	return LoadLangInfoFS(embeddedTranslations)
}

// LoadLangInfoFS loads translations/<code>.yaml for every supported
// language from fsys. Unknown keys and missing strings are errors.
func LoadLangInfoFS(fsys fs.FS) (*LangInfo, error) {
	validate := validator.New()
	info := &LangInfo{translations: make(map[Language]*Translations, len(Languages))}

	for _, lang := range Languages {
		path := fmt.Sprintf("translations/%s.yaml", lang)
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)

		var t Translations
		if err := decoder.Decode(&t); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := validate.Struct(&t); err != nil {
			return nil, fmt.Errorf("incomplete translations in %s: %w", path, err)
		}

		info.translations[lang] = &t
	}

	return info, nil
}

// Translations returns the table for lang, falling back to DefaultLanguage.
func (li *LangInfo) Translations(lang Language) *Translations {
	if t, ok := li.translations[lang]; ok {
		return t
	}
	return li.translations[DefaultLanguage]
}

// Locale builds the Locale for lang and units.
func (li *LangInfo) Locale(lang Language, units WeightUnits) Locale {
	return Locale{
		Language: lang,
		Units:    units,
		Strings:  li.Translations(lang),
	}
}
