// Package i18n resolves user-facing strings for the supported languages.
package i18n

import (
	"fmt"
	"strings"
)

// Language is a supported UI language code
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"
)

// DefaultLanguage is used for unknown languages and for keys a table lacks
const DefaultLanguage = English

// Languages lists the supported languages
func Languages() []Language {
	return []Language{English, Vietnamese}
}

// ParseLanguage validates a language code
func ParseLanguage(s string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := translations[lang]; ok {
		return lang, nil
	}
	return "", fmt.Errorf("unsupported language: %s (must be one of: en, vi)", s)
}

// T looks key up in lang, then in English, then returns the key itself
func T(lang Language, key string) string {
	if table, ok := translations[lang]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Has reports whether key exists in lang's own table
func Has(lang Language, key string) bool {
	_, ok := translations[lang][key]
	return ok
}

// Translator binds a language for repeated lookups
type Translator struct {
	lang Language
}

// NewTranslator creates a translator; an unsupported language falls back to English
func NewTranslator(lang Language) *Translator {
	if _, ok := translations[lang]; !ok {
		lang = DefaultLanguage
	}
	return &Translator{lang: lang}
}

// Language returns the bound language
func (t *Translator) Language() Language {
	return t.lang
}

// T translates key
func (t *Translator) T(key string) string {
	return T(t.lang, key)
}

// Tf translates key and formats it with args
func (t *Translator) Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(T(t.lang, key), args...)
}
