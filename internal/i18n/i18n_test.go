package i18n

import (
	"testing"
)

func TestT(t *testing.T) {
	tests := []struct {
		name string
		lang Language
		key  string
		want string
	}{
		{name: "english key", lang: English, key: "pneumonia", want: "Pneumonia"},
		{name: "vietnamese key", lang: Vietnamese, key: "pneumonia", want: "Viêm Phổi"},
		{name: "vietnamese falls back to english", lang: Vietnamese, key: "keyHintsGuide", want: "tab: switch page • q: quit"},
		{name: "unknown language uses english", lang: Language("fr"), key: "home", want: "Home"},
		{name: "missing key returns key", lang: English, key: "doesNotExist", want: "doesNotExist"},
		{name: "loading history present", lang: English, key: "loadingHistory", want: "Loading history..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := T(tt.lang, tt.key); got != tt.want {
				t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestParseLanguage(t *testing.T) {
	if lang, err := ParseLanguage(" VI "); err != nil || lang != Vietnamese {
		t.Errorf("Expected vi, got %q (%v)", lang, err)
	}

	_, err := ParseLanguage("de")
	if err == nil {
		t.Fatal("Expected error for unsupported language")
	}
	want := "unsupported language: de (must be one of: en, vi)"
	if err.Error() != want {
		t.Errorf("Expected error %q, got %q", want, err.Error())
	}
}

func TestTranslator(t *testing.T) {
	tr := NewTranslator(Language("xx"))
	if tr.Language() != English {
		t.Errorf("Expected fallback to English, got %q", tr.Language())
	}
	if got := tr.Tf("imageSaved", "/tmp/x.png"); got != "Image saved to /tmp/x.png" {
		t.Errorf("Unexpected formatted string: %q", got)
	}
}

func TestVietnameseKeysExistInEnglish(t *testing.T) {
	for key := range translations[Vietnamese] {
		if !Has(English, key) {
			t.Errorf("Key %q exists in vi but not in en", key)
		}
	}
}
