package messages

import (
	"testing"
)

func TestNewCatalog_Locales(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		id     string
		want   string
	}{
		{"russian default", "", EmptyInput, "Введите текст для перевода"},
		{"russian explicit", "ru", TranslateFailed, "Не удалось выполнить перевод"},
		{"english", "en", EmptyInput, "Enter text to translate"},
		{"english region", "en-US", CopyFailed, "Could not copy text"},
		{"garbage locale falls back", "not a locale!", Copied, "Текст скопирован в буфер обмена"},
		{"unknown locale falls back", "de", TranslateSucceeded, "Текст успешно переведён"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCatalog(tt.locale)
			if got := c.T(tt.id, nil); got != tt.want {
				t.Errorf("T(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestCatalog_TemplateData(t *testing.T) {
	c := NewCatalog("ru")

	if got := c.T(CharCount, map[string]any{"Count": 42}); got != "42 символов" {
		t.Errorf("CharCount = %q, want %q", got, "42 символов")
	}

	got := c.T(NoAPIKey, map[string]any{"Provider": "DeepSeek", "EnvVar": "DEEPSEEK_API_KEY"})
	want := "API ключ DeepSeek не настроен. Добавьте DEEPSEEK_API_KEY в секреты."
	if got != want {
		t.Errorf("NoAPIKey = %q, want %q", got, want)
	}
}

func TestCatalog_UnknownID(t *testing.T) {
	c := NewCatalog("ru")

	if got := c.T("NoSuchMessage", nil); got != "NoSuchMessage" {
		t.Errorf("Expected unknown id to render as itself, got %q", got)
	}
	if got := c.T("", nil); got != "" {
		t.Errorf("Expected empty id to render empty, got %q", got)
	}
}

func TestCatalog_AllIDsPresent(t *testing.T) {
	ids := []string{
		AppTitle, AppSubtitle, SourcePaneTitle, TargetPaneTitle, SourcePlaceholder,
		TargetPlaceholder, TranslateButton, TranslatingButton, CopyButton,
		TranslateTooltip, CopyTooltip, ClearSourceTooltip, ClearTranslationTooltip,
		HistoryTitle, FeaturesTitle, ErrorTitle, EmptyInput, TranslateFailed, TranslateSucceededTitle,
		TranslateSucceeded, CopiedTitle, Copied, CopyFailed, MethodNotAllowed,
		InvalidJSON, BodyTooLarge, NoText,
	}
	ids = append(ids, Features...)

	for _, locale := range []string{"ru", "en"} {
		c := NewCatalog(locale)
		for _, id := range ids {
			if got := c.T(id, nil); got == id {
				t.Errorf("locale %s: message %s missing", locale, id)
			}
		}
	}
}

func TestFeatures(t *testing.T) {
	if len(Features) != 4 {
		t.Errorf("Expected 4 feature bullet points, got %d", len(Features))
	}
}
