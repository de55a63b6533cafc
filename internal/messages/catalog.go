package messages

import (
	"embed"

	"github.com/charmbracelet/log"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// DefaultLocale is used when no locale is configured or the configured one is unknown
const DefaultLocale = "ru"

// Message IDs
const (
	AppTitle                = "AppTitle"
	AppSubtitle             = "AppSubtitle"
	SourcePaneTitle         = "SourcePaneTitle"
	TargetPaneTitle         = "TargetPaneTitle"
	CharCount               = "CharCount"
	SourcePlaceholder       = "SourcePlaceholder"
	TargetPlaceholder       = "TargetPlaceholder"
	TranslateButton         = "TranslateButton"
	TranslatingButton       = "TranslatingButton"
	CopyButton              = "CopyButton"
	TranslateTooltip        = "TranslateTooltip"
	CopyTooltip             = "CopyTooltip"
	ClearSourceTooltip      = "ClearSourceTooltip"
	ClearTranslationTooltip = "ClearTranslationTooltip"
	HistoryTitle            = "HistoryTitle"
	FeaturesTitle           = "FeaturesTitle"
	FeatureTerminology      = "FeatureTerminology"
	FeatureStyle            = "FeatureStyle"
	FeatureNames            = "FeatureNames"
	FeatureUnlimited        = "FeatureUnlimited"

	ErrorTitle              = "ErrorTitle"
	EmptyInput              = "EmptyInput"
	TranslateFailed         = "TranslateFailed"
	TranslateSucceededTitle = "TranslateSucceededTitle"
	TranslateSucceeded      = "TranslateSucceeded"
	CopiedTitle             = "CopiedTitle"
	Copied                  = "Copied"
	CopyFailed              = "CopyFailed"

	MethodNotAllowed = "MethodNotAllowed"
	InvalidJSON      = "InvalidJSON"
	BodyTooLarge     = "BodyTooLarge"
	NoText           = "NoText"
	NoAPIKey         = "NoAPIKey"
	ProviderFailed   = "ProviderFailed"
)

// Features lists the bullet points of the informational panel, in display order
var Features = []string{FeatureTerminology, FeatureStyle, FeatureNames, FeatureUnlimited}

// Catalog renders localized messages for one locale.
type Catalog struct {
	localizer *i18n.Localizer
	locale    language.Tag
}

// NewCatalog builds a Catalog for locale (e.g. "ru", "en-US"). An empty or
// unparsable locale falls back to DefaultLocale.
func NewCatalog(locale string) *Catalog {
	fallback := language.MustParse(DefaultLocale)

	tag, err := language.Parse(locale)
	if err != nil {
		tag = fallback
	}

	bundle := i18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.ru.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Warn("failed to load message file", "file", file, "err", err)
		}
	}

	return &Catalog{
		localizer: i18n.NewLocalizer(bundle, tag.String(), fallback.String()),
		locale:    tag,
	}
}

// Locale returns the locale the catalog was built for
func (c *Catalog) Locale() string {
	return c.locale.String()
}

// T renders the message identified by id. data fills template placeholders
// and may be nil. Unknown ids render as the id itself.
func (c *Catalog) T(id string, data map[string]any) string {
	if id == "" {
		return ""
	}

	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		log.Debug("localize failed", "id", id, "locale", c.locale, "err", err)
		return id
	}
	return msg
}
