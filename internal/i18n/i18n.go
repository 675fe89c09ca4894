package i18n

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// CookieName holds the chosen language between requests.
const CookieName = "lang"

// Supported lists the UI languages; the first one is the default.
var Supported = []language.Tag{language.English, language.Malay}

var (
	matcher  = language.NewMatcher(Supported)
	messages = buildCatalog()
)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, ms := range malay {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Malay, key, ms)
	}
	return b
}

// Translator renders UI strings for one language.
type Translator struct {
	Tag     language.Tag
	printer *message.Printer
}

// New returns a Translator for tag, matched against Supported.
func New(tag language.Tag) Translator {
	_, idx, _ := matcher.Match(tag)
	matched := Supported[idx]
	return Translator{Tag: matched, printer: message.NewPrinter(matched, message.Catalog(messages))}
}

// T translates key, which is the English text, formatting args into it.
func (t Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Code returns the base language code, e.g. "en" or "ms".
func (t Translator) Code() string {
	base, _ := t.Tag.Base()
	return base.String()
}

// Resolve picks a language from an explicit choice, a saved cookie value,
// then an Accept-Language header, falling back to fallback.
func Resolve(explicit, saved, acceptLanguage string, fallback language.Tag) language.Tag {
	for _, raw := range []string{explicit, saved} {
		if raw == "" {
			continue
		}
		if tag, err := language.Parse(raw); err == nil {
			if matched, ok := exact(tag); ok {
				return matched
			}
		}
	}

	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := matcher.Match(tags...); conf != language.No {
				return Supported[idx]
			}
		}
	}

	return fallback
}

// FromRequest resolves the language for r using the "lang" query parameter,
// the language cookie, and the Accept-Language header in that order.
func FromRequest(r *http.Request, fallback language.Tag) language.Tag {
	saved := ""
	if c, err := r.Cookie(CookieName); err == nil {
		saved = c.Value
	}
	return Resolve(r.URL.Query().Get("lang"), saved, r.Header.Get("Accept-Language"), fallback)
}

// exact reports the supported tag sharing tag's base language, if any.
func exact(tag language.Tag) (language.Tag, bool) {
	base, _ := tag.Base()
	for _, s := range Supported {
		sb, _ := s.Base()
		if sb == base {
			return s, true
		}
	}
	return language.Und, false
}

// ParseDefault parses a configured default language, falling back to English.
func ParseDefault(raw string) language.Tag {
	if tag, err := language.Parse(raw); err == nil {
		if matched, ok := exact(tag); ok {
			return matched
		}
	}
	return language.English
}
