// Package locale defines the closed set of supported content locales and how
// an HTTP request selects one of them.
package locale

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Locale is a supported content language code.
type Locale string

const (
	ZH Locale = "zh"
	EN Locale = "en"

	// Default is the locale shown when the request expresses no preference.
	Default = ZH

	// QueryParam selects a locale explicitly.
	QueryParam = "lang"
	// CookieName remembers the last explicit selection.
	CookieName = "bio_lang"
)

// ErrUnsupported is returned for any code outside the supported set.
var ErrUnsupported = errors.New("unsupported locale")

var supported = []Locale{ZH, EN}

var matcher = language.NewMatcher([]language.Tag{
	language.TraditionalChinese,
	language.English,
})

// All returns the supported locales in display order.
func All() []Locale {
	return append([]Locale(nil), supported...)
}

// Parse validates a locale code.
func Parse(raw string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(raw))) {
	case ZH:
		return ZH, nil
	case EN:
		return EN, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
	}
}

// MustParse is Parse for compile-time constants; it panics on unsupported codes.
func MustParse(raw string) Locale {
	l, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return l
}

// Valid reports whether l is a supported locale.
func (l Locale) Valid() bool {
	return l == ZH || l == EN
}

// Other returns the opposite locale.
func (l Locale) Other() Locale {
	switch l {
	case ZH:
		return EN
	case EN:
		return ZH
	default:
		panic(fmt.Sprintf("locale: unsupported locale %q", string(l)))
	}
}

// Tag maps the locale to its BCP 47 tag.
func (l Locale) Tag() language.Tag {
	switch l {
	case ZH:
		return language.TraditionalChinese
	case EN:
		return language.English
	default:
		panic(fmt.Sprintf("locale: unsupported locale %q", string(l)))
	}
}

// HTMLLang is the value for the html lang attribute.
func (l Locale) HTMLLang() string {
	return l.Tag().String()
}

// FromRequest resolves the locale for a request: query param, then cookie,
// then Accept-Language, then Default. An explicit but unsupported query value
// is reported as an error. The bool reports whether the choice came from the
// query and should be remembered.
func FromRequest(r *http.Request) (Locale, bool, error) {
	if r == nil {
		return Default, false, nil
	}
	if raw := strings.TrimSpace(r.URL.Query().Get(QueryParam)); raw != "" {
		l, err := Parse(raw)
		if err != nil {
			return "", false, err
		}
		return l, true, nil
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		if l, err := Parse(cookie.Value); err == nil {
			return l, false, nil
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			return match(tags), false, nil
		}
	}
	return Default, false, nil
}

func match(tags []language.Tag) Locale {
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// SetCookie persists an explicit locale choice.
func SetCookie(w http.ResponseWriter, l Locale) {
	if w == nil || !l.Valid() {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
