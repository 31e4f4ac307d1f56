// Package i18n holds the storefront's user-facing messages in English and
// Arabic and picks the language for a request.
package i18n

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported UI language.
type Lang string

const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

// Default is used when nothing in the request matches a supported language.
const Default = English

var (
	supported = []language.Tag{language.English, language.Arabic}
	matcher   = language.NewMatcher(supported)
)

// Parse maps a BCP 47 tag such as "ar-LB" or "EN" onto a supported language.
func Parse(s string) (Lang, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, true
	case "ar":
		return Arabic, true
	}
	return "", false
}

// Negotiate prefers an explicit choice (query or body field) and falls back
// to the Accept-Language header.
func Negotiate(explicit, acceptLanguage string) Lang {
	if l, ok := Parse(explicit); ok {
		return l
	}
	if acceptLanguage == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if supported[idx] == language.Arabic {
		return Arabic
	}
	return English
}

// Valid reports whether l is one of the supported languages.
func (l Lang) Valid() bool {
	return l == English || l == Arabic
}

// Dir is the HTML text direction for l.
func (l Lang) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

func (l Lang) String() string { return string(l) }

// T returns the message for key in l, formatted with args when given.
// Unknown languages fall back to English and unknown keys to the key itself.
func T(l Lang, key Key, args ...any) string {
	msgs, ok := catalog[l]
	if !ok {
		msgs = catalog[Default]
	}
	msg, ok := msgs[key]
	if !ok {
		msg, ok = catalog[Default][key]
		if !ok {
			return string(key)
		}
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

type ctxKey struct{}

// NewContext stores l in ctx.
func NewContext(ctx context.Context, l Lang) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the language stored by NewContext or Middleware.
func FromContext(ctx context.Context) Lang {
	if l, ok := ctx.Value(ctxKey{}).(Lang); ok {
		return l
	}
	return Default
}

// Middleware negotiates the request language from the "lang" query
// parameter and Accept-Language, stores it in the context and sets
// Content-Language on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Language", l.String())
		w.Header().Add("Vary", "Accept-Language")
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), l)))
	})
}
