package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
		ok   bool
	}{
		{"en", English, true},
		{"EN", English, true},
		{"en-US", English, true},
		{"ar", Arabic, true},
		{"ar-LB", Arabic, true},
		{"fr", "", false},
		{"", "", false},
		{"not a tag!", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		accept   string
		want     Lang
	}{
		{"explicit wins", "ar", "en-US,en;q=0.9", Arabic},
		{"header arabic", "", "ar-LB,ar;q=0.9,en;q=0.8", Arabic},
		{"header weighted", "", "fr-FR,ar;q=0.5,en;q=0.9", English},
		{"bad explicit falls to header", "xx-invalid-", "ar", Arabic},
		{"nothing", "", "", English},
		{"unsupported only", "", "de-DE", English},
		{"garbage header", "", ";;;", English},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Negotiate(tt.explicit, tt.accept))
		})
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "Invalid discount code", T(English, MsgDiscountCodeBad))
	assert.Equal(t, "رمز الخصم غير صالح", T(Arabic, MsgDiscountCodeBad))
	assert.Equal(t, "Discount code applied! You'll save 20% (up to $100)", T(English, MsgDiscountApplied, 20, "100"))
	assert.Equal(t,
		"There was an error placing your order: boom. Please try again or contact support.",
		T(English, MsgOrderFailed, "boom"))
	assert.Equal(t, "Invalid discount code", T(Lang("fr"), MsgDiscountCodeBad))
	assert.Equal(t, "no.such.key", T(English, Key("no.such.key")))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range catalog[English] {
		_, ok := catalog[Arabic][key]
		assert.True(t, ok, "arabic catalog missing %s", key)
	}
	assert.Len(t, catalog[Arabic], len(catalog[English]))
}

func TestDir(t *testing.T) {
	assert.Equal(t, "rtl", Arabic.Dir())
	assert.Equal(t, "ltr", English.Dir())
	assert.True(t, Arabic.Valid())
	assert.False(t, Lang("de").Valid())
}

func TestMiddleware(t *testing.T) {
	var got Lang
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart?lang=ar", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, Arabic, got)
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
}

func TestFromContext_Default(t *testing.T) {
	assert.Equal(t, English, FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
