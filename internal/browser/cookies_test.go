package browser

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSameSite(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  *playwright.SameSiteAttribute
	}{
		{name: "no restriction maps to none", value: "no_restriction", want: playwright.SameSiteAttributeNone},
		{name: "lax", value: "lax", want: playwright.SameSiteAttributeLax},
		{name: "strict", value: "strict", want: playwright.SameSiteAttributeStrict},
		{name: "empty defaults to lax", value: "", want: playwright.SameSiteAttributeLax},
		{name: "unknown defaults to lax", value: "unspecified", want: playwright.SameSiteAttributeLax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeSameSite(tt.value))
		})
	}
}

func TestNormalizeCookiesSkipsMalformedEntries(t *testing.T) {
	stored := []StoredCookie{
		{Name: "session", Value: "abc", Domain: ".oliveyoung.co.kr", Path: "/", SameSite: "lax"},
		{Name: "", Value: "orphan", Domain: ".oliveyoung.co.kr"},
		{Name: "novalue", Value: "", Domain: ".oliveyoung.co.kr"},
		{Name: "nodomain", Value: "x", Domain: ""},
		{Name: "cf", Value: "token", Domain: ".oliveyoung.co.kr", SameSite: "no_restriction", Secure: true, ExpirationDate: 1893456000},
	}

	cookies := normalizeCookies(stored)

	require.Len(t, cookies, 2)
	assert.Equal(t, "session", cookies[0].Name)
	assert.Equal(t, playwright.SameSiteAttributeLax, cookies[0].SameSite)
	assert.Equal(t, "cf", cookies[1].Name)
	assert.Equal(t, playwright.SameSiteAttributeNone, cookies[1].SameSite)
	require.NotNil(t, cookies[1].Expires)
	assert.Equal(t, float64(1893456000), *cookies[1].Expires)
	require.NotNil(t, cookies[1].Secure)
	assert.True(t, *cookies[1].Secure)
}

func TestNormalizeCookiesOmitsUnsetOptionalFields(t *testing.T) {
	cookies := normalizeCookies([]StoredCookie{
		{Name: "minimal", Value: "v", Domain: "oliveyoung.co.kr"},
	})

	require.Len(t, cookies, 1)
	assert.Nil(t, cookies[0].Path)
	assert.Nil(t, cookies[0].Expires)
}
