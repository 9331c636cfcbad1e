package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.True(t, opts.Headless)
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, 1920, opts.ViewportWidth)
	assert.Equal(t, 1080, opts.ViewportHeight)
	assert.Equal(t, "ko-KR", opts.Locale)
	assert.Equal(t, "Asia/Seoul", opts.TimezoneID)
}

func TestContainsChallengeMarker(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "korean wait marker", body: "잠시만 기다리세요...", want: true},
		{name: "english browser check", body: "Checking your browser before accessing", want: true},
		{name: "mixed case", body: "Please Wait", want: true},
		{name: "product page", body: "리뷰 1,024건  장바구니 담기", want: false},
		{name: "empty body", body: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsChallengeMarker(tt.body))
		})
	}
}
