package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRatingPhrase(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   string
	}{
		{name: "full marks", phrase: "5점만점에 5점", want: "5"},
		{name: "four points", phrase: "5점만점에 4점", want: "4"},
		{name: "one point", phrase: "5점만점에 1점", want: "1"},
		{name: "extra whitespace", phrase: "5점만점에   3점  ", want: "3"},
		{name: "unrecognized phrase", phrase: "도움이 돼요", want: ""},
		{name: "empty phrase", phrase: "", want: ""},
		{name: "marker without value", phrase: "5점만점에", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRatingPhrase(tt.phrase))
		})
	}
}

func TestExtractGalleryImagesFirstPatternWins(t *testing.T) {
	html := `
	<html><body>
	<div id="tempHtml2">
		<div><img src="https://image.oliveyoung.co.kr/a.jpg"></div>
		<div><img data-src="https://image.oliveyoung.co.kr/b.jpg"></div>
	</div>
	<div class="prd_detail_cont">
		<img src="https://image.oliveyoung.co.kr/ignored.jpg">
	</div>
	</body></html>`

	urls := ExtractGalleryImages(html)

	assert.Equal(t, []string{
		"https://image.oliveyoung.co.kr/a.jpg",
		"https://image.oliveyoung.co.kr/b.jpg",
	}, urls)
}

func TestExtractGalleryImagesFallsBackToGenericPattern(t *testing.T) {
	html := `
	<html><body>
	<div id="tempHtml2"></div>
	<div class="prd_detail_cont">
		<img data-original="https://image.oliveyoung.co.kr/detail1.jpg">
		<img src="/relative/skipped.jpg">
		<img data-original="https://image.oliveyoung.co.kr/detail1.jpg">
	</div>
	</body></html>`

	urls := ExtractGalleryImages(html)

	assert.Equal(t, []string{"https://image.oliveyoung.co.kr/detail1.jpg"}, urls)
}

func TestExtractGalleryImagesEmptyDocument(t *testing.T) {
	assert.Nil(t, ExtractGalleryImages("<html><body></body></html>"))
}
