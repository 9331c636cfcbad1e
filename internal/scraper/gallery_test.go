package scraper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeImage struct {
	attrs map[string]string
}

func (f *fakeImage) GetAttribute(name string) (string, error) {
	v, ok := f.attrs[name]
	if !ok {
		return "", errors.New("attribute not present")
	}
	return v, nil
}

func TestResolveImageSource(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  string
	}{
		{
			name:  "plain src",
			attrs: map[string]string{"src": "https://image.oliveyoung.co.kr/a.jpg"},
			want:  "https://image.oliveyoung.co.kr/a.jpg",
		},
		{
			name: "lazy source when src is a placeholder",
			attrs: map[string]string{
				"src":      "data:image/gif;base64,R0lGOD",
				"data-src": "https://image.oliveyoung.co.kr/lazy.jpg",
			},
			want: "https://image.oliveyoung.co.kr/lazy.jpg",
		},
		{
			name: "alternate lazy attribute",
			attrs: map[string]string{
				"data-original": "https://image.oliveyoung.co.kr/orig.jpg",
			},
			want: "https://image.oliveyoung.co.kr/orig.jpg",
		},
		{
			name: "third lazy attribute",
			attrs: map[string]string{
				"data-lazy": "https://image.oliveyoung.co.kr/third.jpg",
			},
			want: "https://image.oliveyoung.co.kr/third.jpg",
		},
		{
			name:  "relative url rejected",
			attrs: map[string]string{"src": "/images/relative.jpg"},
			want:  "",
		},
		{
			name:  "no attributes",
			attrs: map[string]string{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveImageSource(&fakeImage{attrs: tt.attrs}))
		})
	}
}

func TestFirstYieldingPatternStopsAtFirstHit(t *testing.T) {
	attempted := make([]int, 0, len(galleryPatterns))
	yields := map[int][]string{
		2: {"https://img/1.jpg", "https://img/2.jpg", "https://img/3.jpg"},
		3: {"https://img/never.jpg"},
	}

	urls, idx := firstYieldingPattern(galleryPatterns, func(pat galleryPattern) []string {
		for i, p := range galleryPatterns {
			if p == pat {
				attempted = append(attempted, i)
				return yields[i]
			}
		}
		return nil
	})

	assert.Equal(t, 2, idx)
	assert.Len(t, urls, 3)
	assert.Equal(t, []int{0, 1, 2}, attempted, "later patterns must not be attempted")
}

func TestFirstYieldingPatternExhaustion(t *testing.T) {
	urls, idx := firstYieldingPattern(galleryPatterns, func(galleryPattern) []string {
		return nil
	})

	assert.Nil(t, urls)
	assert.Equal(t, -1, idx)
}
