package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendReviewsKeepsAlignment(t *testing.T) {
	r := NewProductRecord()

	full := r.AppendReviews([]ReviewEntry{
		{Text: "좋아요", Rating: "5"},
		{Text: "보통이에요", Rating: ""},
		{Text: "최고", Rating: "4"},
	}, 10)

	assert.False(t, full)
	assert.Equal(t, len(r.Reviews), len(r.ReviewRatings))
	assert.Equal(t, []string{"좋아요", "보통이에요", "최고"}, r.Reviews)
	assert.Equal(t, []string{"5", "", "4"}, r.ReviewRatings)
}

func TestAppendReviewsTruncatesAtMax(t *testing.T) {
	tests := []struct {
		name    string
		max     int
		entries int
		want    int
		full    bool
	}{
		{name: "below max", max: 5, entries: 3, want: 3, full: false},
		{name: "exactly max", max: 3, entries: 3, want: 3, full: true},
		{name: "above max", max: 2, entries: 5, want: 2, full: true},
		{name: "zero max", max: 0, entries: 4, want: 0, full: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewProductRecord()
			entries := make([]ReviewEntry, tt.entries)
			for i := range entries {
				entries[i] = ReviewEntry{Text: "review", Rating: "5"}
			}

			full := r.AppendReviews(entries, tt.max)

			assert.Equal(t, tt.full, full)
			assert.Len(t, r.Reviews, tt.want)
			assert.Equal(t, len(r.Reviews), len(r.ReviewRatings))
		})
	}
}

func TestAppendReviewsAcrossPages(t *testing.T) {
	r := NewProductRecord()

	page := []ReviewEntry{{Text: "a", Rating: "1"}, {Text: "b", Rating: "2"}}
	assert.False(t, r.AppendReviews(page, 3))
	assert.True(t, r.AppendReviews(page, 3))
	assert.Len(t, r.Reviews, 3)
	assert.Equal(t, len(r.Reviews), len(r.ReviewRatings))
}

func TestAddDetailImageDeduplicates(t *testing.T) {
	r := NewProductRecord()

	assert.True(t, r.AddDetailImage("https://image.example.com/a.jpg"))
	assert.True(t, r.AddDetailImage("https://image.example.com/b.jpg"))
	assert.False(t, r.AddDetailImage("https://image.example.com/a.jpg"))

	assert.Equal(t, []string{
		"https://image.example.com/a.jpg",
		"https://image.example.com/b.jpg",
	}, r.DetailImages)
}
