package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/creait/oliveyoung-scraper/internal/models"
)

func TestPaginationCursorControlMapping(t *testing.T) {
	tests := []struct {
		page int
		want controlKind
	}{
		{page: 1, want: controlImmediateNext},
		{page: 9, want: controlImmediateNext},
		{page: 10, want: controlNextBlock},
		{page: 11, want: controlImmediateNext},
		{page: 20, want: controlNextBlock},
		{page: 99, want: controlImmediateNext},
		{page: 100, want: controlNextBlock},
	}

	for _, tt := range tests {
		cursor := paginationCursor{page: tt.page}
		assert.Equalf(t, tt.want, cursor.control(), "page %d", tt.page)
	}
}

func TestPaginationCursorNextSelector(t *testing.T) {
	blockCursor := paginationCursor{page: 10}
	assert.Equal(t, selPaging+" > a.next", blockCursor.nextSelector())

	immediateCursor := paginationCursor{page: 11}
	assert.Equal(t, selPaging+" > strong + a", immediateCursor.nextSelector())
}

// fakePageSource serves scripted review pages and reports whether a next
// page remains after each one.
type fakePageSource struct {
	pages        [][]models.ReviewEntry
	idx          int
	advanceCalls int
}

func (f *fakePageSource) extractPageReviews() []models.ReviewEntry {
	if f.idx >= len(f.pages) {
		return nil
	}
	return f.pages[f.idx]
}

func (f *fakePageSource) advancePage() bool {
	f.advanceCalls++
	f.idx++
	return f.idx < len(f.pages)
}

func TestCollectPagesStopsWhenNextPageUnreachable(t *testing.T) {
	record := models.NewProductRecord()
	src := &fakePageSource{pages: [][]models.ReviewEntry{
		{{Text: "촉촉해요", Rating: "5"}, {Text: "무난합니다", Rating: "3"}},
	}}

	collectPages(src, record, 30)

	assert.Equal(t, []string{"촉촉해요", "무난합니다"}, record.Reviews)
	assert.Equal(t, []string{"5", "3"}, record.ReviewRatings)
	assert.Equal(t, 1, src.advanceCalls)
}

func TestCollectPagesStopsOnEmptyPage(t *testing.T) {
	record := models.NewProductRecord()
	src := &fakePageSource{pages: [][]models.ReviewEntry{
		{{Text: "좋아요", Rating: "5"}},
		{},
	}}

	collectPages(src, record, 30)

	assert.Len(t, record.Reviews, 1)
	assert.Equal(t, 1, src.advanceCalls)
}

func TestCollectPagesStopsAtMaximumWithoutAdvancing(t *testing.T) {
	record := models.NewProductRecord()
	src := &fakePageSource{pages: [][]models.ReviewEntry{
		{{Text: "하나", Rating: "5"}, {Text: "둘", Rating: "4"}},
		{{Text: "셋", Rating: "3"}},
	}}

	collectPages(src, record, 3)

	assert.Len(t, record.Reviews, 3)
	assert.Equal(t, 1, src.advanceCalls)
}

func TestAccumulationRespectsMaximum(t *testing.T) {
	record := models.NewProductRecord()
	page := []models.ReviewEntry{
		{Text: "촉촉해요", Rating: "5"},
		{Text: "무난합니다", Rating: "3"},
		{Text: "재구매 의사 있어요", Rating: ""},
	}

	full := record.AppendReviews(page, 2)

	assert.True(t, full)
	assert.Len(t, record.Reviews, 2)
	assert.Len(t, record.ReviewRatings, 2)
}

func TestAccumulationZeroMaximum(t *testing.T) {
	record := models.NewProductRecord()

	full := record.AppendReviews([]models.ReviewEntry{{Text: "리뷰", Rating: "5"}}, 0)

	assert.True(t, full)
	assert.Empty(t, record.Reviews)
	assert.Empty(t, record.ReviewRatings)
}
