package scraper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creait/oliveyoung-scraper/internal/config"
)

func TestScrapeWithoutActivePage(t *testing.T) {
	s := New(nil, config.ScraperConfig{})

	record, err := s.Scrape(context.Background(), "https://www.oliveyoung.co.kr/store/goods/getGoodsDetail.do?goodsNo=A000000000001", 30)

	require.ErrorIs(t, err, ErrNoActivePage)
	assert.Nil(t, record)
}
