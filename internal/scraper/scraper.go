package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/creait/oliveyoung-scraper/internal/browser"
	"github.com/creait/oliveyoung-scraper/internal/config"
	"github.com/creait/oliveyoung-scraper/internal/models"
)

// ErrNoActivePage reports a structural misuse: extraction was invoked on a
// scraper whose session has no page. Page conditions never surface as
// errors; this is the one exception.
var ErrNoActivePage = errors.New("scraper has no active page")

// ProductScraper runs one extraction session against a product page. Page
// conditions (absent elements, unresolved challenges, exhausted pagination)
// degrade field by field; the scrape always produces a record.
type ProductScraper struct {
	session *browser.Session
	cfg     config.ScraperConfig
	logger  *slog.Logger
}

func New(session *browser.Session, cfg config.ScraperConfig) *ProductScraper {
	return &ProductScraper{
		session: session,
		cfg:     cfg,
		logger:  slog.Default().With("component", "scraper", "session_id", uuid.NewString()),
	}
}

// Scrape extracts the product record from url, harvesting at most maxReviews
// reviews. It returns an error only on structural misuse; every page-level
// failure leaves the affected fields empty and is logged.
func (s *ProductScraper) Scrape(ctx context.Context, url string, maxReviews int) (*models.ProductRecord, error) {
	if s.session == nil || s.session.Page() == nil {
		return nil, ErrNoActivePage
	}

	record := models.NewProductRecord()
	page := s.session.Page()

	s.logger.Info("scraping product page", "url", url, "max_reviews", maxReviews)

	if err := s.session.Navigate(url, s.cfg.NavigationTimeout); err != nil {
		s.logger.Warn("navigation failed, returning empty record", "error", err)
		return record, nil
	}

	s.session.WaitForChallengeClear(s.cfg.ChallengeTimeout, s.cfg.ChallengePoll)
	page.WaitForTimeout(float64(s.cfg.StabilizeDelay.Milliseconds()))
	s.session.Humanize()

	if ctx.Err() != nil {
		return record, nil
	}

	s.extractFields(record)

	gallery := &galleryExtractor{page: page, cfg: s.cfg, logger: s.logger}
	gallery.extract(record)

	harvester := &reviewHarvester{page: page, cfg: s.cfg, logger: s.logger}
	harvester.run(record, maxReviews)

	s.logger.Info("scrape finished",
		"name", record.Name,
		"images", len(record.DetailImages),
		"reviews", len(record.Reviews))

	return record, nil
}

// extractFields resolves the scalar fields. Each miss is isolated: it is
// logged at warning level and leaves the field unset.
func (s *ProductScraper) extractFields(record *models.ProductRecord) {
	if name, err := s.getText(selName, s.cfg.FieldTimeout); err != nil {
		s.logger.Warn("failed to extract product name", "error", err)
	} else {
		record.Name = name
	}

	record.Price = s.extractPrice()

	if rating, err := s.getText(selRating, s.cfg.FieldTimeout); err != nil {
		s.logger.Warn("failed to extract rating", "error", err)
	} else {
		record.Rating = rating
	}

	if count, err := s.getText(selReviewCount, s.cfg.FieldTimeout); err != nil {
		s.logger.Warn("failed to extract review count", "error", err)
	} else {
		record.ReviewCount = count
	}
}

// extractPrice is two-tier: the discounted price selector with a short
// timeout first, then the regular price selector. Both failing leaves the
// field empty.
func (s *ProductScraper) extractPrice() string {
	if price, err := s.getText(selPriceDiscount, s.cfg.DiscountPriceTimeout); err == nil && price != "" {
		return price
	}

	price, err := s.getText(selPriceRegular, s.cfg.FieldTimeout)
	if err != nil {
		s.logger.Warn("failed to extract price", "error", err)
		return ""
	}
	return price
}

func (s *ProductScraper) getText(selector string, timeout time.Duration) (string, error) {
	return getText(s.session.Page(), selector, timeout)
}

// getText waits for the element to attach, then reads and trims its text.
func getText(page playwright.Page, selector string, timeout time.Duration) (string, error) {
	el, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return "", fmt.Errorf("selector %q did not attach: %w", selector, err)
	}
	if el == nil {
		return "", fmt.Errorf("selector %q not found", selector)
	}

	text, err := el.TextContent()
	if err != nil {
		return "", fmt.Errorf("failed to read text of %q: %w", selector, err)
	}

	return strings.TrimSpace(text), nil
}
