package scraper

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/creait/oliveyoung-scraper/internal/config"
	"github.com/creait/oliveyoung-scraper/internal/models"
	"github.com/creait/oliveyoung-scraper/internal/parser"
)

// harvestState names the one-directional states of the review harvest:
// activate the review tab, sort by helpfulness, then paginate until done.
// Each transition failure logs and the machine completes best-effort.
type harvestState int

const (
	stateTabInactive harvestState = iota
	stateTabActive
	stateSorted
	statePaginating
	stateDone
)

// controlKind selects which pagination control advances to the next page.
type controlKind int

const (
	// controlImmediateNext is the page number link directly after the
	// active indicator.
	controlImmediateNext controlKind = iota
	// controlNextBlock jumps to the next block of ten pages.
	controlNextBlock
)

// paginationCursor tracks the current page number parsed from the active
// page indicator and derives which control to use.
type paginationCursor struct {
	page int
}

// control returns the next-page control for the cursor position. Page
// numbers closing a block of ten (10, 20, ...) have no immediate successor
// link and must use the block control.
func (c paginationCursor) control() controlKind {
	if c.page > 0 && c.page%10 == 0 {
		return controlNextBlock
	}
	return controlImmediateNext
}

func (c paginationCursor) nextSelector() string {
	if c.control() == controlNextBlock {
		return selPaging + " > a.next"
	}
	return selPaging + " > strong + a"
}

type reviewHarvester struct {
	page   playwright.Page
	cfg    config.ScraperConfig
	logger *slog.Logger
}

// run drives the state machine. A failed tab activation leaves the record's
// reviews empty; everything downstream accumulates whatever was reachable.
func (h *reviewHarvester) run(record *models.ProductRecord, maxReviews int) {
	state := stateTabInactive

	for state != stateDone {
		switch state {
		case stateTabInactive:
			if !h.activateTab() {
				state = stateDone
				continue
			}
			state = stateTabActive

		case stateTabActive:
			h.readRatingDistribution(record)
			h.sortByHelpfulness()
			state = stateSorted

		case stateSorted:
			state = statePaginating

		case statePaginating:
			collectPages(h, record, maxReviews)
			state = stateDone
		}
	}

	h.logger.Info("review harvest complete", "reviews", len(record.Reviews))
}

func (h *reviewHarvester) activateTab() bool {
	tab, err := h.page.WaitForSelector(selReviewTab, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(h.cfg.FieldTimeout.Milliseconds())),
	})
	if err != nil || tab == nil {
		h.logger.Warn("review tab not found", "error", err)
		captureScreenshot(h.page, h.logger, diagReviewTabScreenshot)
		return false
	}

	if err := tab.Click(); err != nil {
		h.logger.Warn("failed to click review tab", "error", err)
		captureScreenshot(h.page, h.logger, diagReviewTabScreenshot)
		return false
	}

	h.page.WaitForTimeout(float64(h.cfg.SettleDelay.Milliseconds()))
	return true
}

// readRatingDistribution reads the percentage text for star values 5 down
// to 1. The panel lists them top-down, so positional index i maps to rating
// 6-i. Missing entries are omitted from the mapping.
func (h *reviewHarvester) readRatingDistribution(record *models.ProductRecord) {
	if _, err := h.page.WaitForSelector(selGraphArea, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(h.cfg.FieldTimeout.Milliseconds())),
	}); err != nil {
		h.logger.Warn("rating distribution panel not found", "error", err)
		return
	}

	for i := 1; i <= 5; i++ {
		rating := 6 - i
		selector := fmt.Sprintf("%s > ul > li:nth-child(%d) > span.per", selGraphArea, i)

		text, err := getText(h.page, selector, h.cfg.ShortTimeout)
		if err != nil || text == "" {
			h.logger.Warn("missing distribution entry", "rating", rating)
			continue
		}
		record.RatingDistribution[rating] = text
	}
}

// sortByHelpfulness switches the review ordering. On failure the harvest
// continues with whatever default ordering is active.
func (h *reviewHarvester) sortByHelpfulness() {
	sortButton, err := h.page.WaitForSelector(selSortHelpful, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(h.cfg.FieldTimeout.Milliseconds())),
	})
	if err != nil || sortButton == nil {
		h.logger.Warn("helpfulness sort control not found", "error", err)
		captureScreenshot(h.page, h.logger, diagSortScreenshot)
		return
	}

	if err := sortButton.Click(); err != nil {
		h.logger.Warn("failed to click helpfulness sort", "error", err)
		captureScreenshot(h.page, h.logger, diagSortScreenshot)
		return
	}

	h.page.WaitForTimeout(float64(h.cfg.SettleDelay.Milliseconds()))
}

// pageSource yields the reviews visible on the current page and moves to
// the next one. advancePage reports false when no further page is
// reachable.
type pageSource interface {
	extractPageReviews() []models.ReviewEntry
	advancePage() bool
}

// collectPages is the core pagination loop: extract the current page,
// append up to the requested maximum, then advance. It terminates cleanly
// on a full accumulator, an empty page, or an unreachable next page,
// keeping whatever was accumulated.
func collectPages(src pageSource, record *models.ProductRecord, maxReviews int) {
	for {
		entries := src.extractPageReviews()
		if len(entries) == 0 {
			return
		}

		if record.AppendReviews(entries, maxReviews) {
			return
		}

		if !src.advancePage() {
			return
		}
	}
}

// extractPageReviews pulls text and rating for every review item on the
// current page. A missing text or rating element skips that single item
// only; a review whose rating phrase cannot be parsed keeps its slot with an
// empty rating.
func (h *reviewHarvester) extractPageReviews() []models.ReviewEntry {
	if _, err := h.page.WaitForSelector(selReviewList, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(h.cfg.FieldTimeout.Milliseconds())),
	}); err != nil {
		h.logger.Warn("review list not found", "error", err)
		return nil
	}

	items, err := h.page.QuerySelectorAll(selReviewList + " > li")
	if err != nil {
		h.logger.Warn("failed to enumerate review items", "error", err)
		return nil
	}

	var entries []models.ReviewEntry
	for i := 1; i <= len(items); i++ {
		textSel := fmt.Sprintf("%s > li:nth-child(%d) > div.review_cont > div.txt_inner", selReviewList, i)
		text, err := getText(h.page, textSel, h.cfg.ShortTimeout)
		if err != nil || text == "" {
			// Photo-only reviews carry no txt_inner block.
			h.logger.Debug("review item has no text, skipping", "index", i)
			continue
		}

		rating := ""
		ratingSel := fmt.Sprintf("%s > li:nth-child(%d) > div.review_cont div.score_area span.point", selReviewList, i)
		if phrase, err := getText(h.page, ratingSel, h.cfg.ShortTimeout); err == nil {
			rating = parser.ParseRatingPhrase(phrase)
		}

		entries = append(entries, models.ReviewEntry{Text: text, Rating: rating})
	}

	h.logger.Info("extracted reviews from page", "count", len(entries), "items", len(items))
	return entries
}

// advancePage reads the active page indicator, picks the matching next
// control and clicks it. It reports false when the last page is reached or
// navigation fails.
func (h *reviewHarvester) advancePage() bool {
	current, err := h.currentPageNumber()
	if err != nil {
		h.logger.Warn("could not read active page indicator, stopping", "error", err)
		return false
	}

	cursor := paginationCursor{page: current}
	next, err := h.page.QuerySelector(cursor.nextSelector())
	if err != nil || next == nil {
		h.logger.Info("no next-page control, last page reached", "page", current)
		return false
	}

	if err := next.Click(); err != nil {
		h.logger.Warn("failed to click next-page control", "page", current, "error", err)
		return false
	}

	h.page.WaitForTimeout(float64(h.cfg.SettleDelay.Milliseconds()))
	return true
}

func (h *reviewHarvester) currentPageNumber() (int, error) {
	indicator, err := h.page.QuerySelector(selPaging + " > strong")
	if err != nil {
		return 0, fmt.Errorf("failed to query page indicator: %w", err)
	}
	if indicator == nil {
		return 0, fmt.Errorf("active page indicator not present")
	}

	text, err := indicator.TextContent()
	if err != nil {
		return 0, fmt.Errorf("failed to read page indicator: %w", err)
	}

	page, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("page indicator %q is not a number: %w", text, err)
	}
	return page, nil
}
