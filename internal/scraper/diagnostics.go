package scraper

import (
	"log/slog"
	"os"

	"github.com/playwright-community/playwright-go"
)

// Diagnostic artifacts are written to fixed filenames and overwritten on
// each occurrence; they exist for offline inspection, not for versioned
// capture.
const (
	diagToggleScreenshot    = "debug_screenshot.png"
	diagGalleryScreenshot   = "debug_screenshot_detail_img.png"
	diagGalleryPageSource   = "debug_page_source_detail_img.html"
	diagSortScreenshot      = "debug_screenshot_sort_fail.png"
	diagReviewTabScreenshot = "debug_screenshot_review_click_fail.png"
)

func captureScreenshot(page playwright.Page, logger *slog.Logger, path string) {
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	}); err != nil {
		logger.Warn("failed to capture diagnostic screenshot", "path", path, "error", err)
		return
	}
	logger.Info("saved diagnostic screenshot", "path", path)
}

func capturePageSource(page playwright.Page, logger *slog.Logger, path string) {
	html, err := page.Content()
	if err != nil {
		logger.Warn("failed to read page content for diagnostics", "error", err)
		return
	}

	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		logger.Warn("failed to write diagnostic page source", "path", path, "error", err)
		return
	}
	logger.Info("saved diagnostic page source", "path", path)
}
