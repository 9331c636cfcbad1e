package scraper

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/creait/oliveyoung-scraper/internal/config"
	"github.com/creait/oliveyoung-scraper/internal/models"
	"github.com/creait/oliveyoung-scraper/internal/parser"
)

// galleryExtractor reveals the collapsed detail-image region and walks the
// structural pattern list until one yields images. A missing toggle aborts
// the component (no content region exists without it); everything else is
// best-effort.
type galleryExtractor struct {
	page   playwright.Page
	cfg    config.ScraperConfig
	logger *slog.Logger
}

// imageElement is the slice of the element handle surface the URL resolver
// needs.
type imageElement interface {
	GetAttribute(name string) (string, error)
}

func (g *galleryExtractor) extract(record *models.ProductRecord) {
	// The detail region sits in the lower half and loads lazily.
	g.page.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`)
	g.page.WaitForTimeout(float64(g.cfg.SettleDelay.Milliseconds()))

	toggle, err := g.page.WaitForSelector(selDetailToggle, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(g.cfg.FieldTimeout.Milliseconds())),
	})
	if err != nil || toggle == nil {
		g.logger.Warn("detail image toggle not found, skipping gallery", "error", err)
		captureScreenshot(g.page, g.logger, diagToggleScreenshot)
		return
	}

	if err := toggle.Click(); err != nil {
		g.logger.Warn("failed to click detail image toggle", "error", err)
		captureScreenshot(g.page, g.logger, diagToggleScreenshot)
		return
	}
	g.page.WaitForTimeout(float64(g.cfg.GalleryLoadDelay.Milliseconds()))

	urls, patternIdx := firstYieldingPattern(galleryPatterns, g.imagesFor)
	if patternIdx < 0 {
		// Last chance: re-parse the rendered markup offline before giving up.
		if html, err := g.page.Content(); err == nil {
			urls = parser.ExtractGalleryImages(html)
		}
	}

	if len(urls) == 0 {
		g.logger.Warn("no gallery pattern yielded images")
		captureScreenshot(g.page, g.logger, diagGalleryScreenshot)
		capturePageSource(g.page, g.logger, diagGalleryPageSource)
		return
	}

	for _, url := range urls {
		record.AddDetailImage(url)
	}

	source := fmt.Sprintf("pattern %d", patternIdx)
	if patternIdx < 0 {
		source = "markup fallback"
	}
	g.logger.Info("collected detail images", "count", len(record.DetailImages), "source", source)
}

// imagesFor resolves the image URLs a single pattern yields on the live
// page, deduplicated, in discovery order.
func (g *galleryExtractor) imagesFor(pat galleryPattern) []string {
	var elements []playwright.ElementHandle

	if pat.childDivs {
		containers, err := g.page.QuerySelectorAll(pat.container + " > div")
		if err != nil {
			return nil
		}
		for _, div := range containers {
			imgs, err := div.QuerySelectorAll("img")
			if err != nil {
				continue
			}
			elements = append(elements, imgs...)
		}
	} else {
		imgs, err := g.page.QuerySelectorAll(pat.container + " " + pat.imageSel)
		if err != nil {
			return nil
		}
		elements = imgs
	}

	var urls []string
	seen := make(map[string]struct{})
	for _, el := range elements {
		src := resolveImageSource(el)
		if src == "" {
			continue
		}
		if _, dup := seen[src]; dup {
			continue
		}
		seen[src] = struct{}{}
		urls = append(urls, src)
	}
	return urls
}

// firstYieldingPattern tries patterns in order and returns the URLs of the
// first one that yields at least one image together with its index. Later
// patterns are not attempted. The index is -1 when every pattern came up
// empty.
func firstYieldingPattern(patterns []galleryPattern, imagesFor func(galleryPattern) []string) ([]string, int) {
	for i, pat := range patterns {
		if urls := imagesFor(pat); len(urls) > 0 {
			return urls, i
		}
	}
	return nil, -1
}

// resolveImageSource tries the source attribute chain in order and accepts
// the first non-empty candidate carrying an absolute-URL marker.
func resolveImageSource(el imageElement) string {
	for _, attr := range imageSourceAttrs {
		value, err := el.GetAttribute(attr)
		if err != nil {
			continue
		}
		value = strings.TrimSpace(value)
		if value != "" && strings.Contains(value, "http") {
			return value
		}
	}
	return ""
}
