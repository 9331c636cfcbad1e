package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlImagePatterns mirrors the live-page gallery strategies for offline
// parsing of captured markup: current layout first, generic fallbacks last.
var htmlImagePatterns = []string{
	"#tempHtml2 > div img",
	"#tempHtml > div img",
	"div.prd_detail_cont img",
	"#Contents div.detail_area img",
}

var imageSourceAttrs = []string{"src", "data-src", "data-original", "data-lazy"}

// ExtractGalleryImages parses rendered product-page markup and returns the
// detail image URLs the first matching structural pattern yields,
// deduplicated in document order. It serves as the offline fallback when
// live element queries find nothing, and for re-parsing diagnostic captures.
func ExtractGalleryImages(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	for _, pattern := range htmlImagePatterns {
		var urls []string
		seen := make(map[string]struct{})

		doc.Find(pattern).Each(func(_ int, sel *goquery.Selection) {
			src := resolveSelectionSource(sel)
			if src == "" {
				return
			}
			if _, dup := seen[src]; dup {
				return
			}
			seen[src] = struct{}{}
			urls = append(urls, src)
		})

		if len(urls) > 0 {
			return urls
		}
	}

	return nil
}

func resolveSelectionSource(sel *goquery.Selection) string {
	for _, attr := range imageSourceAttrs {
		value, ok := sel.Attr(attr)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value != "" && strings.Contains(value, "http") {
			return value
		}
	}
	return ""
}
