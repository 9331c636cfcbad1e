package parser

import "strings"

// The per-review score element renders a phrase like "5점만점에 4점". The
// numeric rating is the text after the scale marker with the trailing point
// unit stripped.
const (
	ratingScaleMarker = "만점에"
	ratingUnit        = "점"
)

// ParseRatingPhrase extracts the numeric rating from a raw rating phrase.
// An unrecognized phrase yields "", so the caller keeps the review text and
// records an explicitly empty rating slot instead of dropping the item.
func ParseRatingPhrase(raw string) string {
	_, after, found := strings.Cut(raw, ratingScaleMarker)
	if !found {
		return ""
	}

	value := strings.TrimSpace(after)
	value = strings.TrimSuffix(value, ratingUnit)
	return strings.TrimSpace(value)
}
