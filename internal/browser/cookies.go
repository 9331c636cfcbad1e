package browser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// StoredCookie is one entry of the external cookie-store file, a JSON array
// of objects in browser-extension export format. Only name, value and domain
// are required; malformed entries are skipped rather than failing the load.
type StoredCookie struct {
	Name           string  `json:"name"`
	Value          string  `json:"value"`
	Domain         string  `json:"domain"`
	Path           string  `json:"path"`
	ExpirationDate float64 `json:"expirationDate"`
	HTTPOnly       bool    `json:"httpOnly"`
	Secure         bool    `json:"secure"`
	SameSite       string  `json:"sameSite"`
}

// LoadCookies reads the cookie store at path and injects the valid entries
// into the browsing context. A missing file is not an error: the scrape
// proceeds without persisted identity.
func (s *Session) LoadCookies(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.logger.Info("cookie store not found, continuing without cookies", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cookie store: %w", err)
	}

	var stored []StoredCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to parse cookie store: %w", err)
	}

	cookies := normalizeCookies(stored)
	if len(cookies) == 0 {
		s.logger.Warn("cookie store contained no usable cookies", "path", path)
		return nil
	}

	if err := s.context.AddCookies(cookies); err != nil {
		return fmt.Errorf("failed to inject cookies: %w", err)
	}

	s.logger.Info("injected cookies", "count", len(cookies), "skipped", len(stored)-len(cookies))
	return nil
}

// normalizeCookies translates the external store schema field by field,
// dropping entries that are missing a name, value or domain.
func normalizeCookies(stored []StoredCookie) []playwright.OptionalCookie {
	var cookies []playwright.OptionalCookie
	for _, c := range stored {
		if c.Name == "" || c.Value == "" || c.Domain == "" {
			continue
		}

		cookie := playwright.OptionalCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   playwright.String(c.Domain),
			HttpOnly: playwright.Bool(c.HTTPOnly),
			Secure:   playwright.Bool(c.Secure),
			SameSite: normalizeSameSite(c.SameSite),
		}

		if c.Path != "" {
			cookie.Path = playwright.String(c.Path)
		}
		if c.ExpirationDate > 0 {
			cookie.Expires = playwright.Float(c.ExpirationDate)
		}

		cookies = append(cookies, cookie)
	}
	return cookies
}

func normalizeSameSite(value string) *playwright.SameSiteAttribute {
	switch value {
	case "no_restriction":
		return playwright.SameSiteAttributeNone
	case "strict":
		return playwright.SameSiteAttributeStrict
	case "lax":
		return playwright.SameSiteAttributeLax
	default:
		return playwright.SameSiteAttributeLax
	}
}
