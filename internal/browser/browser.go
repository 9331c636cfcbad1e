package browser

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session owns one browser instance for the duration of a single scrape.
// Identity (user agent, locale, viewport, geolocation, headers) is fixed at
// acquisition time and not mutable mid-session.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  *slog.Logger
}

type Options struct {
	Headless       bool
	Timeout        time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
	Latitude       float64
	Longitude      float64
	CookieFile     string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:       true,
		Timeout:        30 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		AcceptLanguage: "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7",
		TimezoneID:     "Asia/Seoul",
		Locale:         "ko-KR",
		Latitude:       37.5665,
		Longitude:      126.9780,
	}
}

// New launches a browser, creates a context carrying the identity profile,
// and produces one page. The returned session must be released with Close on
// every exit path.
func New(opts *Options) (*Session, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-setuid-sandbox",
			fmt.Sprintf("--window-size=%d,%d", opts.ViewportWidth, opts.ViewportHeight),
			"--user-agent=" + opts.UserAgent,
		},
	}

	b, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		UserAgent:         &opts.UserAgent,
		AcceptDownloads:   playwright.Bool(false),
		JavaScriptEnabled: playwright.Bool(true),
		Locale:            &opts.Locale,
		TimezoneId:        &opts.TimezoneID,
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		Geolocation: &playwright.Geolocation{
			Latitude:  opts.Latitude,
			Longitude: opts.Longitude,
		},
		Permissions:      []string{"geolocation"},
		ExtraHttpHeaders: navigationHeaders(opts.AcceptLanguage),
	}

	context, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	logger := slog.Default().With("component", "browser")

	session := &Session{
		pw:      pw,
		browser: b,
		context: context,
		logger:  logger,
	}

	// Mask automation signatures before the context serves any page so the
	// script runs ahead of site scripts.
	if err := context.AddInitScript(playwright.Script{
		Content: playwright.String(stealthScript),
	}); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to add stealth script: %w", err)
	}

	if opts.CookieFile != "" {
		if err := session.LoadCookies(opts.CookieFile); err != nil {
			// Missing or malformed cookie stores are not fatal, the site
			// simply treats us as a fresh visitor.
			logger.Warn("failed to load cookie store", "path", opts.CookieFile, "error", err)
		}
	}

	page, err := context.NewPage()
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(opts.Timeout.Milliseconds()))
	session.page = page

	return session, nil
}

func navigationHeaders(acceptLanguage string) map[string]string {
	return map[string]string{
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language":           acceptLanguage,
		"Accept-Encoding":           "gzip, deflate, br",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"DNT":                       "1",
	}
}

// Page returns the single page owned by this session.
func (s *Session) Page() playwright.Page {
	return s.page
}

func (s *Session) Context() playwright.BrowserContext {
	return s.context
}

// Close releases page, context, browser and the driver, in that order,
// regardless of whether the scrape succeeded.
func (s *Session) Close() error {
	var errs []error

	if s.page != nil {
		if err := s.page.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close page: %w", err))
		}
	}

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}

	return nil
}

// Navigate loads the target URL waiting only for the initial load event.
// Interstitial challenge pages keep connections open, so waiting for network
// idle here would time out on exactly the pages that need the challenge wait.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// challengeMarkers are body-text fragments shown by bot-defense interstitials
// before the real content loads.
var challengeMarkers = []string{
	"잠시만 기다리",
	"please wait",
	"checking your browser",
	"확인 중입니다",
}

// WaitForChallengeClear polls the rendered body text until no challenge
// marker remains or the timeout expires. A timeout is non-fatal: the caller
// proceeds and later extraction steps fail individually if the challenge
// never cleared.
func (s *Session) WaitForChallengeClear(timeout, poll time.Duration) bool {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		body, err := s.page.Evaluate(`() => document.body ? document.body.innerText : ""`)
		if err == nil {
			text, _ := body.(string)
			if !containsChallengeMarker(text) {
				return true
			}
			s.logger.Debug("challenge screen still present")
		}
		s.page.WaitForTimeout(float64(poll.Milliseconds()))
	}

	s.logger.Warn("challenge screen did not clear before timeout", "timeout", timeout)
	return false
}

func containsChallengeMarker(bodyText string) bool {
	lowered := strings.ToLower(bodyText)
	for _, marker := range challengeMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// Humanize presents a plausible interaction trace before content is read:
// a few pointer movements and a small scroll.
func (s *Session) Humanize() {
	for i := 0; i < 3; i++ {
		x := float64(100 + i*200)
		y := float64(100 + i*150)
		s.page.Mouse().Move(x, y)
		s.page.WaitForTimeout(float64(200 + i*100))
	}

	s.page.Evaluate(`window.scrollBy(0, Math.random() * 300)`)
	s.page.WaitForTimeout(500)
}
