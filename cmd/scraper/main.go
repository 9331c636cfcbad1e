package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/creait/oliveyoung-scraper/internal/browser"
	"github.com/creait/oliveyoung-scraper/internal/config"
	"github.com/creait/oliveyoung-scraper/internal/database"
	"github.com/creait/oliveyoung-scraper/internal/queue"
	"github.com/creait/oliveyoung-scraper/internal/scraper"
	"github.com/creait/oliveyoung-scraper/pkg/logger"
)

func main() {
	var (
		urls       = flag.String("urls", "", "Comma-separated list of Olive Young product URLs to scrape")
		inputFile  = flag.String("file", "", "File containing product URLs (one per line)")
		maxReviews = flag.Int("max-reviews", -1, "Maximum number of reviews to harvest per product (-1 uses SCRAPER_MAX_REVIEWS)")
		headless   = flag.Bool("headless", true, "Run browser in headless mode")
		cookieFile = flag.String("cookies", "", "Path to a JSON cookie store to preload (overrides BROWSER_COOKIE_FILE)")
		skipDB     = flag.Bool("no-db", false, "Print results without persisting them")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	slogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slogger.Info("starting olive young scraper")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slogger.Info("shutdown signal received")
		cancel()
	}()

	reviewLimit := cfg.Scraper.MaxReviews
	if *maxReviews >= 0 {
		reviewLimit = *maxReviews
	}

	taskQueue := queue.NewInMemoryQueue()
	if err := loadTasks(taskQueue, *urls, *inputFile, reviewLimit); err != nil {
		slogger.Error("failed to load tasks", "error", err)
		os.Exit(1)
	}
	taskQueue.Close()

	if taskQueue.Size() == 0 {
		fmt.Println("No tasks to process. Use -urls or -file to specify product pages to scrape.")
		flag.Usage()
		os.Exit(1)
	}

	var db *database.DB
	if !*skipDB {
		db, err = database.New(ctx, cfg.Database)
		if err != nil {
			slogger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			slogger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	browserOpts := &browser.Options{
		Headless:       resolveHeadless(flagWasSet("headless"), *headless, cfg.Browser.Headless),
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Browser.UserAgent,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
		Latitude:       cfg.Browser.Latitude,
		Longitude:      cfg.Browser.Longitude,
		CookieFile:     cfg.Browser.CookieFile,
	}
	if *cookieFile != "" {
		browserOpts.CookieFile = *cookieFile
	}

	slogger.Info("processing tasks", "count", taskQueue.Size())

	for {
		task, err := taskQueue.Pop(ctx)
		if err != nil {
			if err == queue.ErrQueueClosed {
				break
			}
			slogger.Info("stopping", "reason", err)
			break
		}

		if err := scrapeOne(ctx, browserOpts, cfg, db, task); err != nil {
			slogger.Error("scrape failed", "url", task.URL, "error", err)
		}

		if ctx.Err() != nil {
			break
		}
	}

	slogger.Info("done")
}

// resolveHeadless gives an explicitly passed -headless flag precedence over
// the environment default.
func resolveHeadless(flagExplicit, flagValue, envValue bool) bool {
	if flagExplicit {
		return flagValue
	}
	return envValue
}

func flagWasSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// scrapeOne runs one full session for a task: acquire browser, extract,
// persist, release. The session is released on every exit path.
func scrapeOne(ctx context.Context, opts *browser.Options, cfg *config.Config, db *database.DB, task *queue.Task) error {
	session, err := browser.New(opts)
	if err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer session.Close()

	s := scraper.New(session, cfg.Scraper)
	record, err := s.Scrape(ctx, task.URL, task.MaxReviews)
	if err != nil {
		return fmt.Errorf("scrape aborted: %w", err)
	}

	fmt.Printf("%s\n  name: %s\n  price: %s\n  rating: %s (%s)\n  images: %d, reviews: %d\n",
		task.URL, record.Name, record.Price, record.Rating, record.ReviewCount,
		len(record.DetailImages), len(record.Reviews))

	if db == nil {
		return nil
	}

	if err := db.SaveProductRecord(ctx, task.URL, record); err != nil {
		return fmt.Errorf("failed to persist record: %w", err)
	}

	return nil
}

func loadTasks(q *queue.InMemoryQueue, urls, inputFile string, maxReviews int) error {
	push := func(raw string) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return
		}
		q.Push(queue.NewTask(raw, maxReviews))
	}

	if urls != "" {
		for _, u := range strings.Split(urls, ",") {
			push(u)
		}
	}

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			push(line)
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
	}

	return nil
}
