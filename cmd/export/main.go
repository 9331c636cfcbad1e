// Command export renders the persisted product rows as a table for quick
// offline analysis of what previous scrapes collected.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/creait/oliveyoung-scraper/internal/config"
	"github.com/creait/oliveyoung-scraper/internal/database"
	"github.com/creait/oliveyoung-scraper/pkg/logger"
)

func main() {
	csvOut := flag.Bool("csv", false, "Render as CSV instead of a table")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	slogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		slogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	products, err := db.ListProducts(ctx)
	if err != nil {
		slogger.Error("failed to list products", "error", err)
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Name", "Price", "Rating", "Reviews", "5★", "1★", "Images", "Stored Reviews", "Scraped At"})

	for _, p := range products {
		t.AppendRow(table.Row{
			orDash(p.Name),
			orDash(p.Price),
			orDash(p.Rating),
			orDash(p.ReviewCount),
			orDash(p.RatingDist[0]),
			orDash(p.RatingDist[4]),
			p.ImageCount,
			p.ReviewTotal,
			p.ScrapedAt.Format("2006-01-02 15:04"),
		})
	}

	if *csvOut {
		t.RenderCSV()
		return
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
	slogger.Info("exported products", "count", len(products))
}

func orDash(v sql.NullString) string {
	if !v.Valid {
		return "-"
	}
	return v.String
}
