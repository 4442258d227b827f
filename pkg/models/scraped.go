package models

import "time"

// ScrapedData is the output of scraping one URL. It is produced once by the
// Scraper, may be served from cache on a later lookup, and is consumed once
// by the audit pipeline.
type ScrapedData struct {
	URL       string
	Emails    []string
	Phones    []string
	HTML      string
	ScrapedAt time.Time
}
