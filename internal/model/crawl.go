package model

import "time"

// CrawlResult is the queue payload published for every crawled
// resource and consumed by the persist worker.
type CrawlResult struct {
	RunID       string    `json:"run_id"`
	SourceURL   string    `json:"source_url"`
	TextContent string    `json:"text_content"`
	ContentType string    `json:"content_type"`
	FetchedAt   time.Time `json:"fetched_at"`
}
