package crawler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"nexora/internal/config"
	"nexora/internal/model"
	"nexora/internal/pkg/extract"
)

// Responses larger than this are truncated before extraction.
const maxBodyBytes = 16 << 20

// Publisher hands finished crawl results to the persist pipeline.
type Publisher interface {
	Publish(ctx context.Context, result model.CrawlResult) error
}

// SeenMarker skips URLs fetched by an earlier run. Optional: without
// one, only the in-run visited set applies.
type SeenMarker interface {
	MarkSeen(ctx context.Context, rawURL string) (bool, error)
}

// Crawler walks HTML pages breadth-first from the configured seeds,
// extracts text from HTML and PDF resources, and publishes one crawl
// result per resource. Fetching is sequential; cancellation is honoured
// between resources.
type Crawler struct {
	cfg       config.CrawlerConfig
	client    *http.Client
	publisher Publisher
	seen      SeenMarker
	runID     string
}

func New(cfg config.CrawlerConfig, publisher Publisher, seen SeenMarker) *Crawler {
	return &Crawler{
		cfg:       cfg,
		client:    &http.Client{Timeout: 30 * time.Second},
		publisher: publisher,
		seen:      seen,
		runID:     uuid.NewString(),
	}
}

// Report summarises one crawl run.
type Report struct {
	RunID     string `json:"run_id"`
	Fetched   int    `json:"fetched"`
	Published int    `json:"published"`
	Skipped   int    `json:"skipped"`
}

// Run crawls until the frontier is empty, the page budget is spent, or
// the context is cancelled. Per-resource failures are logged and
// skipped; only cancellation aborts the run.
func (c *Crawler) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: c.runID}

	frontier := make([]string, 0, len(c.cfg.Seeds))
	visited := make(map[string]bool)
	for _, seed := range c.cfg.Seeds {
		frontier = append(frontier, seed)
	}

	seedHosts := make(map[string]bool, len(c.cfg.Seeds))
	for _, seed := range c.cfg.Seeds {
		if u, err := url.Parse(seed); err == nil {
			seedHosts[u.Host] = true
		}
	}

	for len(frontier) > 0 {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if c.cfg.MaxPages > 0 && report.Fetched >= c.cfg.MaxPages {
			break
		}

		target := frontier[0]
		frontier = frontier[1:]

		if visited[target] {
			continue
		}
		visited[target] = true

		if c.seen != nil {
			first, err := c.seen.MarkSeen(ctx, target)
			if err != nil {
				log.Printf("seen check for %s failed: %v", target, err)
			} else if !first {
				report.Skipped++
				continue
			}
		}

		links, published, err := c.fetchOne(ctx, target)
		if err != nil {
			log.Printf("fetch %s failed: %v", target, err)
			report.Skipped++
			continue
		}
		report.Fetched++
		if published {
			report.Published++
		} else {
			report.Skipped++
		}

		for _, link := range links {
			if visited[link] {
				continue
			}
			if c.cfg.SameHostOnly {
				u, err := url.Parse(link)
				if err != nil || !seedHosts[u.Host] {
					continue
				}
			}
			frontier = append(frontier, link)
		}
	}

	return report, nil
}

// fetchOne downloads a resource and dispatches on its content type:
// HTML is extracted through the configured selector and mined for
// links, PDF is extracted page by page, anything else is skipped.
func (c *Crawler) fetchOne(ctx context.Context, target string) (links []string, published bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, false, fmt.Errorf("read body failed: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	var text string
	switch {
	case strings.Contains(contentType, "text/html"):
		text = extract.HTMLText(bytes.NewReader(body), c.cfg.Selector)
		if base, err := url.Parse(target); err == nil {
			links = extract.HTMLLinks(bytes.NewReader(body), base)
		}
	case strings.Contains(contentType, "application/pdf") || strings.HasSuffix(strings.ToLower(target), ".pdf"):
		text = extract.PDFText(bytes.NewReader(body))
	default:
		// Other content types are out of scope for extraction.
		return nil, false, nil
	}

	result := model.CrawlResult{
		RunID:       c.runID,
		SourceURL:   target,
		TextContent: text,
		ContentType: contentType,
		FetchedAt:   time.Now(),
	}
	if err := c.publisher.Publish(ctx, result); err != nil {
		return links, false, fmt.Errorf("publish crawl result failed: %w", err)
	}
	return links, true, nil
}
