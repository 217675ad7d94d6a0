package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLText returns the text of all nodes matching selector, joined
// with newlines in document order. Like PDFText it never fails upward.
func HTMLText(r io.Reader, selector string) string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return ErrorPlaceholder(fmt.Errorf("parse html: %w", err))
	}

	var parts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n")
}

// HTMLLinks returns the absolute http(s) URLs of all anchors in the
// page, resolved against base, fragments stripped. Used by the crawler
// for link discovery; parse errors yield an empty list.
func HTMLLinks(r io.Reader, base *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""
		link := abs.String()
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})
	return links
}
