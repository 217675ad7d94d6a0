// Package extract converts crawled resources (HTML pages, PDF files)
// into plain text. Extraction never fails upward: a crawl run touching
// thousands of resources must not abort on one bad file, so any
// internal error becomes a tagged placeholder payload instead.
package extract

import "strings"

// errorPrefix tags payloads that hold an extraction error instead of
// genuine content. The indexing selector skips them.
const errorPrefix = "[extract-error]"

// ErrorPlaceholder builds the payload stored for a failed extraction.
func ErrorPlaceholder(reason error) string {
	return errorPrefix + " " + reason.Error()
}

// IsErrorPlaceholder reports whether a payload is a placeholder rather
// than extracted content.
func IsErrorPlaceholder(text string) bool {
	return strings.HasPrefix(text, errorPrefix)
}

// ErrorPrefix exposes the sentinel for storage-level filtering.
func ErrorPrefix() string {
	return errorPrefix
}
