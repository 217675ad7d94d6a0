package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts plain text from a PDF, page by page in page order,
// pages joined with newlines. It never returns an error: corrupt or
// unreadable input yields an error placeholder instead.
func PDFText(r io.Reader) string {
	b, err := io.ReadAll(r)
	if err != nil {
		return ErrorPlaceholder(fmt.Errorf("read pdf: %w", err))
	}
	return pdfTextFromBytes(b)
}

func pdfTextFromBytes(b []byte) (text string) {
	// The pdf reader panics on some malformed files; recover keeps the
	// never-fail contract.
	defer func() {
		if r := recover(); r != nil {
			text = ErrorPlaceholder(fmt.Errorf("parse pdf: %v", r))
		}
	}()

	if len(b) == 0 {
		return ErrorPlaceholder(fmt.Errorf("parse pdf: empty file"))
	}

	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return ErrorPlaceholder(fmt.Errorf("parse pdf: %w", err))
	}

	var pages []string
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// One unreadable page does not fail the document.
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n")
}
