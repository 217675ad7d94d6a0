package extract

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotesPage = `<html><body>
<div class="quote"><span class="text">First quote.</span></div>
<div class="quote"><span class="text">Second quote.</span></div>
<p>Not a quote.</p>
<a href="/page/2/">Next</a>
<a href="https://other.example.com/about">Elsewhere</a>
<a href="#top">Anchor</a>
<a href="mailto:someone@example.com">Mail</a>
</body></html>`

func TestHTMLTextSelectorOrder(t *testing.T) {
	text := HTMLText(strings.NewReader(quotesPage), "span.text")
	assert.Equal(t, "First quote.\nSecond quote.", text)
}

func TestHTMLTextNoMatches(t *testing.T) {
	text := HTMLText(strings.NewReader(quotesPage), "h1.title")
	assert.Empty(t, text)
	assert.False(t, IsErrorPlaceholder(text))
}

func TestHTMLLinksResolveAgainstBase(t *testing.T) {
	base, err := url.Parse("https://quotes.example.com/page/1/")
	require.NoError(t, err)

	links := HTMLLinks(strings.NewReader(quotesPage), base)
	assert.Equal(t, []string{
		"https://quotes.example.com/page/2/",
		"https://other.example.com/about",
		"https://quotes.example.com/page/1/",
	}, links)
}

func TestHTMLLinksDeduplicates(t *testing.T) {
	page := `<a href="/a">one</a><a href="/a">again</a><a href="/b">two</a>`
	base, err := url.Parse("https://example.com/")
	require.NoError(t, err)

	links := HTMLLinks(strings.NewReader(page), base)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, links)
}
