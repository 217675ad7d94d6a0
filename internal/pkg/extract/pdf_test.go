package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDFTextNeverFails(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
	}{
		{"empty file", nil},
		{"not a pdf", []byte("just some plain text, no pdf here")},
		{"truncated header", []byte("%PDF-1.7\n")},
		{"binary garbage", bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 256)},
		{"encrypted-looking", []byte("%PDF-1.4\n/Encrypt 1 0 R\n%%EOF")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var text string
			assert.NotPanics(t, func() {
				text = PDFText(bytes.NewReader(tc.input))
			})
			assert.True(t, IsErrorPlaceholder(text), "expected placeholder, got %q", text)
			assert.NotEqual(t, ErrorPrefix(), strings.TrimSpace(text), "placeholder should carry an error reason")
		})
	}
}

func TestErrorPlaceholderRoundTrip(t *testing.T) {
	placeholder := ErrorPlaceholder(assert.AnError)
	assert.True(t, IsErrorPlaceholder(placeholder))
	assert.Contains(t, placeholder, assert.AnError.Error())

	assert.False(t, IsErrorPlaceholder("genuine page content"))
	assert.False(t, IsErrorPlaceholder(""))
}
