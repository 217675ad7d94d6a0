package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Document is one unit of crawled content (a "raw record" until an
// embedding is attached). Embedding is stored as a JSON array of
// float32 in a TEXT column for portability; an empty column means the
// record has not been indexed yet.
type Document struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SourceURL   string    `gorm:"size:2048;not null;index" json:"source_url"`
	TextContent string    `gorm:"type:text" json:"text_content"`
	ContentHash string    `gorm:"size:64;index" json:"content_hash"`
	Embedding   string    `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmbeddingVector returns the parsed embedding slice; empty on parse error.
func (d *Document) EmbeddingVector() []float32 {
	if d.Embedding == "" {
		return nil
	}
	var v []float32
	_ = json.Unmarshal([]byte(d.Embedding), &v)
	return v
}

// SetEmbedding stores the embedding as JSON.
func (d *Document) SetEmbedding(vec []float32) {
	if len(vec) == 0 {
		d.Embedding = ""
		return
	}
	b, _ := json.Marshal(vec)
	d.Embedding = string(b)
}

// Indexed reports whether an embedding has been attached.
func (d *Document) Indexed() bool {
	return d.Embedding != ""
}

// HashContent returns the hex sha256 of a text payload, used to detect
// content changes on re-crawl.
func HashContent(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
