package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"nexora/internal/model"
	"nexora/internal/pkg/extract"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create inserts a new raw record. The store assigns the id; no lookup
// or merge happens (append-only raw layer).
func (r *DocumentRepository) Create(doc *model.Document) error {
	if err := r.db.Create(doc).Error; err != nil {
		return fmt.Errorf("create document failed: %w", err)
	}
	return nil
}

// Upsert is the dedup-enabled write path, keyed by source URL. An
// existing record with the same content hash is left untouched; a
// changed hash replaces the text and clears the embedding so the
// record returns to pending and gets re-embedded on the next pass.
func (r *DocumentRepository) Upsert(doc *model.Document) error {
	var existing model.Document
	err := r.db.Where("source_url = ?", doc.SourceURL).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.Create(doc)
	}
	if err != nil {
		return fmt.Errorf("lookup document by source url failed: %w", err)
	}

	if existing.ContentHash == doc.ContentHash {
		doc.ID = existing.ID
		return nil
	}

	updates := map[string]interface{}{
		"text_content": doc.TextContent,
		"content_hash": doc.ContentHash,
		"embedding":    "",
	}
	if err := r.db.Model(&model.Document{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update document content failed: %w", err)
	}
	doc.ID = existing.ID
	return nil
}

// ListPending returns a snapshot of every record without an embedding
// whose text is usable: non-empty and not an extraction placeholder.
// Order is not guaranteed.
func (r *DocumentRepository) ListPending() ([]model.Document, error) {
	var docs []model.Document
	err := r.db.
		Where("(embedding IS NULL OR embedding = '')").
		Where("text_content IS NOT NULL AND text_content <> ''").
		Where("text_content NOT LIKE ?", extract.ErrorPrefix()+"%").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list pending documents failed: %w", err)
	}
	return docs, nil
}

// ListIndexed returns every record that has an embedding attached.
func (r *DocumentRepository) ListIndexed() ([]model.Document, error) {
	var docs []model.Document
	err := r.db.
		Where("embedding IS NOT NULL AND embedding <> ''").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("list indexed documents failed: %w", err)
	}
	return docs, nil
}

// AttachEmbedding writes the vector onto the record identified by id.
// A single-row update, atomic at the store level.
func (r *DocumentRepository) AttachEmbedding(id uint, vec []float32) error {
	doc := model.Document{}
	doc.SetEmbedding(vec)
	if doc.Embedding == "" {
		return fmt.Errorf("refusing to attach empty embedding to document %d", id)
	}
	result := r.db.Model(&model.Document{}).Where("id = ?", id).Update("embedding", doc.Embedding)
	if result.Error != nil {
		return fmt.Errorf("attach embedding failed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("attach embedding failed: document %d not found", id)
	}
	return nil
}

// GetByID fetches one record.
func (r *DocumentRepository) GetByID(id uint) (*model.Document, error) {
	var doc model.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

// Stats reports total, indexed, and pending record counts.
func (r *DocumentRepository) Stats() (total, indexed, pending int64, err error) {
	if err = r.db.Model(&model.Document{}).Count(&total).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("count documents failed: %w", err)
	}
	if err = r.db.Model(&model.Document{}).
		Where("embedding IS NOT NULL AND embedding <> ''").
		Count(&indexed).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("count indexed documents failed: %w", err)
	}
	if err = r.db.Model(&model.Document{}).
		Where("(embedding IS NULL OR embedding = '')").
		Where("text_content IS NOT NULL AND text_content <> ''").
		Where("text_content NOT LIKE ?", extract.ErrorPrefix()+"%").
		Count(&pending).Error; err != nil {
		return 0, 0, 0, fmt.Errorf("count pending documents failed: %w", err)
	}
	return total, indexed, pending, nil
}
