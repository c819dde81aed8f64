package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitrinecms/vitrine/internal/model"
)

// CreateDocument inserts a new document into the given collection and returns
// it with a fresh UUID and timestamps. The payload must marshal to JSON.
func (s *Store) CreateDocument(ctx context.Context, collection string, payload map[string]interface{}) (*model.Document, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:         uuid.Must(uuid.NewV7()).String(),
		Collection: collection,
		Data:       string(data),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	const q = `INSERT INTO documents (id, collection, data, created_at, updated_at)
		VALUES (:id, :collection, :data, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, q, doc); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return doc, nil
}

// GetDocument returns a single document by collection and id.
func (s *Store) GetDocument(ctx context.Context, collection, id string) (*model.Document, error) {
	var doc model.Document
	q := s.db.Rebind("SELECT * FROM documents WHERE collection = ? AND id = ?")
	if err := s.db.GetContext(ctx, &doc, q, collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns documents in a collection, newest first.
func (s *Store) ListDocuments(ctx context.Context, collection string, limit, offset int) ([]model.Document, error) {
	var docs []model.Document
	q := s.db.Rebind(`SELECT * FROM documents WHERE collection = ?
		ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &docs, q, collection, limit, offset); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// CountDocuments returns the number of documents in a collection.
func (s *Store) CountDocuments(ctx context.Context, collection string) (int64, error) {
	var count int64
	q := s.db.Rebind("SELECT COUNT(*) FROM documents WHERE collection = ?")
	if err := s.db.GetContext(ctx, &count, q, collection); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// UpdateDocument replaces a document's payload, preserving its id and
// creation time. Returns the updated document.
func (s *Store) UpdateDocument(ctx context.Context, collection, id string, payload map[string]interface{}) (*model.Document, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	now := time.Now().UTC()
	q := s.db.Rebind("UPDATE documents SET data = ?, updated_at = ? WHERE collection = ? AND id = ?")
	result, err := s.db.ExecContext(ctx, q, string(data), now, collection, id)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update document rows affected: %w", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return s.GetDocument(ctx, collection, id)
}

// DeleteDocument removes a document by collection and id.
func (s *Store) DeleteDocument(ctx context.Context, collection, id string) error {
	q := s.db.Rebind("DELETE FROM documents WHERE collection = ? AND id = ?")
	result, err := s.db.ExecContext(ctx, q, collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertSingleton writes the lone document of a single-record collection
// (site stats), creating it on first write.
func (s *Store) UpsertSingleton(ctx context.Context, collection string, payload map[string]interface{}) (*model.Document, error) {
	docs, err := s.ListDocuments(ctx, collection, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return s.CreateDocument(ctx, collection, payload)
	}
	return s.UpdateDocument(ctx, collection, docs[0].ID, payload)
}

// GetSingleton returns the lone document of a single-record collection, or
// ErrNotFound if it has never been written.
func (s *Store) GetSingleton(ctx context.Context, collection string) (*model.Document, error) {
	docs, err := s.ListDocuments(ctx, collection, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}
	return &docs[0], nil
}
