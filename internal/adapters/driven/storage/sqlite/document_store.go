package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `
	d.id, d.filename, d.file_path, d.file_kind, d.file_size, d.processed, d.created_at, d.updated_at,
	c.document_id, c.raw_text, c.summary, c.keywords, c.word_count, c.processed_at`

// SaveDocument creates or updates a document record.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" || doc.Filename == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, file_path, file_kind, file_size, processed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filename = excluded.filename,
			file_path = excluded.file_path,
			file_kind = excluded.file_kind,
			file_size = excluded.file_size,
			processed = excluded.processed,
			updated_at = excluded.updated_at
	`, doc.ID, doc.Filename, doc.FilePath, string(doc.Kind), doc.Size,
		boolToInt(doc.Processed), formatTime(doc.CreatedAt), formatTime(doc.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID, including content when present.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents d LEFT JOIN document_content c ON c.document_id = d.id
		WHERE d.id = ?
	`, id)
	return scanDocument(row)
}

// GetByFilename retrieves a document by its corpus filename.
func (s *documentStore) GetByFilename(ctx context.Context, filename string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents d LEFT JOIN document_content c ON c.document_id = d.id
		WHERE d.filename = ?
	`, filename)
	return scanDocument(row)
}

// CompleteProcessing replaces the document's content and marks it processed.
func (s *documentStore) CompleteProcessing(ctx context.Context, content *domain.DocumentContent) error {
	if content == nil || content.DocumentID == "" {
		return domain.ErrInvalidInput
	}

	keywords := content.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	keywordsJSON, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("marshalling keywords: %w", err)
	}

	processedAt := content.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now().UTC()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE documents SET processed = 1, updated_at = ? WHERE id = ?
	`, formatTime(processedAt), content.DocumentID)
	if err != nil {
		return fmt.Errorf("marking document processed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking document update: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO document_content (document_id, raw_text, summary, keywords, word_count, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			raw_text = excluded.raw_text,
			summary = excluded.summary,
			keywords = excluded.keywords,
			word_count = excluded.word_count,
			processed_at = excluded.processed_at
	`, content.DocumentID, content.RawText, content.Summary, string(keywordsJSON),
		content.WordCount, formatTime(processedAt))
	if err != nil {
		return fmt.Errorf("saving document content: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing document content: %w", err)
	}
	return nil
}

// ListDocuments returns documents ordered by filename.
func (s *documentStore) ListDocuments(ctx context.Context, filter driven.DocumentFilter) ([]domain.Document, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + documentColumns + `
		FROM documents d LEFT JOIN document_content c ON c.document_id = d.id`)
	var args []any
	if filter.ProcessedOnly {
		b.WriteString(" WHERE d.processed = 1")
	}
	b.WriteString(" ORDER BY d.filename")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, filter.Limit, max(filter.Offset, 0))
	} else if filter.Offset > 0 {
		b.WriteString(" LIMIT -1 OFFSET ?")
		args = append(args, filter.Offset)
	}

	return s.queryDocuments(ctx, b.String(), args...)
}

// ListProcessed returns processed documents with content, ordered by filename.
func (s *documentStore) ListProcessed(ctx context.Context) ([]domain.Document, error) {
	return s.queryDocuments(ctx, `
		SELECT `+documentColumns+`
		FROM documents d JOIN document_content c ON c.document_id = d.id
		WHERE d.processed = 1
		ORDER BY d.filename
	`)
}

// Stats returns document counts per kind.
func (s *documentStore) Stats(ctx context.Context) (*domain.DocumentStats, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT file_kind, COUNT(*), COALESCE(SUM(processed), 0)
		FROM documents
		GROUP BY file_kind
	`)
	if err != nil {
		return nil, fmt.Errorf("querying document stats: %w", err)
	}
	defer rows.Close()

	stats := &domain.DocumentStats{ByKind: make(map[domain.FileKind]domain.KindStats)}
	for rows.Next() {
		var kind string
		var ks domain.KindStats
		if err := rows.Scan(&kind, &ks.Total, &ks.Processed); err != nil {
			return nil, fmt.Errorf("scanning document stats: %w", err)
		}
		stats.ByKind[domain.FileKind(kind)] = ks
		stats.Total += ks.Total
		stats.Processed += ks.Processed
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating document stats: %w", err)
	}
	return stats, nil
}

func (s *documentStore) queryDocuments(ctx context.Context, query string, args ...any) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a document joined with its optional content.
func scanDocument(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var kind, createdAt, updatedAt string
	var processed int
	var contentID, rawText, summary, keywords, processedAt sql.NullString
	var wordCount sql.NullInt64

	err := row.Scan(&doc.ID, &doc.Filename, &doc.FilePath, &kind, &doc.Size, &processed,
		&createdAt, &updatedAt,
		&contentID, &rawText, &summary, &keywords, &wordCount, &processedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Kind = domain.FileKind(kind)
	doc.Processed = processed == 1
	doc.CreatedAt = parseTime(createdAt)
	doc.UpdatedAt = parseTime(updatedAt)

	if contentID.Valid {
		content := &domain.DocumentContent{
			DocumentID:  contentID.String,
			RawText:     rawText.String,
			Summary:     summary.String,
			Keywords:    []string{},
			WordCount:   int(wordCount.Int64),
			ProcessedAt: parseNullableTime(processedAt),
		}
		if keywords.Valid && keywords.String != "" {
			if err := json.Unmarshal([]byte(keywords.String), &content.Keywords); err != nil {
				return nil, fmt.Errorf("unmarshalling keywords: %w", err)
			}
			if content.Keywords == nil {
				content.Keywords = []string{}
			}
		}
		doc.Content = content
	}

	return &doc, nil
}
