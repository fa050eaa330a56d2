package postgres

import (
	"context"
	"database/sql"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/kylewill/send-worker/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, slug, blob_key, allow_download, allow_print, created_at`

// Create inserts a new document row and returns the stored record.
// created_at comes from the database default.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, slug, blob_key, allow_download, allow_print)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Slug,
		doc.BlobKey,
		doc.AllowDownload,
		doc.AllowPrint,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// FindBySlug fetches the newest document with the slug. Duplicate slugs are
// possible since the store does not enforce uniqueness.
func (r *DocumentPostgres) FindBySlug(ctx context.Context, slug string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE slug = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, slug))
}

func scanDocument(row *sql.Row) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Slug,
		&d.BlobKey,
		&d.AllowDownload,
		&d.AllowPrint,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
