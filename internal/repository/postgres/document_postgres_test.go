package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/kylewill/send-worker/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var documentCols = []string{"id", "title", "slug", "blob_key", "allow_download", "allow_print", "created_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:            "dQw4w9WgXcQ1",
		Title:         "Q3 Pitch Deck",
		Slug:          "q3-pitch-deck-ab12cd34",
		BlobKey:       "documents/dQw4w9WgXcQ1.pdf",
		AllowDownload: true,
	}

	rows := sqlmock.NewRows(documentCols).
		AddRow(doc.ID, doc.Title, doc.Slug, doc.BlobKey, doc.AllowDownload, doc.AllowPrint, now)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.Slug, doc.BlobKey, doc.AllowDownload, doc.AllowPrint).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, now, result.CreatedAt, "created_at should come from the store")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %s", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-1", "Title", "title-slug", "documents/doc-1.pdf", false, true, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("doc-1").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, "doc-1", doc.ID)
		assert.True(t, doc.AllowPrint)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_FindBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open stub database: %s", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(documentCols).
			AddRow("doc-2", "Title", "my-proposal", "documents/doc-2.pdf", false, false, time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE slug").
			WithArgs("my-proposal").
			WillReturnRows(rows)

		doc, err := repo.FindBySlug(ctx, "my-proposal")
		assert.NoError(t, err)
		assert.Equal(t, "my-proposal", doc.Slug)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE slug").
			WithArgs("nope").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindBySlug(ctx, "nope")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
