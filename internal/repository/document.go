package repository

import (
	"context"

	"github.com/kylewill/send-worker/internal/model"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record. CreatedAt is assigned by the
	// store; the returned document includes it.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindBySlug returns the newest document carrying the slug. Slugs are not
	// unique at the store; when duplicates exist the most recent one wins.
	FindBySlug(ctx context.Context, slug string) (*model.Document, error)
}
