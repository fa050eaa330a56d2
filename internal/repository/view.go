package repository

import (
	"context"

	"github.com/kylewill/send-worker/internal/model"
)

// ViewRepository defines data access for view events. Views are append-only;
// there is no update or delete path.
type ViewRepository interface {
	// Create inserts a new view row. ViewedAt is assigned by the store; the
	// returned view includes it.
	Create(ctx context.Context, view *model.View) (*model.View, error)

	// ListRecent returns up to limit views for the document, newest first.
	ListRecent(ctx context.Context, documentID string, limit int) ([]model.View, error)
}
