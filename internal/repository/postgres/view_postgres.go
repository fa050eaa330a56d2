package postgres

import (
	"context"
	"database/sql"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/kylewill/send-worker/internal/repository"
)

// ViewPostgres is a PostgreSQL implementation of repository.ViewRepository.
type ViewPostgres struct {
	db *sql.DB
}

// NewViewPostgres creates a new ViewPostgres repository.
func NewViewPostgres(db *sql.DB) *ViewPostgres {
	return &ViewPostgres{db: db}
}

var _ repository.ViewRepository = (*ViewPostgres)(nil)

const viewColumns = `id, document_id, viewed_at, ip_address, user_agent, referer`

// Create inserts a new view row and returns the stored record.
// viewed_at comes from the database default.
func (r *ViewPostgres) Create(ctx context.Context, view *model.View) (*model.View, error) {
	const q = `
		INSERT INTO views (id, document_id, ip_address, user_agent, referer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + viewColumns
	row := r.db.QueryRowContext(ctx, q,
		view.ID,
		view.DocumentID,
		view.IPAddress,
		view.UserAgent,
		view.Referer,
	)
	var v model.View
	if err := row.Scan(
		&v.ID,
		&v.DocumentID,
		&v.ViewedAt,
		&v.IPAddress,
		&v.UserAgent,
		&v.Referer,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListRecent returns up to limit views for the document, newest first.
func (r *ViewPostgres) ListRecent(ctx context.Context, documentID string, limit int) ([]model.View, error) {
	const q = `
		SELECT ` + viewColumns + `
		FROM views
		WHERE document_id = $1
		ORDER BY viewed_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, q, documentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]model.View, 0)
	for rows.Next() {
		var v model.View
		if err := rows.Scan(
			&v.ID,
			&v.DocumentID,
			&v.ViewedAt,
			&v.IPAddress,
			&v.UserAgent,
			&v.Referer,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
