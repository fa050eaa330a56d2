package model

import "time"

// View is one recorded instance of a document being opened by a viewer.
// Rows are append-only; client metadata is best effort and may be "unknown".
type View struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ViewedAt   time.Time `json:"viewed_at"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	Referer    string    `json:"referer"`
}
