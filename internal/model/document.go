package model

import "time"

// Document represents a published file reachable through a tracked link.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	BlobKey       string    `json:"blob_key"`
	AllowDownload bool      `json:"allow_download"`
	AllowPrint    bool      `json:"allow_print"`
	CreatedAt     time.Time `json:"created_at"`
}
