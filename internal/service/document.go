package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/kylewill/send-worker/internal/repository"
	"github.com/kylewill/send-worker/internal/storage"
	"github.com/kylewill/send-worker/internal/token"
)

var (
	ErrFileURLRequired = errors.New("fileUrl is required")
	ErrTitleRequired   = errors.New("title is required")
	ErrUpstreamFetch   = errors.New("failed to fetch source file")
	ErrNotFound        = errors.New("document not found")
)

const blobKeyPrefix = "documents/"

// PublishInput carries a publish request after HTTP decoding. BaseURL is the
// absolute prefix used to build the returned links; the handler resolves it
// from configuration or the request host.
type PublishInput struct {
	FileURL       string
	Title         string
	Slug          string
	AllowDownload bool
	AllowPrint    bool
	BaseURL       string
}

// PublishResult is returned to the publishing caller.
type PublishResult struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	ViewURL  string `json:"viewUrl"`
	StatsURL string `json:"statsUrl"`
}

// FileStream is an open document payload ready to be streamed to a client.
// The caller owns Content and must close it.
type FileStream struct {
	Content  io.ReadCloser
	Size     int64
	Document *model.Document
}

// DocumentService defines the use cases for publishing and serving documents.
type DocumentService interface {
	// Publish fetches the payload from in.FileURL, stores it as a blob, and
	// inserts the document record. The blob write is rolled back best-effort
	// when the insert fails.
	Publish(ctx context.Context, in PublishInput) (*PublishResult, error)

	// File resolves a document id to its stored blob for streaming.
	File(ctx context.Context, id string) (*FileStream, error)

	// BySlug returns the document behind a public slug.
	BySlug(ctx context.Context, slug string) (*model.Document, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store  storage.Storage
	repo   repository.DocumentRepository
	tokens token.Generator
	fetch  *http.Client
}

// NewDocumentService constructs a new DocumentService. fetch is the HTTP
// client used for the single-attempt source download; nil means
// http.DefaultClient.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, tokens token.Generator, fetch *http.Client) DocumentService {
	if fetch == nil {
		fetch = http.DefaultClient
	}
	return &documentService{store: store, repo: repo, tokens: tokens, fetch: fetch}
}

func (s *documentService) Publish(ctx context.Context, in PublishInput) (*PublishResult, error) {
	if in.FileURL == "" {
		return nil, ErrFileURLRequired
	}
	if in.Title == "" {
		return nil, ErrTitleRequired
	}

	// Single attempt, no retry: the export URL is short-lived and any failure
	// fails the publish.
	body, size, err := s.fetchSource(ctx, in.FileURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	id := s.tokens.DocumentID()
	slug := in.Slug
	if slug != "" {
		slug = token.Sanitize(slug)
	} else {
		slug = token.SlugFromTitle(in.Title, s.tokens.SlugSuffix())
	}
	key := blobKeyPrefix + id + ".pdf"

	if _, err := s.store.Put(ctx, key, body, storage.PutObjectOptions{
		Size:        size,
		ContentType: "application/pdf",
	}); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	doc := &model.Document{
		ID:            id,
		Title:         in.Title,
		Slug:          slug,
		BlobKey:       key,
		AllowDownload: in.AllowDownload,
		AllowPrint:    in.AllowPrint,
	}
	if _, err := s.repo.Create(ctx, doc); err != nil {
		// Rollback: delete the blob so the failed publish leaves no orphan.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("insert document failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("insert document: %w", err)
	}

	base := strings.TrimRight(in.BaseURL, "/")
	return &PublishResult{
		ID:       id,
		Slug:     slug,
		ViewURL:  base + "/view/" + slug,
		StatsURL: base + "/stats/" + slug,
	}, nil
}

func (s *documentService) fetchSource(ctx context.Context, fileURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	resp, err := s.fetch.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, 0, fmt.Errorf("%w: upstream returned %d", ErrUpstreamFetch, resp.StatusCode)
	}
	return resp.Body, resp.ContentLength, nil
}

// File resolves a document and opens its blob. A missing record or a record
// whose blob is gone both surface as ErrNotFound.
func (s *documentService) File(ctx context.Context, id string) (*FileStream, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	content, info, err := s.store.Get(ctx, doc.BlobKey)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: blob %s missing", ErrNotFound, doc.BlobKey)
		}
		return nil, err
	}

	return &FileStream{Content: content, Size: info.Size, Document: doc}, nil
}

// BySlug returns the document behind a public slug.
func (s *documentService) BySlug(ctx context.Context, slug string) (*model.Document, error) {
	doc, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}
