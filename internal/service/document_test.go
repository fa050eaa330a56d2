package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kylewill/send-worker/internal/model"
	repoMocks "github.com/kylewill/send-worker/internal/repository/mocks"
	"github.com/kylewill/send-worker/internal/storage"
	storeMocks "github.com/kylewill/send-worker/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubTokens makes id and slug generation deterministic for assertions.
type stubTokens struct {
	id     string
	suffix string
}

func (s stubTokens) DocumentID() string { return s.id }
func (s stubTokens) SlugSuffix() string { return s.suffix }

func newUpstream(t *testing.T, status int, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDocumentService_Publish(t *testing.T) {
	ctx := context.Background()
	tokens := stubTokens{id: "abc123def456", suffix: "x1y2z3w4"}
	pdf := []byte("%PDF-1.7 fake payload")

	t.Run("missing fileUrl", func(t *testing.T) {
		svc := NewDocumentService(nil, nil, tokens, nil)
		_, err := svc.Publish(ctx, PublishInput{Title: "Deck"})
		assert.ErrorIs(t, err, ErrFileURLRequired)
	})

	t.Run("missing title", func(t *testing.T) {
		svc := NewDocumentService(nil, nil, tokens, nil)
		_, err := svc.Publish(ctx, PublishInput{FileURL: "http://example.com/f.pdf"})
		assert.ErrorIs(t, err, ErrTitleRequired)
	})

	t.Run("upstream non-success status", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusNotFound, nil)
		svc := NewDocumentService(nil, nil, tokens, upstream.Client())

		_, err := svc.Publish(ctx, PublishInput{FileURL: upstream.URL, Title: "Deck"})
		assert.ErrorIs(t, err, ErrUpstreamFetch)
	})

	t.Run("upstream unreachable", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, pdf)
		upstream.Close()
		svc := NewDocumentService(nil, nil, tokens, nil)

		_, err := svc.Publish(ctx, PublishInput{FileURL: upstream.URL, Title: "Deck"})
		assert.ErrorIs(t, err, ErrUpstreamFetch)
	})

	t.Run("happy path with generated slug", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, pdf)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tokens, upstream.Client())

		var stored []byte
		mStore.On("Put", ctx, "documents/abc123def456.pdf", mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "application/pdf"
		})).Run(func(args mock.Arguments) {
			stored, _ = io.ReadAll(args.Get(2).(io.Reader))
		}).Return(storage.ObjectInfo{Key: "documents/abc123def456.pdf", Size: int64(len(pdf))}, nil)

		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.ID == "abc123def456" &&
				doc.Slug == "pitch-deck-x1y2z3w4" &&
				doc.BlobKey == "documents/abc123def456.pdf" &&
				doc.AllowDownload && !doc.AllowPrint
		})).Return(&model.Document{ID: "abc123def456"}, nil)

		res, err := svc.Publish(ctx, PublishInput{
			FileURL:       upstream.URL,
			Title:         "Pitch Deck",
			AllowDownload: true,
			BaseURL:       "https://send.example.com/",
		})

		require.NoError(t, err)
		assert.Equal(t, "abc123def456", res.ID)
		assert.Equal(t, "pitch-deck-x1y2z3w4", res.Slug)
		assert.Equal(t, "https://send.example.com/view/pitch-deck-x1y2z3w4", res.ViewURL)
		assert.Equal(t, "https://send.example.com/stats/pitch-deck-x1y2z3w4", res.StatsURL)
		assert.Equal(t, pdf, stored, "blob content must match the upstream payload")
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("caller slug is sanitized", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, pdf)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tokens, upstream.Client())

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("Create", ctx, mock.Anything).Return(&model.Document{}, nil)

		res, err := svc.Publish(ctx, PublishInput{
			FileURL: upstream.URL,
			Title:   "Deck",
			Slug:    "My Custom Slug!",
			BaseURL: "https://send.example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "my-custom-slug-", res.Slug)
	})

	t.Run("duplicate caller slug is not rejected", func(t *testing.T) {
		// Slug uniqueness is not enforced; two publishes with the same slug
		// both succeed and both rows carry it.
		upstream := newUpstream(t, http.StatusOK, pdf)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tokens, upstream.Client())

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil).Twice()
		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Slug == "shared-slug"
		})).Return(&model.Document{}, nil).Twice()

		in := PublishInput{FileURL: upstream.URL, Title: "Deck", Slug: "shared-slug", BaseURL: "https://x"}
		first, err := svc.Publish(ctx, in)
		require.NoError(t, err)
		second, err := svc.Publish(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, first.Slug, second.Slug)
		mRepo.AssertExpectations(t)
	})

	t.Run("storage error", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, pdf)
		mStore := new(storeMocks.MockStorage)
		svc := NewDocumentService(mStore, nil, tokens, upstream.Client())

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail"))

		_, err := svc.Publish(ctx, PublishInput{FileURL: upstream.URL, Title: "Deck"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "store blob: storage fail")
	})

	t.Run("repository error rolls back the blob", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, pdf)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tokens, upstream.Client())

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, "documents/abc123def456.pdf").Return(nil)

		_, err := svc.Publish(ctx, PublishInput{FileURL: upstream.URL, Title: "Deck"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "insert document: db fail")
		mStore.AssertExpectations(t)
	})

	t.Run("rollback failure is reported", func(t *testing.T) {
		upstream := newUpstream(t, http.StatusOK, pdf)
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tokens, upstream.Client())

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, nil)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))

		_, err := svc.Publish(ctx, PublishInput{FileURL: upstream.URL, Title: "Deck"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "rollback delete failed: delete fail")
	})
}

func TestDocumentService_File(t *testing.T) {
	ctx := context.Background()
	tokens := stubTokens{id: "abc123def456", suffix: "x1y2z3w4"}

	t.Run("unknown id", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
		svc := NewDocumentService(nil, mRepo, tokens, nil)

		_, err := svc.File(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blob missing for existing record", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		doc := &model.Document{ID: "doc-1", BlobKey: "documents/doc-1.pdf"}
		mRepo.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mStore.On("Get", ctx, "documents/doc-1.pdf").
			Return(nil, storage.ObjectInfo{}, storage.ErrObjectNotFound)
		svc := NewDocumentService(mStore, mRepo, tokens, nil)

		_, err := svc.File(ctx, "doc-1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("happy path streams the blob", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mStore := new(storeMocks.MockStorage)
		doc := &model.Document{ID: "doc-1", Title: "Deck", BlobKey: "documents/doc-1.pdf"}
		content := []byte("%PDF-1.7 bytes")
		mRepo.On("FindByID", ctx, "doc-1").Return(doc, nil)
		mStore.On("Get", ctx, "documents/doc-1.pdf").
			Return(io.NopCloser(bytes.NewReader(content)), storage.ObjectInfo{Size: int64(len(content))}, nil)
		svc := NewDocumentService(mStore, mRepo, tokens, nil)

		fs, err := svc.File(ctx, "doc-1")
		require.NoError(t, err)
		defer fs.Content.Close()

		got, err := io.ReadAll(fs.Content)
		require.NoError(t, err)
		assert.Equal(t, content, got)
		assert.Equal(t, int64(len(content)), fs.Size)
		assert.Equal(t, doc, fs.Document)
	})

	t.Run("generic repository error propagates", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindByID", ctx, "doc-1").Return(nil, errors.New("db fail"))
		svc := NewDocumentService(nil, mRepo, tokens, nil)

		_, err := svc.File(ctx, "doc-1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestDocumentService_BySlug(t *testing.T) {
	ctx := context.Background()
	tokens := stubTokens{}

	t.Run("found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		doc := &model.Document{ID: "doc-1", Slug: "my-proposal"}
		mRepo.On("FindBySlug", ctx, "my-proposal").Return(doc, nil)
		svc := NewDocumentService(nil, mRepo, tokens, nil)

		got, err := svc.BySlug(ctx, "my-proposal")
		assert.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("FindBySlug", ctx, "nope").Return(nil, sql.ErrNoRows)
		svc := NewDocumentService(nil, mRepo, tokens, nil)

		_, err := svc.BySlug(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
