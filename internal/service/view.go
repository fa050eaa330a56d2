package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/kylewill/send-worker/internal/repository"
)

var ErrDocumentIDRequired = errors.New("documentId is required")

// RecentViewLimit caps how many view rows the stats page loads. Totals are
// computed over the loaded rows only, so lifetime counts beyond the cap are
// undercounted.
const RecentViewLimit = 200

// TrackInput is one view event as captured from request headers. Absent
// client metadata is normalized by the handler ("unknown" / empty referer).
type TrackInput struct {
	DocumentID string
	IPAddress  string
	UserAgent  string
	Referer    string
}

// ViewStats aggregates the recent views of a document.
type ViewStats struct {
	// Total is the count of loaded rows, capped at RecentViewLimit.
	Total int
	// Unique is the count of distinct IP addresses among loaded rows.
	Unique int
	// Views holds the loaded rows, newest first.
	Views []model.View
}

// ViewService records and aggregates view events.
type ViewService interface {
	// Track appends one view row. Every call inserts; two identical calls
	// produce two rows. The document id is not checked for existence.
	Track(ctx context.Context, in TrackInput) (*model.View, error)

	// StatsFor loads the most recent views of a document and aggregates them.
	StatsFor(ctx context.Context, documentID string) (*ViewStats, error)
}

type viewService struct {
	repo repository.ViewRepository
}

// NewViewService constructs a new ViewService.
func NewViewService(repo repository.ViewRepository) ViewService {
	return &viewService{repo: repo}
}

func (s *viewService) Track(ctx context.Context, in TrackInput) (*model.View, error) {
	if in.DocumentID == "" {
		return nil, ErrDocumentIDRequired
	}
	view := &model.View{
		ID:         uuid.NewString(),
		DocumentID: in.DocumentID,
		IPAddress:  in.IPAddress,
		UserAgent:  in.UserAgent,
		Referer:    in.Referer,
	}
	return s.repo.Create(ctx, view)
}

func (s *viewService) StatsFor(ctx context.Context, documentID string) (*ViewStats, error) {
	views, err := s.repo.ListRecent(ctx, documentID, RecentViewLimit)
	if err != nil {
		return nil, err
	}

	unique := map[string]struct{}{}
	for _, v := range views {
		unique[v.IPAddress] = struct{}{}
	}

	return &ViewStats{
		Total:  len(views),
		Unique: len(unique),
		Views:  views,
	}, nil
}
