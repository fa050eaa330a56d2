package mocks

import (
	"context"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/kylewill/send-worker/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockViewService struct {
	mock.Mock
}

func (m *MockViewService) Track(ctx context.Context, in service.TrackInput) (*model.View, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.View), args.Error(1)
}

func (m *MockViewService) StatsFor(ctx context.Context, documentID string) (*service.ViewStats, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ViewStats), args.Error(1)
}
