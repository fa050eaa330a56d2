package mocks

import (
	"context"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockViewRepository struct {
	mock.Mock
}

func (m *MockViewRepository) Create(ctx context.Context, view *model.View) (*model.View, error) {
	args := m.Called(ctx, view)
	if f, ok := args.Get(0).(func(context.Context, *model.View) *model.View); ok {
		return f(ctx, view), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.View), args.Error(1)
}

func (m *MockViewRepository) ListRecent(ctx context.Context, documentID string, limit int) ([]model.View, error) {
	args := m.Called(ctx, documentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.View), args.Error(1)
}
