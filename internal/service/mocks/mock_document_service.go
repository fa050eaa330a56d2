package mocks

import (
	"context"

	"github.com/kylewill/send-worker/internal/model"
	"github.com/kylewill/send-worker/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Publish(ctx context.Context, in service.PublishInput) (*service.PublishResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishResult), args.Error(1)
}

func (m *MockDocumentService) File(ctx context.Context, id string) (*service.FileStream, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileStream), args.Error(1)
}

func (m *MockDocumentService) BySlug(ctx context.Context, slug string) (*model.Document, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}
