package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio-api/internal/model"
)

type MockAboutService struct {
	mock.Mock
}

func (m *MockAboutService) Get(ctx context.Context) (*model.About, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.About), args.Error(1)
}

func (m *MockAboutService) Update(ctx context.Context, a *model.About) (*model.About, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.About), args.Error(1)
}
