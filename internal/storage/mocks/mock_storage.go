package mocks

import (
	"context"
	"io"

	"portfolio-api/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, kind, name string, r io.Reader, opt storage.SaveOptions) (storage.FileInfo, error) {
	args := m.Called(ctx, kind, name, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, string, io.Reader, storage.SaveOptions) storage.FileInfo); ok {
		return f(ctx, kind, name, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.FileInfo), args.Error(1)
}

func (m *MockStorage) Remove(ctx context.Context, kind, name string) error {
	args := m.Called(ctx, kind, name)
	return args.Error(0)
}

func (m *MockStorage) URL(kind, name string) string {
	args := m.Called(kind, name)
	return args.String(0)
}
