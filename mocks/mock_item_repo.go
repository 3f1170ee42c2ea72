package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resaletrack/internal/domain"
	"resaletrack/internal/port"
)

// MockItemRepo is a mock implementation of port.ItemRepository.
// ReadSnapshot hands the mock itself to fn unless an error is configured.
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) ReadSnapshot(ctx context.Context, fn func(port.ItemReader) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockItemRepo) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepo) CountSold(ctx context.Context, rng domain.DateRange) (int, error) {
	args := m.Called(ctx, rng)
	return args.Int(0), args.Error(1)
}

func (m *MockItemRepo) QueryItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepo) FirstImageFor(ctx context.Context, sku int64) (*domain.ItemImage, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemImage), args.Error(1)
}
