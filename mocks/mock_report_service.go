package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"resaletrack/internal/domain"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Generate(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}
