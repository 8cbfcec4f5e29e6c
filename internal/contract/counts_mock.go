package contract

import (
	"context"

	"github.com/huangsam/libstats/schema"
	"github.com/stretchr/testify/mock"
)

// MockCountsClient is a mock type for the CountsClient type.
type MockCountsClient struct {
	mock.Mock
}

var _ CountsClient = &MockCountsClient{} // Compile-time check

// FetchAnnual implements the CountsClient interface.
func (m *MockCountsClient) FetchAnnual(ctx context.Context) (schema.SparseSeries, error) {
	ret := m.Called(ctx)
	series, _ := ret.Get(0).(schema.SparseSeries)
	return series, ret.Error(1)
}

// FetchMonthly implements the CountsClient interface.
func (m *MockCountsClient) FetchMonthly(ctx context.Context, year int) (schema.SparseSeries, error) {
	ret := m.Called(ctx, year)
	series, _ := ret.Get(0).(schema.SparseSeries)
	return series, ret.Error(1)
}
