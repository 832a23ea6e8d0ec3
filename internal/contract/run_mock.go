package contract

import (
	"time"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/mock"
)

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, totalPeople, totalFailures int) error {
	args := m.Called(runID, endTime, totalPeople, totalFailures)
	return args.Error(0)
}

// RecordPersonScores implements the RunStore interface.
func (m *MockRunStore) RecordPersonScores(runID int64, records []schema.PersonScoreRecord) error {
	args := m.Called(runID, records)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.RunRecord), args.Error(1)
}

// GetAllPersonScores implements the RunStore interface.
func (m *MockRunStore) GetAllPersonScores() ([]schema.PersonScoreRecord, error) {
	args := m.Called()
	return args.Get(0).([]schema.PersonScoreRecord), args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
