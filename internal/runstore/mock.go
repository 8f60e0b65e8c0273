package runstore

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/salecast/salecast/internal/contract"
	"github.com/salecast/salecast/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, inputRows, featureRows, forecastRows int, bestModel string) error {
	args := m.Called(runID, endTime, inputRows, featureRows, forecastRows, bestModel)
	return args.Error(0)
}

// RecordModelScore implements the RunStore interface.
func (m *MockRunStore) RecordModelScore(runID int64, score schema.ModelScoreRecord) error {
	args := m.Called(runID, score)
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
	records, _ := args.Get(0).([]schema.RunRecord)
	return records, args.Error(1)
}

// GetAllModelScores implements the RunStore interface.
func (m *MockRunStore) GetAllModelScores() ([]schema.ModelScoreRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ModelScoreRecord)
	return records, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
