package contract

import (
	"github.com/huangsam/reviewers/schema"
	"github.com/stretchr/testify/mock"
)

// MockResultWriter is a mock implementation of ResultWriter for testing.
type MockResultWriter struct {
	mock.Mock
}

var _ ResultWriter = &MockResultWriter{} // Compile-time check

// WriteRanking implements the ResultWriter interface.
func (m *MockResultWriter) WriteRanking(ranking []schema.ReviewerRanking, cfg *Config) error {
	args := m.Called(ranking, cfg)
	return args.Error(0)
}

// WriteContributorLines implements the ResultWriter interface.
func (m *MockResultWriter) WriteContributorLines(contributor string, listing []schema.ContributorLines, cfg *Config) error {
	args := m.Called(contributor, listing, cfg)
	return args.Error(0)
}

// WriteRecords implements the ResultWriter interface.
func (m *MockResultWriter) WriteRecords(records []*schema.ChangeRecord, cfg *Config) error {
	args := m.Called(records, cfg)
	return args.Error(0)
}

// WriteChangeSummary implements the ResultWriter interface.
func (m *MockResultWriter) WriteChangeSummary(records []*schema.ChangeRecord, cfg *Config) error {
	args := m.Called(records, cfg)
	return args.Error(0)
}
