package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []any{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// ListBranches implements the GitClient interface.
func (m *MockGitClient) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	ret := m.Called(ctx, repoPath)
	branches, _ := ret.Get(0).([]string)
	return branches, ret.Error(1)
}

// CurrentUser implements the GitClient interface.
func (m *MockGitClient) CurrentUser(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}

// DiffRaw implements the GitClient interface.
func (m *MockGitClient) DiffRaw(ctx context.Context, repoPath string, baseRef string) ([]string, error) {
	ret := m.Called(ctx, repoPath, baseRef)
	lines, _ := ret.Get(0).([]string)
	return lines, ret.Error(1)
}

// DiffFile implements the GitClient interface.
func (m *MockGitClient) DiffFile(ctx context.Context, repoPath string, baseRef string, paths ...string) ([]string, error) {
	mockArgs := []any{ctx, repoPath, baseRef}
	for _, p := range paths {
		mockArgs = append(mockArgs, p)
	}
	ret := m.Called(mockArgs...)
	lines, _ := ret.Get(0).([]string)
	return lines, ret.Error(1)
}

// Blame implements the GitClient interface.
func (m *MockGitClient) Blame(ctx context.Context, repoPath string, baseRef string, path string, start, count int) ([]string, error) {
	ret := m.Called(ctx, repoPath, baseRef, path, start, count)
	lines, _ := ret.Get(0).([]string)
	return lines, ret.Error(1)
}
