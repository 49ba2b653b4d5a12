package access_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	access "github.com/solera-labs/go-access"
	"github.com/stretchr/testify/mock"
)

// MockUserStore implements access.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*access.User, error) {
	args := m.Called(ctx, email)
	var user *access.User
	if v := args.Get(0); v != nil {
		user = v.(*access.User)
	}
	return user, args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*access.User, error) {
	args := m.Called(ctx, id)
	var user *access.User
	if v := args.Get(0); v != nil {
		user = v.(*access.User)
	}
	return user, args.Error(1)
}

// Create echoes the inserted record when the expectation returns (nil, nil),
// matching the repository contract of handing back the stored row.
func (m *MockUserStore) Create(ctx context.Context, user *access.User) (*access.User, error) {
	args := m.Called(ctx, user)
	if v := args.Get(0); v != nil {
		return v.(*access.User), args.Error(1)
	}
	if args.Error(1) == nil {
		return user, nil
	}
	return nil, args.Error(1)
}

// MockLogger implements access.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// captureLogger buffers log lines so tests can assert on what gets written.
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) record(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintln(append([]any{format}, args...)...))
}

func (l *captureLogger) Debug(format string, args ...any) { l.record(format, args...) }
func (l *captureLogger) Info(format string, args ...any)  { l.record(format, args...) }
func (l *captureLogger) Error(format string, args ...any) { l.record(format, args...) }

func (l *captureLogger) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "")
}

// staticResolver is a canned PrincipalResolver for engine tests.
type staticResolver struct {
	user *access.User
	ok   bool
}

func (r staticResolver) Resolve(ctx context.Context, raw string) (*access.User, bool) {
	return r.user, r.ok
}
