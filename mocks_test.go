package auth_test

import (
	"context"
	"time"

	auth "github.com/kappa1111/modooDiary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMemberStore implements auth.MemberStore
type MockMemberStore struct {
	mock.Mock
}

func (m *MockMemberStore) ExistsActiveByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberStore) GetByEmail(ctx context.Context, email string) (*auth.Member, error) {
	args := m.Called(ctx, email)
	member, _ := args.Get(0).(*auth.Member)
	return member, args.Error(1)
}

func (m *MockMemberStore) Register(ctx context.Context, member *auth.Member) (*auth.Member, error) {
	args := m.Called(ctx, member)
	created, _ := args.Get(0).(*auth.Member)
	return created, args.Error(1)
}

func (m *MockMemberStore) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockMemberStore) TrackIssuedToken(ctx context.Context, id uuid.UUID, accessToken string) error {
	args := m.Called(ctx, id, accessToken)
	return args.Error(0)
}

func (m *MockMemberStore) TrackAttemptedLogin(ctx context.Context, member *auth.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberStore) TrackSuccessfulLogin(ctx context.Context, member *auth.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

// MockSessionStore implements auth.SessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SetSession(ctx context.Context, identity, refreshToken string, ttl time.Duration) error {
	args := m.Called(ctx, identity, refreshToken, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) GetSession(ctx context.Context, identity string) (string, error) {
	args := m.Called(ctx, identity)
	return args.String(0), args.Error(1)
}

func (m *MockSessionStore) ClearSession(ctx context.Context, identity string) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockSessionStore) MarkRevoked(ctx context.Context, accessToken string, ttl time.Duration) error {
	args := m.Called(ctx, accessToken, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, accessToken string) (bool, error) {
	args := m.Called(ctx, accessToken)
	return args.Bool(0), args.Error(1)
}

// MockActivitySink implements auth.ActivitySink
type MockActivitySink struct {
	mock.Mock
}

func (m *MockActivitySink) Record(ctx context.Context, event auth.ActivityEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// recordingSink keeps every event for inspection
type recordingSink struct {
	events []auth.ActivityEvent
}

func (r *recordingSink) Record(_ context.Context, event auth.ActivityEvent) error {
	r.events = append(r.events, event)
	return nil
}

// MockLogger implements auth.Logger and swallows output
type MockLogger struct{}

func (MockLogger) Debug(format string, args ...any) {}
func (MockLogger) Info(format string, args ...any)  {}
func (MockLogger) Warn(format string, args ...any)  {}
func (MockLogger) Error(format string, args ...any) {}
