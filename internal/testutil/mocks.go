package testutil

import (
	"context"
	"sid/internal/models"
	"sid/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	CacheHits       int
	CacheMisses     int
	StaleServed     int
	DegradedLookups int
	Upstream        map[string]int // "resource:outcome" -> count
	CachedUsers     int
	CachedPosts     int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{Upstream: make(map[string]int)}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncUpstreamRequests(resource, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Upstream[resource+":"+outcome]++
}
func (m *MockMetrics) ObserveUpstreamDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncStaleServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleServed++
}
func (m *MockMetrics) IncDegradedLookups() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DegradedLookups++
}
func (m *MockMetrics) SetCachedUsers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CachedUsers = count
}
func (m *MockMetrics) SetCachedPosts(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CachedPosts = count
}

// MockSourceClient implements upstream.SourceClient with scripted
// data and per-key failure switches.
type MockSourceClient struct {
	mu sync.Mutex

	Users          []models.User
	PostsByOwner   map[string][]models.Post
	CommentsByPost map[int][]models.Comment

	UsersErr    error
	PostsErr    map[string]error
	CommentsErr map[int]error

	UsersCalls    int
	PostsCalls    map[string]int
	CommentsCalls map[int]int
}

func NewMockSourceClient() *MockSourceClient {
	return &MockSourceClient{
		PostsByOwner:   make(map[string][]models.Post),
		CommentsByPost: make(map[int][]models.Comment),
		PostsErr:       make(map[string]error),
		CommentsErr:    make(map[int]error),
		PostsCalls:     make(map[string]int),
		CommentsCalls:  make(map[int]int),
	}
}

func (m *MockSourceClient) FetchUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UsersCalls++
	if m.UsersErr != nil {
		return nil, m.UsersErr
	}
	return m.Users, nil
}

func (m *MockSourceClient) FetchPosts(_ context.Context, ownerID string) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PostsCalls[ownerID]++
	if err := m.PostsErr[ownerID]; err != nil {
		return nil, err
	}
	return m.PostsByOwner[ownerID], nil
}

func (m *MockSourceClient) FetchComments(_ context.Context, postID int) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommentsCalls[postID]++
	if err := m.CommentsErr[postID]; err != nil {
		return nil, err
	}
	return m.CommentsByPost[postID], nil
}

func (m *MockSourceClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := m.UsersCalls
	for _, n := range m.PostsCalls {
		total += n
	}
	for _, n := range m.CommentsCalls {
		total += n
	}
	return total
}
