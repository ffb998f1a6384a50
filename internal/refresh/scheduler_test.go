package refresh

import (
	"context"
	"sid/internal/apperror"
	"sid/internal/models"
	"sid/internal/structures"
	"sid/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type warmTestOrchestrator struct {
	mu          sync.Mutex
	users       []models.User
	dirErr      error
	ensureCalls [][]string
}

func (m *warmTestOrchestrator) Directory(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dirErr != nil {
		return nil, m.dirErr
	}
	return m.users, nil
}

func (m *warmTestOrchestrator) EnsurePosts(_ context.Context, ownerIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureCalls = append(m.ensureCalls, ownerIDs)
}

func (m *warmTestOrchestrator) CommentCounts(_ context.Context, _ []int) map[int]int { return nil }
func (m *warmTestOrchestrator) Posts() []models.Post                                 { return nil }
func (m *warmTestOrchestrator) PostCount(_ string) int                               { return 0 }
func (m *warmTestOrchestrator) CachedUsers() int                                     { return len(m.users) }
func (m *warmTestOrchestrator) CachedPosts() int                                     { return 0 }

func schedulerConfig(interval time.Duration) *structures.Config {
	return &structures.Config{
		Upstream: structures.UpstreamConfig{Timeout: time.Second},
		Fetcher:  structures.FetcherConfig{WarmInterval: interval},
	}
}

func TestWarm_RefreshesDirectoryAndPosts(t *testing.T) {
	orch := &warmTestOrchestrator{users: []models.User{{ID: "a"}, {ID: "b"}}}
	s := NewScheduler(schedulerConfig(0), &testutil.MockLogger{}, orch)

	require.NoError(t, s.Warm())

	require.Len(t, orch.ensureCalls, 1)
	assert.Equal(t, []string{"a", "b"}, orch.ensureCalls[0])
}

func TestWarm_PropagatesDirectoryFailure(t *testing.T) {
	orch := &warmTestOrchestrator{dirErr: apperror.DirectoryUnavailable(assert.AnError)}
	s := NewScheduler(schedulerConfig(0), &testutil.MockLogger{}, orch)

	err := s.Warm()
	assert.ErrorIs(t, err, apperror.ErrDirectoryUnavailable)
	assert.Empty(t, orch.ensureCalls)
}

func TestInit_DisabledWithoutInterval(t *testing.T) {
	s := NewScheduler(schedulerConfig(0), &testutil.MockLogger{}, &warmTestOrchestrator{}).(*Scheduler)

	s.Init()
	defer s.Stop()

	assert.Nil(t, s.cron)
}

func TestInit_PeriodicWarmRuns(t *testing.T) {
	orch := &warmTestOrchestrator{users: []models.User{{ID: "a"}}}
	// gron clamps schedules below one second up to a second.
	s := NewScheduler(schedulerConfig(time.Second), &testutil.MockLogger{}, orch).(*Scheduler)

	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		orch.mu.Lock()
		defer orch.mu.Unlock()
		return len(orch.ensureCalls) >= 1
	}, 3*time.Second, 50*time.Millisecond)
}
